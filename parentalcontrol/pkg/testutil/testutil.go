package testutil

import (
	"github.com/abhishek622/parentalcontrol/api"
	"github.com/abhishek622/parentalcontrol/parentalcontrol/internal/controller/parentalcontrol"
	"github.com/abhishek622/parentalcontrol/parentalcontrol/internal/gateway/catalog/memory"
	grpchandler "github.com/abhishek622/parentalcontrol/parentalcontrol/internal/handler/grpc"
	"github.com/uber-go/tally/v4"
	"go.uber.org/zap"
)

// NewTestParentalControlGRPCServer creates a new parental control gRPC server
// backed by an in-memory catalog, to be used in tests.
func NewTestParentalControlGRPCServer(titles map[string]string) api.ParentalControlServiceServer {
	ctrl, err := parentalcontrol.New(memory.New(titles), zap.NewNop())
	if err != nil {
		panic(err)
	}
	return grpchandler.New(ctrl, tally.NoopScope, zap.NewNop())
}
