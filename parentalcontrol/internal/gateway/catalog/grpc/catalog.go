package grpc

import (
	"context"
	"fmt"

	"github.com/abhishek622/parentalcontrol/api"
	"github.com/abhishek622/parentalcontrol/internal/grpcutil"
	"github.com/abhishek622/parentalcontrol/parentalcontrol/internal/gateway"
	"github.com/abhishek622/parentalcontrol/pkg/discovery"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const serviceName = "catalog"

// Gateway defines a gRPC gateway for a catalog service.
type Gateway struct {
	registry discovery.Registry
	creds    credentials.TransportCredentials
}

// New creates a new gRPC gateway for a catalog service.
func New(registry discovery.Registry, creds credentials.TransportCredentials) *Gateway {
	return &Gateway{registry, creds}
}

// GetLevel returns the raw parental control level of a movie,
// ErrNotFound if the catalog does not know it or ErrTechnicalFailure.
func (g *Gateway) GetLevel(ctx context.Context, movieID string) (string, error) {
	conn, err := grpcutil.ServiceConnection(ctx, serviceName, g.registry, g.creds)
	if err != nil {
		return "", fmt.Errorf("%w: connect %s: %w", gateway.ErrTechnicalFailure, serviceName, err)
	}
	defer conn.Close()

	client := api.NewCatalogServiceClient(conn)
	resp, err := client.GetClassification(ctx, wrapperspb.String(movieID))
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return "", gateway.ErrNotFound
		}
		return "", fmt.Errorf("%w: %w", gateway.ErrTechnicalFailure, err)
	}
	return resp.GetValue(), nil
}
