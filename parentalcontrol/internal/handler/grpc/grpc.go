package grpc

import (
	"context"
	"errors"

	"github.com/abhishek622/parentalcontrol/api"
	"github.com/abhishek622/parentalcontrol/parentalcontrol/internal/controller/parentalcontrol"
	"github.com/abhishek622/parentalcontrol/parentalcontrol/internal/gateway"
	"github.com/uber-go/tally/v4"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Handler defines a parental control gRPC handler.
type Handler struct {
	ctrl   *parentalcontrol.Controller
	scope  tally.Scope
	logger *zap.Logger
}

var _ api.ParentalControlServiceServer = (*Handler)(nil)

// New creates a new parental control gRPC handler.
func New(ctrl *parentalcontrol.Controller, scope tally.Scope, logger *zap.Logger) *Handler {
	if scope == nil {
		scope = tally.NoopScope
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{ctrl: ctrl, scope: scope, logger: logger}
}

// CanWatch reports whether a customer may watch a movie.
func (h *Handler) CanWatch(ctx context.Context, req *structpb.Struct) (*wrapperspb.BoolValue, error) {
	if req == nil {
		return nil, status.Errorf(codes.InvalidArgument, "nil req")
	}
	fields := req.GetFields()
	customerLevel := fields[api.FieldCustomerLevel].GetStringValue()
	movieID := fields[api.FieldMovieID].GetStringValue()

	allowed, err := h.ctrl.CanWatch(ctx, customerLevel, movieID)
	if err != nil {
		code := statusCode(err)
		h.scope.Tagged(map[string]string{"kind": code.String()}).Counter("errors").Inc(1)
		if code == codes.Internal || code == codes.Unavailable {
			h.logger.Error("Failed to check parental control", zap.String("movieId", movieID), zap.Error(err))
		}
		return nil, status.Error(code, err.Error())
	}

	result := "denied"
	if allowed {
		result = "allowed"
	}
	h.scope.Tagged(map[string]string{"result": result}).Counter("decisions").Inc(1)
	return wrapperspb.Bool(allowed), nil
}

func statusCode(err error) codes.Code {
	switch {
	case errors.Is(err, parentalcontrol.ErrInvalidLevel):
		return codes.InvalidArgument
	case errors.Is(err, gateway.ErrNotFound):
		return codes.NotFound
	case errors.Is(err, gateway.ErrTechnicalFailure):
		return codes.Unavailable
	default:
		return codes.Internal
	}
}
