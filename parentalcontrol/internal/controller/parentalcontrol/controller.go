package parentalcontrol

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhishek622/parentalcontrol/parentalcontrol/pkg/model"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ErrInvalidLevel is returned when either the customer level or the
// level reported by the catalog is not a known parental control level.
var ErrInvalidLevel = errors.New("invalid level")

// ErrNilGateway is returned by New when no catalog gateway is provided.
var ErrNilGateway = errors.New("catalog gateway is required")

const tracerID = "parentalcontrol-controller"

//go:generate mockgen -destination=mock_gateway_test.go -package=parentalcontrol . catalogGateway
type catalogGateway interface {
	GetLevel(ctx context.Context, movieID string) (string, error)
}

// Controller defines a parental control service controller.
type Controller struct {
	catalog catalogGateway
	logger  *zap.Logger
}

// New creates a parental control service controller.
func New(catalog catalogGateway, logger *zap.Logger) (*Controller, error) {
	if catalog == nil {
		return nil, ErrNilGateway
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{catalog: catalog, logger: logger}, nil
}

// CanWatch reports whether a customer with the given parental control level
// may watch the movie. Errors returned by the catalog are passed through unchanged.
func (c *Controller) CanWatch(ctx context.Context, customerLevel string, movieID string) (bool, error) {
	ctx, span := otel.Tracer(tracerID).Start(ctx, "Controller/CanWatch")
	defer span.End()

	limit, err := model.LevelOf(customerLevel)
	if err != nil {
		return false, fmt.Errorf("%w: customer: %w", ErrInvalidLevel, err)
	}

	raw, err := c.catalog.GetLevel(ctx, movieID)
	if err != nil {
		c.logger.Debug("Catalog lookup failed", zap.String("movieId", movieID), zap.Error(err))
		return false, err
	}

	level, err := model.LevelOf(raw)
	if err != nil {
		c.logger.Warn("Catalog returned unknown level", zap.String("movieId", movieID), zap.String("level", raw))
		return false, fmt.Errorf("%w: movie %s: %w", ErrInvalidLevel, movieID, err)
	}

	d := model.Decision{CustomerLevel: limit, MovieLevel: level, Allowed: limit.Permits(level)}
	span.SetAttributes(
		attribute.String("customer.level", d.CustomerLevel.String()),
		attribute.String("movie.level", d.MovieLevel.String()),
		attribute.Bool("allowed", d.Allowed),
	)
	c.logger.Debug("Parental control decision",
		zap.String("movieId", movieID),
		zap.Stringer("customerLevel", d.CustomerLevel),
		zap.Stringer("movieLevel", d.MovieLevel),
		zap.Bool("allowed", d.Allowed),
	)
	return d.Allowed, nil
}
