package memory

import (
	"context"
	"sync"

	"github.com/abhishek622/parentalcontrol/parentalcontrol/internal/gateway"
	"go.opentelemetry.io/otel"
)

// Gateway defines an in-memory movie classification catalog.
type Gateway struct {
	sync.RWMutex
	data map[string]string
}

const tracerID = "catalog-gateway-memory"

// New creates a new memory catalog seeded with the given movie id to level entries.
func New(titles map[string]string) *Gateway {
	data := make(map[string]string, len(titles))
	for id, level := range titles {
		data[id] = level
	}
	return &Gateway{data: data}
}

// GetLevel returns the raw parental control level of a movie.
func (g *Gateway) GetLevel(ctx context.Context, movieID string) (string, error) {
	g.RLock()
	defer g.RUnlock()

	_, span := otel.Tracer(tracerID).Start(ctx, "Gateway/GetLevel")
	defer span.End()

	level, ok := g.data[movieID]
	if !ok {
		return "", gateway.ErrNotFound
	}
	return level, nil
}

// Put sets the raw parental control level of a movie.
func (g *Gateway) Put(ctx context.Context, movieID string, level string) error {
	g.Lock()
	defer g.Unlock()

	_, span := otel.Tracer(tracerID).Start(ctx, "Gateway/Put")
	defer span.End()

	g.data[movieID] = level
	return nil
}
