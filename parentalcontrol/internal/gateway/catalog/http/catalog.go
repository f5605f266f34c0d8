package http

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"

	"github.com/abhishek622/parentalcontrol/parentalcontrol/internal/gateway"
	"github.com/abhishek622/parentalcontrol/pkg/discovery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	serviceName = "catalog"
	tracerID    = "catalog-gateway-http"
)

// Gateway defines an HTTP gateway for a catalog service.
type Gateway struct {
	registry discovery.Registry
	client   *http.Client
}

// New creates a new HTTP gateway for a catalog service.
func New(registry discovery.Registry, client *http.Client) *Gateway {
	if client == nil {
		client = http.DefaultClient
	}
	return &Gateway{registry, client}
}

type classification struct {
	Level *string `json:"level"`
}

// GetLevel returns the raw parental control level of a movie.
func (g *Gateway) GetLevel(ctx context.Context, movieID string) (string, error) {
	ctx, span := otel.Tracer(tracerID).Start(ctx, "Gateway/GetLevel")
	defer span.End()
	span.SetAttributes(attribute.String("movie.id", movieID))

	level, err := g.getLevel(ctx, movieID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}
	return level, err
}

func (g *Gateway) getLevel(ctx context.Context, movieID string) (string, error) {
	addrs, err := g.registry.ServiceAddresses(ctx, serviceName)
	if err != nil {
		return "", fmt.Errorf("%w: resolve %s: %w", gateway.ErrTechnicalFailure, serviceName, err)
	}
	url := "http://" + addrs[rand.Intn(len(addrs))] + "/classification"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", gateway.ErrTechnicalFailure, err)
	}
	values := req.URL.Query()
	values.Add("id", movieID)
	req.URL.RawQuery = values.Encode()

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", gateway.ErrTechnicalFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", gateway.ErrNotFound
	} else if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("%w: non-2xx response: %s", gateway.ErrTechnicalFailure, resp.Status)
	}

	var v classification
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		return "", fmt.Errorf("%w: decode response: %w", gateway.ErrTechnicalFailure, err)
	}
	if v.Level == nil {
		return "", nil
	}
	return *v.Level, nil
}
