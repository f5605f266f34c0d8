package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/abhishek622/parentalcontrol/parentalcontrol/internal/gateway"
	"github.com/abhishek622/parentalcontrol/pkg/discovery/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway(t *testing.T, h http.HandlerFunc) *Gateway {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	registry := memory.NewRegistry()
	require.NoError(t, registry.Register(context.Background(), "catalog-1", serviceName, strings.TrimPrefix(srv.URL, "http://")))
	return New(registry, srv.Client())
}

func TestGetLevel(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/classification", r.URL.Path)
		assert.Equal(t, "Titanic", r.URL.Query().Get("id"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"level":"A12"}`))
	})

	level, err := g.GetLevel(context.Background(), "Titanic")
	require.NoError(t, err)
	assert.Equal(t, "A12", level)
}

func TestGetLevelNullLevel(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"level":null}`))
	})

	level, err := g.GetLevel(context.Background(), "Titanic")
	require.NoError(t, err)
	assert.Empty(t, level)
}

func TestGetLevelErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
	}{
		{
			name:    "not found",
			handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNotFound) },
			wantErr: gateway.ErrNotFound,
		},
		{
			name:    "server error",
			handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) },
			wantErr: gateway.ErrTechnicalFailure,
		},
		{
			name:    "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`{"level":`)) },
			wantErr: gateway.ErrTechnicalFailure,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGateway(t, tt.handler)
			_, err := g.GetLevel(context.Background(), "Titanic")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGetLevelNoInstances(t *testing.T) {
	g := New(memory.NewRegistry(), nil)
	_, err := g.GetLevel(context.Background(), "Titanic")
	assert.ErrorIs(t, err, gateway.ErrTechnicalFailure)
}
