package parentalcontrol

import (
	"context"
	"errors"
	"testing"

	"github.com/abhishek622/parentalcontrol/parentalcontrol/internal/gateway"
	"github.com/abhishek622/parentalcontrol/parentalcontrol/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func newTestController(t *testing.T) (*Controller, *MockcatalogGateway) {
	t.Helper()
	ctrl := gomock.NewController(t)
	catalog := NewMockcatalogGateway(ctrl)
	c, err := New(catalog, zap.NewNop())
	require.NoError(t, err)
	return c, catalog
}

func TestNewRequiresGateway(t *testing.T) {
	c, err := New(nil, zap.NewNop())
	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrNilGateway)
}

func TestCanWatch(t *testing.T) {
	tests := []struct {
		name          string
		customerLevel string
		movieLevel    string
		want          bool
	}{
		{name: "equal levels", customerLevel: "A12", movieLevel: "A12", want: true},
		{name: "less restrictive movie", customerLevel: "A15", movieLevel: "PG", want: true},
		{name: "more restrictive movie", customerLevel: "U", movieLevel: "A12", want: false},
		{name: "adult customer", customerLevel: "A18", movieLevel: "A18", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, catalog := newTestController(t)
			catalog.EXPECT().GetLevel(gomock.Any(), "Titanic").Return(tt.movieLevel, nil)

			got, err := c.CanWatch(context.Background(), tt.customerLevel, "Titanic")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanWatchAllLevelPairs(t *testing.T) {
	for _, customer := range model.Levels() {
		for _, movie := range model.Levels() {
			c, catalog := newTestController(t)
			catalog.EXPECT().GetLevel(gomock.Any(), "m").Return(movie.String(), nil)

			got, err := c.CanWatch(context.Background(), customer.String(), "m")
			require.NoError(t, err)
			assert.Equal(t, model.Ordinal(movie) <= model.Ordinal(customer), got, "customer=%s movie=%s", customer, movie)
		}
	}
}

func TestCanWatchInvalidCustomerLevel(t *testing.T) {
	for _, level := range []string{"", "u", "A16", "pg", "A 12"} {
		t.Run(level, func(t *testing.T) {
			// No expectations: the catalog must not be consulted.
			c, _ := newTestController(t)

			got, err := c.CanWatch(context.Background(), level, "Titanic")
			assert.False(t, got)
			assert.ErrorIs(t, err, ErrInvalidLevel)
			assert.ErrorIs(t, err, model.ErrInvalidLevel)
		})
	}
}

func TestCanWatchInvalidMovieLevel(t *testing.T) {
	for _, level := range []string{"", "A17", "u", "R"} {
		t.Run(level, func(t *testing.T) {
			c, catalog := newTestController(t)
			catalog.EXPECT().GetLevel(gomock.Any(), "Titanic").Return(level, nil)

			got, err := c.CanWatch(context.Background(), "PG", "Titanic")
			assert.False(t, got)
			assert.ErrorIs(t, err, ErrInvalidLevel)
		})
	}
}

func TestCanWatchCaseSensitivity(t *testing.T) {
	c, catalog := newTestController(t)
	catalog.EXPECT().GetLevel(gomock.Any(), gomock.Any()).Return("U", nil).AnyTimes()

	_, err := c.CanWatch(context.Background(), "u", "Titanic")
	assert.ErrorIs(t, err, ErrInvalidLevel)
}

func TestCanWatchPassesLookupErrorsThrough(t *testing.T) {
	unexpected := errors.New("unexpected catalog error for QQQ")
	wrappedTechnical := errors.Join(gateway.ErrTechnicalFailure, errors.New("connection refused"))
	tests := []struct {
		name    string
		movieID string
		err     error
	}{
		{name: "not found", movieID: "Titanic", err: gateway.ErrNotFound},
		{name: "technical failure", movieID: "", err: gateway.ErrTechnicalFailure},
		{name: "wrapped technical failure", movieID: "Heat", err: wrappedTechnical},
		{name: "unexpected", movieID: "QQQ", err: unexpected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, catalog := newTestController(t)
			catalog.EXPECT().GetLevel(gomock.Any(), tt.movieID).Return("", tt.err)

			got, err := c.CanWatch(context.Background(), "A18", tt.movieID)
			assert.False(t, got)
			assert.Same(t, tt.err, err)
			assert.NotErrorIs(t, err, ErrInvalidLevel)
		})
	}
}
