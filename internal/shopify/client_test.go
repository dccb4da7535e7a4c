package shopify

import (
	"context"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/skuref/internal/testutil"
)

const testToken = "secret"

func newTestClient(t *testing.T, sf *testutil.Storefront, mutate ...func(*Config)) *Client {
	t.Helper()
	cfg := Config{
		APIEndpoint:           "https://shop.example.com/",
		StorefrontAccessToken: testToken,
		BaseURL:               sf.Server.URL,
		SortBy:                "TITLE",
	}
	for _, m := range mutate {
		m(&cfg)
	}
	c, err := NewClient(cfg)
	require.NoError(t, err)
	return c
}

func TestValidateParameters(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantErrs int
	}{
		{
			name: "valid",
			cfg:  Config{APIEndpoint: "shop.example.com", StorefrontAccessToken: "t"},
		},
		{
			name: "scheme and trailing slash tolerated",
			cfg:  Config{APIEndpoint: "https://shop.example.com/", StorefrontAccessToken: "t"},
		},
		{
			name:     "missing everything",
			cfg:      Config{},
			wantErrs: 2,
		},
		{
			name:     "endpoint with path",
			cfg:      Config{APIEndpoint: "shop.example.com/admin", StorefrontAccessToken: "t"},
			wantErrs: 1,
		},
		{
			name:     "blank token",
			cfg:      Config{APIEndpoint: "shop.example.com", StorefrontAccessToken: "  "},
			wantErrs: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateParameters(tt.cfg)
			if tt.wantErrs == 0 {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)

			var merr *multierror.Error
			require.True(t, errors.As(err, &merr))
			assert.Len(t, merr.Errors, tt.wantErrs)
		})
	}
}

func TestNewClientRejectsInvalidConfig(t *testing.T) {
	_, err := NewClient(Config{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestQueryErrors(t *testing.T) {
	sf := testutil.NewStorefront(t, testToken, nil, nil)

	t.Run("unauthorized", func(t *testing.T) {
		c := newTestClient(t, sf, func(cfg *Config) { cfg.StorefrontAccessToken = "wrong" })
		err := c.Query(context.Background(), productSearchQuery, map[string]any{"first": 1}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "401")
	})

	t.Run("graphql error", func(t *testing.T) {
		sf.SetGraphQLError("Throttled")
		defer sf.SetGraphQLError("")

		c := newTestClient(t, sf)
		err := c.Query(context.Background(), productSearchQuery, map[string]any{"first": 1}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Throttled")
	})
}
