//go:build stormglass

package stormglass

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/couchcryptid/surf-forecast-service/internal/observability"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests hit the real StormGlass API and require a valid STORMGLASS_API_TOKEN env var.
// Each run spends quota. Run with: go test -tags=stormglass ./internal/adapter/stormglass/ -v -count=1

func smokeClient(t *testing.T) *Client {
	t.Helper()
	token := os.Getenv("STORMGLASS_API_TOKEN")
	if token == "" {
		t.Fatal("STORMGLASS_API_TOKEN must be set to run smoke tests")
	}
	return &Client{
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    "https://api.stormglass.io/v2",
		clock:      clockwork.NewRealClock(),
		metrics:    observability.NewMetricsForTesting(),
		logger:     discardLogger(),
	}
}

func TestSmoke_FetchPoints(t *testing.T) {
	c := smokeClient(t)

	// Manly, Sydney
	points, err := c.FetchPoints(context.Background(), testLat, testLng)
	require.NoError(t, err)

	require.NotEmpty(t, points)
	for _, p := range points {
		assert.NotEmpty(t, p.Time)
		assert.GreaterOrEqual(t, p.WaveHeight, 0.0)
	}
}

func TestSmoke_CachedClient(t *testing.T) {
	c := smokeClient(t)
	cached := NewCachedClient(c, time.Minute, clockwork.NewRealClock(), observability.NewMetricsForTesting(), discardLogger())

	// First call: cache miss, real API call.
	p1, err := cached.FetchPoints(context.Background(), testLat, testLng)
	require.NoError(t, err)

	// Second call: cache hit, no API call.
	p2, err := cached.FetchPoints(context.Background(), testLat, testLng)
	require.NoError(t, err)
	assert.Equal(t, p1, p2)
}
