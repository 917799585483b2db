//go:build openmeteo

package openmeteo

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/umbrella-gate/internal/domain"
	"github.com/couchcryptid/umbrella-gate/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests hit the real Open-Meteo API (no key required).
// Run with: go test -tags=openmeteo ./internal/adapter/openmeteo/ -v -count=1

func TestSmoke_Current(t *testing.T) {
	c := NewClient(10*time.Second, observability.NewMetricsForTesting(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	obs, err := c.Current(context.Background(), 52.52, 13.41)
	require.NoError(t, err)

	assert.False(t, obs.Time.IsZero())
	assert.GreaterOrEqual(t, obs.WindSpeedKMH, 0.0)
	assert.GreaterOrEqual(t, obs.WeatherCode, 0)

	in := domain.Classify(obs, domain.DefaultThresholds())
	t.Logf("observation %+v -> inputs %+v -> reminder %v", obs, in, domain.Evaluate(in).ReminderOn)
}
