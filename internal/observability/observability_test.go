package observability

import (
	"context"
	"log/slog"
	"testing"

	"github.com/couchcryptid/umbrella-gate/internal/config"
	"github.com/couchcryptid/umbrella-gate/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveEvaluation(t *testing.T) {
	m := NewMetricsForTesting()

	in := domain.InputState{Drizzle: true, Wind: true}
	m.ObserveEvaluation(domain.Evaluation{Source: domain.SourceHTTP, Inputs: in, Result: domain.Evaluate(in)})

	assert.InDelta(t, 1, testutil.ToFloat64(m.Evaluations.WithLabelValues(domain.SourceHTTP)), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(m.InputState.WithLabelValues("rain")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.InputState.WithLabelValues("drizzle")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.GateSignal.WithLabelValues(domain.SignalHazard)), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(m.GateSignal.WithLabelValues(domain.SignalNorNoRain)), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(m.ReminderOn), 0)

	in = domain.InputState{Rain: true}
	m.ObserveEvaluation(domain.Evaluation{Source: domain.SourceHTTP, Inputs: in, Result: domain.Evaluate(in)})

	assert.InDelta(t, 2, testutil.ToFloat64(m.Evaluations.WithLabelValues(domain.SourceHTTP)), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(m.GateSignal.WithLabelValues(domain.SignalHazard)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ReminderOn), 0)
}

func TestNewUnregisteredMetrics_Independent(t *testing.T) {
	a, b := NewUnregisteredMetrics(), NewUnregisteredMetrics()
	a.PublishRetries.Inc()

	assert.InDelta(t, 1, testutil.ToFloat64(a.PublishRetries), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(b.PublishRetries), 0)

	reg := prometheus.NewRegistry()
	assert.NotPanics(t, func() { reg.MustRegister(a.PublishRetries, a.Evaluations) })
}

func TestNewLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	tests := []struct {
		name      string
		cfg       config.Config
		minLevel  slog.Level
		textStyle bool
	}{
		{name: "json debug", cfg: config.Config{LogLevel: "debug", LogFormat: "json"}, minLevel: slog.LevelDebug},
		{name: "text warn", cfg: config.Config{LogLevel: "WARN", LogFormat: "text"}, minLevel: slog.LevelWarn, textStyle: true},
		{name: "unknown level", cfg: config.Config{LogLevel: "nonsense"}, minLevel: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogger(&tt.cfg)
			require.NotNil(t, logger)

			ctx := context.Background()
			assert.True(t, logger.Enabled(ctx, tt.minLevel))
			assert.False(t, logger.Enabled(ctx, tt.minLevel-1))
			assert.Same(t, logger, slog.Default())

			_, isText := logger.Handler().(*slog.TextHandler)
			assert.Equal(t, tt.textStyle, isText)
		})
	}
}
