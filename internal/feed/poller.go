// Package feed drives the panel inputs from live weather observations.
package feed

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/umbrella-gate/internal/domain"
	"github.com/jonboulle/clockwork"
)

// Applier replaces all panel inputs at once.
type Applier interface {
	Apply(state domain.InputState, source string) domain.Evaluation
}

// Poller periodically classifies current conditions and applies them to the panel.
type Poller struct {
	provider   domain.WeatherProvider
	panel      Applier
	lat, lon   float64
	thresholds domain.Thresholds
	interval   time.Duration
	clock      clockwork.Clock
	logger     *slog.Logger
}

// Option configures a Poller.
type Option func(*Poller)

// WithClock replaces the real clock, for tests.
func WithClock(c clockwork.Clock) Option {
	return func(p *Poller) { p.clock = c }
}

// NewPoller creates a weather poller for one coordinate.
func NewPoller(provider domain.WeatherProvider, pnl Applier, lat, lon float64, th domain.Thresholds, interval time.Duration, logger *slog.Logger, opts ...Option) *Poller {
	p := &Poller{
		provider:   provider,
		panel:      pnl,
		lat:        lat,
		lon:        lon,
		thresholds: th,
		interval:   interval,
		clock:      clockwork.NewRealClock(),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run polls immediately and then on every interval until ctx is cancelled.
// Fetch failures leave the inputs untouched.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info("weather feed started", "lat", p.lat, "lon", p.lon, "interval", p.interval)

	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	p.Poll(ctx)
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("weather feed stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			p.Poll(ctx)
		}
	}
}

// Poll performs one fetch-classify-apply cycle. It reports whether the panel
// was updated.
func (p *Poller) Poll(ctx context.Context) bool {
	obs, err := p.provider.Current(ctx, p.lat, p.lon)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Warn("weather fetch failed", "error", err)
		}
		return false
	}

	state := domain.Classify(obs, p.thresholds)
	ev := p.panel.Apply(state, domain.SourceWeather)
	p.logger.Info("weather applied",
		"weather_code", obs.WeatherCode,
		"rain_mm", obs.RainMM+obs.ShowersMM,
		"wind_kmh", obs.WindSpeedKMH,
		"is_day", obs.IsDay,
		"sequence", ev.Sequence,
		"reminder", domain.ReminderLabel(ev.Result.ReminderOn),
	)
	return true
}
