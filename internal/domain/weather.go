package domain

import (
	"context"
	"time"
)

// Observation is a current-conditions reading for one location.
type Observation struct {
	Time         time.Time
	RainMM       float64
	ShowersMM    float64
	WeatherCode  int
	WindSpeedKMH float64
	IsDay        bool
}

// Thresholds control how an Observation maps onto the panel inputs.
type Thresholds struct {
	RainMM  float64 // precipitation at or above this counts as rain
	WindKMH float64 // wind speed at or above this turns the wind input on
}

// DefaultThresholds returns the thresholds used when none are configured.
func DefaultThresholds() Thresholds {
	return Thresholds{RainMM: 0.5, WindKMH: 30}
}

// WeatherProvider fetches current conditions for a coordinate.
type WeatherProvider interface {
	Current(ctx context.Context, lat, lon float64) (Observation, error)
}

// Classify converts an observation into panel inputs.
func Classify(obs Observation, th Thresholds) InputState {
	precip := obs.RainMM + obs.ShowersMM
	return InputState{
		Rain:    isRainCode(obs.WeatherCode) || (th.RainMM > 0 && precip >= th.RainMM),
		Drizzle: isDrizzleCode(obs.WeatherCode),
		Wind:    th.WindKMH > 0 && obs.WindSpeedKMH >= th.WindKMH,
		Time:    !obs.IsDay,
	}
}

func isDrizzleCode(code int) bool {
	return code >= 51 && code <= 57
}

func isRainCode(code int) bool {
	switch {
	case code >= 61 && code <= 67:
		return true
	case code >= 80 && code <= 82:
		return true
	case code == 95 || code == 96 || code == 99:
		return true
	}
	return false
}
