package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownInput is returned when an input name is not one of the four panel inputs.
var ErrUnknownInput = errors.New("unknown input")

// Input names one of the four panel inputs.
type Input string

const (
	InputRain    Input = "rain"
	InputDrizzle Input = "drizzle"
	InputWind    Input = "wind"
	InputTime    Input = "time" // on means night
)

// Inputs returns the panel inputs in display order.
func Inputs() []Input {
	return []Input{InputRain, InputDrizzle, InputWind, InputTime}
}

// ParseInput resolves a case-insensitive input name.
func ParseInput(s string) (Input, error) {
	in := Input(strings.ToLower(strings.TrimSpace(s)))
	switch in {
	case InputRain, InputDrizzle, InputWind, InputTime:
		return in, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownInput, s)
}

// InputState holds the four independent binary inputs. The zero value is the
// startup state: every input off.
type InputState struct {
	Rain    bool `json:"rain"`
	Drizzle bool `json:"drizzle"`
	Wind    bool `json:"wind"`
	Time    bool `json:"time"`
}

// Get returns the value of a single input. Unknown inputs read as off.
func (s InputState) Get(in Input) bool {
	switch in {
	case InputRain:
		return s.Rain
	case InputDrizzle:
		return s.Drizzle
	case InputWind:
		return s.Wind
	case InputTime:
		return s.Time
	}
	return false
}

// Set returns a copy of s with one input changed. Unknown inputs leave the
// state unchanged.
func (s InputState) Set(in Input, v bool) InputState {
	switch in {
	case InputRain:
		s.Rain = v
	case InputDrizzle:
		s.Drizzle = v
	case InputWind:
		s.Wind = v
	case InputTime:
		s.Time = v
	}
	return s
}

// Toggle returns a copy of s with one input flipped.
func (s InputState) Toggle(in Input) InputState {
	return s.Set(in, !s.Get(in))
}

// AllInputStates enumerates the 16 input combinations in binary counting
// order, with rain as the most significant bit.
func AllInputStates() []InputState {
	states := make([]InputState, 0, 16)
	for i := 0; i < 16; i++ {
		states = append(states, InputState{
			Rain:    i&8 != 0,
			Drizzle: i&4 != 0,
			Wind:    i&2 != 0,
			Time:    i&1 != 0,
		})
	}
	return states
}
