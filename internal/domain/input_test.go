package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInput(t *testing.T) {
	for _, name := range []string{"rain", "drizzle", "wind", "time"} {
		in, err := ParseInput(name)
		require.NoError(t, err)
		assert.Equal(t, Input(name), in)
	}

	in, err := ParseInput("  Rain ")
	require.NoError(t, err)
	assert.Equal(t, InputRain, in)

	_, err = ParseInput("snow")
	require.ErrorIs(t, err, ErrUnknownInput)
	assert.Contains(t, err.Error(), "snow")
}

func TestInputState_SetToggle(t *testing.T) {
	var s InputState
	for _, in := range Inputs() {
		assert.False(t, s.Get(in))
	}

	s2 := s.Toggle(InputWind)
	assert.True(t, s2.Wind)
	assert.False(t, s.Wind, "Toggle must not mutate the receiver")

	s3 := s2.Set(InputWind, true)
	assert.Equal(t, s2, s3)

	s4 := s3.Set(InputTime, true).Set(InputWind, false)
	assert.Equal(t, InputState{Time: true}, s4)

	assert.Equal(t, s4, s4.Set(Input("fog"), true))
	assert.False(t, s4.Get(Input("fog")))
}

func TestAllInputStates_Unique(t *testing.T) {
	seen := map[InputState]bool{}
	for _, s := range AllInputStates() {
		assert.False(t, seen[s], "duplicate state %+v", s)
		seen[s] = true
	}
	assert.Len(t, seen, 16)
	assert.Equal(t, InputState{}, AllInputStates()[0])
	assert.Equal(t, InputState{Rain: true, Drizzle: true, Wind: true, Time: true}, AllInputStates()[15])
}
