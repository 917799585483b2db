package display

import (
	"testing"

	"github.com/couchcryptid/umbrella-gate/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evaluation(in domain.InputState) domain.Evaluation {
	return domain.Evaluation{Inputs: in, Result: domain.Evaluate(in)}
}

func TestBuild_StartupState(t *testing.T) {
	v := Build(evaluation(domain.InputState{}))

	require.Len(t, v.Inputs, 4)
	for _, l := range v.Inputs {
		assert.Equal(t, "0", l.Bit, l.Key)
	}
	assert.Equal(t, "☀️", v.Inputs[3].Icon)

	type gateBits struct{ Key, Gate, Bit string }
	got := make([]gateBits, 0, len(v.Gates))
	for _, g := range v.Gates {
		got = append(got, gateBits{g.Key, g.Gate, g.Bit})
	}
	want := []gateBits{
		{"O_Risk", "OR", "0"},
		{"A_Hazard", "AND", "0"},
		{"N_NoRain", "NOR", "1"},
		{"X_Consistent", "XNOR", "1"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("gate lamps mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, Output{Icon: UmbrellaOffIcon, Text: ReminderOffText, Bit: "0"}, v.Output)
}

func TestBuild_ReminderOnAtNight(t *testing.T) {
	v := Build(evaluation(domain.InputState{Rain: true, Wind: true, Time: true}))

	assert.Equal(t, "🌙", v.Inputs[3].Icon)
	assert.True(t, v.Inputs[0].On)
	assert.Equal(t, "Heavy Rain", v.Inputs[0].Label)
	assert.Equal(t, Output{Icon: UmbrellaOnIcon, Text: ReminderOnText, Bit: "1", On: true}, v.Output)
}

func TestInputIcon_Unknown(t *testing.T) {
	assert.Empty(t, InputIcon(domain.Input("fog"), true))
}
