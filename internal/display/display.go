// Package display turns an evaluation into the lamps, icons and text shown by
// every presenter. It holds no state.
package display

import "github.com/couchcryptid/umbrella-gate/internal/domain"

const (
	ReminderOnText  = "Umbrella Recommended! (Reminder ON)"
	ReminderOffText = "No Umbrella Needed."

	UmbrellaOnIcon  = "☔"
	UmbrellaOffIcon = "🚫☂️"
)

// Lamp is one labelled binary indicator.
type Lamp struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Icon  string `json:"icon,omitempty"`
	Gate  string `json:"gate,omitempty"`
	Bit   string `json:"bit"`
	On    bool   `json:"on"`
}

// Output is the final reminder indicator.
type Output struct {
	Icon string `json:"icon"`
	Text string `json:"text"`
	Bit  string `json:"bit"`
	On   bool   `json:"on"`
}

// View is everything a presenter needs to draw the panel.
type View struct {
	Inputs []Lamp `json:"inputs"`
	Gates  []Lamp `json:"gates"`
	Output Output `json:"output"`
}

var inputLabels = map[domain.Input]string{
	domain.InputRain:    "Heavy Rain",
	domain.InputDrizzle: "Drizzle",
	domain.InputWind:    "High Wind",
	domain.InputTime:    "Night Time",
}

var gateLabels = map[string]struct{ key, label string }{
	domain.SignalOrRisk:         {"O_Risk", "Any Rain Risk?"},
	domain.SignalHazard:         {"A_Hazard", "Drizzle AND Wind?"},
	domain.SignalNorNoRain:      {"N_NoRain", "Absolutely No Rain?"},
	domain.SignalXnorConsistent: {"X_Consistent", "Time and Wind Consistent?"},
}

// Build renders the view for one evaluation.
func Build(ev domain.Evaluation) View {
	v := View{
		Inputs: make([]Lamp, 0, 4),
		Gates:  make([]Lamp, 0, 4),
		Output: BuildOutput(ev.Result.ReminderOn),
	}
	for _, in := range domain.Inputs() {
		on := ev.Inputs.Get(in)
		v.Inputs = append(v.Inputs, Lamp{
			Key:   string(in),
			Label: inputLabels[in],
			Icon:  InputIcon(in, on),
			Bit:   Bit(on),
			On:    on,
		})
	}
	for _, s := range ev.Result.Signals() {
		l := gateLabels[s.Name]
		v.Gates = append(v.Gates, Lamp{
			Key:   l.key,
			Label: l.label,
			Gate:  s.Gate.String(),
			Bit:   Bit(s.Value),
			On:    s.Value,
		})
	}
	return v
}

// BuildOutput renders the reminder indicator.
func BuildOutput(on bool) Output {
	if on {
		return Output{Icon: UmbrellaOnIcon, Text: ReminderOnText, Bit: "1", On: true}
	}
	return Output{Icon: UmbrellaOffIcon, Text: ReminderOffText, Bit: "0"}
}

// Bit formats a boolean as "1" or "0".
func Bit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// InputIcon returns the icon for an input. Only the time input changes icon
// with its value.
func InputIcon(in domain.Input, on bool) string {
	switch in {
	case domain.InputRain:
		return "🌧️"
	case domain.InputDrizzle:
		return "🌦️"
	case domain.InputWind:
		return "💨"
	case domain.InputTime:
		if on {
			return "🌙"
		}
		return "☀️"
	}
	return ""
}
