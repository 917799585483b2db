package domain

// GateResult is the full set of derived signals for one InputState. It is
// always recomputed from scratch by Evaluate; nothing is merged from a
// previous result.
type GateResult struct {
	OrRisk         bool `json:"or_risk"`
	Hazard         bool `json:"hazard"`
	NorNoRain      bool `json:"nor_no_rain"`
	XnorConsistent bool `json:"xnor_consistent"`
	ReminderOn     bool `json:"reminder_on"`
}

// Signal is one named gate output.
type Signal struct {
	Name  string
	Gate  GateType
	Value bool
}

// Gate signal names, in display order.
const (
	SignalOrRisk         = "or_risk"
	SignalHazard         = "hazard"
	SignalNorNoRain      = "nor_no_rain"
	SignalXnorConsistent = "xnor_consistent"
)

// Evaluate maps the four inputs to the gate layer and the final reminder
// decision. It is total and has no side effects.
func Evaluate(in InputState) GateResult {
	orRisk := Or(in.Rain, in.Drizzle)
	hazard := And(in.Drizzle, in.Wind)
	norNoRain := Nor(in.Rain, in.Drizzle)
	xnorConsistent := Xnor(in.Time, in.Wind)

	mustTake := And(orRisk, !hazard)

	return GateResult{
		OrRisk:         orRisk,
		Hazard:         hazard,
		NorNoRain:      norNoRain,
		XnorConsistent: xnorConsistent,
		ReminderOn:     And(mustTake, !norNoRain),
	}
}

// Signals returns the four gate outputs in display order. The reminder itself
// is not a gate output and is read from ReminderOn.
func (r GateResult) Signals() []Signal {
	return []Signal{
		{Name: SignalOrRisk, Gate: OR, Value: r.OrRisk},
		{Name: SignalHazard, Gate: AND, Value: r.Hazard},
		{Name: SignalNorNoRain, Gate: NOR, Value: r.NorNoRain},
		{Name: SignalXnorConsistent, Gate: XNOR, Value: r.XnorConsistent},
	}
}
