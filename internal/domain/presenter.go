package domain

// Presenter is the display side of the panel. It owns the input state and
// everything about how a result is shown.
type Presenter interface {
	ReadInputs() InputState
	Render(GateResult)
}

// Recalculate reads the current inputs, evaluates them and renders the full
// result. Adapters call it after every input change.
func Recalculate(p Presenter) GateResult {
	result := Evaluate(p.ReadInputs())
	p.Render(result)
	return result
}
