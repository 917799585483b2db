package domain

// TruthTableRow pairs one input combination with its evaluated result.
type TruthTableRow struct {
	Inputs InputState `json:"inputs"`
	Result GateResult `json:"result"`
}

// TruthTable evaluates all 16 input combinations in AllInputStates order.
func TruthTable() []TruthTableRow {
	states := AllInputStates()
	rows := make([]TruthTableRow, 0, len(states))
	for _, in := range states {
		rows = append(rows, TruthTableRow{Inputs: in, Result: Evaluate(in)})
	}
	return rows
}
