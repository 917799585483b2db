package domain

// GateType identifies one of the two-input gates on the panel.
type GateType int

const (
	AND GateType = iota
	OR
	NOR
	XNOR
)

// String returns a string representation of the gate type
func (gt GateType) String() string {
	switch gt {
	case AND:
		return "AND"
	case OR:
		return "OR"
	case NOR:
		return "NOR"
	case XNOR:
		return "XNOR"
	default:
		return "UNKNOWN"
	}
}

// Apply evaluates the gate over two inputs. Unknown gate types yield false.
func (gt GateType) Apply(a, b bool) bool {
	switch gt {
	case AND:
		return And(a, b)
	case OR:
		return Or(a, b)
	case NOR:
		return Nor(a, b)
	case XNOR:
		return Xnor(a, b)
	default:
		return false
	}
}

// And is true only if both a and b are true.
func And(a, b bool) bool { return a && b }

// Or is true if a or b (or both) are true.
func Or(a, b bool) bool { return a || b }

// Nor is true only if neither a nor b is true.
func Nor(a, b bool) bool { return !(a || b) }

// Xnor is true if a and b are the same.
func Xnor(a, b bool) bool { return a == b }
