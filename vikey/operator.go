package vikey

// Operator is a mutation that, combined with a motion or an active
// selection, determines the region an editing command acts on.
type Operator int

const (
	OpAutoIndent Operator = iota
	OpChange
	OpDelete
	OpShiftLeft
	OpShiftRight
	OpSwapCase
	OpYank
)

func (o Operator) String() string {
	switch o {
	case OpAutoIndent:
		return "AutoIndent"
	case OpChange:
		return "Change"
	case OpDelete:
		return "Delete"
	case OpShiftLeft:
		return "ShiftLeft"
	case OpShiftRight:
		return "ShiftRight"
	case OpSwapCase:
		return "SwapCase"
	case OpYank:
		return "Yank"
	default:
		return "Operator(?)"
	}
}
