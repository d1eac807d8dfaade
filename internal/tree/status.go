package tree

// Status - outcome of a node from the point of view of the player who moved into it.
type Status string

const (
	StatusWin     Status = "WIN"
	StatusLose    Status = "LOSE"
	StatusDraw    Status = "DRAW"
	StatusUnknown Status = "UNKNOWN"
	StatusNewNode Status = "NEW_NODE"
)

// IsTerminal - reports whether the status is a resolved game outcome.
func (that Status) IsTerminal() bool {
	switch that {
	case StatusWin, StatusLose, StatusDraw:
		return true
	default:
		return false
	}
}

// IsValid - reports whether the status is one of the declared statuses.
func (that Status) IsValid() bool {
	return that.IsTerminal() || that == StatusUnknown || that == StatusNewNode
}

func (that Status) String() string {
	return string(that)
}
