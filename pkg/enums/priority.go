package enums

import "fmt"

// Priority ranks how urgently an assignment should be worked.
type Priority int

const (
	PriorityLow    Priority = 0
	PriorityNormal Priority = 1
	PriorityHigh   Priority = 2
	PriorityUrgent Priority = 3
)

// IsValid reports whether the rank is within the supported range.
func (p Priority) IsValid() bool {
	return p >= PriorityLow && p <= PriorityUrgent
}

// String implements fmt.Stringer.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityNormal:
		return "normal"
	case PriorityHigh:
		return "high"
	case PriorityUrgent:
		return "urgent"
	default:
		return fmt.Sprintf("priority(%d)", int(p))
	}
}

// ParsePriority validates a raw integer rank.
func ParsePriority(value int) (Priority, error) {
	p := Priority(value)
	if !p.IsValid() {
		return 0, fmt.Errorf("invalid priority %d: must be between 0 (low) and 3 (urgent)", value)
	}
	return p, nil
}
