package types

// Priority represents the remediation priority of a gap
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// AllPriorities returns all valid priorities in ascending order
func AllPriorities() []Priority {
	return []Priority{
		PriorityLow,
		PriorityMedium,
		PriorityHigh,
		PriorityCritical,
	}
}

// IsValid checks if the priority is valid
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	default:
		return false
	}
}

// String returns the string representation of the priority
func (p Priority) String() string {
	return string(p)
}

// PriorityForGap classifies a raw 0-5 maturity-delta gap score.
// Non-positive gaps need no action.
func PriorityForGap(gapScore int) Priority {
	switch {
	case gapScore >= 3:
		return PriorityCritical
	case gapScore == 2:
		return PriorityHigh
	case gapScore == 1:
		return PriorityMedium
	default:
		return PriorityLow
	}
}
