package types

// DependencyStatus classifies whether an action can be started now
type DependencyStatus string

const (
	// DependencyReady means no unmet prerequisites
	DependencyReady DependencyStatus = "Ready"
	// DependencyPartial means unmet recommended prerequisites exist
	DependencyPartial DependencyStatus = "Partial"
	// DependencyBlocked means at least one unmet mandatory prerequisite exists
	DependencyBlocked DependencyStatus = "Blocked"
)

// IsValid checks if the dependency status is valid
func (s DependencyStatus) IsValid() bool {
	switch s {
	case DependencyReady, DependencyPartial, DependencyBlocked:
		return true
	default:
		return false
	}
}

// String returns the string representation of the dependency status
func (s DependencyStatus) String() string {
	return string(s)
}
