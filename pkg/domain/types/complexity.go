package types

// Complexity represents the implementation complexity of a suggested action
type Complexity string

const (
	ComplexityLow    Complexity = "Low"
	ComplexityMedium Complexity = "Medium"
	ComplexityHigh   Complexity = "High"
)

// IsValid checks if the complexity is valid
func (c Complexity) IsValid() bool {
	switch c {
	case ComplexityLow, ComplexityMedium, ComplexityHigh:
		return true
	default:
		return false
	}
}

// String returns the string representation of the complexity
func (c Complexity) String() string {
	return string(c)
}

// ConfidenceLevel represents the assessor's confidence in a score
type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceHigh   ConfidenceLevel = "high"
)

// IsValid checks if the confidence level is valid
func (c ConfidenceLevel) IsValid() bool {
	switch c {
	case ConfidenceLow, ConfidenceMedium, ConfidenceHigh:
		return true
	default:
		return false
	}
}

// Normalize returns the level, treating empty as ConfidenceMedium
func (c ConfidenceLevel) Normalize() ConfidenceLevel {
	if c == "" {
		return ConfidenceMedium
	}
	return c
}

// String returns the string representation of the confidence level
func (c ConfidenceLevel) String() string {
	return string(c)
}
