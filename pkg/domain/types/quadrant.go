package types

// Quadrant represents one of the four impact/effort buckets of the
// priority matrix. Boundaries are relative to the candidate set medians,
// not absolute thresholds.
type Quadrant string

const (
	QuadrantHighValueLowEffort  Quadrant = "high_value_low_effort"
	QuadrantHighValueHighEffort Quadrant = "high_value_high_effort"
	QuadrantLowValueLowEffort   Quadrant = "low_value_low_effort"
	QuadrantLowValueHighEffort  Quadrant = "low_value_high_effort"
)

// AllQuadrants returns all quadrants in display order
func AllQuadrants() []Quadrant {
	return []Quadrant{
		QuadrantHighValueLowEffort,
		QuadrantHighValueHighEffort,
		QuadrantLowValueLowEffort,
		QuadrantLowValueHighEffort,
	}
}

// IsValid checks if the quadrant is valid
func (q Quadrant) IsValid() bool {
	switch q {
	case QuadrantHighValueLowEffort,
		QuadrantHighValueHighEffort,
		QuadrantLowValueLowEffort,
		QuadrantLowValueHighEffort:
		return true
	default:
		return false
	}
}

// String returns the string representation of the quadrant
func (q Quadrant) String() string {
	return string(q)
}

// Label returns a human-readable quadrant name
func (q Quadrant) Label() string {
	switch q {
	case QuadrantHighValueLowEffort:
		return "High Value / Low Effort"
	case QuadrantHighValueHighEffort:
		return "High Value / High Effort"
	case QuadrantLowValueLowEffort:
		return "Low Value / Low Effort"
	case QuadrantLowValueHighEffort:
		return "Low Value / High Effort"
	default:
		return ""
	}
}
