package types

import "github.com/m-mizutani/goerr/v2"

// ImplementationLevel represents how far a subcategory has been implemented
type ImplementationLevel string

const (
	LevelNotImplemented       ImplementationLevel = "not_implemented"
	LevelPartiallyImplemented ImplementationLevel = "partially_implemented"
	LevelLargelyImplemented   ImplementationLevel = "largely_implemented"
	LevelFullyImplemented     ImplementationLevel = "fully_implemented"
)

// AllImplementationLevels returns all valid implementation levels in
// ascending order of completeness
func AllImplementationLevels() []ImplementationLevel {
	return []ImplementationLevel{
		LevelNotImplemented,
		LevelPartiallyImplemented,
		LevelLargelyImplemented,
		LevelFullyImplemented,
	}
}

// IsValid checks if the implementation level is valid
func (l ImplementationLevel) IsValid() bool {
	switch l {
	case LevelNotImplemented,
		LevelPartiallyImplemented,
		LevelLargelyImplemented,
		LevelFullyImplemented:
		return true
	default:
		return false
	}
}

// Normalize returns the level, treating empty as LevelNotImplemented.
// A missing assessment is never assumed compliant.
func (l ImplementationLevel) Normalize() ImplementationLevel {
	if l == "" {
		return LevelNotImplemented
	}
	return l
}

// AtLeastPartial reports whether the level satisfies a prerequisite edge,
// which requires at least partial implementation.
func (l ImplementationLevel) AtLeastPartial() bool {
	switch l.Normalize() {
	case LevelPartiallyImplemented, LevelLargelyImplemented, LevelFullyImplemented:
		return true
	default:
		return false
	}
}

// String returns the string representation of the implementation level
func (l ImplementationLevel) String() string {
	return string(l)
}

// ParseImplementationLevel parses a string into an ImplementationLevel
func ParseImplementationLevel(s string) (ImplementationLevel, error) {
	l := ImplementationLevel(s)
	if !l.IsValid() {
		return "", goerr.New("invalid implementation level", goerr.V("value", s))
	}
	return l, nil
}
