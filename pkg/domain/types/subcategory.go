package types

import (
	"regexp"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// SubcategoryID represents a CSF subcategory identifier (e.g. "GV.OC-01")
type SubcategoryID string

// CategoryID represents a CSF category identifier (e.g. "GV.OC")
type CategoryID string

var (
	subcategoryIDPattern = regexp.MustCompile(`^[A-Z]{2}\.[A-Z]{2}-\d{2}$`)
	categoryIDPattern    = regexp.MustCompile(`^[A-Z]{2}\.[A-Z]{2}$`)
)

// Validate checks if the SubcategoryID follows the XX.YY-NN format
func (s SubcategoryID) Validate() error {
	if s == "" {
		return goerr.New("subcategory ID cannot be empty")
	}
	if !subcategoryIDPattern.MatchString(string(s)) {
		return goerr.New("subcategory ID must follow XX.YY-NN format", goerr.V("id", s))
	}
	return nil
}

// String returns the string representation of SubcategoryID
func (s SubcategoryID) String() string {
	return string(s)
}

// Function extracts the parent function from the subcategory identifier.
// Returns an empty Function if the identifier is malformed.
func (s SubcategoryID) Function() Function {
	idx := strings.Index(string(s), ".")
	if idx < 0 {
		return ""
	}
	f := Function(s[:idx])
	if !f.IsValid() {
		return ""
	}
	return f
}

// Category extracts the parent category from the subcategory identifier
func (s SubcategoryID) Category() CategoryID {
	idx := strings.Index(string(s), "-")
	if idx < 0 {
		return ""
	}
	return CategoryID(s[:idx])
}

// Validate checks if the CategoryID follows the XX.YY format
func (c CategoryID) Validate() error {
	if c == "" {
		return goerr.New("category ID cannot be empty")
	}
	if !categoryIDPattern.MatchString(string(c)) {
		return goerr.New("category ID must follow XX.YY format", goerr.V("id", c))
	}
	return nil
}

// String returns the string representation of CategoryID
func (c CategoryID) String() string {
	return string(c)
}

// Function extracts the parent function from the category identifier
func (c CategoryID) Function() Function {
	idx := strings.Index(string(c), ".")
	if idx < 0 {
		return ""
	}
	f := Function(c[:idx])
	if !f.IsValid() {
		return ""
	}
	return f
}
