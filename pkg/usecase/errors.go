package usecase

import (
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmetrics-lab/csfgap/pkg/domain/interfaces"
)

// Sentinel errors for use case layer
var (
	// Not found errors
	ErrProfileNotFound     = errors.New("profile not found")
	ErrSubcategoryNotFound = errors.New("subcategory not found")
	ErrAnalysisNotFound    = errors.New("analysis not found")

	// Validation errors
	ErrOrganizationMismatch = errors.New("profiles belong to different organizations")
	ErrInvalidCapacity      = errors.New("capacity hours per week must be between 1 and 168")
	ErrInvalidHorizon       = errors.New("time horizon must be between 1 and 12 weeks")
	ErrInvalidGoal          = errors.New("invalid optimization goal")
)

// Context keys for error values
const (
	ProfileIDKey     = "profile_id"
	SubcategoryIDKey = "subcategory_id"
	AnalysisIDKey    = "analysis_id"
)

// wrapNotFound maps a repository read failure onto the operation's
// not-found sentinel only when the backend reports a missing record.
// Any other failure is an infrastructure error and propagates as-is.
func wrapNotFound(err, sentinel error, msg string, options ...goerr.Option) error {
	if errors.Is(err, interfaces.ErrNotFound) {
		return goerr.Wrap(sentinel, msg, options...)
	}
	return goerr.Wrap(err, "repository read failed", options...)
}
