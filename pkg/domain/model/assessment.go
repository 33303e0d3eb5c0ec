package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmetrics-lab/csfgap/pkg/domain/types"
)

// Assessment is one profile's current rating of one subcategory.
// Re-assessing the same (profile, subcategory) pair supersedes the prior
// value; there is one logical current value per pair.
type Assessment struct {
	ProfileID     types.ProfileID
	SubcategoryID types.SubcategoryID
	Level         types.ImplementationLevel
	MaturityScore int
	Confidence    types.ConfidenceLevel
	Notes         string `masq:"secret"`
	AssessedAt    time.Time
}

// Validate checks the assessment's field invariants
func (a *Assessment) Validate() error {
	if err := a.ProfileID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid profile ID")
	}
	if err := a.SubcategoryID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid subcategory ID")
	}
	if !a.Level.Normalize().IsValid() {
		return goerr.New("invalid implementation level", goerr.V("level", a.Level))
	}
	if a.MaturityScore < 0 || a.MaturityScore > 5 {
		return goerr.New("maturity score must be between 0 and 5",
			goerr.V("subcategory_id", a.SubcategoryID),
			goerr.V("score", a.MaturityScore))
	}
	if !a.Confidence.Normalize().IsValid() {
		return goerr.New("invalid confidence level", goerr.V("confidence", a.Confidence))
	}
	return nil
}
