package interfaces

import (
	"context"

	"github.com/secmetrics-lab/csfgap/pkg/domain/model"
	"github.com/secmetrics-lab/csfgap/pkg/domain/types"
)

// AssessmentRepository persists per-profile, per-subcategory assessments.
// There is one logical current value per (profile, subcategory) pair.
type AssessmentRepository interface {
	// Put upserts the assessment for its (profile, subcategory) pair,
	// superseding any prior value.
	Put(ctx context.Context, assessment *model.Assessment) (*model.Assessment, error)

	// Get retrieves the current assessment of one subcategory
	Get(ctx context.Context, profileID types.ProfileID, subcategoryID types.SubcategoryID) (*model.Assessment, error)

	// ListByProfile retrieves all assessments of a profile
	ListByProfile(ctx context.Context, profileID types.ProfileID) ([]*model.Assessment, error)

	// DeleteByProfile removes all assessments owned by a profile
	DeleteByProfile(ctx context.Context, profileID types.ProfileID) error
}
