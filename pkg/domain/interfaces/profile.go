package interfaces

import (
	"context"

	"github.com/secmetrics-lab/csfgap/pkg/domain/model"
	"github.com/secmetrics-lab/csfgap/pkg/domain/types"
)

// ProfileRepository persists assessment profiles
type ProfileRepository interface {
	// Create creates a new profile with a generated ID
	Create(ctx context.Context, profile *model.Profile) (*model.Profile, error)

	// Get retrieves a profile by ID
	Get(ctx context.Context, id types.ProfileID) (*model.Profile, error)

	// ListByOrg retrieves all profiles of an organization
	ListByOrg(ctx context.Context, orgID types.OrgID) ([]*model.Profile, error)

	// Update updates an existing profile
	Update(ctx context.Context, profile *model.Profile) (*model.Profile, error)

	// Delete deletes a profile and all assessments owned by it
	Delete(ctx context.Context, id types.ProfileID) error
}
