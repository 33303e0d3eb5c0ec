package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmetrics-lab/csfgap/pkg/domain/model"
	"github.com/secmetrics-lab/csfgap/pkg/domain/types"
)

// assessmentKey identifies the one logical current value per
// (profile, subcategory) pair
type assessmentKey struct {
	profileID     types.ProfileID
	subcategoryID types.SubcategoryID
}

type assessmentRepository struct {
	mu      sync.RWMutex
	entries map[assessmentKey]*model.Assessment
}

func newAssessmentRepository() *assessmentRepository {
	return &assessmentRepository{
		entries: make(map[assessmentKey]*model.Assessment),
	}
}

func copyAssessment(a *model.Assessment) *model.Assessment {
	copied := *a
	return &copied
}

func (r *assessmentRepository) Put(ctx context.Context, assessment *model.Assessment) (*model.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := copyAssessment(assessment)
	if stored.AssessedAt.IsZero() {
		stored.AssessedAt = time.Now().UTC()
	}

	key := assessmentKey{profileID: stored.ProfileID, subcategoryID: stored.SubcategoryID}
	r.entries[key] = stored
	return copyAssessment(stored), nil
}

func (r *assessmentRepository) Get(ctx context.Context, profileID types.ProfileID, subcategoryID types.SubcategoryID) (*model.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := assessmentKey{profileID: profileID, subcategoryID: subcategoryID}
	assessment, exists := r.entries[key]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "assessment not found",
			goerr.V("profile_id", profileID),
			goerr.V("subcategory_id", subcategoryID))
	}
	return copyAssessment(assessment), nil
}

func (r *assessmentRepository) ListByProfile(ctx context.Context, profileID types.ProfileID) ([]*model.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	assessments := make([]*model.Assessment, 0)
	for key, assessment := range r.entries {
		if key.profileID == profileID {
			assessments = append(assessments, copyAssessment(assessment))
		}
	}
	return assessments, nil
}

func (r *assessmentRepository) DeleteByProfile(ctx context.Context, profileID types.ProfileID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range r.entries {
		if key.profileID == profileID {
			delete(r.entries, key)
		}
	}
	return nil
}
