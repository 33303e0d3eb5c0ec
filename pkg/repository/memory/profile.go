package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmetrics-lab/csfgap/pkg/domain/model"
	"github.com/secmetrics-lab/csfgap/pkg/domain/types"
)

type profileRepository struct {
	mu       sync.RWMutex
	profiles map[types.ProfileID]*model.Profile
	// assessments are owned by profiles; delete cascades through here
	assessments *assessmentRepository
}

func newProfileRepository(assessments *assessmentRepository) *profileRepository {
	return &profileRepository{
		profiles:    make(map[types.ProfileID]*model.Profile),
		assessments: assessments,
	}
}

func copyProfile(p *model.Profile) *model.Profile {
	copied := *p
	return &copied
}

func (r *profileRepository) Create(ctx context.Context, profile *model.Profile) (*model.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyProfile(profile)
	if created.ID == "" {
		created.ID = types.NewProfileID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.profiles[created.ID] = created
	return copyProfile(created), nil
}

func (r *profileRepository) Get(ctx context.Context, id types.ProfileID) (*model.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, exists := r.profiles[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "profile not found", goerr.V("id", id))
	}
	return copyProfile(profile), nil
}

func (r *profileRepository) ListByOrg(ctx context.Context, orgID types.OrgID) ([]*model.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profiles := make([]*model.Profile, 0)
	for _, profile := range r.profiles {
		if profile.OrgID == orgID {
			profiles = append(profiles, copyProfile(profile))
		}
	}
	return profiles, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *model.Profile) (*model.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.profiles[profile.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "profile not found", goerr.V("id", profile.ID))
	}

	updated := copyProfile(profile)
	updated.OrgID = existing.OrgID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.profiles[updated.ID] = updated
	return copyProfile(updated), nil
}

func (r *profileRepository) Delete(ctx context.Context, id types.ProfileID) error {
	r.mu.Lock()
	if _, exists := r.profiles[id]; !exists {
		r.mu.Unlock()
		return goerr.Wrap(ErrNotFound, "profile not found", goerr.V("id", id))
	}
	delete(r.profiles, id)
	r.mu.Unlock()

	return r.assessments.DeleteByProfile(ctx, id)
}
