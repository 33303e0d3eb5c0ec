package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmetrics-lab/csfgap/pkg/domain/interfaces"
	"github.com/secmetrics-lab/csfgap/pkg/domain/model"
	"github.com/secmetrics-lab/csfgap/pkg/domain/types"
)

type ProfileUseCase struct {
	repo interfaces.Repository
}

func NewProfileUseCase(repo interfaces.Repository) *ProfileUseCase {
	return &ProfileUseCase{
		repo: repo,
	}
}

func (uc *ProfileUseCase) CreateProfile(ctx context.Context, orgID types.OrgID, profileType types.ProfileType, name, description string) (*model.Profile, error) {
	if name == "" {
		return nil, goerr.New("profile name is required")
	}
	if err := orgID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid organization ID")
	}
	if !profileType.IsValid() {
		return nil, goerr.New("invalid profile type", goerr.V("type", profileType))
	}

	profile := &model.Profile{
		OrgID:       orgID,
		Type:        profileType,
		Name:        name,
		Description: description,
	}

	created, err := uc.repo.Profile().Create(ctx, profile)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create profile")
	}

	return created, nil
}

func (uc *ProfileUseCase) GetProfile(ctx context.Context, id types.ProfileID) (*model.Profile, error) {
	profile, err := uc.repo.Profile().Get(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, ErrProfileNotFound, "profile not found", goerr.V(ProfileIDKey, id))
	}

	return profile, nil
}

func (uc *ProfileUseCase) ListProfiles(ctx context.Context, orgID types.OrgID) ([]*model.Profile, error) {
	profiles, err := uc.repo.Profile().ListByOrg(ctx, orgID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list profiles")
	}

	return profiles, nil
}

func (uc *ProfileUseCase) UpdateProfile(ctx context.Context, id types.ProfileID, name, description string) (*model.Profile, error) {
	if name == "" {
		return nil, goerr.New("profile name is required")
	}

	existing, err := uc.repo.Profile().Get(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, ErrProfileNotFound, "profile not found", goerr.V(ProfileIDKey, id))
	}

	existing.Name = name
	existing.Description = description

	updated, err := uc.repo.Profile().Update(ctx, existing)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update profile", goerr.V(ProfileIDKey, id))
	}

	return updated, nil
}

func (uc *ProfileUseCase) DeleteProfile(ctx context.Context, id types.ProfileID) error {
	if _, err := uc.repo.Profile().Get(ctx, id); err != nil {
		return wrapNotFound(err, ErrProfileNotFound, "profile not found", goerr.V(ProfileIDKey, id))
	}

	// Assessments owned by the profile are removed by the repository cascade
	if err := uc.repo.Profile().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete profile", goerr.V(ProfileIDKey, id))
	}

	return nil
}

// PutAssessment records the current rating of one subcategory within a
// profile. Re-assessing the same subcategory supersedes the prior value.
func (uc *ProfileUseCase) PutAssessment(ctx context.Context, assessment *model.Assessment) (*model.Assessment, error) {
	if err := assessment.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid assessment")
	}

	if _, err := uc.repo.Profile().Get(ctx, assessment.ProfileID); err != nil {
		return nil, wrapNotFound(err, ErrProfileNotFound, "profile not found", goerr.V(ProfileIDKey, assessment.ProfileID))
	}

	if _, err := uc.repo.Framework().GetSubcategory(ctx, assessment.SubcategoryID); err != nil {
		return nil, wrapNotFound(err, ErrSubcategoryNotFound, "subcategory not found",
			goerr.V(SubcategoryIDKey, assessment.SubcategoryID))
	}

	assessment.Level = assessment.Level.Normalize()
	assessment.Confidence = assessment.Confidence.Normalize()

	put, err := uc.repo.Assessment().Put(ctx, assessment)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store assessment",
			goerr.V(ProfileIDKey, assessment.ProfileID),
			goerr.V(SubcategoryIDKey, assessment.SubcategoryID))
	}

	return put, nil
}

func (uc *ProfileUseCase) ListAssessments(ctx context.Context, profileID types.ProfileID) ([]*model.Assessment, error) {
	if _, err := uc.repo.Profile().Get(ctx, profileID); err != nil {
		return nil, wrapNotFound(err, ErrProfileNotFound, "profile not found", goerr.V(ProfileIDKey, profileID))
	}

	assessments, err := uc.repo.Assessment().ListByProfile(ctx, profileID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list assessments", goerr.V(ProfileIDKey, profileID))
	}

	return assessments, nil
}
