package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmetrics-lab/csfgap/pkg/domain/model"
	"github.com/secmetrics-lab/csfgap/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type profileDoc struct {
	ID          string    `firestore:"id"`
	OrgID       string    `firestore:"org_id"`
	Type        string    `firestore:"type"`
	Name        string    `firestore:"name"`
	Description string    `firestore:"description"`
	CreatedAt   time.Time `firestore:"created_at"`
	UpdatedAt   time.Time `firestore:"updated_at"`
}

func toProfileDoc(p *model.Profile) *profileDoc {
	return &profileDoc{
		ID:          p.ID.String(),
		OrgID:       p.OrgID.String(),
		Type:        p.Type.String(),
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func fromProfileDoc(d *profileDoc) *model.Profile {
	return &model.Profile{
		ID:          types.ProfileID(d.ID),
		OrgID:       types.OrgID(d.OrgID),
		Type:        types.ProfileType(d.Type),
		Name:        d.Name,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type profileRepository struct {
	client           *firestore.Client
	collectionPrefix string
	assessments      *assessmentRepository
}

func newProfileRepository(client *firestore.Client, assessments *assessmentRepository) *profileRepository {
	return &profileRepository{
		client:           client,
		collectionPrefix: "",
		assessments:      assessments,
	}
}

func (r *profileRepository) profilesCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_profiles"
	}
	return "profiles"
}

func (r *profileRepository) Create(ctx context.Context, profile *model.Profile) (*model.Profile, error) {
	now := time.Now().UTC()

	created := *profile
	if created.ID == "" {
		created.ID = types.NewProfileID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	docRef := r.client.Collection(r.profilesCollection()).Doc(created.ID.String())
	if _, err := docRef.Create(ctx, toProfileDoc(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create profile", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *profileRepository) Get(ctx context.Context, id types.ProfileID) (*model.Profile, error) {
	docRef := r.client.Collection(r.profilesCollection()).Doc(id.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "profile not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get profile", goerr.V("id", id))
	}

	var pDoc profileDoc
	if err := doc.DataTo(&pDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal profile", goerr.V("id", id))
	}

	return fromProfileDoc(&pDoc), nil
}

func (r *profileRepository) ListByOrg(ctx context.Context, orgID types.OrgID) ([]*model.Profile, error) {
	iter := r.client.Collection(r.profilesCollection()).
		Where("org_id", "==", orgID.String()).
		Documents(ctx)
	defer iter.Stop()

	profiles := make([]*model.Profile, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate profiles", goerr.V("org_id", orgID))
		}

		var pDoc profileDoc
		if err := doc.DataTo(&pDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal profile")
		}
		profiles = append(profiles, fromProfileDoc(&pDoc))
	}

	return profiles, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *model.Profile) (*model.Profile, error) {
	docRef := r.client.Collection(r.profilesCollection()).Doc(profile.ID.String())

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "profile not found", goerr.V("id", profile.ID))
		}
		return nil, goerr.Wrap(err, "failed to get profile", goerr.V("id", profile.ID))
	}

	var existing profileDoc
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal profile", goerr.V("id", profile.ID))
	}

	updated := *profile
	updated.OrgID = types.OrgID(existing.OrgID)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, toProfileDoc(&updated)); err != nil {
		return nil, goerr.Wrap(err, "failed to update profile", goerr.V("id", profile.ID))
	}

	return &updated, nil
}

func (r *profileRepository) Delete(ctx context.Context, id types.ProfileID) error {
	docRef := r.client.Collection(r.profilesCollection()).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "profile not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get profile", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete profile", goerr.V("id", id))
	}

	// Assessments are owned by the profile; cascade the delete
	return r.assessments.DeleteByProfile(ctx, id)
}
