package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmetrics-lab/csfgap/pkg/domain/model"
	"github.com/secmetrics-lab/csfgap/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type assessmentDoc struct {
	ProfileID     string    `firestore:"profile_id"`
	SubcategoryID string    `firestore:"subcategory_id"`
	Level         string    `firestore:"implementation_level"`
	MaturityScore int       `firestore:"maturity_score"`
	Confidence    string    `firestore:"confidence_level"`
	Notes         string    `firestore:"notes"`
	AssessedAt    time.Time `firestore:"assessed_at"`
}

func toAssessmentDoc(a *model.Assessment) *assessmentDoc {
	return &assessmentDoc{
		ProfileID:     a.ProfileID.String(),
		SubcategoryID: a.SubcategoryID.String(),
		Level:         a.Level.String(),
		MaturityScore: a.MaturityScore,
		Confidence:    a.Confidence.String(),
		Notes:         a.Notes,
		AssessedAt:    a.AssessedAt,
	}
}

func fromAssessmentDoc(d *assessmentDoc) *model.Assessment {
	return &model.Assessment{
		ProfileID:     types.ProfileID(d.ProfileID),
		SubcategoryID: types.SubcategoryID(d.SubcategoryID),
		Level:         types.ImplementationLevel(d.Level),
		MaturityScore: d.MaturityScore,
		Confidence:    types.ConfidenceLevel(d.Confidence),
		Notes:         d.Notes,
		AssessedAt:    d.AssessedAt,
	}
}

type assessmentRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newAssessmentRepository(client *firestore.Client) *assessmentRepository {
	return &assessmentRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *assessmentRepository) assessmentsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_assessments"
	}
	return "assessments"
}

// assessmentDocID makes re-assessment of the same pair overwrite the prior
// document, giving upsert semantics at the storage layer.
func assessmentDocID(profileID types.ProfileID, subcategoryID types.SubcategoryID) string {
	return fmt.Sprintf("%s__%s", profileID, subcategoryID)
}

func (r *assessmentRepository) Put(ctx context.Context, assessment *model.Assessment) (*model.Assessment, error) {
	stored := *assessment
	if stored.AssessedAt.IsZero() {
		stored.AssessedAt = time.Now().UTC()
	}

	docID := assessmentDocID(stored.ProfileID, stored.SubcategoryID)
	docRef := r.client.Collection(r.assessmentsCollection()).Doc(docID)
	if _, err := docRef.Set(ctx, toAssessmentDoc(&stored)); err != nil {
		return nil, goerr.Wrap(err, "failed to put assessment",
			goerr.V("profile_id", stored.ProfileID),
			goerr.V("subcategory_id", stored.SubcategoryID))
	}

	return &stored, nil
}

func (r *assessmentRepository) Get(ctx context.Context, profileID types.ProfileID, subcategoryID types.SubcategoryID) (*model.Assessment, error) {
	docID := assessmentDocID(profileID, subcategoryID)
	doc, err := r.client.Collection(r.assessmentsCollection()).Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "assessment not found",
				goerr.V("profile_id", profileID),
				goerr.V("subcategory_id", subcategoryID))
		}
		return nil, goerr.Wrap(err, "failed to get assessment",
			goerr.V("profile_id", profileID),
			goerr.V("subcategory_id", subcategoryID))
	}

	var aDoc assessmentDoc
	if err := doc.DataTo(&aDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal assessment")
	}

	return fromAssessmentDoc(&aDoc), nil
}

func (r *assessmentRepository) ListByProfile(ctx context.Context, profileID types.ProfileID) ([]*model.Assessment, error) {
	iter := r.client.Collection(r.assessmentsCollection()).
		Where("profile_id", "==", profileID.String()).
		OrderBy("assessed_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	assessments := make([]*model.Assessment, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate assessments", goerr.V("profile_id", profileID))
		}

		var aDoc assessmentDoc
		if err := doc.DataTo(&aDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal assessment")
		}
		assessments = append(assessments, fromAssessmentDoc(&aDoc))
	}

	return assessments, nil
}

func (r *assessmentRepository) DeleteByProfile(ctx context.Context, profileID types.ProfileID) error {
	iter := r.client.Collection(r.assessmentsCollection()).
		Where("profile_id", "==", profileID.String()).
		Documents(ctx)
	defer iter.Stop()

	bw := r.client.BulkWriter(ctx)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return goerr.Wrap(err, "failed to iterate assessments", goerr.V("profile_id", profileID))
		}
		if _, err := bw.Delete(doc.Ref); err != nil {
			return goerr.Wrap(err, "failed to queue assessment delete", goerr.V("profile_id", profileID))
		}
	}
	bw.End()

	return nil
}
