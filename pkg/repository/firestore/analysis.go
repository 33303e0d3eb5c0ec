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

type gapRecordDoc struct {
	SubcategoryID string `firestore:"subcategory_id"`
	CurrentScore  int    `firestore:"current_score"`
	TargetScore   int    `firestore:"target_score"`
	GapScore      int    `firestore:"gap_score"`
	Priority      string `firestore:"priority"`
	RiskImpact    string `firestore:"risk_impact,omitempty"`
}

// analysisDoc embeds the gap detail rows so that one document write covers
// the whole aggregate. An analysis ID is never visible without its details.
type analysisDoc struct {
	ID               string         `firestore:"id"`
	OrgID            string         `firestore:"org_id"`
	CurrentProfileID string         `firestore:"current_profile_id"`
	TargetProfileID  string         `firestore:"target_profile_id"`
	OverallGapScore  float64        `firestore:"overall_gap_score"`
	Gaps             []gapRecordDoc `firestore:"gap_details"`
	CreatedAt        time.Time      `firestore:"created_at"`
}

func toAnalysisDoc(a *model.GapAnalysis) *analysisDoc {
	gaps := make([]gapRecordDoc, len(a.Gaps))
	for i, g := range a.Gaps {
		gaps[i] = gapRecordDoc{
			SubcategoryID: g.SubcategoryID.String(),
			CurrentScore:  g.CurrentScore,
			TargetScore:   g.TargetScore,
			GapScore:      g.GapScore,
			Priority:      g.Priority.String(),
			RiskImpact:    g.RiskImpact,
		}
	}
	return &analysisDoc{
		ID:               a.ID.String(),
		OrgID:            a.OrgID.String(),
		CurrentProfileID: a.CurrentProfileID.String(),
		TargetProfileID:  a.TargetProfileID.String(),
		OverallGapScore:  a.OverallGapScore,
		Gaps:             gaps,
		CreatedAt:        a.CreatedAt,
	}
}

func fromAnalysisDoc(d *analysisDoc) *model.GapAnalysis {
	gaps := make([]model.GapRecord, len(d.Gaps))
	for i, g := range d.Gaps {
		gaps[i] = model.GapRecord{
			SubcategoryID: types.SubcategoryID(g.SubcategoryID),
			CurrentScore:  g.CurrentScore,
			TargetScore:   g.TargetScore,
			GapScore:      g.GapScore,
			Priority:      types.Priority(g.Priority),
			RiskImpact:    g.RiskImpact,
		}
	}
	return &model.GapAnalysis{
		ID:               types.AnalysisID(d.ID),
		OrgID:            types.OrgID(d.OrgID),
		CurrentProfileID: types.ProfileID(d.CurrentProfileID),
		TargetProfileID:  types.ProfileID(d.TargetProfileID),
		OverallGapScore:  d.OverallGapScore,
		Gaps:             gaps,
		CreatedAt:        d.CreatedAt,
	}
}

type analysisRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newAnalysisRepository(client *firestore.Client) *analysisRepository {
	return &analysisRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *analysisRepository) analysesCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_gap_analyses"
	}
	return "gap_analyses"
}

func (r *analysisRepository) Create(ctx context.Context, analysis *model.GapAnalysis) error {
	if err := analysis.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid analysis ID")
	}

	stored := *analysis
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}

	// Create (not Set) so a duplicate ID fails instead of mutating an
	// existing immutable analysis.
	docRef := r.client.Collection(r.analysesCollection()).Doc(stored.ID.String())
	if _, err := docRef.Create(ctx, toAnalysisDoc(&stored)); err != nil {
		return goerr.Wrap(err, "failed to create gap analysis", goerr.V("id", stored.ID))
	}

	return nil
}

func (r *analysisRepository) Get(ctx context.Context, id types.AnalysisID) (*model.GapAnalysis, error) {
	doc, err := r.client.Collection(r.analysesCollection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "analysis not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get analysis", goerr.V("id", id))
	}

	var aDoc analysisDoc
	if err := doc.DataTo(&aDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal analysis", goerr.V("id", id))
	}

	return fromAnalysisDoc(&aDoc), nil
}

func (r *analysisRepository) ListByOrg(ctx context.Context, orgID types.OrgID) ([]*model.GapAnalysis, error) {
	iter := r.client.Collection(r.analysesCollection()).
		Where("org_id", "==", orgID.String()).
		OrderBy("created_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	analyses := make([]*model.GapAnalysis, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate analyses", goerr.V("org_id", orgID))
		}

		var aDoc analysisDoc
		if err := doc.DataTo(&aDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal analysis")
		}
		analyses = append(analyses, fromAnalysisDoc(&aDoc))
	}

	return analyses, nil
}
