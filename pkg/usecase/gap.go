package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmetrics-lab/csfgap/pkg/domain/interfaces"
	"github.com/secmetrics-lab/csfgap/pkg/domain/model"
	"github.com/secmetrics-lab/csfgap/pkg/domain/types"
	"golang.org/x/sync/errgroup"
)

type GapUseCase struct {
	repo interfaces.Repository
}

func NewGapUseCase(repo interfaces.Repository) *GapUseCase {
	return &GapUseCase{
		repo: repo,
	}
}

// GapAnalysisInput carries the optional knobs of a gap-analysis run.
// MinimumGapScore defaults to 0, which keeps every non-negative gap;
// lowering it below 0 includes over-achieved subcategories.
type GapAnalysisInput struct {
	MinimumGapScore   int
	IncludeRiskImpact bool
}

// GenerateGapAnalysis diffs the current profile's assessments against the
// target profile's, persists the result as one immutable record and returns
// it. Profile existence and organization match are verified before any
// computation or write happens.
func (uc *GapUseCase) GenerateGapAnalysis(ctx context.Context, currentID, targetID types.ProfileID, input GapAnalysisInput) (*model.GapAnalysis, error) {
	current, target, err := uc.resolveProfilePair(ctx, currentID, targetID)
	if err != nil {
		return nil, err
	}

	currentAssessments, targetAssessments, err := uc.fetchAssessmentPair(ctx, currentID, targetID)
	if err != nil {
		return nil, err
	}

	gaps := computeGapRecords(currentAssessments, targetAssessments, input)

	analysis := &model.GapAnalysis{
		ID:               types.NewAnalysisID(),
		OrgID:            current.OrgID,
		CurrentProfileID: current.ID,
		TargetProfileID:  target.ID,
		OverallGapScore:  meanGapScore(gaps),
		Gaps:             gaps,
		CreatedAt:        time.Now().UTC(),
	}

	// The analysis and its gap rows are one record; the write is atomic
	if err := uc.repo.Analysis().Create(ctx, analysis); err != nil {
		return nil, goerr.Wrap(err, "failed to persist gap analysis", goerr.V(AnalysisIDKey, analysis.ID))
	}

	return analysis, nil
}

func (uc *GapUseCase) GetGapAnalysis(ctx context.Context, id types.AnalysisID) (*model.GapAnalysis, error) {
	analysis, err := uc.repo.Analysis().Get(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, ErrAnalysisNotFound, "analysis not found", goerr.V(AnalysisIDKey, id))
	}

	return analysis, nil
}

func (uc *GapUseCase) ListGapAnalyses(ctx context.Context, orgID types.OrgID) ([]*model.GapAnalysis, error) {
	analyses, err := uc.repo.Analysis().ListByOrg(ctx, orgID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list analyses")
	}

	return analyses, nil
}

// resolveProfilePair loads both profiles and enforces the organization
// guard. Comparing profiles across organizations is meaningless and is
// rejected before anything else runs.
func (uc *GapUseCase) resolveProfilePair(ctx context.Context, currentID, targetID types.ProfileID) (*model.Profile, *model.Profile, error) {
	var current, target *model.Profile

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		p, err := uc.repo.Profile().Get(ctx, currentID)
		if err != nil {
			return wrapNotFound(err, ErrProfileNotFound, "current profile not found", goerr.V(ProfileIDKey, currentID))
		}
		current = p
		return nil
	})
	eg.Go(func() error {
		p, err := uc.repo.Profile().Get(ctx, targetID)
		if err != nil {
			return wrapNotFound(err, ErrProfileNotFound, "target profile not found", goerr.V(ProfileIDKey, targetID))
		}
		target = p
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}

	if current.OrgID != target.OrgID {
		return nil, nil, goerr.Wrap(ErrOrganizationMismatch, "profiles belong to different organizations",
			goerr.V("current_org_id", current.OrgID),
			goerr.V("target_org_id", target.OrgID))
	}

	return current, target, nil
}

func (uc *GapUseCase) fetchAssessmentPair(ctx context.Context, currentID, targetID types.ProfileID) ([]*model.Assessment, []*model.Assessment, error) {
	var currentAssessments, targetAssessments []*model.Assessment

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		a, err := uc.repo.Assessment().ListByProfile(ctx, currentID)
		if err != nil {
			return goerr.Wrap(err, "failed to load current assessments", goerr.V(ProfileIDKey, currentID))
		}
		currentAssessments = a
		return nil
	})
	eg.Go(func() error {
		a, err := uc.repo.Assessment().ListByProfile(ctx, targetID)
		if err != nil {
			return goerr.Wrap(err, "failed to load target assessments", goerr.V(ProfileIDKey, targetID))
		}
		targetAssessments = a
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}

	return currentAssessments, targetAssessments, nil
}

// computeGapRecords diffs two assessment sets over the union of their
// subcategory IDs. A subcategory missing from either set scores 0: an
// un-assessed item is never assumed compliant.
func computeGapRecords(current, target []*model.Assessment, input GapAnalysisInput) []model.GapRecord {
	currentScores := scoresBySubcategory(current)
	targetScores := scoresBySubcategory(target)

	ids := make(map[types.SubcategoryID]struct{}, len(currentScores)+len(targetScores))
	for id := range currentScores {
		ids[id] = struct{}{}
	}
	for id := range targetScores {
		ids[id] = struct{}{}
	}

	gaps := make([]model.GapRecord, 0, len(ids))
	for id := range ids {
		gap := targetScores[id] - currentScores[id]
		if gap < input.MinimumGapScore {
			continue
		}

		record := model.GapRecord{
			SubcategoryID: id,
			CurrentScore:  currentScores[id],
			TargetScore:   targetScores[id],
			GapScore:      gap,
			Priority:      types.PriorityForGap(gap),
		}
		if input.IncludeRiskImpact {
			record.RiskImpact = riskImpactFor(id.Function())
		}
		gaps = append(gaps, record)
	}

	// Descending by gap score, ties by subcategory ID for determinism
	sort.Slice(gaps, func(i, j int) bool {
		if gaps[i].GapScore != gaps[j].GapScore {
			return gaps[i].GapScore > gaps[j].GapScore
		}
		return gaps[i].SubcategoryID < gaps[j].SubcategoryID
	})

	return gaps
}

func scoresBySubcategory(assessments []*model.Assessment) map[types.SubcategoryID]int {
	scores := make(map[types.SubcategoryID]int, len(assessments))
	for _, a := range assessments {
		scores[a.SubcategoryID] = a.MaturityScore
	}
	return scores
}

func meanGapScore(gaps []model.GapRecord) float64 {
	if len(gaps) == 0 {
		return 0
	}
	var sum int
	for _, g := range gaps {
		sum += g.GapScore
	}
	return float64(sum) / float64(len(gaps))
}

// riskImpactFor is a presentational annotation keyed by function; it never
// enters the numeric model.
func riskImpactFor(fn types.Function) string {
	switch fn {
	case types.FunctionGovern:
		return "High: governance gaps weaken every downstream control"
	case types.FunctionProtect:
		return "High: missing safeguards leave critical assets exposed"
	case types.FunctionIdentify:
		return "Medium: limited visibility into assets and risk"
	case types.FunctionDetect:
		return "Medium: intrusions may go unnoticed"
	case types.FunctionRespond:
		return "Medium: incident response will be slower than needed"
	case types.FunctionRecover:
		return "Low: recovery after an incident takes longer"
	default:
		return ""
	}
}
