package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmetrics-lab/csfgap/pkg/domain/interfaces"
	"github.com/secmetrics-lab/csfgap/pkg/domain/model"
	"github.com/secmetrics-lab/csfgap/pkg/domain/model/config"
	"github.com/secmetrics-lab/csfgap/pkg/domain/types"
)

// quickWinEffortHours is the effort bound under which an action counts as a
// quick win in justification text.
const quickWinEffortHours = 20

type PriorityUseCase struct {
	repo     interfaces.Repository
	cfg      *config.EngineConfig
	gap      *GapUseCase
	resolver *DependencyResolver
}

func NewPriorityUseCase(repo interfaces.Repository, cfg *config.EngineConfig, gap *GapUseCase, resolver *DependencyResolver) *PriorityUseCase {
	return &PriorityUseCase{
		repo:     repo,
		cfg:      cfg,
		gap:      gap,
		resolver: resolver,
	}
}

// GeneratePriorityMatrix ranks every positive gap between the two profiles
// into an ROI-ordered, quadrant-classified action list. The matrix is
// computed fresh on every call and never persisted on its own.
func (uc *PriorityUseCase) GeneratePriorityMatrix(ctx context.Context, currentID, targetID types.ProfileID, goal types.OptimizationGoal) (*model.PriorityMatrix, error) {
	goal = goal.Normalize()
	if !goal.IsValid() {
		return nil, goerr.Wrap(ErrInvalidGoal, "invalid optimization goal", goerr.V("goal", goal))
	}

	current, target, err := uc.gap.resolveProfilePair(ctx, currentID, targetID)
	if err != nil {
		return nil, err
	}

	currentAssessments, targetAssessments, err := uc.gap.fetchAssessmentPair(ctx, currentID, targetID)
	if err != nil {
		return nil, err
	}

	gaps := computeGapRecords(currentAssessments, targetAssessments, GapAnalysisInput{})
	levels := LevelsBySubcategory(currentAssessments)

	actions := make([]model.SuggestedAction, 0, len(gaps))
	for _, gap := range gaps {
		if gap.GapScore <= 0 {
			// Nothing to do for met or over-achieved subcategories
			continue
		}

		action, err := uc.scoreGap(ctx, gap, goal, levels)
		if err != nil {
			return nil, err
		}
		actions = append(actions, *action)
	}

	rankActions(actions)

	medianEffort := medianOf(actions, func(a model.SuggestedAction) float64 { return float64(a.Effort.Hours) })
	medianImpact := medianOf(actions, func(a model.SuggestedAction) float64 { return a.Impact() })
	for i := range actions {
		actions[i].Quadrant = classifyQuadrant(&actions[i], medianEffort, medianImpact)
	}

	actions = capPerQuadrant(actions, uc.cfg.MaxItemsPerQuadrant)

	for i := range actions {
		actions[i].Rank = i + 1
		actions[i].Justification = buildJustification(&actions[i], goal)
	}

	return &model.PriorityMatrix{
		CurrentProfileID: current.ID,
		TargetProfileID:  target.ID,
		Goal:             goal,
		Actions:          actions,
		MedianEffort:     medianEffort,
		MedianImpact:     medianImpact,
		GeneratedAt:      time.Now().UTC(),
	}, nil
}

func (uc *PriorityUseCase) scoreGap(ctx context.Context, gap model.GapRecord, goal types.OptimizationGoal, levels map[types.SubcategoryID]types.ImplementationLevel) (*model.SuggestedAction, error) {
	effort := uc.cfg.EffortFor(levels[gap.SubcategoryID])
	weight := uc.cfg.WeightFor(gap.SubcategoryID.Function(), goal)

	riskReduction := float64(gap.NormalizedGap()) / 100 * weight * 10
	maturityImprovement := float64(5-gap.CurrentScore) / 5 * 5

	effortHours := effort.Hours
	if effortHours < 1 {
		effortHours = 1
	}
	roi := (riskReduction + maturityImprovement) / float64(effortHours)

	dependency, err := uc.resolver.ResolveWith(ctx, gap.SubcategoryID, levels)
	if err != nil {
		return nil, err
	}

	return &model.SuggestedAction{
		Gap:                 gap,
		Effort:              effort,
		RiskReduction:       riskReduction,
		MaturityImprovement: maturityImprovement,
		ROIScore:            roi,
		Dependency:          *dependency,
	}, nil
}

// rankActions sorts by descending ROI, breaking ties by descending gap
// score and then ascending subcategory ID. The chain is a total order, so
// the ranking is independent of input order.
func rankActions(actions []model.SuggestedAction) {
	sort.Slice(actions, func(i, j int) bool {
		if actions[i].ROIScore != actions[j].ROIScore {
			return actions[i].ROIScore > actions[j].ROIScore
		}
		if actions[i].Gap.GapScore != actions[j].Gap.GapScore {
			return actions[i].Gap.GapScore > actions[j].Gap.GapScore
		}
		return actions[i].Gap.SubcategoryID < actions[j].Gap.SubcategoryID
	})
}

// medianOf computes the median of one dimension of the candidate set.
// Quadrant boundaries are data-relative so the matrix stays meaningful
// regardless of absolute scale.
func medianOf(actions []model.SuggestedAction, dim func(model.SuggestedAction) float64) float64 {
	if len(actions) == 0 {
		return 0
	}

	values := make([]float64, len(actions))
	for i, a := range actions {
		values[i] = dim(a)
	}
	sort.Float64s(values)

	mid := len(values) / 2
	if len(values)%2 == 0 {
		return (values[mid-1] + values[mid]) / 2
	}
	return values[mid]
}

func classifyQuadrant(a *model.SuggestedAction, medianEffort, medianImpact float64) types.Quadrant {
	highValue := a.Impact() >= medianImpact
	lowEffort := float64(a.Effort.Hours) <= medianEffort

	switch {
	case highValue && lowEffort:
		return types.QuadrantHighValueLowEffort
	case highValue:
		return types.QuadrantHighValueHighEffort
	case lowEffort:
		return types.QuadrantLowValueLowEffort
	default:
		return types.QuadrantLowValueHighEffort
	}
}

// capPerQuadrant keeps at most limit actions per quadrant, dropping the
// lowest-ranked extras. A limit of 0 keeps everything.
func capPerQuadrant(actions []model.SuggestedAction, limit int) []model.SuggestedAction {
	if limit <= 0 {
		return actions
	}

	counts := make(map[types.Quadrant]int, 4)
	kept := actions[:0]
	for _, a := range actions {
		if counts[a.Quadrant] >= limit {
			continue
		}
		counts[a.Quadrant]++
		kept = append(kept, a)
	}
	return kept
}

func buildJustification(a *model.SuggestedAction, goal types.OptimizationGoal) string {
	var parts []string

	switch goal {
	case types.GoalQuickWins:
		if a.Effort.Hours <= quickWinEffortHours {
			parts = append(parts, fmt.Sprintf("quick implementation (%dh estimated)", a.Effort.Hours))
		}
	case types.GoalRiskReduction:
		if a.RiskReduction >= a.MaturityImprovement {
			parts = append(parts, fmt.Sprintf("high risk leverage in %s", a.Gap.SubcategoryID.Function().FullName()))
		}
	case types.GoalCompliance:
		parts = append(parts, fmt.Sprintf("closes a %s compliance gap", a.Gap.SubcategoryID.Function().FullName()))
	}

	if a.Gap.IsCriticalGap() {
		parts = append(parts, "critical gap")
	}

	switch a.Dependency.Status {
	case types.DependencyReady:
		parts = append(parts, "ready to start")
	case types.DependencyPartial:
		parts = append(parts, fmt.Sprintf("%d recommended prerequisites outstanding", len(a.Dependency.Recommended)))
	case types.DependencyBlocked:
		parts = append(parts, fmt.Sprintf("blocked by %d hard prerequisites", len(a.Dependency.Blocking)))
	}

	if len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("raises %s maturity from %d to %d",
			a.Gap.SubcategoryID, a.Gap.CurrentScore, a.Gap.TargetScore))
	}

	return strings.Join(parts, "; ")
}
