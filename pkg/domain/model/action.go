package model

import (
	"time"

	"github.com/secmetrics-lab/csfgap/pkg/domain/types"
)

// EffortEstimate is the fixed effort lookup result for one implementation
// level. VarianceBand is display-only and never enters scheduling math.
type EffortEstimate struct {
	Hours        int
	Complexity   types.Complexity
	VarianceBand string
}

// DependencyRef points at one unmet prerequisite of an action
type DependencyRef struct {
	SubcategoryID types.SubcategoryID
	Strength      int
	Reason        string
}

// DependencyState is the resolver's verdict for one subcategory.
// Exactly one of the three statuses applies: Blocked when Blocking is
// non-empty, Partial when only Recommended is non-empty, Ready otherwise.
type DependencyState struct {
	Status      types.DependencyStatus
	Blocking    []DependencyRef
	Recommended []DependencyRef
}

// SuggestedAction extends a gap record with ranking, effort and readiness
// annotations. Computed fresh on every request; never persisted on its own.
type SuggestedAction struct {
	Rank                int
	Gap                 GapRecord
	Effort              EffortEstimate
	RiskReduction       float64
	MaturityImprovement float64
	ROIScore            float64
	Quadrant            types.Quadrant
	Dependency          DependencyState
	Justification       string
}

// Impact is the combined value score used for quadrant classification
func (a *SuggestedAction) Impact() float64 {
	return a.RiskReduction + a.MaturityImprovement
}

// PriorityMatrix is the ranked, quadrant-classified action list for one
// organization's current state.
type PriorityMatrix struct {
	CurrentProfileID types.ProfileID
	TargetProfileID  types.ProfileID
	Goal             types.OptimizationGoal
	Actions          []SuggestedAction
	MedianEffort     float64
	MedianImpact     float64
	GeneratedAt      time.Time
}
