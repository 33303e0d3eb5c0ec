package config

import (
	"github.com/secmetrics-lab/csfgap/pkg/domain/model"
	"github.com/secmetrics-lab/csfgap/pkg/domain/types"
)

// EffortTable maps a subcategory's current implementation level to the
// fixed effort estimate used by the ranker and scheduler. Variance bands
// are display-only.
type EffortTable map[types.ImplementationLevel]model.EffortEstimate

// WeightTable holds the function x optimization-goal priority weights in
// the range [0.6, 1.0].
type WeightTable map[types.Function]map[types.OptimizationGoal]float64

// EngineConfig carries all weighting tables and tunables of the gap
// engine. It is passed into the use cases explicitly so the tables are
// unit-testable in isolation and swappable per deployment or industry.
type EngineConfig struct {
	Effort              EffortTable
	FunctionWeights     WeightTable
	OvercommitFactor    float64
	MaxItemsPerQuadrant int
}

// DefaultEngineConfig returns the shipped weighting tables
func DefaultEngineConfig() *EngineConfig {
	return &EngineConfig{
		Effort: EffortTable{
			types.LevelNotImplemented: {
				Hours: 40, Complexity: types.ComplexityHigh, VarianceBand: "30-60h",
			},
			types.LevelPartiallyImplemented: {
				Hours: 20, Complexity: types.ComplexityMedium, VarianceBand: "15-30h",
			},
			types.LevelLargelyImplemented: {
				Hours: 10, Complexity: types.ComplexityLow, VarianceBand: "5-15h",
			},
			types.LevelFullyImplemented: {
				Hours: 2, Complexity: types.ComplexityLow, VarianceBand: "1-4h",
			},
		},
		FunctionWeights: WeightTable{
			types.FunctionGovern: {
				types.GoalQuickWins:     0.8,
				types.GoalRiskReduction: 1.0,
				types.GoalCompliance:    1.0,
				types.GoalBalanced:      0.85,
			},
			types.FunctionIdentify: {
				types.GoalQuickWins:     1.0,
				types.GoalRiskReduction: 0.9,
				types.GoalCompliance:    0.85,
				types.GoalBalanced:      0.85,
			},
			types.FunctionProtect: {
				types.GoalQuickWins:     0.8,
				types.GoalRiskReduction: 1.0,
				types.GoalCompliance:    0.95,
				types.GoalBalanced:      0.85,
			},
			types.FunctionDetect: {
				types.GoalQuickWins:     0.7,
				types.GoalRiskReduction: 0.8,
				types.GoalCompliance:    0.8,
				types.GoalBalanced:      0.8,
			},
			types.FunctionRespond: {
				types.GoalQuickWins:     0.7,
				types.GoalRiskReduction: 0.8,
				types.GoalCompliance:    0.75,
				types.GoalBalanced:      0.8,
			},
			types.FunctionRecover: {
				types.GoalQuickWins:     0.6,
				types.GoalRiskReduction: 0.7,
				types.GoalCompliance:    0.7,
				types.GoalBalanced:      0.75,
			},
		},
		OvercommitFactor:    1.2,
		MaxItemsPerQuadrant: 10,
	}
}

// EffortFor looks up the effort estimate for an implementation level,
// falling back to the not-implemented row for unknown levels.
func (c *EngineConfig) EffortFor(level types.ImplementationLevel) model.EffortEstimate {
	if e, ok := c.Effort[level.Normalize()]; ok {
		return e
	}
	return c.Effort[types.LevelNotImplemented]
}

// WeightFor looks up the function priority weight for a goal, falling back
// to a neutral 0.8 when the table has no entry.
func (c *EngineConfig) WeightFor(fn types.Function, goal types.OptimizationGoal) float64 {
	if row, ok := c.FunctionWeights[fn]; ok {
		if w, ok := row[goal.Normalize()]; ok {
			return w
		}
	}
	return 0.8
}
