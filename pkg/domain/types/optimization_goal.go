package types

import "github.com/m-mizutani/goerr/v2"

// OptimizationGoal steers how the priority ranker weights functions
type OptimizationGoal string

const (
	GoalQuickWins     OptimizationGoal = "quick_wins"
	GoalRiskReduction OptimizationGoal = "risk_reduction"
	GoalCompliance    OptimizationGoal = "compliance"
	GoalBalanced      OptimizationGoal = "balanced"
)

// AllOptimizationGoals returns all valid optimization goals
func AllOptimizationGoals() []OptimizationGoal {
	return []OptimizationGoal{
		GoalQuickWins,
		GoalRiskReduction,
		GoalCompliance,
		GoalBalanced,
	}
}

// IsValid checks if the optimization goal is valid
func (g OptimizationGoal) IsValid() bool {
	switch g {
	case GoalQuickWins, GoalRiskReduction, GoalCompliance, GoalBalanced:
		return true
	default:
		return false
	}
}

// Normalize returns the goal, treating empty as GoalBalanced
func (g OptimizationGoal) Normalize() OptimizationGoal {
	if g == "" {
		return GoalBalanced
	}
	return g
}

// String returns the string representation of the optimization goal
func (g OptimizationGoal) String() string {
	return string(g)
}

// ParseOptimizationGoal parses a string into an OptimizationGoal
func ParseOptimizationGoal(s string) (OptimizationGoal, error) {
	g := OptimizationGoal(s)
	if !g.IsValid() {
		return "", goerr.New("invalid optimization goal", goerr.V("value", s))
	}
	return g, nil
}
