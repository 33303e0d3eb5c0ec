package model

import (
	"time"

	"github.com/secmetrics-lab/csfgap/pkg/domain/types"
)

// Milestone is a named marker attached to a plan week
type Milestone struct {
	Name        string
	Description string
}

// PlanWeek is one capacity bucket of the implementation timeline
type PlanWeek struct {
	Number     int
	Actions    []SuggestedAction
	Hours      int
	Milestones []Milestone
}

// CapacityReport summarizes how the admitted action set relates to the
// stated capacity. RemainingHours goes negative when the 20% overcommit
// allowance is used; that deficit is reported, never hidden.
type CapacityReport struct {
	TotalHours      int
	AllocatedHours  int
	RemainingHours  int
	Utilization     float64
	FeasibleActions int
	StretchActions  int
	BlockedActions  int
}

// ImplementationPlan is the scheduler output: the week-bucketed timeline
// plus everything that was admitted but did not fit on it. Unscheduled
// actions are surfaced explicitly rather than silently dropped.
type ImplementationPlan struct {
	CurrentProfileID     types.ProfileID
	TargetProfileID      types.ProfileID
	Goal                 types.OptimizationGoal
	CapacityHoursPerWeek int
	TimeHorizonWeeks     int
	Capacity             CapacityReport
	Weeks                []PlanWeek
	Unscheduled          []SuggestedAction
	Excluded             []SuggestedAction
	GeneratedAt          time.Time
}
