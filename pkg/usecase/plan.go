package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmetrics-lab/csfgap/pkg/domain/model"
	"github.com/secmetrics-lab/csfgap/pkg/domain/model/config"
	"github.com/secmetrics-lab/csfgap/pkg/domain/types"
)

const (
	minCapacityHoursPerWeek = 1
	maxCapacityHoursPerWeek = 168
	minTimeHorizonWeeks     = 1
	maxTimeHorizonWeeks     = 12
)

// weekMilestoneActionCount is the per-week action count at which the
// timeline gets a bulk-completion milestone.
const weekMilestoneActionCount = 3

type PlanUseCase struct {
	cfg      *config.EngineConfig
	priority *PriorityUseCase
}

func NewPlanUseCase(cfg *config.EngineConfig, priority *PriorityUseCase) *PlanUseCase {
	return &PlanUseCase{
		cfg:      cfg,
		priority: priority,
	}
}

// PlanInput carries the scheduling constraints of one planning run.
// ExcludeBlocked removes hard-blocked actions from the plan entirely; when
// false they are scheduled and reported, matching the matrix's ranking.
type PlanInput struct {
	Goal                 types.OptimizationGoal
	CapacityHoursPerWeek int
	TimeHorizonWeeks     int
	ExcludeBlocked       bool
}

func (in *PlanInput) Validate() error {
	if in.CapacityHoursPerWeek < minCapacityHoursPerWeek || in.CapacityHoursPerWeek > maxCapacityHoursPerWeek {
		return goerr.Wrap(ErrInvalidCapacity, "capacity out of range", goerr.V("capacity", in.CapacityHoursPerWeek))
	}
	if in.TimeHorizonWeeks < minTimeHorizonWeeks || in.TimeHorizonWeeks > maxTimeHorizonWeeks {
		return goerr.Wrap(ErrInvalidHorizon, "horizon out of range", goerr.V("weeks", in.TimeHorizonWeeks))
	}
	return nil
}

// GeneratePlan packs the ranked action list into weekly buckets bounded by
// the stated capacity and horizon. Actions that do not fit are surfaced in
// the Excluded and Unscheduled lists, never silently dropped.
func (uc *PlanUseCase) GeneratePlan(ctx context.Context, currentID, targetID types.ProfileID, input PlanInput) (*model.ImplementationPlan, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	matrix, err := uc.priority.GeneratePriorityMatrix(ctx, currentID, targetID, input.Goal)
	if err != nil {
		return nil, err
	}

	candidates := matrix.Actions
	var excluded []model.SuggestedAction
	if input.ExcludeBlocked {
		candidates, excluded = splitBlocked(candidates)
	}

	totalHours := input.CapacityHoursPerWeek * input.TimeHorizonWeeks
	admitted, overflow := admitByCapacity(candidates, totalHours, uc.cfg.OvercommitFactor)
	excluded = append(excluded, overflow...)

	weeks, unscheduled := bucketIntoWeeks(admitted, input.CapacityHoursPerWeek, input.TimeHorizonWeeks)

	var allocated int
	report := model.CapacityReport{TotalHours: totalHours}
	for _, a := range admitted {
		allocated += a.Effort.Hours
		switch a.Dependency.Status {
		case types.DependencyReady:
			report.FeasibleActions++
		case types.DependencyPartial:
			report.StretchActions++
		case types.DependencyBlocked:
			report.BlockedActions++
		}
	}
	report.AllocatedHours = allocated
	report.RemainingHours = totalHours - allocated
	if totalHours > 0 {
		report.Utilization = float64(allocated) / float64(totalHours) * 100
	}

	return &model.ImplementationPlan{
		CurrentProfileID:     matrix.CurrentProfileID,
		TargetProfileID:      matrix.TargetProfileID,
		Goal:                 matrix.Goal,
		CapacityHoursPerWeek: input.CapacityHoursPerWeek,
		TimeHorizonWeeks:     input.TimeHorizonWeeks,
		Capacity:             report,
		Weeks:                weeks,
		Unscheduled:          unscheduled,
		Excluded:             excluded,
		GeneratedAt:          time.Now().UTC(),
	}, nil
}

func splitBlocked(actions []model.SuggestedAction) (kept, blocked []model.SuggestedAction) {
	for _, a := range actions {
		if a.Dependency.Status == types.DependencyBlocked {
			blocked = append(blocked, a)
		} else {
			kept = append(kept, a)
		}
	}
	return kept, blocked
}

// admitByCapacity walks the ranked list in order and admits each action
// while the running total stays within the overcommit line. An action past
// the line is excluded entirely, not deferred; later smaller actions may
// still fit.
func admitByCapacity(actions []model.SuggestedAction, totalHours int, overcommit float64) (admitted, overflow []model.SuggestedAction) {
	limit := float64(totalHours) * overcommit
	var allocated int
	for _, a := range actions {
		if float64(allocated+a.Effort.Hours) > limit {
			overflow = append(overflow, a)
			continue
		}
		allocated += a.Effort.Hours
		admitted = append(admitted, a)
	}
	return admitted, overflow
}

// bucketIntoWeeks greedily fills weekly buckets in rank order. An action
// larger than a whole week gets a week to itself rather than stalling the
// walk. Admitted actions past the horizon are returned as unscheduled.
func bucketIntoWeeks(admitted []model.SuggestedAction, capacityPerWeek, horizonWeeks int) ([]model.PlanWeek, []model.SuggestedAction) {
	var weeks []model.PlanWeek
	var unscheduled []model.SuggestedAction

	current := model.PlanWeek{Number: 1}
	for i, a := range admitted {
		if len(current.Actions) > 0 && current.Hours+a.Effort.Hours > capacityPerWeek {
			current.Milestones = weekMilestones(&current)
			weeks = append(weeks, current)

			next := current.Number + 1
			if next > horizonWeeks {
				unscheduled = append(unscheduled, admitted[i:]...)
				return weeks, unscheduled
			}
			current = model.PlanWeek{Number: next}
		}
		current.Actions = append(current.Actions, a)
		current.Hours += a.Effort.Hours
	}

	if len(current.Actions) > 0 {
		current.Milestones = weekMilestones(&current)
		weeks = append(weeks, current)
	}

	return weeks, unscheduled
}

func weekMilestones(week *model.PlanWeek) []model.Milestone {
	var milestones []model.Milestone

	if week.Number == 1 {
		milestones = append(milestones, model.Milestone{
			Name:        "Kickoff",
			Description: "Implementation program starts",
		})
	}

	for _, a := range week.Actions {
		if strings.HasPrefix(a.Gap.SubcategoryID.String(), types.FunctionGovern.String()) {
			milestones = append(milestones, model.Milestone{
				Name:        "Governance framework",
				Description: "Governance controls land this week",
			})
			break
		}
	}

	if len(week.Actions) >= weekMilestoneActionCount {
		milestones = append(milestones, model.Milestone{
			Name:        fmt.Sprintf("Complete %d implementations", len(week.Actions)),
			Description: "Bulk of scheduled work finishes",
		})
	}

	return milestones
}
