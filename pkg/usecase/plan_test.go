package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmetrics-lab/csfgap/pkg/domain/model"
	"github.com/secmetrics-lab/csfgap/pkg/domain/model/config"
	"github.com/secmetrics-lab/csfgap/pkg/domain/types"
	"github.com/secmetrics-lab/csfgap/pkg/repository/memory"
	"github.com/secmetrics-lab/csfgap/pkg/usecase"
)

// uniformEffortConfig returns an engine config whose effort table charges
// the same hours for every implementation level, which makes scheduling
// arithmetic easy to pin down in tests.
func uniformEffortConfig(hours int) *config.EngineConfig {
	cfg := config.DefaultEngineConfig()
	for level := range cfg.Effort {
		cfg.Effort[level] = model.EffortEstimate{
			Hours:      hours,
			Complexity: types.ComplexityMedium,
		}
	}
	return cfg
}

func TestGeneratePlan(t *testing.T) {
	t.Run("capacity overflow admits up to the overcommit line", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo, usecase.WithEngineConfig(uniformEffortConfig(15)))
		ctx := context.Background()

		currentID, targetID := seedProfilePair(t, repo, "org-1")
		for i := 1; i <= 10; i++ {
			sub := types.SubcategoryID(fmt.Sprintf("ID.AM-%02d", i))
			putScore(t, repo, targetID, sub, 3, types.LevelLargelyImplemented)
		}

		// 100h budget, 120h line: 8 of the 15h actions fit, 2 overflow
		plan, err := uc.Plan.GeneratePlan(ctx, currentID, targetID, usecase.PlanInput{
			CapacityHoursPerWeek: 10,
			TimeHorizonWeeks:     10,
		})
		gt.NoError(t, err).Required()

		gt.Value(t, plan.Capacity.TotalHours).Equal(100)
		gt.Value(t, plan.Capacity.AllocatedHours).Equal(120)
		gt.Value(t, plan.Capacity.RemainingHours).Equal(-20)
		gt.Array(t, plan.Excluded).Length(2)

		var scheduled int
		for _, w := range plan.Weeks {
			scheduled += len(w.Actions)
		}
		gt.Value(t, scheduled+len(plan.Unscheduled)).Equal(8)
	})

	t.Run("allocated hours equal the admitted set's effort", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()

		currentID, targetID := seedRankingScenario(t, repo)

		plan, err := uc.Plan.GeneratePlan(ctx, currentID, targetID, usecase.PlanInput{
			CapacityHoursPerWeek: 40,
			TimeHorizonWeeks:     4,
		})
		gt.NoError(t, err).Required()

		var sum int
		for _, w := range plan.Weeks {
			for _, a := range w.Actions {
				sum += a.Effort.Hours
			}
		}
		for _, a := range plan.Unscheduled {
			sum += a.Effort.Hours
		}
		gt.Value(t, plan.Capacity.AllocatedHours).Equal(sum)

		limit := float64(plan.Capacity.TotalHours) * 1.2
		gt.Bool(t, float64(plan.Capacity.AllocatedHours) <= limit).True()
	})

	t.Run("admitted actions past the horizon surface as unscheduled", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo, usecase.WithEngineConfig(uniformEffortConfig(8)))
		ctx := context.Background()

		currentID, targetID := seedProfilePair(t, repo, "org-1")
		for _, sub := range []types.SubcategoryID{"GV.OC-01", "GV.RM-01", "GV.PO-01"} {
			putScore(t, repo, targetID, sub, 3, types.LevelLargelyImplemented)
		}

		// 20h budget, 24h line: all three 8h actions admitted, but only one
		// fits per 10h week and the horizon is two weeks
		plan, err := uc.Plan.GeneratePlan(ctx, currentID, targetID, usecase.PlanInput{
			CapacityHoursPerWeek: 10,
			TimeHorizonWeeks:     2,
		})
		gt.NoError(t, err).Required()

		gt.Value(t, plan.Capacity.AllocatedHours).Equal(24)
		gt.Array(t, plan.Weeks).Length(2)
		gt.Array(t, plan.Unscheduled).Length(1)
	})

	t.Run("week one carries kickoff and governance milestones", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo, usecase.WithEngineConfig(uniformEffortConfig(5)))
		ctx := context.Background()

		currentID, targetID := seedProfilePair(t, repo, "org-1")
		for _, sub := range []types.SubcategoryID{"GV.OC-01", "ID.AM-01", "PR.AA-01"} {
			putScore(t, repo, targetID, sub, 3, types.LevelLargelyImplemented)
		}

		plan, err := uc.Plan.GeneratePlan(ctx, currentID, targetID, usecase.PlanInput{
			CapacityHoursPerWeek: 20,
			TimeHorizonWeeks:     4,
		})
		gt.NoError(t, err).Required()

		gt.Array(t, plan.Weeks).Length(1)
		week := plan.Weeks[0]
		gt.Array(t, week.Actions).Length(3)

		names := make([]string, len(week.Milestones))
		for i, m := range week.Milestones {
			names[i] = m.Name
		}
		gt.Value(t, names).Equal([]string{"Kickoff", "Governance framework", "Complete 3 implementations"})
	})

	t.Run("exclude blocked removes hard-blocked actions from the plan", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()

		currentID, targetID := seedProfilePair(t, repo, "org-1")
		putScore(t, repo, currentID, "GV.OC-01", 3, types.LevelLargelyImplemented)
		putScore(t, repo, targetID, "ID.AM-02", 3, types.LevelLargelyImplemented)
		seedDependencyEdges(t, repo, []*model.Dependency{
			{SubcategoryID: "ID.AM-02", DependsOnID: "ID.AM-01", Strength: 9},
		})

		excluded, err := uc.Plan.GeneratePlan(ctx, currentID, targetID, usecase.PlanInput{
			CapacityHoursPerWeek: 40,
			TimeHorizonWeeks:     4,
			ExcludeBlocked:       true,
		})
		gt.NoError(t, err).Required()
		gt.Array(t, excluded.Weeks).Length(0)
		gt.Array(t, excluded.Excluded).Length(1)
		gt.Value(t, excluded.Capacity.BlockedActions).Equal(0)

		included, err := uc.Plan.GeneratePlan(ctx, currentID, targetID, usecase.PlanInput{
			CapacityHoursPerWeek: 40,
			TimeHorizonWeeks:     4,
		})
		gt.NoError(t, err).Required()
		gt.Value(t, included.Capacity.BlockedActions).Equal(1)
	})

	t.Run("feasible and stretch counters follow dependency status", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()

		currentID, targetID := seedProfilePair(t, repo, "org-1")
		putScore(t, repo, currentID, "GV.OC-01", 3, types.LevelLargelyImplemented)
		putScore(t, repo, currentID, "ID.AM-01", 2, types.LevelPartiallyImplemented)
		// GV.RM-01 is ready; PR.AA-01 gets a soft unmet edge
		putScore(t, repo, targetID, "GV.RM-01", 3, types.LevelLargelyImplemented)
		putScore(t, repo, targetID, "PR.AA-01", 3, types.LevelLargelyImplemented)
		seedDependencyEdges(t, repo, []*model.Dependency{
			{SubcategoryID: "PR.AA-01", DependsOnID: "PR.AT-01", Strength: 4},
		})

		plan, err := uc.Plan.GeneratePlan(ctx, currentID, targetID, usecase.PlanInput{
			CapacityHoursPerWeek: 80,
			TimeHorizonWeeks:     4,
		})
		gt.NoError(t, err).Required()

		gt.Value(t, plan.Capacity.FeasibleActions).Equal(1)
		gt.Value(t, plan.Capacity.StretchActions).Equal(1)
		gt.Value(t, plan.Capacity.BlockedActions).Equal(0)
	})

	t.Run("capacity out of range is rejected", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()

		currentID, targetID := seedProfilePair(t, repo, "org-1")

		_, err := uc.Plan.GeneratePlan(ctx, currentID, targetID, usecase.PlanInput{
			CapacityHoursPerWeek: 0,
			TimeHorizonWeeks:     4,
		})
		gt.Error(t, err).Is(usecase.ErrInvalidCapacity)

		_, err = uc.Plan.GeneratePlan(ctx, currentID, targetID, usecase.PlanInput{
			CapacityHoursPerWeek: 169,
			TimeHorizonWeeks:     4,
		})
		gt.Error(t, err).Is(usecase.ErrInvalidCapacity)
	})

	t.Run("horizon out of range is rejected", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()

		currentID, targetID := seedProfilePair(t, repo, "org-1")

		_, err := uc.Plan.GeneratePlan(ctx, currentID, targetID, usecase.PlanInput{
			CapacityHoursPerWeek: 40,
			TimeHorizonWeeks:     13,
		})
		gt.Error(t, err).Is(usecase.ErrInvalidHorizon)
	})
}
