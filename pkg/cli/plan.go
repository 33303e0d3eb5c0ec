package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmetrics-lab/csfgap/pkg/cli/config"
	"github.com/secmetrics-lab/csfgap/pkg/domain/types"
	"github.com/secmetrics-lab/csfgap/pkg/usecase"
	"github.com/secmetrics-lab/csfgap/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdPlan() *cli.Command {
	var currentID string
	var targetID string
	var goal string
	var capacity int
	var horizon int
	var excludeBlocked bool
	var configPath string
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "current",
			Usage:       "Current profile ID",
			Required:    true,
			Destination: &currentID,
		},
		&cli.StringFlag{
			Name:        "target",
			Usage:       "Target profile ID",
			Required:    true,
			Destination: &targetID,
		},
		&cli.StringFlag{
			Name:        "goal",
			Usage:       "Optimization goal (quick_wins, risk_reduction, compliance, balanced)",
			Value:       "balanced",
			Destination: &goal,
		},
		&cli.IntFlag{
			Name:        "capacity",
			Usage:       "Team capacity in hours per week",
			Value:       40,
			Destination: &capacity,
		},
		&cli.IntFlag{
			Name:        "weeks",
			Usage:       "Planning horizon in weeks",
			Value:       12,
			Destination: &horizon,
		},
		&cli.BoolFlag{
			Name:        "exclude-blocked",
			Usage:       "Leave actions with unmet hard prerequisites out of the timeline",
			Destination: &excludeBlocked,
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Engine configuration TOML with effort and weight overrides",
			Sources:     cli.EnvVars("CSFGAP_CONFIG"),
			Destination: &configPath,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "plan",
		Aliases: []string{"p"},
		Usage:   "Build a capacity-constrained implementation plan",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			engineCfg, err := loadEngineConfig(configPath)
			if err != nil {
				return err
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			uc := usecase.New(repo, usecase.WithEngineConfig(engineCfg))
			plan, err := uc.Plan.GeneratePlan(ctx,
				types.ProfileID(currentID),
				types.ProfileID(targetID),
				usecase.PlanInput{
					Goal:                 types.OptimizationGoal(goal),
					CapacityHoursPerWeek: capacity,
					TimeHorizonWeeks:     horizon,
					ExcludeBlocked:       excludeBlocked,
				})
			if err != nil {
				return goerr.Wrap(err, "failed to generate plan")
			}

			bold := color.New(color.Bold)
			bold.Printf("Implementation plan (%s)\n", plan.Goal)
			fmt.Printf("  capacity: %dh/week over %d weeks (%dh total)\n",
				plan.CapacityHoursPerWeek, plan.TimeHorizonWeeks, plan.Capacity.TotalHours)
			fmt.Printf("  allocated: %dh, remaining: %dh, utilization: %.0f%%\n",
				plan.Capacity.AllocatedHours, plan.Capacity.RemainingHours, plan.Capacity.Utilization)
			fmt.Printf("  actions: %d feasible, %d stretch, %d blocked\n\n",
				plan.Capacity.FeasibleActions, plan.Capacity.StretchActions, plan.Capacity.BlockedActions)

			for _, week := range plan.Weeks {
				bold.Printf("Week %d (%dh)\n", week.Number, week.Hours)
				for _, a := range week.Actions {
					fmt.Printf("  #%-3d %-12s %3dh  %-8s %s\n",
						a.Rank, a.Gap.SubcategoryID, a.Effort.Hours,
						colorPriority(a.Gap.Priority), a.Quadrant)
				}
				for _, m := range week.Milestones {
					color.New(color.FgGreen).Printf("  * %s\n", m.Name)
				}
			}

			if len(plan.Unscheduled) > 0 {
				bold.Printf("\nBeyond the horizon (%d)\n", len(plan.Unscheduled))
				for _, a := range plan.Unscheduled {
					fmt.Printf("  #%-3d %-12s %3dh\n", a.Rank, a.Gap.SubcategoryID, a.Effort.Hours)
				}
			}
			if len(plan.Excluded) > 0 {
				bold.Printf("\nExcluded (%d)\n", len(plan.Excluded))
				for _, a := range plan.Excluded {
					fmt.Printf("  #%-3d %-12s %3dh  %s\n",
						a.Rank, a.Gap.SubcategoryID, a.Effort.Hours, a.Dependency.Status)
				}
			}
			return nil
		},
	}
}
