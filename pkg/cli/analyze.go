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

func cmdAnalyze() *cli.Command {
	var currentID string
	var targetID string
	var minGapScore int
	var riskImpact bool
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
		&cli.IntFlag{
			Name:        "min-gap",
			Usage:       "Exclude gaps below this raw score",
			Destination: &minGapScore,
		},
		&cli.BoolFlag{
			Name:        "risk-impact",
			Usage:       "Annotate each gap with a risk impact note",
			Destination: &riskImpact,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "analyze",
		Aliases: []string{"a"},
		Usage:   "Run a gap analysis between two profiles",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			uc := usecase.New(repo)
			analysis, err := uc.Gap.GenerateGapAnalysis(ctx,
				types.ProfileID(currentID),
				types.ProfileID(targetID),
				usecase.GapAnalysisInput{
					MinimumGapScore:   minGapScore,
					IncludeRiskImpact: riskImpact,
				})
			if err != nil {
				return goerr.Wrap(err, "failed to generate gap analysis")
			}

			bold := color.New(color.Bold)
			bold.Printf("Gap analysis %s\n", analysis.ID)
			fmt.Printf("  current: %s\n", analysis.CurrentProfileID)
			fmt.Printf("  target:  %s\n", analysis.TargetProfileID)
			fmt.Printf("  overall gap score: %.2f\n\n", analysis.OverallGapScore)

			if len(analysis.Gaps) == 0 {
				fmt.Println("No gaps above the threshold.")
				return nil
			}

			fmt.Printf("%-12s %8s %8s %5s  %-8s\n", "SUBCATEGORY", "CURRENT", "TARGET", "GAP", "PRIORITY")
			for _, g := range analysis.Gaps {
				fmt.Printf("%-12s %8d %8d %5d  %-8s\n",
					g.SubcategoryID, g.CurrentScore, g.TargetScore, g.GapScore,
					colorPriority(g.Priority))
				if g.RiskImpact != "" {
					fmt.Printf("             %s\n", g.RiskImpact)
				}
			}
			return nil
		},
	}
}

func colorPriority(p types.Priority) string {
	switch p {
	case types.PriorityCritical:
		return color.New(color.FgRed, color.Bold).Sprint(p.String())
	case types.PriorityHigh:
		return color.New(color.FgYellow).Sprint(p.String())
	case types.PriorityMedium:
		return color.New(color.FgCyan).Sprint(p.String())
	default:
		return p.String()
	}
}
