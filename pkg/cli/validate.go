package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmetrics-lab/csfgap/pkg/cli/config"
	"github.com/secmetrics-lab/csfgap/pkg/service/loader"
	"github.com/secmetrics-lab/csfgap/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var configPath string
	var frameworkPath string
	var dependenciesPath string

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate configuration and reference files without touching any backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Usage:       "Engine configuration TOML to validate",
				Destination: &configPath,
			},
			&cli.StringFlag{
				Name:        "framework",
				Usage:       "NIST CSF 2.0 OLIR JSON export to validate",
				Destination: &frameworkPath,
			},
			&cli.StringFlag{
				Name:        "dependencies",
				Usage:       "Dependency edge TOML file to validate",
				Destination: &dependenciesPath,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if configPath == "" && frameworkPath == "" && dependenciesPath == "" {
				return goerr.New("at least one of --config, --framework or --dependencies is required")
			}

			ok := color.New(color.FgGreen).SprintFunc()

			if configPath != "" {
				if _, err := config.LoadAppConfiguration(configPath); err != nil {
					return goerr.Wrap(err, "config validation failed")
				}
				fmt.Printf("%s %s\n", ok("OK"), configPath)
			}

			if frameworkPath != "" {
				// #nosec G304 - path is provided by CLI argument
				f, err := os.Open(frameworkPath)
				if err != nil {
					return goerr.Wrap(err, "failed to open framework file", goerr.V("path", frameworkPath))
				}
				defer safe.Close(ctx, f)

				data, err := loader.ParseFramework(f)
				if err != nil {
					return goerr.Wrap(err, "framework validation failed")
				}
				fmt.Printf("%s %s (%d functions, %d categories, %d subcategories)\n",
					ok("OK"), frameworkPath,
					len(data.Functions), len(data.Categories), len(data.Subcategories))
			}

			if dependenciesPath != "" {
				// #nosec G304 - path is provided by CLI argument
				f, err := os.Open(dependenciesPath)
				if err != nil {
					return goerr.Wrap(err, "failed to open dependencies file", goerr.V("path", dependenciesPath))
				}
				defer safe.Close(ctx, f)

				edges, err := loader.ParseDependencies(f)
				if err != nil {
					return goerr.Wrap(err, "dependency validation failed")
				}
				fmt.Printf("%s %s (%d edges)\n", ok("OK"), dependenciesPath, len(edges))
			}

			return nil
		},
	}
}
