package cli

import (
	"context"
	"io"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmetrics-lab/csfgap/pkg/cli/config"
	"github.com/secmetrics-lab/csfgap/pkg/service/loader"
	"github.com/secmetrics-lab/csfgap/pkg/utils/logging"
	"github.com/secmetrics-lab/csfgap/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdImport() *cli.Command {
	var frameworkPath string
	var dependenciesPath string
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "framework",
			Usage:       "Path to the NIST CSF 2.0 OLIR JSON export",
			Required:    true,
			Sources:     cli.EnvVars("CSFGAP_FRAMEWORK"),
			Destination: &frameworkPath,
		},
		&cli.StringFlag{
			Name:        "dependencies",
			Usage:       "Path to the dependency edge TOML file (optional)",
			Sources:     cli.EnvVars("CSFGAP_DEPENDENCIES"),
			Destination: &dependenciesPath,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "import",
		Aliases: []string{"i"},
		Usage:   "Import the framework reference data into the repository",
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

			// #nosec G304 - path is provided by CLI argument
			frameworkFile, err := os.Open(frameworkPath)
			if err != nil {
				return goerr.Wrap(err, "failed to open framework file", goerr.V("path", frameworkPath))
			}
			defer safe.Close(ctx, frameworkFile)

			var dependenciesFile io.Reader
			if dependenciesPath != "" {
				// #nosec G304 - path is provided by CLI argument
				f, err := os.Open(dependenciesPath)
				if err != nil {
					return goerr.Wrap(err, "failed to open dependencies file", goerr.V("path", dependenciesPath))
				}
				defer safe.Close(ctx, f)
				dependenciesFile = f
			}

			stats, err := loader.New(repo).Import(ctx, frameworkFile, dependenciesFile)
			if err != nil {
				return goerr.Wrap(err, "failed to import framework")
			}

			logging.Default().Info("Import completed",
				"functions", stats.Functions,
				"categories", stats.Categories,
				"subcategories", stats.Subcategories,
				"dependencies", stats.Dependencies,
			)
			return nil
		},
	}
}
