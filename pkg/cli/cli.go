package cli

import (
	"context"

	"github.com/secmetrics-lab/csfgap/pkg/cli/config"
	engineConfig "github.com/secmetrics-lab/csfgap/pkg/domain/model/config"
	"github.com/secmetrics-lab/csfgap/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func Run(ctx context.Context, args []string, version string) error {
	var loggerCfg config.Logger
	var sentryCfg config.Sentry
	var closers []func()

	app := &cli.Command{
		Name:    "csfgap",
		Usage:   "NIST CSF 2.0 gap analysis and prioritization engine",
		Version: version,
		Flags:   append(loggerCfg.Flags(), sentryCfg.Flags()...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logCloser, err := loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			closers = append(closers, logCloser)

			sentryCloser, err := sentryCfg.Configure(version)
			if err != nil {
				return ctx, err
			}
			closers = append(closers, sentryCloser)

			logging.Default().Info("Starting csfgap", "logger", loggerCfg)
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			for _, closer := range closers {
				closer()
			}
			return nil
		},
		Commands: []*cli.Command{
			cmdServe(),
			cmdImport(),
			cmdAnalyze(),
			cmdPlan(),
			cmdValidate(),
			cmdMigrate(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		logging.Default().Error("failed to run app", "error", err)
		return err
	}

	return nil
}

// loadEngineConfig loads engine table overrides from a TOML file, falling
// back to the shipped defaults when no path is given.
func loadEngineConfig(path string) (*engineConfig.EngineConfig, error) {
	if path == "" {
		return engineConfig.DefaultEngineConfig(), nil
	}

	appCfg, err := config.LoadAppConfiguration(path)
	if err != nil {
		return nil, err
	}
	return appCfg.ToEngineConfig(), nil
}
