package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmetrics-lab/csfgap/pkg/cli/config"
	"github.com/secmetrics-lab/csfgap/pkg/domain/types"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0600)).Required()
	return path
}

func TestLoadAppConfiguration(t *testing.T) {
	t.Run("overrides merge onto defaults", func(t *testing.T) {
		path := writeConfigFile(t, `
[scheduler]
overcommit_factor = 1.5
max_items_per_quadrant = 5

[[effort]]
level = "not_implemented"
hours = 60
complexity = "high"
variance_band = "45-80h"

[[weight]]
function = "GV"
goal = "balanced"
weight = 0.95
`)

		cfg, err := config.LoadAppConfiguration(path)
		gt.NoError(t, err).Required()

		engine := cfg.ToEngineConfig()
		gt.Value(t, engine.OvercommitFactor).Equal(1.5)
		gt.Value(t, engine.MaxItemsPerQuadrant).Equal(5)
		gt.Value(t, engine.EffortFor(types.LevelNotImplemented).Hours).Equal(60)
		gt.Value(t, engine.WeightFor(types.FunctionGovern, types.GoalBalanced)).Equal(0.95)

		// untouched entries keep their defaults
		gt.Value(t, engine.EffortFor(types.LevelPartiallyImplemented).Hours).Equal(20)
		gt.Value(t, engine.WeightFor(types.FunctionIdentify, types.GoalQuickWins)).Equal(1.0)
	})

	t.Run("empty file yields defaults", func(t *testing.T) {
		path := writeConfigFile(t, "")

		cfg, err := config.LoadAppConfiguration(path)
		gt.NoError(t, err).Required()

		engine := cfg.ToEngineConfig()
		gt.Value(t, engine.OvercommitFactor).Equal(1.2)
		gt.Value(t, engine.MaxItemsPerQuadrant).Equal(10)
	})

	t.Run("missing file returns sentinel", func(t *testing.T) {
		_, err := config.LoadAppConfiguration(filepath.Join(t.TempDir(), "missing.toml"))
		gt.Error(t, err).Is(config.ErrConfigNotFound)
	})

	t.Run("unknown implementation level is rejected", func(t *testing.T) {
		path := writeConfigFile(t, `
[[effort]]
level = "mostly_done"
hours = 10
`)
		_, err := config.LoadAppConfiguration(path)
		gt.Error(t, err).Is(config.ErrInvalidLevel)
	})

	t.Run("out of range weight is rejected", func(t *testing.T) {
		path := writeConfigFile(t, `
[[weight]]
function = "GV"
goal = "balanced"
weight = 1.5
`)
		_, err := config.LoadAppConfiguration(path)
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})

	t.Run("duplicate override is rejected", func(t *testing.T) {
		path := writeConfigFile(t, `
[[effort]]
level = "not_implemented"
hours = 60

[[effort]]
level = "not_implemented"
hours = 30
`)
		_, err := config.LoadAppConfiguration(path)
		gt.Error(t, err).Is(config.ErrDuplicateOverride)
	})

	t.Run("out of range overcommit factor is rejected", func(t *testing.T) {
		path := writeConfigFile(t, `
[scheduler]
overcommit_factor = 3.0
`)
		_, err := config.LoadAppConfiguration(path)
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})
}
