package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	engineConfig "github.com/secmetrics-lab/csfgap/pkg/domain/model/config"
	"github.com/secmetrics-lab/csfgap/pkg/domain/types"
)

// AppConfig carries optional overrides of the engine's shipped weighting
// tables. Entries not present keep their default values.
type AppConfig struct {
	Scheduler SchedulerConfig  `toml:"scheduler"`
	Effort    []EffortOverride `toml:"effort"`
	Weights   []WeightOverride `toml:"weight"`
}

// SchedulerConfig tunes the capacity scheduler
type SchedulerConfig struct {
	OvercommitFactor    float64 `toml:"overcommit_factor"`
	MaxItemsPerQuadrant int     `toml:"max_items_per_quadrant"`
}

// EffortOverride replaces the effort estimate of one implementation level
type EffortOverride struct {
	Level        string `toml:"level"`
	Hours        int    `toml:"hours"`
	Complexity   string `toml:"complexity"`
	VarianceBand string `toml:"variance_band"`
}

// Validate checks if the EffortOverride is valid
func (e *EffortOverride) Validate() error {
	if !types.ImplementationLevel(e.Level).IsValid() {
		return goerr.Wrap(ErrInvalidLevel, "unknown implementation level", goerr.V(LevelKey, e.Level))
	}
	if e.Hours < 1 {
		return goerr.Wrap(ErrInvalidConfig, "effort hours must be positive", goerr.V(LevelKey, e.Level))
	}
	if e.Complexity != "" && !types.Complexity(e.Complexity).IsValid() {
		return goerr.Wrap(ErrInvalidConfig, "unknown complexity", goerr.V(LevelKey, e.Level))
	}
	return nil
}

// WeightOverride replaces one function x goal priority weight
type WeightOverride struct {
	Function string  `toml:"function"`
	Goal     string  `toml:"goal"`
	Weight   float64 `toml:"weight"`
}

// Validate checks if the WeightOverride is valid
func (w *WeightOverride) Validate() error {
	if !types.Function(w.Function).IsValid() {
		return goerr.Wrap(ErrInvalidFunction, "unknown function", goerr.V(FunctionKey, w.Function))
	}
	if !types.OptimizationGoal(w.Goal).IsValid() {
		return goerr.Wrap(ErrInvalidGoal, "unknown optimization goal", goerr.V(GoalKey, w.Goal))
	}
	if w.Weight < 0.1 || w.Weight > 1.0 {
		return goerr.Wrap(ErrInvalidConfig, "weight must be between 0.1 and 1.0",
			goerr.V(FunctionKey, w.Function),
			goerr.V(GoalKey, w.Goal),
			goerr.V("weight", w.Weight))
	}
	return nil
}

// Validate checks if the AppConfig is valid
func (a *AppConfig) Validate() error {
	if a.Scheduler.OvercommitFactor != 0 && (a.Scheduler.OvercommitFactor < 1.0 || a.Scheduler.OvercommitFactor > 2.0) {
		return goerr.Wrap(ErrInvalidConfig, "overcommit factor must be between 1.0 and 2.0",
			goerr.V("overcommit_factor", a.Scheduler.OvercommitFactor))
	}
	if a.Scheduler.MaxItemsPerQuadrant < 0 {
		return goerr.Wrap(ErrInvalidConfig, "max items per quadrant must not be negative",
			goerr.V("max_items_per_quadrant", a.Scheduler.MaxItemsPerQuadrant))
	}

	seenLevels := make(map[string]bool)
	for _, e := range a.Effort {
		if err := e.Validate(); err != nil {
			return goerr.Wrap(err, "invalid effort override")
		}
		if seenLevels[e.Level] {
			return goerr.Wrap(ErrDuplicateOverride, "level overridden twice", goerr.V(LevelKey, e.Level))
		}
		seenLevels[e.Level] = true
	}

	seenWeights := make(map[string]bool)
	for _, w := range a.Weights {
		if err := w.Validate(); err != nil {
			return goerr.Wrap(err, "invalid weight override")
		}
		key := w.Function + "/" + w.Goal
		if seenWeights[key] {
			return goerr.Wrap(ErrDuplicateOverride, "weight overridden twice",
				goerr.V(FunctionKey, w.Function), goerr.V(GoalKey, w.Goal))
		}
		seenWeights[key] = true
	}

	return nil
}

// LoadAppConfiguration loads engine overrides from a TOML file
func LoadAppConfiguration(path string) (*AppConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(ErrConfigNotFound, "failed to read config file", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	var config AppConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML config", goerr.V(ConfigPathKey, path))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V(ConfigPathKey, path))
	}

	return &config, nil
}

// ToEngineConfig applies the overrides on top of the shipped defaults
func (a *AppConfig) ToEngineConfig() *engineConfig.EngineConfig {
	cfg := engineConfig.DefaultEngineConfig()

	if a.Scheduler.OvercommitFactor != 0 {
		cfg.OvercommitFactor = a.Scheduler.OvercommitFactor
	}
	if a.Scheduler.MaxItemsPerQuadrant != 0 {
		cfg.MaxItemsPerQuadrant = a.Scheduler.MaxItemsPerQuadrant
	}

	for _, e := range a.Effort {
		level := types.ImplementationLevel(e.Level)
		est := cfg.Effort[level]
		est.Hours = e.Hours
		if e.Complexity != "" {
			est.Complexity = types.Complexity(e.Complexity)
		}
		if e.VarianceBand != "" {
			est.VarianceBand = e.VarianceBand
		}
		cfg.Effort[level] = est
	}

	for _, w := range a.Weights {
		fn := types.Function(w.Function)
		if cfg.FunctionWeights[fn] == nil {
			cfg.FunctionWeights[fn] = map[types.OptimizationGoal]float64{}
		}
		cfg.FunctionWeights[fn][types.OptimizationGoal(w.Goal)] = w.Weight
	}

	return cfg
}
