package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound    = goerr.New("configuration file not found")
	ErrInvalidConfig     = goerr.New("invalid configuration")
	ErrInvalidLevel      = goerr.New("invalid implementation level")
	ErrInvalidFunction   = goerr.New("invalid function")
	ErrInvalidGoal       = goerr.New("invalid optimization goal")
	ErrDuplicateOverride = goerr.New("duplicate override entry")
)

// Context keys for error values
const (
	ConfigPathKey = "config_path"
	LevelKey      = "level"
	FunctionKey   = "function"
	GoalKey       = "goal"
)
