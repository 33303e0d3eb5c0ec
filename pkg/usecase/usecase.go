package usecase

import (
	"github.com/secmetrics-lab/csfgap/pkg/domain/interfaces"
	"github.com/secmetrics-lab/csfgap/pkg/domain/model/config"
)

type UseCases struct {
	repo      interfaces.Repository
	engineCfg *config.EngineConfig

	Profile  *ProfileUseCase
	Gap      *GapUseCase
	Priority *PriorityUseCase
	Plan     *PlanUseCase
}

type Option func(*UseCases)

// WithEngineConfig overrides the default effort and weight tables
func WithEngineConfig(cfg *config.EngineConfig) Option {
	return func(uc *UseCases) {
		uc.engineCfg = cfg
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.engineCfg == nil {
		uc.engineCfg = config.DefaultEngineConfig()
	}

	resolver := NewDependencyResolver(repo)
	uc.Profile = NewProfileUseCase(repo)
	uc.Gap = NewGapUseCase(repo)
	uc.Priority = NewPriorityUseCase(repo, uc.engineCfg, uc.Gap, resolver)
	uc.Plan = NewPlanUseCase(uc.engineCfg, uc.Priority)

	return uc
}
