package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmetrics-lab/csfgap/pkg/domain/model"
	"github.com/secmetrics-lab/csfgap/pkg/domain/types"
)

type frameworkRepository struct {
	mu            sync.RWMutex
	functions     map[types.Function]*model.Function
	categories    map[types.CategoryID]*model.Category
	subcategories map[types.SubcategoryID]*model.Subcategory
	// dependencies keyed by the dependent side
	dependencies map[types.SubcategoryID][]*model.Dependency
}

func newFrameworkRepository() *frameworkRepository {
	return &frameworkRepository{
		functions:     make(map[types.Function]*model.Function),
		categories:    make(map[types.CategoryID]*model.Category),
		subcategories: make(map[types.SubcategoryID]*model.Subcategory),
		dependencies:  make(map[types.SubcategoryID][]*model.Dependency),
	}
}

func copySubcategory(s *model.Subcategory) *model.Subcategory {
	copied := *s
	return &copied
}

func (r *frameworkRepository) PutFunctions(ctx context.Context, functions []*model.Function) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.functions = make(map[types.Function]*model.Function, len(functions))
	for _, fn := range functions {
		copied := *fn
		r.functions[fn.ID] = &copied
	}
	return nil
}

func (r *frameworkRepository) PutCategories(ctx context.Context, categories []*model.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.categories = make(map[types.CategoryID]*model.Category, len(categories))
	for _, cat := range categories {
		copied := *cat
		r.categories[cat.ID] = &copied
	}
	return nil
}

func (r *frameworkRepository) PutSubcategories(ctx context.Context, subcategories []*model.Subcategory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.subcategories = make(map[types.SubcategoryID]*model.Subcategory, len(subcategories))
	for _, sub := range subcategories {
		r.subcategories[sub.ID] = copySubcategory(sub)
	}
	return nil
}

func (r *frameworkRepository) PutDependencies(ctx context.Context, dependencies []*model.Dependency) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.dependencies = make(map[types.SubcategoryID][]*model.Dependency)
	for _, dep := range dependencies {
		copied := *dep
		r.dependencies[dep.SubcategoryID] = append(r.dependencies[dep.SubcategoryID], &copied)
	}
	return nil
}

func (r *frameworkRepository) GetSubcategory(ctx context.Context, id types.SubcategoryID) (*model.Subcategory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sub, exists := r.subcategories[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "subcategory not found", goerr.V("id", id))
	}
	return copySubcategory(sub), nil
}

func (r *frameworkRepository) ListSubcategories(ctx context.Context) ([]*model.Subcategory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	subs := make([]*model.Subcategory, 0, len(r.subcategories))
	for _, sub := range r.subcategories {
		subs = append(subs, copySubcategory(sub))
	}
	return subs, nil
}

func (r *frameworkRepository) ListDependencies(ctx context.Context, id types.SubcategoryID) ([]*model.Dependency, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	deps := make([]*model.Dependency, 0, len(r.dependencies[id]))
	for _, dep := range r.dependencies[id] {
		copied := *dep
		deps = append(deps, &copied)
	}
	return deps, nil
}
