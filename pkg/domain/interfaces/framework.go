package interfaces

import (
	"context"

	"github.com/secmetrics-lab/csfgap/pkg/domain/model"
	"github.com/secmetrics-lab/csfgap/pkg/domain/types"
)

// FrameworkRepository stores the read-mostly CSF reference graph. The
// engine only reads it; writes happen through the import loader.
type FrameworkRepository interface {
	// PutFunctions replaces the stored function set
	PutFunctions(ctx context.Context, functions []*model.Function) error

	// PutCategories replaces the stored category set
	PutCategories(ctx context.Context, categories []*model.Category) error

	// PutSubcategories replaces the stored subcategory set
	PutSubcategories(ctx context.Context, subcategories []*model.Subcategory) error

	// PutDependencies replaces the stored dependency edge set
	PutDependencies(ctx context.Context, dependencies []*model.Dependency) error

	// GetSubcategory retrieves a subcategory by ID
	GetSubcategory(ctx context.Context, id types.SubcategoryID) (*model.Subcategory, error)

	// ListSubcategories retrieves all subcategories
	ListSubcategories(ctx context.Context) ([]*model.Subcategory, error)

	// ListDependencies retrieves the edges where the given subcategory is
	// the dependent side. An empty result is not an error.
	ListDependencies(ctx context.Context, id types.SubcategoryID) ([]*model.Dependency, error)
}
