package model

import (
	"github.com/secmetrics-lab/csfgap/pkg/domain/types"
)

// Function is a top-level CSF 2.0 function (GOVERN, IDENTIFY, ...).
// Reference data, immutable at runtime.
type Function struct {
	ID          types.Function
	Name        string
	Description string
}

// Category is a CSF category within a function
type Category struct {
	ID          types.CategoryID
	FunctionID  types.Function
	Name        string
	Description string
}

// Subcategory is the atomic unit of assessment in the CSF taxonomy
type Subcategory struct {
	ID          types.SubcategoryID
	CategoryID  types.CategoryID
	FunctionID  types.Function
	Name        string
	Description string
}

// HardDependencyStrength is the edge strength at or above which a
// prerequisite is mandatory rather than recommended.
const HardDependencyStrength = 8

// Dependency is a directed inter-subcategory prerequisite edge with a
// 0-10 strength weight. The raw edge set is not assumed acyclic.
type Dependency struct {
	SubcategoryID types.SubcategoryID
	DependsOnID   types.SubcategoryID
	Strength      int
}

// IsBlocking reports whether an unsatisfied edge hard-blocks the dependent
// subcategory.
func (d *Dependency) IsBlocking() bool {
	return d.Strength >= HardDependencyStrength
}
