package interfaces

import (
	"context"

	"github.com/secmetrics-lab/csfgap/pkg/domain/model"
	"github.com/secmetrics-lab/csfgap/pkg/domain/types"
)

// AnalysisRepository persists committed gap analyses. An analysis and its
// gap detail rows are written as one atomic unit; a reader never observes
// an analysis ID without its details.
type AnalysisRepository interface {
	// Create persists a new immutable analysis record
	Create(ctx context.Context, analysis *model.GapAnalysis) error

	// Get retrieves an analysis by ID
	Get(ctx context.Context, id types.AnalysisID) (*model.GapAnalysis, error)

	// ListByOrg retrieves all analyses of an organization, newest first
	ListByOrg(ctx context.Context, orgID types.OrgID) ([]*model.GapAnalysis, error)
}
