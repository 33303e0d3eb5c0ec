package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmetrics-lab/csfgap/pkg/domain/model"
	"github.com/secmetrics-lab/csfgap/pkg/domain/types"
)

type analysisRepository struct {
	mu       sync.RWMutex
	analyses map[types.AnalysisID]*model.GapAnalysis
}

func newAnalysisRepository() *analysisRepository {
	return &analysisRepository{
		analyses: make(map[types.AnalysisID]*model.GapAnalysis),
	}
}

func copyAnalysis(a *model.GapAnalysis) *model.GapAnalysis {
	copied := *a
	copied.Gaps = make([]model.GapRecord, len(a.Gaps))
	copy(copied.Gaps, a.Gaps)
	return &copied
}

func (r *analysisRepository) Create(ctx context.Context, analysis *model.GapAnalysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := analysis.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid analysis ID")
	}
	if _, exists := r.analyses[analysis.ID]; exists {
		return goerr.New("analysis already exists", goerr.V("id", analysis.ID))
	}

	stored := copyAnalysis(analysis)
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	r.analyses[stored.ID] = stored
	return nil
}

func (r *analysisRepository) Get(ctx context.Context, id types.AnalysisID) (*model.GapAnalysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	analysis, exists := r.analyses[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "analysis not found", goerr.V("id", id))
	}
	return copyAnalysis(analysis), nil
}

func (r *analysisRepository) ListByOrg(ctx context.Context, orgID types.OrgID) ([]*model.GapAnalysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	analyses := make([]*model.GapAnalysis, 0)
	for _, analysis := range r.analyses {
		if analysis.OrgID == orgID {
			analyses = append(analyses, copyAnalysis(analysis))
		}
	}
	sort.Slice(analyses, func(i, j int) bool {
		return analyses[i].CreatedAt.After(analyses[j].CreatedAt)
	})
	return analyses, nil
}
