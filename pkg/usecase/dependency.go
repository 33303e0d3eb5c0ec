package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmetrics-lab/csfgap/pkg/domain/interfaces"
	"github.com/secmetrics-lab/csfgap/pkg/domain/model"
	"github.com/secmetrics-lab/csfgap/pkg/domain/types"
)

// DependencyResolver classifies whether a subcategory can be worked on now
// given the state of its prerequisites within one profile. Only direct
// edges are inspected, so cycles in the raw edge data are harmless.
type DependencyResolver struct {
	repo interfaces.Repository
}

func NewDependencyResolver(repo interfaces.Repository) *DependencyResolver {
	return &DependencyResolver{
		repo: repo,
	}
}

// Resolve loads the profile's assessments and classifies one subcategory.
// For bulk classification over a preloaded assessment set use ResolveWith.
func (r *DependencyResolver) Resolve(ctx context.Context, subcategoryID types.SubcategoryID, profileID types.ProfileID) (*model.DependencyState, error) {
	assessments, err := r.repo.Assessment().ListByProfile(ctx, profileID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load assessments", goerr.V(ProfileIDKey, profileID))
	}

	return r.ResolveWith(ctx, subcategoryID, LevelsBySubcategory(assessments))
}

// ResolveWith classifies one subcategory against an already materialized
// implementation-level map. A subcategory with no dependency edges is Ready
// by default: absent reference metadata never blocks an assessment.
func (r *DependencyResolver) ResolveWith(ctx context.Context, subcategoryID types.SubcategoryID, levels map[types.SubcategoryID]types.ImplementationLevel) (*model.DependencyState, error) {
	edges, err := r.repo.Framework().ListDependencies(ctx, subcategoryID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load dependency edges", goerr.V(SubcategoryIDKey, subcategoryID))
	}

	state := &model.DependencyState{}
	for _, edge := range edges {
		level := levels[edge.DependsOnID].Normalize()
		if level.AtLeastPartial() {
			continue
		}

		ref := model.DependencyRef{
			SubcategoryID: edge.DependsOnID,
			Strength:      edge.Strength,
			Reason:        fmt.Sprintf("%s is %s", edge.DependsOnID, level),
		}
		if edge.IsBlocking() {
			state.Blocking = append(state.Blocking, ref)
		} else {
			state.Recommended = append(state.Recommended, ref)
		}
	}

	// Function-level ordering is advisory: a prerequisite function with no
	// implemented subcategories at all adds a foundation hint, never a block.
	for _, prereq := range subcategoryID.Function().Prerequisites() {
		if functionHasImplemented(prereq, levels) {
			continue
		}
		state.Recommended = append(state.Recommended, model.DependencyRef{
			Reason: fmt.Sprintf("no %s subcategories implemented yet", prereq.FullName()),
		})
	}

	switch {
	case len(state.Blocking) > 0:
		state.Status = types.DependencyBlocked
	case len(state.Recommended) > 0:
		state.Status = types.DependencyPartial
	default:
		state.Status = types.DependencyReady
	}

	return state, nil
}

// LevelsBySubcategory materializes a profile's assessment list into the
// lookup map consumed by ResolveWith.
func LevelsBySubcategory(assessments []*model.Assessment) map[types.SubcategoryID]types.ImplementationLevel {
	levels := make(map[types.SubcategoryID]types.ImplementationLevel, len(assessments))
	for _, a := range assessments {
		levels[a.SubcategoryID] = a.Level.Normalize()
	}
	return levels
}

func functionHasImplemented(fn types.Function, levels map[types.SubcategoryID]types.ImplementationLevel) bool {
	for id, level := range levels {
		if id.Function() == fn && level.AtLeastPartial() {
			return true
		}
	}
	return false
}
