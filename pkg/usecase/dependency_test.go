package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmetrics-lab/csfgap/pkg/domain/interfaces"
	"github.com/secmetrics-lab/csfgap/pkg/domain/model"
	"github.com/secmetrics-lab/csfgap/pkg/domain/types"
	"github.com/secmetrics-lab/csfgap/pkg/repository/memory"
	"github.com/secmetrics-lab/csfgap/pkg/usecase"
)

func seedDependencyEdges(t *testing.T, repo interfaces.Repository, edges []*model.Dependency) {
	t.Helper()
	gt.NoError(t, repo.Framework().PutDependencies(context.Background(), edges)).Required()
}

func TestDependencyResolver(t *testing.T) {
	t.Run("no edges means ready", func(t *testing.T) {
		repo := memory.New()
		resolver := usecase.NewDependencyResolver(repo)
		ctx := context.Background()

		currentID, _ := seedProfilePair(t, repo, "org-1")

		state, err := resolver.Resolve(ctx, "GV.OC-01", currentID)
		gt.NoError(t, err).Required()
		gt.Value(t, state.Status).Equal(types.DependencyReady)
		gt.Array(t, state.Blocking).Length(0)
		gt.Array(t, state.Recommended).Length(0)
	})

	t.Run("unsatisfied hard edge blocks", func(t *testing.T) {
		repo := memory.New()
		resolver := usecase.NewDependencyResolver(repo)
		ctx := context.Background()

		currentID, _ := seedProfilePair(t, repo, "org-1")
		// GV prerequisite satisfied so no foundation hint interferes
		putScore(t, repo, currentID, "GV.OC-01", 3, types.LevelLargelyImplemented)
		seedDependencyEdges(t, repo, []*model.Dependency{
			{SubcategoryID: "ID.AM-02", DependsOnID: "ID.AM-01", Strength: 9},
		})

		state, err := resolver.Resolve(ctx, "ID.AM-02", currentID)
		gt.NoError(t, err).Required()
		gt.Value(t, state.Status).Equal(types.DependencyBlocked)
		gt.Array(t, state.Blocking).Length(1)
		gt.Value(t, state.Blocking[0].SubcategoryID).Equal(types.SubcategoryID("ID.AM-01"))
		gt.Number(t, state.Blocking[0].Strength).GreaterOrEqual(8)
	})

	t.Run("unsatisfied soft edge is partial", func(t *testing.T) {
		repo := memory.New()
		resolver := usecase.NewDependencyResolver(repo)
		ctx := context.Background()

		currentID, _ := seedProfilePair(t, repo, "org-1")
		putScore(t, repo, currentID, "GV.OC-01", 3, types.LevelLargelyImplemented)
		seedDependencyEdges(t, repo, []*model.Dependency{
			{SubcategoryID: "ID.AM-02", DependsOnID: "ID.AM-01", Strength: 5},
		})

		state, err := resolver.Resolve(ctx, "ID.AM-02", currentID)
		gt.NoError(t, err).Required()
		gt.Value(t, state.Status).Equal(types.DependencyPartial)
		gt.Array(t, state.Blocking).Length(0)
		gt.Array(t, state.Recommended).Length(1)
	})

	t.Run("partially implemented prerequisite satisfies the edge", func(t *testing.T) {
		repo := memory.New()
		resolver := usecase.NewDependencyResolver(repo)
		ctx := context.Background()

		currentID, _ := seedProfilePair(t, repo, "org-1")
		putScore(t, repo, currentID, "GV.OC-01", 3, types.LevelLargelyImplemented)
		putScore(t, repo, currentID, "ID.AM-01", 2, types.LevelPartiallyImplemented)
		seedDependencyEdges(t, repo, []*model.Dependency{
			{SubcategoryID: "ID.AM-02", DependsOnID: "ID.AM-01", Strength: 9},
		})

		state, err := resolver.Resolve(ctx, "ID.AM-02", currentID)
		gt.NoError(t, err).Required()
		gt.Value(t, state.Status).Equal(types.DependencyReady)
	})

	t.Run("foundation hint when a prerequisite function is untouched", func(t *testing.T) {
		repo := memory.New()
		resolver := usecase.NewDependencyResolver(repo)
		ctx := context.Background()

		currentID, _ := seedProfilePair(t, repo, "org-1")

		// PR builds on GV and ID; neither has any implemented subcategory
		state, err := resolver.Resolve(ctx, "PR.AA-01", currentID)
		gt.NoError(t, err).Required()
		gt.Value(t, state.Status).Equal(types.DependencyPartial)
		gt.Array(t, state.Blocking).Length(0)
		gt.Array(t, state.Recommended).Length(2)
	})

	t.Run("foundation ordering never hard-blocks", func(t *testing.T) {
		repo := memory.New()
		resolver := usecase.NewDependencyResolver(repo)
		ctx := context.Background()

		currentID, _ := seedProfilePair(t, repo, "org-1")

		for _, sub := range []types.SubcategoryID{"RC.RP-01", "DE.CM-01", "RS.MA-01"} {
			state, err := resolver.Resolve(ctx, sub, currentID)
			gt.NoError(t, err).Required()
			gt.Value(t, state.Status).Equal(types.DependencyPartial)
			gt.Array(t, state.Blocking).Length(0)
		}
	})

	t.Run("exactly one status per classification", func(t *testing.T) {
		repo := memory.New()
		resolver := usecase.NewDependencyResolver(repo)
		ctx := context.Background()

		currentID, _ := seedProfilePair(t, repo, "org-1")
		putScore(t, repo, currentID, "GV.OC-01", 3, types.LevelLargelyImplemented)
		putScore(t, repo, currentID, "ID.AM-01", 2, types.LevelPartiallyImplemented)
		seedDependencyEdges(t, repo, []*model.Dependency{
			{SubcategoryID: "PR.AA-01", DependsOnID: "ID.AM-02", Strength: 9},
			{SubcategoryID: "PR.AA-01", DependsOnID: "GV.RM-01", Strength: 4},
			{SubcategoryID: "ID.AM-02", DependsOnID: "GV.RM-01", Strength: 4},
		})

		for _, sub := range []types.SubcategoryID{"GV.OC-01", "ID.AM-02", "PR.AA-01"} {
			state, err := resolver.Resolve(ctx, sub, currentID)
			gt.NoError(t, err).Required()
			gt.Bool(t, state.Status.IsValid()).True()
			if state.Status == types.DependencyBlocked {
				gt.Number(t, len(state.Blocking)).Greater(0)
				gt.Number(t, state.Blocking[0].Strength).GreaterOrEqual(model.HardDependencyStrength)
			}
		}
	})

	t.Run("cyclic edges are harmless at depth one", func(t *testing.T) {
		repo := memory.New()
		resolver := usecase.NewDependencyResolver(repo)
		ctx := context.Background()

		currentID, _ := seedProfilePair(t, repo, "org-1")
		putScore(t, repo, currentID, "GV.OC-01", 3, types.LevelLargelyImplemented)
		seedDependencyEdges(t, repo, []*model.Dependency{
			{SubcategoryID: "ID.AM-01", DependsOnID: "ID.AM-02", Strength: 9},
			{SubcategoryID: "ID.AM-02", DependsOnID: "ID.AM-01", Strength: 9},
		})

		state, err := resolver.Resolve(ctx, "ID.AM-01", currentID)
		gt.NoError(t, err).Required()
		gt.Value(t, state.Status).Equal(types.DependencyBlocked)
	})
}
