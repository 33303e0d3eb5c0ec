package repository_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmetrics-lab/csfgap/pkg/domain/interfaces"
	"github.com/secmetrics-lab/csfgap/pkg/domain/model"
	"github.com/secmetrics-lab/csfgap/pkg/domain/types"
	"github.com/secmetrics-lab/csfgap/pkg/repository/memory"
)

func runAssessmentRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Put then Get round-trips", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		put, err := repo.Assessment().Put(ctx, &model.Assessment{
			ProfileID:     "prof-1",
			SubcategoryID: "GV.OC-01",
			Level:         types.LevelLargelyImplemented,
			MaturityScore: 4,
			Confidence:    types.ConfidenceHigh,
			Notes:         "reviewed by CISO office",
		})
		gt.NoError(t, err).Required()
		gt.Bool(t, put.AssessedAt.IsZero()).False()

		got, err := repo.Assessment().Get(ctx, "prof-1", "GV.OC-01")
		gt.NoError(t, err).Required()
		gt.Value(t, got.Level).Equal(types.LevelLargelyImplemented)
		gt.Value(t, got.MaturityScore).Equal(4)
		gt.Value(t, got.Notes).Equal("reviewed by CISO office")
	})

	t.Run("Put supersedes prior value for the same pair", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Assessment().Put(ctx, &model.Assessment{
			ProfileID:     "prof-1",
			SubcategoryID: "PR.AA-01",
			Level:         types.LevelNotImplemented,
			MaturityScore: 0,
		})
		gt.NoError(t, err).Required()

		_, err = repo.Assessment().Put(ctx, &model.Assessment{
			ProfileID:     "prof-1",
			SubcategoryID: "PR.AA-01",
			Level:         types.LevelPartiallyImplemented,
			MaturityScore: 2,
		})
		gt.NoError(t, err).Required()

		// Upsert, not append: exactly one logical value remains
		assessments, err := repo.Assessment().ListByProfile(ctx, "prof-1")
		gt.NoError(t, err).Required()
		gt.Array(t, assessments).Length(1)
		gt.Value(t, assessments[0].MaturityScore).Equal(2)
	})

	t.Run("ListByProfile scopes to one profile", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for _, a := range []*model.Assessment{
			{ProfileID: "prof-1", SubcategoryID: "GV.OC-01", Level: types.LevelFullyImplemented, MaturityScore: 5},
			{ProfileID: "prof-1", SubcategoryID: "ID.AM-01", Level: types.LevelPartiallyImplemented, MaturityScore: 2},
			{ProfileID: "prof-2", SubcategoryID: "GV.OC-01", Level: types.LevelNotImplemented, MaturityScore: 0},
		} {
			_, err := repo.Assessment().Put(ctx, a)
			gt.NoError(t, err).Required()
		}

		assessments, err := repo.Assessment().ListByProfile(ctx, "prof-1")
		gt.NoError(t, err).Required()
		gt.Array(t, assessments).Length(2)
	})

	t.Run("Get missing assessment returns not found", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Assessment().Get(ctx, "prof-1", "RC.RP-01")
		gt.Error(t, err)
		gt.Bool(t, isNotFound(err)).True()
	})
}

func TestMemoryAssessmentRepository(t *testing.T) {
	runAssessmentRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestoreAssessmentRepository(t *testing.T) {
	runAssessmentRepositoryTest(t, newFirestoreRepository)
}
