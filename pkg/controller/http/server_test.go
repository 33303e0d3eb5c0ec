package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	server "github.com/secmetrics-lab/csfgap/pkg/controller/http"
	"github.com/secmetrics-lab/csfgap/pkg/domain/model"
	"github.com/secmetrics-lab/csfgap/pkg/domain/types"
	"github.com/secmetrics-lab/csfgap/pkg/repository/memory"
	"github.com/secmetrics-lab/csfgap/pkg/usecase"
)

func newTestServer(t *testing.T) *server.Server {
	t.Helper()

	repo := memory.New()
	gt.NoError(t, repo.Framework().PutSubcategories(context.Background(), []*model.Subcategory{
		{
			ID:         types.SubcategoryID("GV.OC-01"),
			CategoryID: types.CategoryID("GV.OC"),
			FunctionID: types.FunctionGovern,
			Name:       "Organizational mission is understood",
		},
		{
			ID:         types.SubcategoryID("ID.AM-01"),
			CategoryID: types.CategoryID("ID.AM"),
			FunctionID: types.FunctionIdentify,
			Name:       "Hardware inventories are maintained",
		},
	})).Required()

	return server.New(usecase.New(repo))
}

func doJSON(t *testing.T, srv *server.Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		gt.NoError(t, json.NewEncoder(&buf).Encode(body)).Required()
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	gt.NoError(t, json.NewDecoder(rec.Body).Decode(out)).Required()
}

func createTestProfile(t *testing.T, srv *server.Server, orgID, profileType, name string) string {
	t.Helper()

	rec := doJSON(t, srv, http.MethodPost, "/api/profiles", map[string]any{
		"org_id": orgID,
		"type":   profileType,
		"name":   name,
	})
	gt.Number(t, rec.Code).Equal(http.StatusCreated)

	var resp struct {
		ID string `json:"id"`
	}
	decodeBody(t, rec, &resp)
	gt.String(t, resp.ID).NotEqual("")
	return resp.ID
}

func putTestAssessment(t *testing.T, srv *server.Server, profileID, subcategoryID string, score int, level string) {
	t.Helper()

	rec := doJSON(t, srv, http.MethodPut, "/api/profiles/"+profileID+"/assessments", map[string]any{
		"subcategory_id":       subcategoryID,
		"implementation_level": level,
		"maturity_score":       score,
		"confidence_level":     "high",
	})
	gt.Number(t, rec.Code).Equal(http.StatusOK)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/health", nil)
	gt.Number(t, rec.Code).Equal(http.StatusOK)
	gt.Value(t, rec.Body.String()).Equal("OK")
}

func TestProfileLifecycle(t *testing.T) {
	srv := newTestServer(t)

	profileID := createTestProfile(t, srv, "org-1", "current", "Current state")

	t.Run("get returns the created profile", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/profiles/"+profileID, nil)
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		var resp struct {
			ID    string `json:"id"`
			OrgID string `json:"org_id"`
			Type  string `json:"type"`
			Name  string `json:"name"`
		}
		decodeBody(t, rec, &resp)
		gt.Value(t, resp.ID).Equal(profileID)
		gt.Value(t, resp.OrgID).Equal("org-1")
		gt.Value(t, resp.Type).Equal("current")
		gt.Value(t, resp.Name).Equal("Current state")
	})

	t.Run("list scopes by organization", func(t *testing.T) {
		createTestProfile(t, srv, "org-2", "target", "Someone else")

		rec := doJSON(t, srv, http.MethodGet, "/api/profiles?org_id=org-1", nil)
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		var resp []struct {
			ID string `json:"id"`
		}
		decodeBody(t, rec, &resp)
		gt.Array(t, resp).Length(1)
		gt.Value(t, resp[0].ID).Equal(profileID)
	})

	t.Run("update changes the name", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPut, "/api/profiles/"+profileID, map[string]any{
			"name":        "Renamed",
			"description": "after review",
		})
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		var resp struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		decodeBody(t, rec, &resp)
		gt.Value(t, resp.Name).Equal("Renamed")
		gt.Value(t, resp.Description).Equal("after review")
	})

	t.Run("delete removes the profile", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodDelete, "/api/profiles/"+profileID, nil)
		gt.Number(t, rec.Code).Equal(http.StatusNoContent)

		rec = doJSON(t, srv, http.MethodGet, "/api/profiles/"+profileID, nil)
		gt.Number(t, rec.Code).Equal(http.StatusNotFound)
	})
}

func TestProfileValidation(t *testing.T) {
	srv := newTestServer(t)

	t.Run("unknown profile type is rejected", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/profiles", map[string]any{
			"org_id": "org-1",
			"type":   "aspirational",
			"name":   "Bad type",
		})
		gt.Number(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("missing name is rejected", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/profiles", map[string]any{
			"org_id": "org-1",
			"type":   "current",
		})
		gt.Number(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("list without org_id is rejected", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/profiles", nil)
		gt.Number(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("unknown profile is not found", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/profiles/no-such-profile", nil)
		gt.Number(t, rec.Code).Equal(http.StatusNotFound)
	})
}

func TestAssessmentEndpoints(t *testing.T) {
	srv := newTestServer(t)
	profileID := createTestProfile(t, srv, "org-1", "current", "Current state")

	t.Run("put and list roundtrip", func(t *testing.T) {
		putTestAssessment(t, srv, profileID, "GV.OC-01", 2, "partially_implemented")

		rec := doJSON(t, srv, http.MethodGet, "/api/profiles/"+profileID+"/assessments", nil)
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		var resp []struct {
			SubcategoryID string `json:"subcategory_id"`
			MaturityScore int    `json:"maturity_score"`
			Level         string `json:"implementation_level"`
		}
		decodeBody(t, rec, &resp)
		gt.Array(t, resp).Length(1)
		gt.Value(t, resp[0].SubcategoryID).Equal("GV.OC-01")
		gt.Value(t, resp[0].MaturityScore).Equal(2)
		gt.Value(t, resp[0].Level).Equal("partially_implemented")
	})

	t.Run("unknown subcategory is not found", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPut, "/api/profiles/"+profileID+"/assessments", map[string]any{
			"subcategory_id":       "XX.YY-99",
			"implementation_level": "partially_implemented",
			"maturity_score":       2,
			"confidence_level":     "high",
		})
		gt.Number(t, rec.Code).Equal(http.StatusNotFound)
	})

	t.Run("out of range score is rejected", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPut, "/api/profiles/"+profileID+"/assessments", map[string]any{
			"subcategory_id":       "GV.OC-01",
			"implementation_level": "partially_implemented",
			"maturity_score":       6,
			"confidence_level":     "high",
		})
		gt.Number(t, rec.Code).Equal(http.StatusBadRequest)
	})
}

func seedProfilePair(t *testing.T, srv *server.Server, orgID string) (currentID, targetID string) {
	t.Helper()

	currentID = createTestProfile(t, srv, orgID, "current", "Current state")
	targetID = createTestProfile(t, srv, orgID, "target", "Target state")

	putTestAssessment(t, srv, currentID, "GV.OC-01", 1, "partially_implemented")
	putTestAssessment(t, srv, targetID, "GV.OC-01", 4, "largely_implemented")
	putTestAssessment(t, srv, currentID, "ID.AM-01", 2, "partially_implemented")
	putTestAssessment(t, srv, targetID, "ID.AM-01", 4, "largely_implemented")
	return currentID, targetID
}

func TestGapAnalysisEndpoints(t *testing.T) {
	srv := newTestServer(t)
	currentID, targetID := seedProfilePair(t, srv, "org-1")

	var analysisID string

	t.Run("generate computes and persists gaps", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/gap-analyses", map[string]any{
			"current_profile_id": currentID,
			"target_profile_id":  targetID,
		})
		gt.Number(t, rec.Code).Equal(http.StatusCreated)

		var resp struct {
			ID              string  `json:"analysis_id"`
			OverallGapScore float64 `json:"overall_gap_score"`
			Gaps            []struct {
				SubcategoryID string `json:"subcategory_id"`
				GapScore      int    `json:"gap_score"`
				Priority      string `json:"priority"`
			} `json:"gap_details"`
		}
		decodeBody(t, rec, &resp)
		gt.String(t, resp.ID).NotEqual("")
		gt.Value(t, resp.OverallGapScore).Equal(2.5)
		gt.Array(t, resp.Gaps).Length(2)
		gt.Value(t, resp.Gaps[0].SubcategoryID).Equal("GV.OC-01")
		gt.Value(t, resp.Gaps[0].GapScore).Equal(3)
		gt.Value(t, resp.Gaps[0].Priority).Equal("critical")
		analysisID = resp.ID
	})

	t.Run("get returns the persisted analysis", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/gap-analyses/"+analysisID, nil)
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		var resp struct {
			ID string `json:"analysis_id"`
		}
		decodeBody(t, rec, &resp)
		gt.Value(t, resp.ID).Equal(analysisID)
	})

	t.Run("list scopes by organization", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/gap-analyses?org_id=org-1", nil)
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		var resp []struct {
			ID string `json:"analysis_id"`
		}
		decodeBody(t, rec, &resp)
		gt.Array(t, resp).Length(1)
	})

	t.Run("mismatched organizations are rejected", func(t *testing.T) {
		otherID := createTestProfile(t, srv, "org-2", "target", "Other org")

		rec := doJSON(t, srv, http.MethodPost, "/api/gap-analyses", map[string]any{
			"current_profile_id": currentID,
			"target_profile_id":  otherID,
		})
		gt.Number(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("unknown profile is not found", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/gap-analyses", map[string]any{
			"current_profile_id": "missing",
			"target_profile_id":  targetID,
		})
		gt.Number(t, rec.Code).Equal(http.StatusNotFound)
	})

	t.Run("unknown analysis is not found", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/gap-analyses/no-such-analysis", nil)
		gt.Number(t, rec.Code).Equal(http.StatusNotFound)
	})
}

func TestPriorityMatrixEndpoint(t *testing.T) {
	srv := newTestServer(t)
	currentID, targetID := seedProfilePair(t, srv, "org-1")

	t.Run("generates ranked actions", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/priority-matrix", map[string]any{
			"current_profile_id": currentID,
			"target_profile_id":  targetID,
			"optimization_goal":  "balanced",
		})
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		var resp struct {
			Goal    string `json:"optimization_goal"`
			Actions []struct {
				SubcategoryID string `json:"subcategory_id"`
				Quadrant      string `json:"quadrant"`
				Justification string `json:"justification"`
			} `json:"actions"`
		}
		decodeBody(t, rec, &resp)
		gt.Value(t, resp.Goal).Equal("balanced")
		gt.Array(t, resp.Actions).Length(2)
		gt.Value(t, resp.Actions[0].SubcategoryID).Equal("GV.OC-01")
		gt.String(t, resp.Actions[0].Justification).NotEqual("")
	})

	t.Run("invalid goal is rejected", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/priority-matrix", map[string]any{
			"current_profile_id": currentID,
			"target_profile_id":  targetID,
			"optimization_goal":  "speed",
		})
		gt.Number(t, rec.Code).Equal(http.StatusBadRequest)
	})
}

func TestActionPlanEndpoint(t *testing.T) {
	srv := newTestServer(t)
	currentID, targetID := seedProfilePair(t, srv, "org-1")

	t.Run("generates a weekly timeline", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/action-plan", map[string]any{
			"current_profile_id":      currentID,
			"target_profile_id":       targetID,
			"optimization_goal":       "balanced",
			"capacity_hours_per_week": 40,
			"time_horizon_weeks":      4,
		})
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		var resp struct {
			Capacity struct {
				TotalHours     int `json:"total_hours"`
				AllocatedHours int `json:"allocated_hours"`
			} `json:"capacity"`
			Timeline []struct {
				Week    int `json:"week"`
				Actions []struct {
					SubcategoryID string `json:"subcategory_id"`
				} `json:"actions"`
			} `json:"timeline"`
		}
		decodeBody(t, rec, &resp)
		gt.Value(t, resp.Capacity.TotalHours).Equal(160)
		gt.Number(t, resp.Capacity.AllocatedHours).Greater(0)
		gt.Array(t, resp.Timeline).Length(1)
		gt.Value(t, resp.Timeline[0].Week).Equal(1)
	})

	t.Run("zero capacity is rejected", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/action-plan", map[string]any{
			"current_profile_id":      currentID,
			"target_profile_id":       targetID,
			"capacity_hours_per_week": 0,
			"time_horizon_weeks":      4,
		})
		gt.Number(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("excessive horizon is rejected", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/action-plan", map[string]any{
			"current_profile_id":      currentID,
			"target_profile_id":       targetID,
			"capacity_hours_per_week": 40,
			"time_horizon_weeks":      13,
		})
		gt.Number(t, rec.Code).Equal(http.StatusBadRequest)
	})
}
