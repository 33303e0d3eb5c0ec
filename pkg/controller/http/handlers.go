package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmetrics-lab/csfgap/pkg/domain/model"
	"github.com/secmetrics-lab/csfgap/pkg/domain/types"
	"github.com/secmetrics-lab/csfgap/pkg/usecase"
	"github.com/secmetrics-lab/csfgap/pkg/utils/errutil"
)

func badRequest(w http.ResponseWriter, r *http.Request, err error) {
	errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
}

type createProfileRequest struct {
	OrgID       string `json:"org_id"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) createProfile(w http.ResponseWriter, r *http.Request) {
	var req createProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, r, goerr.Wrap(err, "failed to decode profile request"))
		return
	}

	profileType, err := types.ParseProfileType(req.Type)
	if err != nil {
		badRequest(w, r, err)
		return
	}
	if err := types.OrgID(req.OrgID).Validate(); err != nil {
		badRequest(w, r, err)
		return
	}
	if req.Name == "" {
		badRequest(w, r, goerr.New("profile name is required"))
		return
	}

	profile, err := s.uc.Profile.CreateProfile(r.Context(), types.OrgID(req.OrgID), profileType, req.Name, req.Description)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, toProfileResponse(profile))
}

func (s *Server) listProfiles(w http.ResponseWriter, r *http.Request) {
	orgID := types.OrgID(r.URL.Query().Get("org_id"))
	if err := orgID.Validate(); err != nil {
		badRequest(w, r, goerr.Wrap(err, "org_id query parameter is required"))
		return
	}

	profiles, err := s.uc.Profile.ListProfiles(r.Context(), orgID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := make([]profileResponse, len(profiles))
	for i, p := range profiles {
		resp[i] = toProfileResponse(p)
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	profileID := types.ProfileID(chi.URLParam(r, "profileID"))

	profile, err := s.uc.Profile.GetProfile(r.Context(), profileID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toProfileResponse(profile))
}

type updateProfileRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	profileID := types.ProfileID(chi.URLParam(r, "profileID"))

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, r, goerr.Wrap(err, "failed to decode profile request"))
		return
	}
	if req.Name == "" {
		badRequest(w, r, goerr.New("profile name is required"))
		return
	}

	profile, err := s.uc.Profile.UpdateProfile(r.Context(), profileID, req.Name, req.Description)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toProfileResponse(profile))
}

func (s *Server) deleteProfile(w http.ResponseWriter, r *http.Request) {
	profileID := types.ProfileID(chi.URLParam(r, "profileID"))

	if err := s.uc.Profile.DeleteProfile(r.Context(), profileID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type putAssessmentRequest struct {
	SubcategoryID string `json:"subcategory_id"`
	Level         string `json:"implementation_level"`
	MaturityScore int    `json:"maturity_score"`
	Confidence    string `json:"confidence_level"`
	Notes         string `json:"notes"`
}

func (s *Server) putAssessment(w http.ResponseWriter, r *http.Request) {
	profileID := types.ProfileID(chi.URLParam(r, "profileID"))

	var req putAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, r, goerr.Wrap(err, "failed to decode assessment request"))
		return
	}

	assessment := &model.Assessment{
		ProfileID:     profileID,
		SubcategoryID: types.SubcategoryID(req.SubcategoryID),
		Level:         types.ImplementationLevel(req.Level),
		MaturityScore: req.MaturityScore,
		Confidence:    types.ConfidenceLevel(req.Confidence),
		Notes:         req.Notes,
		AssessedAt:    time.Now(),
	}
	if err := assessment.Validate(); err != nil {
		badRequest(w, r, err)
		return
	}

	saved, err := s.uc.Profile.PutAssessment(r.Context(), assessment)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toAssessmentResponse(saved))
}

func (s *Server) listAssessments(w http.ResponseWriter, r *http.Request) {
	profileID := types.ProfileID(chi.URLParam(r, "profileID"))

	assessments, err := s.uc.Profile.ListAssessments(r.Context(), profileID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := make([]assessmentResponse, len(assessments))
	for i, a := range assessments {
		resp[i] = toAssessmentResponse(a)
	}
	writeJSON(w, r, http.StatusOK, resp)
}

type generateGapAnalysisRequest struct {
	CurrentProfileID  string `json:"current_profile_id"`
	TargetProfileID   string `json:"target_profile_id"`
	MinimumGapScore   int    `json:"minimum_gap_score"`
	IncludeRiskImpact bool   `json:"include_risk_impact"`
}

func (s *Server) generateGapAnalysis(w http.ResponseWriter, r *http.Request) {
	var req generateGapAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, r, goerr.Wrap(err, "failed to decode gap analysis request"))
		return
	}

	analysis, err := s.uc.Gap.GenerateGapAnalysis(r.Context(),
		types.ProfileID(req.CurrentProfileID),
		types.ProfileID(req.TargetProfileID),
		usecase.GapAnalysisInput{
			MinimumGapScore:   req.MinimumGapScore,
			IncludeRiskImpact: req.IncludeRiskImpact,
		})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, toGapAnalysisResponse(analysis))
}

func (s *Server) listGapAnalyses(w http.ResponseWriter, r *http.Request) {
	orgID := types.OrgID(r.URL.Query().Get("org_id"))
	if err := orgID.Validate(); err != nil {
		badRequest(w, r, goerr.Wrap(err, "org_id query parameter is required"))
		return
	}

	analyses, err := s.uc.Gap.ListGapAnalyses(r.Context(), orgID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := make([]gapAnalysisResponse, len(analyses))
	for i, a := range analyses {
		resp[i] = toGapAnalysisResponse(a)
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) getGapAnalysis(w http.ResponseWriter, r *http.Request) {
	analysisID := types.AnalysisID(chi.URLParam(r, "analysisID"))

	analysis, err := s.uc.Gap.GetGapAnalysis(r.Context(), analysisID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toGapAnalysisResponse(analysis))
}

type generatePriorityMatrixRequest struct {
	CurrentProfileID string `json:"current_profile_id"`
	TargetProfileID  string `json:"target_profile_id"`
	Goal             string `json:"optimization_goal"`
}

func (s *Server) generatePriorityMatrix(w http.ResponseWriter, r *http.Request) {
	var req generatePriorityMatrixRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, r, goerr.Wrap(err, "failed to decode priority matrix request"))
		return
	}

	matrix, err := s.uc.Priority.GeneratePriorityMatrix(r.Context(),
		types.ProfileID(req.CurrentProfileID),
		types.ProfileID(req.TargetProfileID),
		types.OptimizationGoal(req.Goal))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toPriorityMatrixResponse(matrix))
}

type generatePlanRequest struct {
	CurrentProfileID     string `json:"current_profile_id"`
	TargetProfileID      string `json:"target_profile_id"`
	Goal                 string `json:"optimization_goal"`
	CapacityHoursPerWeek int    `json:"capacity_hours_per_week"`
	TimeHorizonWeeks     int    `json:"time_horizon_weeks"`
	ExcludeBlocked       bool   `json:"exclude_blocked"`
}

func (s *Server) generatePlan(w http.ResponseWriter, r *http.Request) {
	var req generatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, r, goerr.Wrap(err, "failed to decode plan request"))
		return
	}

	plan, err := s.uc.Plan.GeneratePlan(r.Context(),
		types.ProfileID(req.CurrentProfileID),
		types.ProfileID(req.TargetProfileID),
		usecase.PlanInput{
			Goal:                 types.OptimizationGoal(req.Goal),
			CapacityHoursPerWeek: req.CapacityHoursPerWeek,
			TimeHorizonWeeks:     req.TimeHorizonWeeks,
			ExcludeBlocked:       req.ExcludeBlocked,
		})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toPlanResponse(plan))
}
