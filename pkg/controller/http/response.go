package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/secmetrics-lab/csfgap/pkg/domain/model"
	"github.com/secmetrics-lab/csfgap/pkg/usecase"
	"github.com/secmetrics-lab/csfgap/pkg/utils/errutil"
	"github.com/secmetrics-lab/csfgap/pkg/utils/logging"
)

func writeJSON(w http.ResponseWriter, r *http.Request, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.From(r.Context()).Warn("failed to encode response", "error", err.Error())
	}
}

// writeError maps use-case sentinels onto HTTP status codes. Unknown errors
// are internal.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	statusCode := http.StatusInternalServerError
	switch {
	case errors.Is(err, usecase.ErrProfileNotFound),
		errors.Is(err, usecase.ErrSubcategoryNotFound),
		errors.Is(err, usecase.ErrAnalysisNotFound):
		statusCode = http.StatusNotFound
	case errors.Is(err, usecase.ErrOrganizationMismatch),
		errors.Is(err, usecase.ErrInvalidCapacity),
		errors.Is(err, usecase.ErrInvalidHorizon),
		errors.Is(err, usecase.ErrInvalidGoal):
		statusCode = http.StatusBadRequest
	}

	errutil.HandleHTTP(r.Context(), w, err, statusCode)
}

type profileResponse struct {
	ID          string    `json:"id"`
	OrgID       string    `json:"org_id"`
	Type        string    `json:"type"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toProfileResponse(p *model.Profile) profileResponse {
	return profileResponse{
		ID:          p.ID.String(),
		OrgID:       p.OrgID.String(),
		Type:        p.Type.String(),
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

type assessmentResponse struct {
	ProfileID     string    `json:"profile_id"`
	SubcategoryID string    `json:"subcategory_id"`
	Level         string    `json:"implementation_level"`
	MaturityScore int       `json:"maturity_score"`
	Confidence    string    `json:"confidence_level"`
	Notes         string    `json:"notes,omitempty"`
	AssessedAt    time.Time `json:"assessed_at"`
}

func toAssessmentResponse(a *model.Assessment) assessmentResponse {
	return assessmentResponse{
		ProfileID:     a.ProfileID.String(),
		SubcategoryID: a.SubcategoryID.String(),
		Level:         a.Level.String(),
		MaturityScore: a.MaturityScore,
		Confidence:    a.Confidence.String(),
		Notes:         a.Notes,
		AssessedAt:    a.AssessedAt,
	}
}

type gapRecordResponse struct {
	SubcategoryID string `json:"subcategory_id"`
	CurrentScore  int    `json:"current_score"`
	TargetScore   int    `json:"target_score"`
	GapScore      int    `json:"gap_score"`
	Priority      string `json:"priority"`
	RiskImpact    string `json:"risk_impact,omitempty"`
}

type gapAnalysisResponse struct {
	ID               string              `json:"analysis_id"`
	OrgID            string              `json:"org_id"`
	CurrentProfileID string              `json:"current_profile_id"`
	TargetProfileID  string              `json:"target_profile_id"`
	OverallGapScore  float64             `json:"overall_gap_score"`
	Gaps             []gapRecordResponse `json:"gap_details"`
	CreatedAt        time.Time           `json:"created_at"`
}

func toGapAnalysisResponse(a *model.GapAnalysis) gapAnalysisResponse {
	gaps := make([]gapRecordResponse, len(a.Gaps))
	for i, g := range a.Gaps {
		gaps[i] = gapRecordResponse{
			SubcategoryID: g.SubcategoryID.String(),
			CurrentScore:  g.CurrentScore,
			TargetScore:   g.TargetScore,
			GapScore:      g.GapScore,
			Priority:      g.Priority.String(),
			RiskImpact:    g.RiskImpact,
		}
	}

	return gapAnalysisResponse{
		ID:               a.ID.String(),
		OrgID:            a.OrgID.String(),
		CurrentProfileID: a.CurrentProfileID.String(),
		TargetProfileID:  a.TargetProfileID.String(),
		OverallGapScore:  a.OverallGapScore,
		Gaps:             gaps,
		CreatedAt:        a.CreatedAt,
	}
}

type dependencyRefResponse struct {
	SubcategoryID string `json:"subcategory_id,omitempty"`
	Strength      int    `json:"strength,omitempty"`
	Reason        string `json:"reason"`
}

type actionResponse struct {
	Rank                int                     `json:"rank"`
	SubcategoryID       string                  `json:"subcategory_id"`
	GapScore            int                     `json:"gap_score"`
	Priority            string                  `json:"priority"`
	EffortHours         int                     `json:"estimated_effort_hours"`
	Complexity          string                  `json:"complexity"`
	VarianceBand        string                  `json:"effort_variance,omitempty"`
	RiskReduction       float64                 `json:"risk_reduction"`
	MaturityImprovement float64                 `json:"maturity_improvement"`
	ROIScore            float64                 `json:"roi_score"`
	Quadrant            string                  `json:"quadrant"`
	DependencyStatus    string                  `json:"dependency_status"`
	Blocking            []dependencyRefResponse `json:"blocking,omitempty"`
	Recommended         []dependencyRefResponse `json:"recommended,omitempty"`
	Justification       string                  `json:"justification"`
}

func toActionResponse(a *model.SuggestedAction) actionResponse {
	return actionResponse{
		Rank:                a.Rank,
		SubcategoryID:       a.Gap.SubcategoryID.String(),
		GapScore:            a.Gap.GapScore,
		Priority:            a.Gap.Priority.String(),
		EffortHours:         a.Effort.Hours,
		Complexity:          a.Effort.Complexity.String(),
		VarianceBand:        a.Effort.VarianceBand,
		RiskReduction:       a.RiskReduction,
		MaturityImprovement: a.MaturityImprovement,
		ROIScore:            a.ROIScore,
		Quadrant:            a.Quadrant.String(),
		DependencyStatus:    a.Dependency.Status.String(),
		Blocking:            toDependencyRefResponses(a.Dependency.Blocking),
		Recommended:         toDependencyRefResponses(a.Dependency.Recommended),
		Justification:       a.Justification,
	}
}

func toDependencyRefResponses(refs []model.DependencyRef) []dependencyRefResponse {
	if len(refs) == 0 {
		return nil
	}
	out := make([]dependencyRefResponse, len(refs))
	for i, ref := range refs {
		out[i] = dependencyRefResponse{
			SubcategoryID: ref.SubcategoryID.String(),
			Strength:      ref.Strength,
			Reason:        ref.Reason,
		}
	}
	return out
}

func toActionResponses(actions []model.SuggestedAction) []actionResponse {
	out := make([]actionResponse, len(actions))
	for i := range actions {
		out[i] = toActionResponse(&actions[i])
	}
	return out
}

type priorityMatrixResponse struct {
	CurrentProfileID string           `json:"current_profile_id"`
	TargetProfileID  string           `json:"target_profile_id"`
	Goal             string           `json:"optimization_goal"`
	Actions          []actionResponse `json:"actions"`
	MedianEffort     float64          `json:"median_effort"`
	MedianImpact     float64          `json:"median_impact"`
	GeneratedAt      time.Time        `json:"generated_at"`
}

func toPriorityMatrixResponse(m *model.PriorityMatrix) priorityMatrixResponse {
	return priorityMatrixResponse{
		CurrentProfileID: m.CurrentProfileID.String(),
		TargetProfileID:  m.TargetProfileID.String(),
		Goal:             m.Goal.String(),
		Actions:          toActionResponses(m.Actions),
		MedianEffort:     m.MedianEffort,
		MedianImpact:     m.MedianImpact,
		GeneratedAt:      m.GeneratedAt,
	}
}

type milestoneResponse struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type planWeekResponse struct {
	Number     int                 `json:"week"`
	Actions    []actionResponse    `json:"actions"`
	Hours      int                 `json:"hours"`
	Milestones []milestoneResponse `json:"milestones,omitempty"`
}

type capacityReportResponse struct {
	TotalHours      int     `json:"total_hours"`
	AllocatedHours  int     `json:"allocated_hours"`
	RemainingHours  int     `json:"remaining_hours"`
	Utilization     float64 `json:"utilization_percent"`
	FeasibleActions int     `json:"feasible_actions"`
	StretchActions  int     `json:"stretch_actions"`
	BlockedActions  int     `json:"blocked_actions"`
}

type planResponse struct {
	CurrentProfileID     string                 `json:"current_profile_id"`
	TargetProfileID      string                 `json:"target_profile_id"`
	Goal                 string                 `json:"optimization_goal"`
	CapacityHoursPerWeek int                    `json:"capacity_hours_per_week"`
	TimeHorizonWeeks     int                    `json:"time_horizon_weeks"`
	Capacity             capacityReportResponse `json:"capacity"`
	Weeks                []planWeekResponse     `json:"timeline"`
	Unscheduled          []actionResponse       `json:"unscheduled,omitempty"`
	Excluded             []actionResponse       `json:"excluded,omitempty"`
	GeneratedAt          time.Time              `json:"generated_at"`
}

func toPlanResponse(p *model.ImplementationPlan) planResponse {
	weeks := make([]planWeekResponse, len(p.Weeks))
	for i, w := range p.Weeks {
		milestones := make([]milestoneResponse, len(w.Milestones))
		for j, m := range w.Milestones {
			milestones[j] = milestoneResponse{Name: m.Name, Description: m.Description}
		}
		weeks[i] = planWeekResponse{
			Number:     w.Number,
			Actions:    toActionResponses(w.Actions),
			Hours:      w.Hours,
			Milestones: milestones,
		}
	}

	return planResponse{
		CurrentProfileID:     p.CurrentProfileID.String(),
		TargetProfileID:      p.TargetProfileID.String(),
		Goal:                 p.Goal.String(),
		CapacityHoursPerWeek: p.CapacityHoursPerWeek,
		TimeHorizonWeeks:     p.TimeHorizonWeeks,
		Capacity: capacityReportResponse{
			TotalHours:      p.Capacity.TotalHours,
			AllocatedHours:  p.Capacity.AllocatedHours,
			RemainingHours:  p.Capacity.RemainingHours,
			Utilization:     p.Capacity.Utilization,
			FeasibleActions: p.Capacity.FeasibleActions,
			StretchActions:  p.Capacity.StretchActions,
			BlockedActions:  p.Capacity.BlockedActions,
		},
		Weeks:       weeks,
		Unscheduled: toActionResponses(p.Unscheduled),
		Excluded:    toActionResponses(p.Excluded),
		GeneratedAt: p.GeneratedAt,
	}
}
