package model

import (
	"time"

	"github.com/secmetrics-lab/csfgap/pkg/domain/types"
)

// GapRecord is the per-subcategory diff between a current and a target
// profile. GapScore is always TargetScore - CurrentScore on the raw 0-5
// maturity scale, never clamped; over-achievement yields a negative score.
type GapRecord struct {
	SubcategoryID types.SubcategoryID
	CurrentScore  int
	TargetScore   int
	GapScore      int
	Priority      types.Priority
	RiskImpact    string
}

// NormalizedGap converts the raw 0-5 maturity delta onto the 0-100 scale
// used by the ranker's risk-reduction formula and the critical-gap flag.
// The conversion is a single explicit x20 step so the two scales never mix
// implicitly.
func (g *GapRecord) NormalizedGap() int {
	return g.GapScore * 20
}

// CriticalGapThreshold is the normalized (0-100) gap score at or above
// which an action's justification carries the critical-gap flag.
const CriticalGapThreshold = 80

// IsCriticalGap reports whether the normalized gap meets the critical flag
// threshold.
func (g *GapRecord) IsCriticalGap() bool {
	return g.NormalizedGap() >= CriticalGapThreshold
}

// GapAnalysis is the persisted aggregate of one gap-analysis invocation.
// Created once, immutable after creation; new analyses are new records.
type GapAnalysis struct {
	ID               types.AnalysisID
	OrgID            types.OrgID
	CurrentProfileID types.ProfileID
	TargetProfileID  types.ProfileID
	OverallGapScore  float64
	Gaps             []GapRecord
	CreatedAt        time.Time
}
