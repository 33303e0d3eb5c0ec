package model

import (
	"time"

	"github.com/secmetrics-lab/csfgap/pkg/domain/types"
)

// Profile is a named, organization-scoped bundle of per-subcategory
// assessments representing either a current or a target state. Current and
// target profiles of one organization are independent instances sharing an
// OrgID; they are compared, never merged.
type Profile struct {
	ID          types.ProfileID
	OrgID       types.OrgID
	Type        types.ProfileType
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
