package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// ProfileID represents a unique identifier for an assessment profile
type ProfileID string

// NewProfileID generates a new random ProfileID
func NewProfileID() ProfileID {
	return ProfileID(uuid.NewString())
}

// Validate checks if the ProfileID is valid
func (p ProfileID) Validate() error {
	if p == "" {
		return goerr.New("profile ID cannot be empty")
	}
	return nil
}

// String returns the string representation of ProfileID
func (p ProfileID) String() string {
	return string(p)
}

// OrgID represents a unique identifier for an organization
type OrgID string

// Validate checks if the OrgID is valid
func (o OrgID) Validate() error {
	if o == "" {
		return goerr.New("organization ID cannot be empty")
	}
	return nil
}

// String returns the string representation of OrgID
func (o OrgID) String() string {
	return string(o)
}

// AnalysisID represents a unique identifier for a persisted gap analysis
type AnalysisID string

// NewAnalysisID generates a new random AnalysisID
func NewAnalysisID() AnalysisID {
	return AnalysisID(uuid.NewString())
}

// Validate checks if the AnalysisID is valid
func (a AnalysisID) Validate() error {
	if a == "" {
		return goerr.New("analysis ID cannot be empty")
	}
	return nil
}

// String returns the string representation of AnalysisID
func (a AnalysisID) String() string {
	return string(a)
}

// ProfileType represents the role of a profile within an organization
type ProfileType string

const (
	ProfileTypeBaseline ProfileType = "baseline"
	ProfileTypeTarget   ProfileType = "target"
	ProfileTypeCurrent  ProfileType = "current"
	ProfileTypeCustom   ProfileType = "custom"
)

// AllProfileTypes returns all valid profile types
func AllProfileTypes() []ProfileType {
	return []ProfileType{
		ProfileTypeBaseline,
		ProfileTypeTarget,
		ProfileTypeCurrent,
		ProfileTypeCustom,
	}
}

// IsValid checks if the profile type is valid
func (t ProfileType) IsValid() bool {
	switch t {
	case ProfileTypeBaseline,
		ProfileTypeTarget,
		ProfileTypeCurrent,
		ProfileTypeCustom:
		return true
	default:
		return false
	}
}

// String returns the string representation of the profile type
func (t ProfileType) String() string {
	return string(t)
}

// ParseProfileType parses a string into a ProfileType
func ParseProfileType(s string) (ProfileType, error) {
	t := ProfileType(s)
	if !t.IsValid() {
		return "", goerr.New("invalid profile type", goerr.V("value", s))
	}
	return t, nil
}
