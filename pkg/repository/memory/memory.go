package memory

import (
	"github.com/secmetrics-lab/csfgap/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	framework  *frameworkRepository
	profile    *profileRepository
	assessment *assessmentRepository
	analysis   *analysisRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	assessmentRepo := newAssessmentRepository()

	return &Memory{
		framework:  newFrameworkRepository(),
		profile:    newProfileRepository(assessmentRepo),
		assessment: assessmentRepo,
		analysis:   newAnalysisRepository(),
	}
}

func (m *Memory) Framework() interfaces.FrameworkRepository {
	return m.framework
}

func (m *Memory) Profile() interfaces.ProfileRepository {
	return m.profile
}

func (m *Memory) Assessment() interfaces.AssessmentRepository {
	return m.assessment
}

func (m *Memory) Analysis() interfaces.AnalysisRepository {
	return m.analysis
}

func (m *Memory) Close() error {
	return nil
}
