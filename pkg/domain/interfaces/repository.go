package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Framework() FrameworkRepository
	Profile() ProfileRepository
	Assessment() AssessmentRepository
	Analysis() AnalysisRepository

	Close() error
}
