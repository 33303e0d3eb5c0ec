package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmetrics-lab/csfgap/pkg/domain/interfaces"
)

type Firestore struct {
	client     *firestore.Client
	framework  *frameworkRepository
	profile    *profileRepository
	assessment *assessmentRepository
	analysis   *analysisRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.framework.collectionPrefix = prefix
		f.profile.collectionPrefix = prefix
		f.assessment.collectionPrefix = prefix
		f.analysis.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID))
	}

	assessmentRepo := newAssessmentRepository(client)

	f := &Firestore{
		client:     client,
		framework:  newFrameworkRepository(client),
		profile:    newProfileRepository(client, assessmentRepo),
		assessment: assessmentRepo,
		analysis:   newAnalysisRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Framework() interfaces.FrameworkRepository {
	return f.framework
}

func (f *Firestore) Profile() interfaces.ProfileRepository {
	return f.profile
}

func (f *Firestore) Assessment() interfaces.AssessmentRepository {
	return f.assessment
}

func (f *Firestore) Analysis() interfaces.AnalysisRepository {
	return f.analysis
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
