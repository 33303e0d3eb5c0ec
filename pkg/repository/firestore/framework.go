package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmetrics-lab/csfgap/pkg/domain/model"
	"github.com/secmetrics-lab/csfgap/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type functionDoc struct {
	ID          string `firestore:"id"`
	Name        string `firestore:"name"`
	Description string `firestore:"description"`
}

type categoryDoc struct {
	ID          string `firestore:"id"`
	FunctionID  string `firestore:"function_id"`
	Name        string `firestore:"name"`
	Description string `firestore:"description"`
}

type subcategoryDoc struct {
	ID          string `firestore:"id"`
	CategoryID  string `firestore:"category_id"`
	FunctionID  string `firestore:"function_id"`
	Name        string `firestore:"name"`
	Description string `firestore:"description"`
}

type dependencyDoc struct {
	SubcategoryID string `firestore:"subcategory_id"`
	DependsOnID   string `firestore:"depends_on_id"`
	Strength      int    `firestore:"strength"`
}

type frameworkRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newFrameworkRepository(client *firestore.Client) *frameworkRepository {
	return &frameworkRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *frameworkRepository) collection(name string) string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_" + name
	}
	return name
}

// replaceCollection deletes all documents of a collection and writes the
// given docs in batches. The reference graph is small (around a hundred
// subcategories) so batched writes are sufficient.
func (r *frameworkRepository) replaceCollection(ctx context.Context, name string, docs map[string]interface{}) error {
	coll := r.client.Collection(name)

	iter := coll.Documents(ctx)
	defer iter.Stop()

	bw := r.client.BulkWriter(ctx)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return goerr.Wrap(err, "failed to iterate collection", goerr.V("collection", name))
		}
		if _, err := bw.Delete(doc.Ref); err != nil {
			return goerr.Wrap(err, "failed to queue delete", goerr.V("collection", name))
		}
	}

	for id, data := range docs {
		if _, err := bw.Set(coll.Doc(id), data); err != nil {
			return goerr.Wrap(err, "failed to queue write", goerr.V("collection", name), goerr.V("id", id))
		}
	}
	bw.End()

	return nil
}

func (r *frameworkRepository) PutFunctions(ctx context.Context, functions []*model.Function) error {
	docs := make(map[string]interface{}, len(functions))
	for _, fn := range functions {
		docs[fn.ID.String()] = &functionDoc{
			ID:          fn.ID.String(),
			Name:        fn.Name,
			Description: fn.Description,
		}
	}
	return r.replaceCollection(ctx, r.collection("csf_functions"), docs)
}

func (r *frameworkRepository) PutCategories(ctx context.Context, categories []*model.Category) error {
	docs := make(map[string]interface{}, len(categories))
	for _, cat := range categories {
		docs[cat.ID.String()] = &categoryDoc{
			ID:          cat.ID.String(),
			FunctionID:  cat.FunctionID.String(),
			Name:        cat.Name,
			Description: cat.Description,
		}
	}
	return r.replaceCollection(ctx, r.collection("csf_categories"), docs)
}

func (r *frameworkRepository) PutSubcategories(ctx context.Context, subcategories []*model.Subcategory) error {
	docs := make(map[string]interface{}, len(subcategories))
	for _, sub := range subcategories {
		docs[sub.ID.String()] = &subcategoryDoc{
			ID:          sub.ID.String(),
			CategoryID:  sub.CategoryID.String(),
			FunctionID:  sub.FunctionID.String(),
			Name:        sub.Name,
			Description: sub.Description,
		}
	}
	return r.replaceCollection(ctx, r.collection("csf_subcategories"), docs)
}

func (r *frameworkRepository) PutDependencies(ctx context.Context, dependencies []*model.Dependency) error {
	docs := make(map[string]interface{}, len(dependencies))
	for _, dep := range dependencies {
		docID := fmt.Sprintf("%s__%s", dep.SubcategoryID, dep.DependsOnID)
		docs[docID] = &dependencyDoc{
			SubcategoryID: dep.SubcategoryID.String(),
			DependsOnID:   dep.DependsOnID.String(),
			Strength:      dep.Strength,
		}
	}
	return r.replaceCollection(ctx, r.collection("csf_dependencies"), docs)
}

func (r *frameworkRepository) GetSubcategory(ctx context.Context, id types.SubcategoryID) (*model.Subcategory, error) {
	docRef := r.client.Collection(r.collection("csf_subcategories")).Doc(id.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "subcategory not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get subcategory", goerr.V("id", id))
	}

	var subDoc subcategoryDoc
	if err := doc.DataTo(&subDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal subcategory", goerr.V("id", id))
	}

	return fromSubcategoryDoc(&subDoc), nil
}

func fromSubcategoryDoc(d *subcategoryDoc) *model.Subcategory {
	return &model.Subcategory{
		ID:          types.SubcategoryID(d.ID),
		CategoryID:  types.CategoryID(d.CategoryID),
		FunctionID:  types.Function(d.FunctionID),
		Name:        d.Name,
		Description: d.Description,
	}
}

func (r *frameworkRepository) ListSubcategories(ctx context.Context) ([]*model.Subcategory, error) {
	iter := r.client.Collection(r.collection("csf_subcategories")).Documents(ctx)
	defer iter.Stop()

	var subs []*model.Subcategory
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate subcategories")
		}

		var subDoc subcategoryDoc
		if err := doc.DataTo(&subDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal subcategory")
		}
		subs = append(subs, fromSubcategoryDoc(&subDoc))
	}

	return subs, nil
}

func (r *frameworkRepository) ListDependencies(ctx context.Context, id types.SubcategoryID) ([]*model.Dependency, error) {
	iter := r.client.Collection(r.collection("csf_dependencies")).
		Where("subcategory_id", "==", id.String()).
		Documents(ctx)
	defer iter.Stop()

	deps := make([]*model.Dependency, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate dependencies", goerr.V("id", id))
		}

		var depDoc dependencyDoc
		if err := doc.DataTo(&depDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal dependency", goerr.V("id", id))
		}

		deps = append(deps, &model.Dependency{
			SubcategoryID: types.SubcategoryID(depDoc.SubcategoryID),
			DependsOnID:   types.SubcategoryID(depDoc.DependsOnID),
			Strength:      depDoc.Strength,
		})
	}

	return deps, nil
}
