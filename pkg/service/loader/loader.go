package loader

import (
	"context"
	"encoding/json"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmetrics-lab/csfgap/pkg/domain/interfaces"
	"github.com/secmetrics-lab/csfgap/pkg/domain/model"
	"github.com/secmetrics-lab/csfgap/pkg/domain/types"
	"github.com/secmetrics-lab/csfgap/pkg/utils/logging"
)

// Service loads the CSF reference taxonomy and dependency edges into the
// framework store. The engine itself never writes the graph; all mutation
// goes through here.
type Service struct {
	repo interfaces.Repository
}

func New(repo interfaces.Repository) *Service {
	return &Service{
		repo: repo,
	}
}

// ParseFramework decodes and validates a NIST OLIR CSF 2.0 JSON export.
// The NIST data repeats elements for party associations, so duplicate
// identifiers keep their first occurrence rather than failing the parse.
func ParseFramework(r io.Reader) (*FrameworkData, error) {
	var export olirExport
	if err := json.NewDecoder(r).Decode(&export); err != nil {
		return nil, goerr.Wrap(err, "failed to decode framework JSON")
	}

	data := &FrameworkData{}
	if docs := export.Response.Elements.Documents; len(docs) > 0 {
		data.SourceName = docs[0].Name
		data.SourceVersion = docs[0].Version
	}

	seen := make(map[string]struct{})
	for _, elem := range export.Response.Elements.Elements {
		if _, ok := seen[elem.ElementIdentifier]; ok {
			continue
		}

		switch elem.ElementType {
		case elementTypeFunction:
			fn, err := types.ParseFunction(elem.ElementIdentifier)
			if err != nil {
				return nil, goerr.Wrap(err, "invalid function element")
			}
			data.Functions = append(data.Functions, &model.Function{
				ID:          fn,
				Name:        elem.Title,
				Description: elem.Text,
			})
		case elementTypeCategory:
			id := types.CategoryID(elem.ElementIdentifier)
			if err := id.Validate(); err != nil {
				return nil, goerr.Wrap(err, "invalid category element")
			}
			data.Categories = append(data.Categories, &model.Category{
				ID:          id,
				FunctionID:  id.Function(),
				Name:        elem.Title,
				Description: elem.Text,
			})
		case elementTypeSubcategory:
			id := types.SubcategoryID(elem.ElementIdentifier)
			if err := id.Validate(); err != nil {
				return nil, goerr.Wrap(err, "invalid subcategory element")
			}
			data.Subcategories = append(data.Subcategories, &model.Subcategory{
				ID:          id,
				CategoryID:  id.Category(),
				FunctionID:  id.Function(),
				Name:        elem.Title,
				Description: elem.Text,
			})
		default:
			// implementation examples, parties, withdraw reasons
			continue
		}
		seen[elem.ElementIdentifier] = struct{}{}
	}

	if err := data.Validate(); err != nil {
		return nil, err
	}

	return data, nil
}

// Validate checks hierarchy integrity: every subcategory must resolve to a
// parsed category, and every category to a parsed function.
func (d *FrameworkData) Validate() error {
	if len(d.Functions) == 0 {
		return goerr.New("framework export contains no functions")
	}

	functions := make(map[types.Function]struct{}, len(d.Functions))
	for _, fn := range d.Functions {
		functions[fn.ID] = struct{}{}
	}

	categories := make(map[types.CategoryID]struct{}, len(d.Categories))
	for _, cat := range d.Categories {
		if _, ok := functions[cat.FunctionID]; !ok {
			return goerr.New("category references unknown function",
				goerr.V("category_id", cat.ID),
				goerr.V("function_id", cat.FunctionID))
		}
		categories[cat.ID] = struct{}{}
	}

	for _, sub := range d.Subcategories {
		if _, ok := categories[sub.CategoryID]; !ok {
			return goerr.New("subcategory references unknown category",
				goerr.V("subcategory_id", sub.ID),
				goerr.V("category_id", sub.CategoryID))
		}
	}

	return nil
}

// ParseDependencies decodes the TOML dependency edge list
func ParseDependencies(r io.Reader) ([]*model.Dependency, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read dependency file")
	}

	var file dependencyFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse dependency TOML")
	}

	edges := make([]*model.Dependency, 0, len(file.Dependencies))
	seen := make(map[[2]string]struct{})
	for _, entry := range file.Dependencies {
		subID := types.SubcategoryID(entry.Subcategory)
		if err := subID.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid dependency subcategory")
		}
		depID := types.SubcategoryID(entry.DependsOn)
		if err := depID.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid dependency target")
		}
		if subID == depID {
			return nil, goerr.New("dependency edge points at itself", goerr.V("subcategory_id", subID))
		}
		if entry.Strength < 0 || entry.Strength > 10 {
			return nil, goerr.New("dependency strength must be between 0 and 10",
				goerr.V("subcategory_id", subID),
				goerr.V("strength", entry.Strength))
		}

		key := [2]string{entry.Subcategory, entry.DependsOn}
		if _, ok := seen[key]; ok {
			return nil, goerr.New("duplicate dependency edge",
				goerr.V("subcategory_id", subID),
				goerr.V("depends_on_id", depID))
		}
		seen[key] = struct{}{}

		edges = append(edges, &model.Dependency{
			SubcategoryID: subID,
			DependsOnID:   depID,
			Strength:      entry.Strength,
		})
	}

	return edges, nil
}

// Import parses both inputs and replaces the stored reference graph. The
// dependency reader may be nil when no edge file is supplied.
func (s *Service) Import(ctx context.Context, framework io.Reader, dependencies io.Reader) (*ImportStats, error) {
	data, err := ParseFramework(framework)
	if err != nil {
		return nil, err
	}

	var edges []*model.Dependency
	if dependencies != nil {
		edges, err = ParseDependencies(dependencies)
		if err != nil {
			return nil, err
		}
		if err := validateEdgeEndpoints(edges, data.Subcategories); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Framework().PutFunctions(ctx, data.Functions); err != nil {
		return nil, goerr.Wrap(err, "failed to store functions")
	}
	if err := s.repo.Framework().PutCategories(ctx, data.Categories); err != nil {
		return nil, goerr.Wrap(err, "failed to store categories")
	}
	if err := s.repo.Framework().PutSubcategories(ctx, data.Subcategories); err != nil {
		return nil, goerr.Wrap(err, "failed to store subcategories")
	}
	if err := s.repo.Framework().PutDependencies(ctx, edges); err != nil {
		return nil, goerr.Wrap(err, "failed to store dependencies")
	}

	stats := &ImportStats{
		Functions:     len(data.Functions),
		Categories:    len(data.Categories),
		Subcategories: len(data.Subcategories),
		Dependencies:  len(edges),
	}

	logging.From(ctx).Info("framework reference graph imported",
		"source", data.SourceName,
		"version", data.SourceVersion,
		"functions", stats.Functions,
		"categories", stats.Categories,
		"subcategories", stats.Subcategories,
		"dependencies", stats.Dependencies,
	)

	return stats, nil
}

// validateEdgeEndpoints rejects edges pointing outside the imported
// taxonomy. A dangling edge would silently disappear from resolver queries.
func validateEdgeEndpoints(edges []*model.Dependency, subcategories []*model.Subcategory) error {
	known := make(map[types.SubcategoryID]struct{}, len(subcategories))
	for _, sub := range subcategories {
		known[sub.ID] = struct{}{}
	}

	for _, edge := range edges {
		if _, ok := known[edge.SubcategoryID]; !ok {
			return goerr.New("dependency edge references unknown subcategory",
				goerr.V("subcategory_id", edge.SubcategoryID))
		}
		if _, ok := known[edge.DependsOnID]; !ok {
			return goerr.New("dependency edge references unknown target",
				goerr.V("depends_on_id", edge.DependsOnID))
		}
	}

	return nil
}
