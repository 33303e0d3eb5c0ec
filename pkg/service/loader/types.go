package loader

import (
	"github.com/secmetrics-lab/csfgap/pkg/domain/model"
)

// olirExport mirrors the NIST OLIR program's CSF 2.0 JSON export. The
// element list feeds the taxonomy and the document header identifies the
// export; relationships are decoded but ignored, since ordering edges come
// from the curated TOML file instead.
type olirExport struct {
	Response struct {
		Elements struct {
			Documents     []olirDocument     `json:"documents"`
			Elements      []olirElement      `json:"elements"`
			Relationships []olirRelationship `json:"relationships"`
		} `json:"elements"`
	} `json:"response"`
}

type olirDocument struct {
	DocIdentifier string `json:"doc_identifier"`
	Name          string `json:"name"`
	Version       string `json:"version"`
}

type olirElement struct {
	ElementIdentifier string `json:"element_identifier"`
	ElementType       string `json:"element_type"`
	Title             string `json:"title"`
	Text              string `json:"text"`
}

type olirRelationship struct {
	SourceElementIdentifier string `json:"source_element_identifier"`
	DestElementIdentifier   string `json:"dest_element_identifier"`
	RelationshipIdentifier  string `json:"relationship_identifier"`
}

// Element types present in the export. Implementation examples, parties
// and withdraw reasons are skipped; the engine only needs the taxonomy.
const (
	elementTypeFunction    = "function"
	elementTypeCategory    = "category"
	elementTypeSubcategory = "subcategory"
)

// FrameworkData is the parsed, validated taxonomy ready for import.
// SourceName and SourceVersion come from the export's document header.
type FrameworkData struct {
	SourceName    string
	SourceVersion string
	Functions     []*model.Function
	Categories    []*model.Category
	Subcategories []*model.Subcategory
}

// dependencyFile is the TOML edge list supplementing the NIST export,
// which carries no inter-subcategory ordering of its own.
type dependencyFile struct {
	Dependencies []dependencyEntry `toml:"dependency"`
}

type dependencyEntry struct {
	Subcategory string `toml:"subcategory"`
	DependsOn   string `toml:"depends_on"`
	Strength    int    `toml:"strength"`
}

// ImportStats reports what an import run wrote
type ImportStats struct {
	Functions     int
	Categories    int
	Subcategories int
	Dependencies  int
}
