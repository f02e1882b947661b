// Package dataset loads the static institutional-knowledge graph the engine
// operates on. The dataset is authored externally as YAML; this package
// validates the raw records, fills in generated edge ids, and hands the
// result to the graph aggregate, which enforces the cross-record invariants.
package dataset

import (
	_ "embed"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"cadence-backend/domain/core/aggregates"
	"cadence-backend/domain/core/entities"
	"cadence-backend/domain/core/valueobjects"
	pkgerrors "cadence-backend/pkg/errors"
)

//go:embed seed.yaml
var seedData []byte

// nodeRecord is the raw YAML shape of a node.
type nodeRecord struct {
	ID    string `yaml:"id" validate:"required"`
	Kind  string `yaml:"kind" validate:"required,oneof=patient intervention outcome learning"`
	Month int    `yaml:"month" validate:"required,min=1,max=12"`
	Label string `yaml:"label" validate:"required"`

	// Patient fields
	Trial     string `yaml:"trial,omitempty"`
	RiskLevel string `yaml:"risk_level,omitempty"`

	// Intervention fields
	Category string `yaml:"category,omitempty"`

	// Outcome fields
	Positive *bool  `yaml:"positive,omitempty"`
	Detail   string `yaml:"detail,omitempty"`

	// Learning fields
	Pattern     string   `yaml:"pattern,omitempty"`
	Confidence  *float64 `yaml:"confidence,omitempty" validate:"omitempty,min=0,max=1"`
	SampleSize  *int     `yaml:"sample_size,omitempty" validate:"omitempty,min=0"`
	DerivedFrom []string `yaml:"derived_from,omitempty"`
	AppliedTo   []string `yaml:"applied_to,omitempty"`
}

// edgeRecord is the raw YAML shape of an edge. The id is optional; a uuid is
// generated for records that omit it.
type edgeRecord struct {
	ID           string  `yaml:"id,omitempty"`
	Source       string  `yaml:"source" validate:"required"`
	Target       string  `yaml:"target" validate:"required"`
	Month        int     `yaml:"month" validate:"required,min=1,max=12"`
	Relationship string  `yaml:"relationship" validate:"required,oneof=received produced experienced informed recommends builds_on"`
	Weight       float64 `yaml:"weight" validate:"min=0,max=1"`
}

type document struct {
	Nodes []nodeRecord `yaml:"nodes" validate:"required,dive"`
	Edges []edgeRecord `yaml:"edges" validate:"dive"`
}

// Load reads and validates the dataset at the given path. An empty path
// loads the embedded seed dataset.
func Load(path string) (*aggregates.Graph, error) {
	if path == "" {
		return Parse(seedData)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pkgerrors.NewInternal("failed to read dataset file", err)
	}
	return Parse(data)
}

// Parse validates raw YAML dataset bytes and builds the graph aggregate.
func Parse(data []byte) (*aggregates.Graph, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.NewValidation(err.Error()), "malformed dataset YAML")
	}

	validate := validator.New()
	if err := validate.Struct(doc); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.NewValidation(err.Error()), "dataset failed validation")
	}

	nodes := make([]*entities.Node, 0, len(doc.Nodes))
	for _, record := range doc.Nodes {
		node, err := buildNode(record)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "dataset node "+record.ID)
		}
		nodes = append(nodes, node)
	}

	edges := make([]*entities.Edge, 0, len(doc.Edges))
	for _, record := range doc.Edges {
		edge, err := buildEdge(record)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "dataset edge "+record.Source+" -> "+record.Target)
		}
		edges = append(edges, edge)
	}

	return aggregates.NewGraph(nodes, edges)
}

func buildNode(record nodeRecord) (*entities.Node, error) {
	id, err := valueobjects.NewNodeID(record.ID)
	if err != nil {
		return nil, err
	}
	month, err := valueobjects.NewMonth(record.Month)
	if err != nil {
		return nil, err
	}

	kind := entities.NodeKind(record.Kind)
	attrs, err := buildAttributes(kind, record)
	if err != nil {
		return nil, err
	}

	return entities.NewNode(id, kind, month, record.Label, attrs)
}

func buildAttributes(kind entities.NodeKind, record nodeRecord) (entities.Attributes, error) {
	switch kind {
	case entities.KindPatient:
		return entities.PatientAttributes{
			Trial:     record.Trial,
			RiskLevel: record.RiskLevel,
		}, nil

	case entities.KindIntervention:
		return entities.InterventionAttributes{
			Category: record.Category,
		}, nil

	case entities.KindOutcome:
		positive := false
		if record.Positive != nil {
			positive = *record.Positive
		}
		return entities.OutcomeAttributes{
			Positive: positive,
			Detail:   record.Detail,
		}, nil

	case entities.KindLearning:
		attrs := entities.LearningAttributes{Pattern: record.Pattern}
		if record.Confidence != nil {
			attrs.Confidence = *record.Confidence
		}
		if record.SampleSize != nil {
			attrs.SampleSize = *record.SampleSize
		}
		var err error
		if attrs.DerivedFrom, err = parseNodeIDs(record.DerivedFrom); err != nil {
			return nil, err
		}
		if attrs.AppliedTo, err = parseNodeIDs(record.AppliedTo); err != nil {
			return nil, err
		}
		return attrs, nil

	default:
		return nil, pkgerrors.NewValidationf("unknown node kind %q", kind)
	}
}

func parseNodeIDs(raw []string) ([]valueobjects.NodeID, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	ids := make([]valueobjects.NodeID, 0, len(raw))
	for _, value := range raw {
		id, err := valueobjects.NewNodeID(value)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func buildEdge(record edgeRecord) (*entities.Edge, error) {
	rawID := record.ID
	if rawID == "" {
		rawID = uuid.New().String()
	}
	id, err := valueobjects.NewEdgeID(rawID)
	if err != nil {
		return nil, err
	}
	source, err := valueobjects.NewNodeID(record.Source)
	if err != nil {
		return nil, err
	}
	target, err := valueobjects.NewNodeID(record.Target)
	if err != nil {
		return nil, err
	}
	month, err := valueobjects.NewMonth(record.Month)
	if err != nil {
		return nil, err
	}

	return entities.NewEdge(id, source, target, month, entities.Relationship(record.Relationship), record.Weight)
}
