package opts

import (
	"fmt"
)

// FieldDescriptor describes one declared option and how its values are
// rendered.
type FieldDescriptor struct {
	Path    string   `json:"path"`
	Type    string   `json:"type"`
	Choices []string `json:"choices,omitempty"`
	Minimum *int64   `json:"minimum,omitempty"`
	Maximum *int64   `json:"maximum,omitempty"`
	Default string   `json:"default,omitempty"`
}

// DefaultSchemaGenerator returns the built-in descriptor-based schema generator.
func DefaultSchemaGenerator() SchemaGenerator {
	return descriptorGenerator{}
}

type descriptorGenerator struct{}

func (descriptorGenerator) Generate(kind ScopeKind, table Table) (SchemaDocument, error) {
	descriptors := make([]FieldDescriptor, 0, len(table))
	for _, spec := range table {
		if spec.Name == "" {
			return SchemaDocument{}, fmt.Errorf("opts: %s table contains an unnamed option", kind)
		}
		descriptors = append(descriptors, describeSpec(spec))
	}
	return SchemaDocument{
		Format:   SchemaFormatDescriptors,
		Scope:    kind.String(),
		Document: descriptors,
	}, nil
}

func describeSpec(spec OptionSpec) FieldDescriptor {
	field := FieldDescriptor{
		Path:    spec.Name,
		Type:    spec.Type.String(),
		Choices: append([]string(nil), spec.Choices...),
	}
	if spec.HasRange() {
		minimum, maximum := spec.Minimum, spec.Maximum
		field.Minimum = &minimum
		field.Maximum = &maximum
	}
	if spec.Default.Kind != ValueString || spec.Default.Str != "" {
		field.Default = FormatValue(spec, spec.Default, true)
	}
	return field
}

// DescribeTable renders the table declared for kind using the configured
// schema generator, falling back to DefaultSchemaGenerator.
func (e *Engine) DescribeTable(kind ScopeKind) (SchemaDocument, error) {
	generator := e.cfg.schemaGenerator
	if generator == nil {
		generator = DefaultSchemaGenerator()
	}
	return generator.Generate(kind, e.env.Tables.For(kind))
}
