package opts

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeTableDescriptors(t *testing.T) {
	engine := New(testEnvironment())

	doc, err := engine.DescribeTable(ScopeWindow)
	require.NoError(t, err)
	assert.Equal(t, SchemaFormatDescriptors, doc.Format)
	assert.Equal(t, "window", doc.Scope)

	descriptors, ok := doc.Document.([]FieldDescriptor)
	require.True(t, ok)
	require.Len(t, descriptors, len(DefaultTables().Window))

	byName := map[string]FieldDescriptor{}
	for _, field := range descriptors {
		byName[field.Path] = field
	}

	modeKeys := byName["mode-keys"]
	assert.Equal(t, "choice", modeKeys.Type)
	assert.Equal(t, []string{"emacs", "vi"}, modeKeys.Choices)
	assert.Equal(t, "emacs", modeKeys.Default)

	height := byName["main-pane-height"]
	require.NotNil(t, height.Minimum)
	require.NotNil(t, height.Maximum)
	assert.EqualValues(t, 1, *height.Minimum)
	assert.Equal(t, "24", height.Default)

	assert.Equal(t, "off", byName["xterm-keys"].Default)
	assert.Equal(t, "blue", byName["clock-mode-colour"].Default)
	assert.Empty(t, byName["monitor-content"].Default, "empty strings have no default")
	assert.Equal(t, "#I:#W#F", byName["window-status-format"].Default)
}

func TestDescribeTableJSON(t *testing.T) {
	engine := New(testEnvironment())
	doc, err := engine.DescribeTable(ScopeServer)
	require.NoError(t, err)

	payload, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded struct {
		Format   string            `json:"format"`
		Document []json.RawMessage `json:"document"`
	}
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, "descriptors", decoded.Format)
	require.Len(t, decoded.Document, 5)
	assert.JSONEq(t, `{"path":"quiet","type":"flag","default":"off"}`, string(decoded.Document[3]))
}

func TestDescribeTableRejectsUnnamedOptions(t *testing.T) {
	env := Environment{Tables: Tables{Server: Table{{Type: TypeFlag}}}}
	_, err := New(env).DescribeTable(ScopeServer)
	assert.Error(t, err)
}

type stubGenerator struct {
	calls []ScopeKind
	err   error
}

func (g *stubGenerator) Generate(kind ScopeKind, table Table) (SchemaDocument, error) {
	g.calls = append(g.calls, kind)
	if g.err != nil {
		return SchemaDocument{}, g.err
	}
	return SchemaDocument{Format: SchemaFormatOpenAPI, Scope: kind.String(), Document: len(table)}, nil
}

func TestDescribeTableUsesConfiguredGenerator(t *testing.T) {
	generator := &stubGenerator{}
	engine := New(testEnvironment(), WithSchemaGenerator(generator))

	doc, err := engine.DescribeTable(ScopeSession)
	require.NoError(t, err)
	assert.Equal(t, SchemaFormatOpenAPI, doc.Format)
	assert.Equal(t, len(DefaultTables().Session), doc.Document)
	assert.Equal(t, []ScopeKind{ScopeSession}, generator.calls)

	generator.err = errors.New("boom")
	_, err = engine.DescribeTable(ScopeSession)
	assert.EqualError(t, err, "boom")
}
