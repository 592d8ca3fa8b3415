// Package openapi renders option tables as OpenAPI 3 documents whose
// component schema describes one scope's options.
package openapi

import (
	"fmt"
	"strings"

	opts "github.com/goliatone/go-muxopts"
)

type generator struct {
	config generatorConfig
}

// NewGenerator constructs an OpenAPI-compatible schema generator.
func NewGenerator(options ...GeneratorOption) opts.SchemaGenerator {
	cfg := defaultGeneratorConfig()
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return generator{config: cfg}
}

// Option wires the OpenAPI schema generator into an Engine.
func Option(options ...GeneratorOption) opts.Option {
	return opts.WithSchemaGenerator(NewGenerator(options...))
}

func (g generator) Generate(kind opts.ScopeKind, table opts.Table) (opts.SchemaDocument, error) {
	schema, err := tableSchema(table, g.config.userOptions)
	if err != nil {
		return opts.SchemaDocument{}, err
	}
	component := ComponentName(kind)

	info := map[string]any{
		"title":   g.config.title,
		"version": g.config.version,
	}
	if g.config.description != "" {
		info["description"] = g.config.description
	}

	document := map[string]any{
		"openapi": g.config.openAPIVersion,
		"info":    info,
		"paths":   g.paths(kind, component),
		"components": map[string]any{
			"schemas": map[string]any{component: schema},
		},
	}
	return opts.SchemaDocument{
		Format:   opts.SchemaFormatOpenAPI,
		Scope:    kind.String(),
		Document: document,
	}, nil
}

// ComponentName returns the component schema name used for kind, for
// example "SessionOptions".
func ComponentName(kind opts.ScopeKind) string {
	name := kind.String()
	return strings.ToUpper(name[:1]) + name[1:] + "Options"
}

// paths describes how each registry of kind is read: the server registry, the
// global defaults, the current target and a named target.
func (g generator) paths(kind opts.ScopeKind, component string) map[string]any {
	ok := map[string]any{
		"description": "Options stored in the registry",
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/" + component},
			},
		},
	}
	name := kind.String()
	if kind == opts.ScopeServer {
		return map[string]any{
			g.config.path(name): map[string]any{"get": operation("getServerOptions", ok, nil)},
		}
	}

	missing := map[string]any{"description": "can't find " + name}
	title := strings.ToUpper(name[:1]) + name[1:]
	target := []any{map[string]any{
		"name":     "target",
		"in":       "path",
		"required": true,
		"schema":   map[string]any{"type": "string"},
	}}
	return map[string]any{
		g.config.path(name, "defaults"): map[string]any{
			"get": operation("getGlobal"+title+"Options", ok, nil),
		},
		g.config.path(name): map[string]any{
			"get": operation("getCurrent"+title+"Options", ok, missing),
		},
		g.config.path(name, "{target}"): map[string]any{
			"get":        operation("get"+title+"Options", ok, missing),
			"parameters": target,
		},
	}
}

func operation(id string, ok, missing map[string]any) map[string]any {
	responses := map[string]any{"200": ok}
	if missing != nil {
		responses["404"] = missing
	}
	return map[string]any{
		"operationId": id,
		"responses":   responses,
	}
}

func tableSchema(table opts.Table, userOptions bool) (map[string]any, error) {
	properties := make(map[string]any, len(table))
	for _, spec := range table {
		if spec.Name == "" {
			return nil, fmt.Errorf("openapi: table contains an unnamed option")
		}
		if _, exists := properties[spec.Name]; exists {
			return nil, fmt.Errorf("openapi: option %q declared twice", spec.Name)
		}
		property, err := propertySchema(spec)
		if err != nil {
			return nil, err
		}
		properties[spec.Name] = property
	}
	schema := map[string]any{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
	if userOptions {
		schema["additionalProperties"] = map[string]any{
			"type":        "string",
			"description": "user options, names start with " + opts.UserPrefix,
		}
	}
	return schema, nil
}

func propertySchema(spec opts.OptionSpec) (map[string]any, error) {
	schema := map[string]any{"x-option-type": spec.Type.String()}
	switch spec.Type {
	case opts.TypeString:
		schema["type"] = "string"
		schema["default"] = spec.Default.Text()
	case opts.TypeNumber:
		schema["type"] = "integer"
		schema["format"] = "int64"
		if spec.HasRange() {
			schema["minimum"] = spec.Minimum
			schema["maximum"] = spec.Maximum
		}
		schema["default"] = spec.Default.Num
	case opts.TypeFlag:
		schema["type"] = "boolean"
		schema["default"] = spec.Default.Flag
	case opts.TypeChoice:
		schema["type"] = "string"
		schema["enum"] = append([]string(nil), spec.Choices...)
		schema["default"] = opts.FormatValue(spec, spec.Default, true)
	case opts.TypeKey, opts.TypeColour:
		schema["type"] = "string"
		schema["default"] = opts.FormatValue(spec, spec.Default, true)
	default:
		return nil, fmt.Errorf("openapi: option %q has unsupported type %s", spec.Name, spec.Type)
	}
	return schema, nil
}
