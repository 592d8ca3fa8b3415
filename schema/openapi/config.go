package openapi

import "strings"

const defaultBasePath = "/options"

type generatorConfig struct {
	openAPIVersion string
	title          string
	version        string
	description    string
	basePath       string
	userOptions    bool
}

func defaultGeneratorConfig() generatorConfig {
	return generatorConfig{
		openAPIVersion: "3.0.3",
		title:          "Multiplexer Options",
		version:        "1.0.0",
		basePath:       defaultBasePath,
		userOptions:    true,
	}
}

// GeneratorOption configures the OpenAPI generator.
type GeneratorOption func(*generatorConfig)

// WithOpenAPIVersion overrides the OpenAPI version string (default 3.0.3).
func WithOpenAPIVersion(version string) GeneratorOption {
	return func(cfg *generatorConfig) {
		if version != "" {
			cfg.openAPIVersion = version
		}
	}
}

// WithTitle sets the info title and version. Empty strings keep the defaults.
func WithTitle(title, version string) GeneratorOption {
	return func(cfg *generatorConfig) {
		if title != "" {
			cfg.title = title
		}
		if version != "" {
			cfg.version = version
		}
	}
}

// WithDescription sets the info description.
func WithDescription(description string) GeneratorOption {
	return func(cfg *generatorConfig) {
		cfg.description = description
	}
}

// WithBasePath changes the prefix of the generated paths (default
// "/options"). The scope name is always appended.
func WithBasePath(path string) GeneratorOption {
	return func(cfg *generatorConfig) {
		path = "/" + strings.Trim(path, "/")
		if path == "/" {
			path = ""
		}
		cfg.basePath = path
	}
}

// WithoutUserOptions closes the component schema: only declared options are
// accepted and additionalProperties is false.
func WithoutUserOptions() GeneratorOption {
	return func(cfg *generatorConfig) {
		cfg.userOptions = false
	}
}

func (cfg generatorConfig) path(segments ...string) string {
	return cfg.basePath + "/" + strings.Join(segments, "/")
}
