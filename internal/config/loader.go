package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-muxopts/layering"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format names a configuration encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrUnsupportedFormat is returned for files whose extension is not a known
// configuration format.
var ErrUnsupportedFormat = errors.New("config: unsupported format")

// FormatForPath picks the format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// LoadFiles reads every path and merges them in order, later files
// overriding earlier ones. With no paths it returns Default().
func LoadFiles(paths ...string) (Document, error) {
	if len(paths) == 0 {
		return Default(), nil
	}
	layers := make([]map[string]any, 0, len(paths))
	for _, path := range paths {
		format, err := FormatForPath(path)
		if err != nil {
			return Document{}, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return Document{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		layer, err := decodeRaw(data, format)
		if err != nil {
			return Document{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
		layers = append(layers, layer)
	}
	return fromRaw(layering.MergeDocuments(layers...))
}

// LoadReader decodes a single document from r.
func LoadReader(r io.Reader, format Format) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("config: read: %w", err)
	}
	raw, err := decodeRaw(data, format)
	if err != nil {
		return Document{}, fmt.Errorf("config: parse: %w", err)
	}
	return fromRaw(raw)
}

func decodeRaw(data []byte, format Format) (map[string]any, error) {
	raw := map[string]any{}
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	return raw, nil
}

// fromRaw maps the merged generic document onto Document by re-encoding it
// as YAML, which accepts the value shapes produced by both decoders.
func fromRaw(raw map[string]any) (Document, error) {
	data, err := yaml.Marshal(raw)
	if err != nil {
		return Document{}, fmt.Errorf("config: encode merged document: %w", err)
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("config: decode merged document: %w", err)
	}
	return doc, nil
}
