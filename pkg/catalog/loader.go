package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Format names a catalog file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath infers the encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported catalog file extension %q", filepath.Ext(path))
}

// LoadFile reads, decodes and validates a catalog file.
func LoadFile(path string) (*Catalog, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	c, err := Load(f, format)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Load decodes a catalog from r and validates it.
func Load(r io.Reader, format Format) (*Catalog, error) {
	def, err := Decode(r, format)
	if err != nil {
		return nil, err
	}
	return New(def)
}

// Decode parses r into a Definition without validating it.
// Both encodings are first read into a generic map and then decoded with
// mapstructure, so unknown keys are rejected the same way for YAML and JSON.
func Decode(r io.Reader, format Format) (Definition, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Definition{}, fmt.Errorf("failed to read catalog: %w", err)
	}

	var raw map[string]any
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &raw)
	case FormatJSON:
		err = json.Unmarshal(data, &raw)
	default:
		return Definition{}, fmt.Errorf("unsupported catalog format %q", format)
	}
	if err != nil {
		return Definition{}, fmt.Errorf("failed to parse %s catalog: %w", format, err)
	}

	var def Definition
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &def,
		ErrorUnused: true,
		TagName:     "mapstructure",
	})
	if err != nil {
		return Definition{}, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return Definition{}, fmt.Errorf("invalid catalog structure: %w", err)
	}
	return def, nil
}

// Encode writes def in the given format.
func Encode(w io.Writer, def Definition, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(def); err != nil {
			return fmt.Errorf("failed to encode yaml catalog: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(def); err != nil {
			return fmt.Errorf("failed to encode json catalog: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unsupported catalog format %q", format)
}
