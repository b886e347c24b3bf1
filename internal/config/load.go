package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is one loaded configuration document: the canonical raw tree as
// parsed plus the typed model with defaults applied.
type Document struct {
	Path string
	Raw  interface{}
	Node *SecNode
}

// Load reads, shape-validates and decodes the configuration document at
// path. JSON is the primary format; .yaml/.yml documents are canonicalized
// through JSON first so schema diagnostics use the same paths. On shape
// violations the returned error is a *SchemaError listing every offending
// path.
func Load(path string) (*Document, error) {
	if path == "" {
		return nil, errors.New("config path must not be empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	raw, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", abs, err)
	}

	doc, err := Parse(raw, strings.ToLower(filepath.Ext(abs)))
	if err != nil {
		var shapeErr *SchemaError
		if errors.As(err, &shapeErr) {
			// keep the raw tree available for traceability output
			if doc != nil {
				doc.Path = abs
			}
			return doc, err
		}
		return nil, fmt.Errorf("config %s: %w", abs, err)
	}
	doc.Path = abs
	return doc, nil
}

// Parse validates and decodes a raw document. ext selects the input format
// (".yaml"/".yml" for YAML, anything else is treated as JSON).
func Parse(data []byte, ext string) (*Document, error) {
	jsonBytes := data
	switch ext {
	case ".yaml", ".yml":
		converted, err := yamlToJSON(data)
		if err != nil {
			return nil, err
		}
		jsonBytes = converted
	}

	var rawDoc interface{}
	if err := json.Unmarshal(jsonBytes, &rawDoc); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	doc := &Document{Raw: rawDoc}

	// On shape failure the raw tree is still returned so callers can dump
	// it for traceability.
	if err := validateShape(rawDoc); err != nil {
		return doc, err
	}

	var node SecNode
	if err := json.Unmarshal(jsonBytes, &node); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	applyDefaults(&node)

	doc.Node = &node
	return doc, nil
}

func yamlToJSON(data []byte) ([]byte, error) {
	var v interface{}
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parse YAML document: %w", err)
	}
	converted, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("canonicalize YAML document: %w", err)
	}
	return converted, nil
}

// applyDefaults fills the documented defaults for optional fields that the
// document omitted. Struct zero values already cover the tooling text
// fields and the readonly flag.
func applyDefaults(node *SecNode) {
	if node.Modules == nil {
		node.Modules = make(map[string]*Module)
	}
	for _, mod := range node.Modules {
		if mod == nil {
			continue
		}
		if mod.Features == nil {
			mod.Features = []string{}
		}
		if mod.Accessibles == nil {
			mod.Accessibles = make(map[string]*Accessible)
		}
	}
}

// Normalized renders the typed model back to JSON: same meaning as the
// input, consistent types and defaults applied.
func (d *Document) Normalized() ([]byte, error) {
	data, err := json.MarshalIndent(d.Node, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal normalized config: %w", err)
	}
	return data, nil
}
