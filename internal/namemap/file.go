package namemap

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a YAML document of `display name: party-id` pairs.
func LoadFile(path string) (*NameMap, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read name map %s: %w", path, err)
	}

	var entries map[string]string
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse name map %s: %w", path, err)
	}

	trimmed := make(map[string]string, len(entries))
	for name, id := range entries {
		trimmed[strings.TrimSpace(name)] = strings.TrimSpace(id)
	}

	m, err := New(trimmed)
	if err != nil {
		return nil, fmt.Errorf("name map %s: %w", path, err)
	}
	return m, nil
}

// Build returns the effective table for a run: the built-in table, the file
// at path, or the file merged over the built-in table.
func Build(path string, extendDefault bool) (*NameMap, error) {
	if path == "" {
		return Default(), nil
	}
	m, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if extendDefault {
		return Merge(Default(), m), nil
	}
	return m, nil
}

// Encode writes the table as YAML, keys in sorted order.
func Encode(m *NameMap) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m.Entries()); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
