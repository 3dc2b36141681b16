// Package namemap resolves spreadsheet party names to canonical party ids.
package namemap

import (
	"sort"

	"resultsgen/internal/domain"
)

// NameMap is an immutable display name → party id table. Keys match
// exactly, including case and diacritics.
type NameMap struct {
	ids map[string]string
}

// New builds a NameMap from entries. The input map is copied.
func New(entries map[string]string) (*NameMap, error) {
	ids := make(map[string]string, len(entries))
	for name, id := range entries {
		if name == "" || id == "" {
			return nil, domain.ErrEmptyNameMapEntry
		}
		ids[name] = id
	}
	return &NameMap{ids: ids}, nil
}

// Lookup returns the mapped id for displayName, if any.
func (m *NameMap) Lookup(displayName string) (string, bool) {
	if m == nil {
		return "", false
	}
	id, ok := m.ids[displayName]
	return id, ok
}

// Resolve returns the mapped id for displayName, or its Slugify fallback.
func (m *NameMap) Resolve(displayName string) string {
	id, _ := m.ResolveMapped(displayName)
	return id
}

// ResolveMapped is Resolve that also reports whether the id came from the
// table rather than the fallback.
func (m *NameMap) ResolveMapped(displayName string) (string, bool) {
	if id, ok := m.Lookup(displayName); ok {
		return id, true
	}
	return Slugify(displayName), false
}

// Len returns the number of entries.
func (m *NameMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.ids)
}

// Entries returns a copy of the table.
func (m *NameMap) Entries() map[string]string {
	out := make(map[string]string, m.Len())
	if m == nil {
		return out
	}
	for k, v := range m.ids {
		out[k] = v
	}
	return out
}

// Names returns the display names in sorted order.
func (m *NameMap) Names() []string {
	names := make([]string, 0, m.Len())
	if m == nil {
		return names
	}
	for k := range m.ids {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Merge returns a new NameMap containing base overlaid with override.
// Entries in override win.
func Merge(base, override *NameMap) *NameMap {
	ids := base.Entries()
	for k, v := range override.Entries() {
		ids[k] = v
	}
	return &NameMap{ids: ids}
}
