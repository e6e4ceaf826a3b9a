package model

import "sort"

// FallbackColor is returned for names missing from a table. White keeps regions
// without data visibly distinct from colored ones.
const FallbackColor = "#fff"

// ColorTable maps a name to its CSS color.
type ColorTable map[string]string

// Get returns the color assigned to name.
func (t ColorTable) Get(name string) (string, bool) {
	color, ok := t[name]
	return color, ok
}

// Lookup returns the color assigned to name, or FallbackColor.
func (t ColorTable) Lookup(name string) string {
	return t.LookupOr(name, FallbackColor)
}

// LookupOr returns the color assigned to name, or fallback when absent.
func (t ColorTable) LookupOr(name, fallback string) string {
	if color, ok := t[name]; ok && color != "" {
		return color
	}
	return fallback
}

// Names returns the table's names in sorted order.
func (t ColorTable) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge copies every entry of other into t, overwriting existing names.
func (t ColorTable) Merge(other ColorTable) {
	for name, color := range other {
		t[name] = color
	}
}
