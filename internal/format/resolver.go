package format

import (
	"cmp"
	"slices"
)

// Placeholders returns the placeholder parts ordered by position.
func Placeholders(parts []Part) []Placeholder {
	var phs []Placeholder
	for _, p := range parts {
		if ph, ok := p.(Placeholder); ok {
			phs = append(phs, ph)
		}
	}
	// Parse already emits in order; sort anyway so callers may pass any slice.
	sortPlaceholders(phs)
	return phs
}

// ArgumentCount returns the number of distinct arguments the parts reference.
// Indexed placeholders are de-duplicated by key. Every bare {} counts as a
// new argument.
func ArgumentCount(parts []Part) int {
	count := 0
	seen := make(map[string]struct{})
	for _, ph := range Placeholders(parts) {
		if ph.Auto() {
			count++
			continue
		}
		if _, ok := seen[ph.Key()]; !ok {
			seen[ph.Key()] = struct{}{}
			count++
		}
	}
	return count
}

func sortPlaceholders(phs []Placeholder) {
	slices.SortStableFunc(phs, func(a, b Placeholder) int {
		return cmp.Compare(a.Pos, b.Pos)
	})
}
