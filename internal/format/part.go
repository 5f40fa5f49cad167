// Package format parses message-format templates into literal and
// placeholder parts and validates them against argument counts.
package format

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

const (
	// AutoIndex marks a bare {} placeholder.
	AutoIndex = -1
	// NamedIndex marks a placeholder whose argument element is not numeric, e.g. {name}.
	NamedIndex = -2
)

// Part is one segment of a parsed template. It is either a Literal or a
// Placeholder.
type Part interface {
	// Position is the sequence number assigned during the scan.
	Position() int
	// Text returns the exact template substring covered by the part.
	Text() string

	part()
}

// Literal is a run of plain text.
type Literal struct {
	Pos   int
	Value string
}

func (l Literal) Position() int { return l.Pos }
func (l Literal) Text() string  { return l.Value }
func (Literal) part()           {}

// Placeholder is a braced region standing in for a runtime argument.
type Placeholder struct {
	Pos   int
	Raw   string // includes the braces
	Index int    // AutoIndex, NamedIndex, or the explicit argument index
}

func (p Placeholder) Position() int { return p.Pos }
func (p Placeholder) Text() string  { return p.Raw }
func (Placeholder) part()           {}

// Auto reports whether the placeholder is the bare {} form.
func (p Placeholder) Auto() bool {
	return p.Index == AutoIndex
}

// Key returns the argument element used to de-duplicate placeholders. Numeric
// indices are normalized so {01} and {1} share a key.
func (p Placeholder) Key() string {
	if p.Index >= 0 {
		return strconv.Itoa(p.Index)
	}
	return argumentElement(p.Raw)
}

// newPlaceholder derives the index from the raw placeholder text.
func newPlaceholder(pos int, raw string) Placeholder {
	ph := Placeholder{Pos: pos, Raw: raw, Index: AutoIndex}
	if raw == "{}" {
		return ph
	}
	elem := argumentElement(raw)
	if n, err := strconv.Atoi(elem); err == nil && n >= 0 {
		ph.Index = n
	} else {
		ph.Index = NamedIndex
	}
	return ph
}

// argumentElement returns the content before the first comma, as in
// {0,number,#.##}.
func argumentElement(raw string) string {
	content := strings.TrimSuffix(strings.TrimPrefix(raw, "{"), "}")
	if i := strings.IndexByte(content, ','); i >= 0 {
		content = content[:i]
	}
	return strings.TrimSpace(content)
}

// SortParts orders parts by position in place.
func SortParts(parts []Part) {
	slices.SortFunc(parts, func(a, b Part) int {
		return cmp.Compare(a.Position(), b.Position())
	})
}

// Join concatenates the parts in position order.
func Join(parts []Part) string {
	sorted := slices.Clone(parts)
	SortParts(sorted)

	var sb strings.Builder
	for _, p := range sorted {
		sb.WriteString(p.Text())
	}
	return sb.String()
}
