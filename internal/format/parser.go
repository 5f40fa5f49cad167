package format

import (
	"fmt"
	"strings"
)

type scanState int

const (
	inLiteral scanState = iota
	inPlaceholder
)

// Parse splits a template into literal and placeholder parts, in scan order.
//
// A placeholder is '{' followed by any run of non-'}' bytes and a closing '}'.
// An opening brace with no closer after it is kept as literal text, as is
// everything following it.
func Parse(template string) []Part {
	var parts []Part
	pos := 0
	state := inLiteral
	start := 0 // start of the current literal or placeholder

	emit := func(p Part) {
		parts = append(parts, p)
		pos++
	}

	for i := 0; i < len(template); {
		switch state {
		case inLiteral:
			open := strings.IndexByte(template[i:], '{')
			if open < 0 {
				i = len(template)
				continue
			}
			open += i
			if strings.IndexByte(template[open+1:], '}') < 0 {
				// No closer anywhere ahead: nothing else can match.
				i = len(template)
				continue
			}
			if open > start {
				emit(Literal{Pos: pos, Value: template[start:open]})
			}
			start = open
			i = open + 1
			state = inPlaceholder
		case inPlaceholder:
			end := i + strings.IndexByte(template[i:], '}')
			emit(newPlaceholder(pos, template[start:end+1]))
			i = end + 1
			start = i
			state = inLiteral
		}
	}

	if start < len(template) {
		emit(Literal{Pos: pos, Value: template[start:]})
	}
	return parts
}

// StructuralError reports a template whose braces are not paired in order.
type StructuralError struct {
	Template string
	Offset   int // byte offset of the unmatched '{'
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("Format %s appears to be missing an ending bracket.", e.Template)
}

// CheckBrackets pairs each '{' with the next '}' in order. It fails when a
// closer is missing or sits before the opener it is paired with. The scan
// stops at the first failure.
func CheckBrackets(template string) *StructuralError {
	open := strings.IndexByte(template, '{')
	closer := strings.IndexByte(template, '}')
	for open >= 0 {
		if closer < open {
			return &StructuralError{Template: template, Offset: open}
		}
		next := indexFrom(template, '{', closer+1)
		if next >= 0 {
			closer = indexFrom(template, '}', next+1)
		}
		open = next
	}
	return nil
}

func indexFrom(s string, c byte, from int) int {
	if from >= len(s) {
		return -1
	}
	i := strings.IndexByte(s[from:], c)
	if i < 0 {
		return -1
	}
	return i + from
}
