package ast

import "fmt"

// Location represents the position of an AST node in the original attribute
// value. Offsets are byte offsets into the parsed text.
type Location struct {
	Source string // Name of the input (file, object key), optional
	Offset int    // Byte offset (0-based)
	Line   int    // Line number (1-based)
	Column int    // Column number (1-based, in bytes)
}

// String returns a human-readable representation of the location.
// Format: "source:line:column" or "offset N" when no line is known.
func (l Location) String() string {
	if !l.IsValid() {
		return "<unknown>"
	}
	source := l.Source
	if source == "" {
		source = "<input>"
	}
	return fmt.Sprintf("%s:%d:%d", source, l.Line, l.Column)
}

// IsValid returns true if the location carries line information.
func (l Location) IsValid() bool {
	return l.Line > 0
}

// LocationAt computes the line and column of offset within text.
// Offsets past the end of text are clamped to the end.
func LocationAt(text string, offset int, source string) Location {
	if offset > len(text) {
		offset = len(text)
	}
	if offset < 0 {
		offset = 0
	}

	line, col := 1, 1
	for i := 0; i < offset; i++ {
		if text[i] == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}

	return Location{
		Source: source,
		Offset: offset,
		Line:   line,
		Column: col,
	}
}
