package mpimport

import (
	"github.com/SichangHe/parse-rpsl-policy/pkg/mpimport/ast"
	"github.com/SichangHe/parse-rpsl-policy/pkg/mpimport/parser"
)

// defaultParser is shared by the package level helpers. It is never
// reconfigured after initialization.
var defaultParser = parser.NewParser()

// Parse parses one mp-import attribute value. Input is limited to
// parser.DefaultMaxInputSize bytes; except/refine chains are not capped.
func Parse(text string) (*ast.Document, error) {
	return defaultParser.Parse(text)
}

// ParseNamed parses text and records source in locations and errors.
func ParseNamed(text, source string) (*ast.Document, error) {
	return defaultParser.ParseNamed(text, source)
}

// ParseToMap parses text and returns the string keyed tree used by
// external tooling (see ast.Document.ToMap).
func ParseToMap(text string) (map[string]any, error) {
	doc, err := defaultParser.Parse(text)
	if err != nil {
		return nil, err
	}
	return doc.ToMap(), nil
}

// Valid reports whether text is a well-formed mp-import value.
func Valid(text string) bool {
	_, err := defaultParser.Parse(text)
	return err == nil
}
