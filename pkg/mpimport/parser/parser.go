package parser

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/SichangHe/parse-rpsl-policy/pkg/mpimport/ast"
	mpErrors "github.com/SichangHe/parse-rpsl-policy/pkg/mpimport/errors"
)

// DefaultMaxInputSize bounds a single attribute value. Real-world
// mp-import values stay well below a few kilobytes.
const DefaultMaxInputSize = 64 * 1024

// Parser parses mp-import attribute values into syntax trees.
// A Parser only holds limits; it is safe for concurrent use once
// configured, and every Parse call works on its own state.
type Parser struct {
	maxInputSize int // Maximum input size in bytes
	maxDepth     int // Maximum except/refine nesting
}

// NewParser creates a new parser with the default input size limit and
// no except/refine depth limit. Chains of any length are grammatical;
// callers parsing untrusted dumps cap them with WithMaxDepth.
func NewParser() *Parser {
	return &Parser{
		maxInputSize: DefaultMaxInputSize,
	}
}

// WithMaxInputSize sets the maximum input size. Zero or less disables the
// check.
func (p *Parser) WithMaxInputSize(size int) *Parser {
	p.maxInputSize = size
	return p
}

// WithMaxDepth sets the maximum except/refine nesting depth. Zero or
// less disables the check.
func (p *Parser) WithMaxDepth(depth int) *Parser {
	p.maxDepth = depth
	return p
}

// MaxInputSize returns the configured input size limit.
func (p *Parser) MaxInputSize() int {
	return p.maxInputSize
}

// MaxDepth returns the configured nesting limit.
func (p *Parser) MaxDepth() int {
	return p.maxDepth
}

// Parse parses one mp-import attribute value (without the "mp-import:"
// prefix and with continuation lines already folded).
// On failure it returns a *errors.Error and no tree.
func (p *Parser) Parse(text string) (*ast.Document, error) {
	return p.ParseNamed(text, "")
}

// ParseNamed is like Parse but records source as the input name in
// locations and errors, e.g. "AS3333 mp-import line 12".
func (p *Parser) ParseNamed(text, source string) (*ast.Document, error) {
	if p.maxInputSize > 0 && len(text) > p.maxInputSize {
		return nil, &mpErrors.Error{
			Kind:     mpErrors.KindInputTooLarge,
			Message:  fmt.Sprintf("input size %d exceeds maximum %d bytes", len(text), p.maxInputSize),
			Location: ast.Location{Source: source},
		}
	}

	s := newState(text, source, p.maxDepth)
	doc, ok := s.document()
	if !ok || s.aborted {
		return nil, s.error()
	}
	return doc, nil
}

// failure is the farthest failure seen so far during one parse.
type failure struct {
	set      bool
	pos      int
	kind     mpErrors.ErrorKind
	message  string
	expected []string
}

// state is the per-call cursor over the input.
type state struct {
	input      string
	source     string
	pos        int
	maxDepth   int
	lineStarts []int

	farthest failure
	aborted  bool
}

func newState(input, source string, maxDepth int) *state {
	starts := []int{0}
	for i := 0; i < len(input); i++ {
		if input[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &state{
		input:      input,
		source:     source,
		maxDepth:   maxDepth,
		lineStarts: starts,
	}
}

// loc converts a byte offset into a Location.
func (s *state) loc(offset int) ast.Location {
	line := sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > offset
	})
	return ast.Location{
		Source: s.source,
		Offset: offset,
		Line:   line,
		Column: offset - s.lineStarts[line-1] + 1,
	}
}

// expect records that what would have been accepted at pos.
func (s *state) expect(pos int, what string) {
	s.record(pos, mpErrors.KindTokenMismatch, "", what)
}

// failAt records a failure with a specific kind and message.
func (s *state) failAt(pos int, kind mpErrors.ErrorKind, message string) {
	s.record(pos, kind, message, "")
}

// abort records a failure that ends the parse regardless of alternatives.
func (s *state) abort(pos int, kind mpErrors.ErrorKind, message string) {
	s.farthest = failure{set: true, pos: pos, kind: kind, message: message}
	s.aborted = true
}

// record keeps the failure with the greatest offset. Expectations at the
// same offset are merged, and a specific kind replaces a plain mismatch.
func (s *state) record(pos int, kind mpErrors.ErrorKind, message, expected string) {
	if s.aborted {
		return
	}
	f := &s.farthest
	if f.set && pos < f.pos {
		return
	}
	if !f.set || pos > f.pos {
		*f = failure{set: true, pos: pos, kind: kind, message: message}
		if expected != "" {
			f.expected = []string{expected}
		}
		return
	}

	if expected != "" && !slices.Contains(f.expected, expected) {
		f.expected = append(f.expected, expected)
	}
	if f.kind == mpErrors.KindTokenMismatch && kind != mpErrors.KindTokenMismatch {
		f.kind = kind
		f.message = message
	}
}

// error builds the reported error from the farthest failure.
func (s *state) error() *mpErrors.Error {
	f := s.farthest
	if !f.set {
		f = failure{pos: s.pos, kind: mpErrors.KindTokenMismatch, message: "no match"}
	}

	found := "end of input"
	token := s.tokenAt(f.pos)
	if token != "" {
		found = fmt.Sprintf("%q", token)
	}

	message := f.message
	if message == "" {
		message = fmt.Sprintf("expected %s, found %s", mpErrors.ListJoin(f.expected, ", ", "or"), found)
	}

	err := &mpErrors.Error{
		Kind:     f.kind,
		Message:  message,
		Expected: slices.Clone(f.expected),
		Location: s.loc(f.pos),
	}
	err.Suggestion = s.suggest(f, token)
	return mpErrors.WithContext(err, s.input)
}

func (s *state) suggest(f failure, token string) string {
	if f.kind != mpErrors.KindTokenMismatch {
		return mpErrors.SuggestForKind(f.kind)
	}
	if hint := mpErrors.SuggestKeyword(token, f.expected); hint != "" {
		return hint
	}
	if token == "" && slices.Contains(f.expected, quote(kwAccept)) {
		return "Add 'accept <filter>' after the peering"
	}
	if slices.Contains(f.expected, quote(kwFrom)) && !strings.EqualFold(token, kwFrom) {
		return "An import factor starts with 'from <peering>'"
	}
	return ""
}
