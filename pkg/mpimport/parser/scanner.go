package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// fieldPolicy selects which characters form an atomic field.
type fieldPolicy int

const (
	// fieldPlain is a run of printable, non-space characters except '#' and ';'.
	fieldPlain fieldPolicy = iota
	// fieldNoComma is fieldPlain without ','; used for afi lists.
	fieldNoComma
	// fieldSpaced is fieldPlain plus blanks; used for action statements.
	fieldSpaced
)

func (p fieldPolicy) allows(r rune) bool {
	switch r {
	case ';', '#':
		return false
	case ',':
		if p == fieldNoComma {
			return false
		}
	case ' ', '\t':
		return p == fieldSpaced
	}
	return unicode.IsPrint(r) && !unicode.IsSpace(r)
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// skipSpace advances the cursor past whitespace.
func (s *state) skipSpace() {
	for s.pos < len(s.input) && isSpace(s.input[s.pos]) {
		s.pos++
	}
}

func (s *state) atEnd() bool {
	return s.pos >= len(s.input)
}

// field consumes the longest run of characters allowed by policy.
// Spaced fields have trailing blanks trimmed. It fails without recording an
// expectation; callers know what they were looking for.
func (s *state) field(policy fieldPolicy) (string, bool) {
	s.skipSpace()
	start := s.pos
	for s.pos < len(s.input) {
		r, size := utf8.DecodeRuneInString(s.input[s.pos:])
		if !policy.allows(r) {
			break
		}
		s.pos += size
	}

	text := s.input[start:s.pos]
	if policy == fieldSpaced {
		text = strings.TrimRight(text, " \t")
	}
	if text == "" {
		s.pos = start
		return "", false
	}
	return text, true
}

// matchKeywordAt reports whether kw starts at offset with a word boundary
// after it.
func (s *state) matchKeywordAt(offset int, kw string) bool {
	end := offset + len(kw)
	if end > len(s.input) {
		return false
	}
	if !strings.EqualFold(s.input[offset:end], kw) {
		return false
	}
	return end == len(s.input) || !isIdentByte(s.input[end])
}

// keyword consumes kw or records it as expected at the cursor.
func (s *state) keyword(kw string) bool {
	s.skipSpace()
	if s.matchKeywordAt(s.pos, kw) {
		s.pos += len(kw)
		return true
	}
	s.expect(s.pos, quote(kw))
	return false
}

// peekKeyword reports which of kws starts at the cursor without consuming it.
func (s *state) peekKeyword(kws ...string) (string, bool) {
	s.skipSpace()
	for _, kw := range kws {
		if s.matchKeywordAt(s.pos, kw) {
			return kw, true
		}
	}
	return "", false
}

// literal consumes the single byte c or records it as expected.
func (s *state) literal(c byte) bool {
	s.skipSpace()
	if s.pos < len(s.input) && s.input[s.pos] == c {
		s.pos++
		return true
	}
	s.expect(s.pos, quote(string(c)))
	return false
}

// peekByte reports whether c is the next non-space byte.
func (s *state) peekByte(c byte) bool {
	s.skipSpace()
	return s.pos < len(s.input) && s.input[s.pos] == c
}

// semicolons consumes a run of one or more ';'.
func (s *state) semicolons() bool {
	if !s.literal(';') {
		return false
	}
	for s.peekByte(';') {
		s.pos++
	}
	return true
}

// filter consumes <mp-filter> text: everything up to ';', '#', an
// unbalanced '}' or the end of input. Braces inside the filter are depth
// counted so prefix sets such as "{ 0.0.0.0/0^0-24 }" stay in the filter.
// Braces need not balance: the filter is opaque, so an unclosed '{' is
// kept as written and ';' or '#' still ends the filter inside one.
func (s *state) filter() (string, bool) {
	s.skipSpace()
	start := s.pos
	depth := 0

scan:
	for s.pos < len(s.input) {
		switch s.input[s.pos] {
		case ';', '#':
			break scan
		case '{':
			depth++
		case '}':
			if depth == 0 {
				break scan
			}
			depth--
		}
		s.pos++
	}

	text := strings.TrimRightFunc(s.input[start:s.pos], unicode.IsSpace)
	if text == "" {
		s.pos = start
		return "", false
	}
	return text, true
}

// tokenAt returns the whitespace delimited token starting at offset, for
// error messages.
func (s *state) tokenAt(offset int) string {
	if offset >= len(s.input) {
		return ""
	}
	end := offset
	for end < len(s.input) && !isSpace(s.input[end]) {
		end++
	}
	return s.input[offset:end]
}
