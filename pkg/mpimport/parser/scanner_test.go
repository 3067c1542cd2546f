package parser

import "testing"

func TestState_Field(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		policy fieldPolicy
		want   string
		ok     bool
		rest   int
	}{
		{"plain stops at space", "  AS1 accept", fieldPlain, "AS1", true, 5},
		{"plain stops at semicolon", "pref=1;", fieldPlain, "pref=1", true, 6},
		{"plain stops at hash", "AS1#c", fieldPlain, "AS1", true, 3},
		{"plain keeps comma", "a,b c", fieldPlain, "a,b", true, 3},
		{"no comma stops at comma", "ipv4.unicast,ipv6", fieldNoComma, "ipv4.unicast", true, 12},
		{"spaced keeps blanks", "pref = 1 ; x", fieldSpaced, "pref = 1", true, 9},
		{"spaced stops at newline", "med=0\nx", fieldSpaced, "med=0", true, 5},
		{"empty", "   ", fieldPlain, "", false, 3},
		{"only semicolon", ";", fieldSpaced, "", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newState(tt.input, "", 0)
			got, ok := s.field(tt.policy)
			if ok != tt.ok || got != tt.want {
				t.Errorf("field() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.ok)
			}
			if s.pos != tt.rest {
				t.Errorf("pos = %d, want %d", s.pos, tt.rest)
			}
		})
	}
}

func TestState_Keyword(t *testing.T) {
	tests := []struct {
		input string
		kw    string
		want  bool
	}{
		{"from AS1", kwFrom, true},
		{"FROM AS1", kwFrom, true},
		{"From", kwFrom, true},
		{"from{", kwFrom, true},
		{"fromage", kwFrom, false},
		{"from-peers", kwFrom, false},
		{"from.x", kwFrom, false},
		{"from:x", kwFrom, false},
		{"acceptable", kwAccept, false},
		{"accept;", kwAccept, true},
		{"fro", kwFrom, false},
	}

	for _, tt := range tests {
		s := newState(tt.input, "", 0)
		if got := s.keyword(tt.kw); got != tt.want {
			t.Errorf("keyword(%q) on %q = %v, want %v", tt.kw, tt.input, got, tt.want)
		}
		if !tt.want && s.pos != 0 {
			t.Errorf("keyword(%q) on %q moved the cursor to %d", tt.kw, tt.input, s.pos)
		}
	}
}

func TestState_KeywordRecordsExpectation(t *testing.T) {
	s := newState("  frm", "", 0)
	s.keyword(kwFrom)
	if !s.farthest.set || s.farthest.pos != 2 {
		t.Fatalf("farthest = %+v, want a failure at 2", s.farthest)
	}
	if len(s.farthest.expected) != 1 || s.farthest.expected[0] != "'from'" {
		t.Errorf("expected = %q, want ['from']", s.farthest.expected)
	}
}

func TestState_Filter(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
		rest  int
	}{
		{"to end", "ANY AND NOT AS1", "ANY AND NOT AS1", true, 15},
		{"to semicolon", "ANY; x", "ANY", true, 3},
		{"to hash", "ANY # comment", "ANY", true, 4},
		{"prefix set", "{ 0.0.0.0/0^0-24 } ;", "{ 0.0.0.0/0^0-24 }", true, 19},
		{"nested braces", "{ {a} } }", "{ {a} }", true, 8},
		{"unbalanced close", "AS1 }", "AS1", true, 4},
		{"unclosed at end", "{ 1.0.0.0/8", "{ 1.0.0.0/8", true, 11},
		{"unclosed to semicolon", "{ AS1; AS2 }", "{ AS1", true, 5},
		{"keeps operators", "ANY except from AS2 accept AS2", "ANY except from AS2 accept AS2", true, 30},
		{"empty", "  ;", "", false, 2},
		{"empty at end", "", "", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newState(tt.input, "", 0)
			got, ok := s.filter()
			if ok != tt.ok || got != tt.want {
				t.Errorf("filter() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.ok)
			}
			if s.pos != tt.rest {
				t.Errorf("pos = %d, want %d", s.pos, tt.rest)
			}
		})
	}
}

func TestState_Semicolons(t *testing.T) {
	s := newState(";; ;x", "", 0)
	if !s.semicolons() {
		t.Fatal("semicolons() = false, want true")
	}
	if s.pos != 4 {
		t.Errorf("pos = %d, want 4", s.pos)
	}

	s = newState("x", "", 0)
	if s.semicolons() {
		t.Error("semicolons() on \"x\" = true, want false")
	}
}

func TestState_Loc(t *testing.T) {
	s := newState("ab\ncd\n\nef", "src", 0)
	tests := []struct {
		offset, line, column int
	}{
		{0, 1, 1},
		{2, 1, 3},
		{3, 2, 1},
		{4, 2, 2},
		{6, 3, 1},
		{7, 4, 1},
		{9, 4, 3},
	}
	for _, tt := range tests {
		loc := s.loc(tt.offset)
		if loc.Line != tt.line || loc.Column != tt.column {
			t.Errorf("loc(%d) = %d:%d, want %d:%d", tt.offset, loc.Line, loc.Column, tt.line, tt.column)
		}
		if loc.Source != "src" || loc.Offset != tt.offset {
			t.Errorf("loc(%d) = %+v", tt.offset, loc)
		}
	}
}

func TestState_TokenAt(t *testing.T) {
	s := newState("from AS1\taccept", "", 0)
	if got := s.tokenAt(5); got != "AS1" {
		t.Errorf("tokenAt(5) = %q, want %q", got, "AS1")
	}
	if got := s.tokenAt(15); got != "" {
		t.Errorf("tokenAt(end) = %q, want empty", got)
	}
}
