package mpimport

import (
	"bufio"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/SichangHe/parse-rpsl-policy/pkg/mpimport/ast"
	mpErrors "github.com/SichangHe/parse-rpsl-policy/pkg/mpimport/errors"
)

// loadExamples reads testdata/mp-import.txt, one attribute value per line.
func loadExamples(t testing.TB) []string {
	t.Helper()
	f, err := os.Open("testdata/mp-import.txt")
	if err != nil {
		t.Fatalf("open testdata: %v", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("read testdata: %v", err)
	}
	return lines
}

func TestParse_Examples(t *testing.T) {
	examples := loadExamples(t)
	if len(examples) != 13 {
		t.Fatalf("len(examples) = %d, want 13", len(examples))
	}

	for _, text := range examples {
		doc, err := Parse(text)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", text, err)
			continue
		}
		if !doc.Expression.HasAfiList() {
			t.Errorf("Parse(%q) has no afi list", text)
		}
	}
}

func TestParse_ExampleLargeList(t *testing.T) {
	examples := loadExamples(t)
	doc, err := Parse(examples[8])
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	term := doc.Expression.Expression.Term
	if !term.IsList() {
		t.Fatalf("Term kind = %q, want %q", term.Kind, ast.TermList)
	}
	if len(term.Factors) != 32 {
		t.Errorf("len(Factors) = %d, want 32", len(term.Factors))
	}
	for i, f := range term.Factors {
		if len(f.Peerings) != 1 {
			t.Errorf("Factors[%d] has %d peerings, want 1", i, len(f.Peerings))
		}
		if f.Filter == "" {
			t.Errorf("Factors[%d] has an empty filter", i)
		}
	}
}

func TestParseToMap(t *testing.T) {
	got, err := ParseToMap("afi ipv6.unicast from AS6939 action pref=100; accept ANY")
	if err != nil {
		t.Fatalf("ParseToMap() failed: %v", err)
	}
	want := map[string]any{
		"afi-list": []any{"ipv6.unicast"},
		"from": []any{
			map[string]any{"mp-peering": []any{"AS6939"}, "actions": []any{"pref=100"}},
		},
		"mp-filter": "ANY",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseToMap() =\n%v\nwant\n%v", got, want)
	}

	if _, err := ParseToMap("from AS1"); err == nil {
		t.Error("ParseToMap(\"from AS1\") succeeded, want error")
	}
}

func TestParse_RoundTrip(t *testing.T) {
	inputs := append(loadExamples(t),
		"protocol BGP4 into OSPF from AS1 accept ANY",
		"afi ipv4 { from AS2 accept ANY; } except afi ipv6 from AS1 accept ANY",
		"{ from AS-ANY action pref = 1; accept community(3560:10); } refine { from AS1 accept AS1; } except from AS2 accept AS2",
		"from AS1 accept ANY; refine from AS2 action med=0; accept AS2",
	)

	for _, text := range inputs {
		first, err := Parse(text)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", text, err)
			continue
		}
		rendered := first.String()
		second, err := Parse(rendered)
		if err != nil {
			t.Errorf("Parse(String()) failed for %q: %v\nrendered: %q", text, err, rendered)
			continue
		}
		if !reflect.DeepEqual(first.ToMap(), second.ToMap()) {
			t.Errorf("round trip changed the tree\ninput:    %q\nrendered: %q", text, rendered)
		}
	}
}

func TestParseNamed(t *testing.T) {
	_, err := ParseNamed("afi from AS1 accept ANY", "AS3333:mp-import:1")
	if err == nil {
		t.Fatal("ParseNamed() succeeded, want error")
	}
	if !mpErrors.IsKind(err, mpErrors.KindEmptyAfiList) {
		t.Errorf("error kind = %v, want %q", err, mpErrors.KindEmptyAfiList)
	}
	if !strings.Contains(err.Error(), "AS3333:mp-import:1:1:5") {
		t.Errorf("Error() = %q, want the source location", err.Error())
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"afi ipv6.unicast from AS9002 accept ANY", true},
		{"from AS1 accept ANY;", true},
		{"from AS1", false},
		{"", false},
		{"{ from AS1 accept ANY", false},
	}
	for _, tt := range tests {
		if got := Valid(tt.text); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestParse_LongExceptChain(t *testing.T) {
	text := strings.Repeat("from AS1 accept ANY; except ", 70) + "from AS2 accept ANY"

	doc, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := doc.Expression.Expression.Depth(); got != 70 {
		t.Errorf("Depth() = %d, want 70", got)
	}
}
