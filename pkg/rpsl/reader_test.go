package rpsl

import (
	"os"
	"strings"
	"testing"
)

func TestReader_Objects(t *testing.T) {
	f, err := os.Open("testdata/sample.db")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	objects, err := ReadAll(f)
	if err != nil {
		t.Fatalf("ReadAll() failed: %v", err)
	}

	wantKeys := []struct{ class, key string }{
		{"aut-num", "AS3333"},
		{"as-set", "AS-RIPENCC"},
		{"route", "193.0.0.0/21"},
		{"aut-num", "AS8365"},
	}
	if len(objects) != len(wantKeys) {
		t.Fatalf("len(objects) = %d, want %d", len(objects), len(wantKeys))
	}
	for i, want := range wantKeys {
		if objects[i].Class != want.class || objects[i].Key != want.key {
			t.Errorf("objects[%d] = %s %s, want %s %s", i, objects[i].Class, objects[i].Key, want.class, want.key)
		}
	}

	asn := objects[0]
	if asn.Line != 4 {
		t.Errorf("Line = %d, want 4", asn.Line)
	}
	if asn.Source() != "RIPE" {
		t.Errorf("Source() = %q, want %q", asn.Source(), "RIPE")
	}
	if name, _ := asn.First("AS-NAME"); name != "RIPE-NCC-AS" {
		t.Errorf("First(as-name) = %q", name)
	}

	imports := asn.Get("mp-import")
	if len(imports) != 4 {
		t.Fatalf("len(mp-import) = %d, want 4", len(imports))
	}
	if want := "afi ipv6.unicast from AS6939 action pref=100; accept ANY"; imports[1].Value != want {
		t.Errorf("folded value = %q, want %q", imports[1].Value, want)
	}
	if imports[1].Line != 9 {
		t.Errorf("folded attribute Line = %d, want 9", imports[1].Line)
	}
	if want := "afi ipv4.unicast, ipv6.unicast from AS2895 action pref=10; accept ANY"; imports[2].Value != want {
		t.Errorf("'+' continuation value = %q, want %q", imports[2].Value, want)
	}
}

func TestReader_CommentsAndMalformed(t *testing.T) {
	input := "% header\n" +
		"aut-num: AS1 # trailing\n" +
		"# whole line comment\n" +
		"not an attribute\n" +
		"remarks:\n" +
		"  continued\n" +
		"\n\n\n" +
		"  orphan continuation\n" +
		"person: Someone\r\n"

	r := NewReader(strings.NewReader(input))

	first, err := r.Next()
	if err != nil {
		t.Fatalf("Next() failed: %v", err)
	}
	if first.Key != "AS1" {
		t.Errorf("Key = %q, want %q", first.Key, "AS1")
	}
	if v, _ := first.First("remarks"); v != "continued" {
		t.Errorf("remarks = %q, want %q", v, "continued")
	}
	if len(first.Attributes) != 2 {
		t.Errorf("len(Attributes) = %d, want 2", len(first.Attributes))
	}

	second, err := r.Next()
	if err != nil {
		t.Fatalf("Next() failed: %v", err)
	}
	if second.Class != "person" || second.Key != "Someone" {
		t.Errorf("second = %s %q, want person Someone", second.Class, second.Key)
	}

	if _, err := r.Next(); err == nil {
		t.Error("Next() after last object returned nil error, want io.EOF")
	}
	if r.Malformed() != 2 {
		t.Errorf("Malformed() = %d, want 2", r.Malformed())
	}
	if r.Line() != 11 {
		t.Errorf("Line() = %d, want 11", r.Line())
	}
}

func TestDecodingReader_Latin1(t *testing.T) {
	f, err := os.Open("testdata/latin1.db")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	decoded, err := NewDecodingReader(f, "latin1")
	if err != nil {
		t.Fatalf("NewDecodingReader() failed: %v", err)
	}
	objects, err := ReadAll(decoded)
	if err != nil {
		t.Fatalf("ReadAll() failed: %v", err)
	}
	v, _ := objects[0].First("mp-import")
	if !strings.HasSuffix(v, "AS-Café") {
		t.Errorf("mp-import = %q, want it to end in AS-Café", v)
	}
}

func TestLookupEncoding(t *testing.T) {
	for _, label := range []string{"", "latin1", "ISO-8859-1", "utf-8"} {
		if _, err := LookupEncoding(label); err != nil {
			t.Errorf("LookupEncoding(%q) failed: %v", label, err)
		}
	}
	if _, err := LookupEncoding("klingon"); err == nil {
		t.Error("LookupEncoding(klingon) succeeded, want error")
	}
}
