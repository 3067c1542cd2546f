package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SichangHe/parse-rpsl-policy/pkg/cli"
	"github.com/SichangHe/parse-rpsl-policy/pkg/ingest"
)

func TestLintCommand_File(t *testing.T) {
	out, _, err := execute(t, "", "lint", "--file", "testdata/ripe.db")
	if cli.ExitCode(err) != 1 {
		t.Fatalf("exit code = %d (err %v), want 1 for a dump with failures", cli.ExitCode(err), err)
	}

	for _, want := range []string{
		"AS3333 ripe.db:14 [token_mismatch] mp-import: afi ipv6.unicast from AS1",
		"file:testdata/ripe.db: 1 dumps, 4 objects, 2 aut-nums, 6 imports, 1 (16.66%) failed",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("lint output missing %q:\n%s", want, out)
		}
	}
}

func TestLintCommand_ExitZero(t *testing.T) {
	_, _, err := execute(t, "", "lint", "--file", "testdata/ripe.db", "--exit-zero")
	if err != nil {
		t.Errorf("lint --exit-zero error = %v, want nil", err)
	}
}

func TestLintCommand_JSON(t *testing.T) {
	out, _, _ := execute(t, "", "lint", "--file", "testdata/ripe.db", "--format", "json")

	var report ingest.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if report.Imports != 6 || report.Failed != 1 {
		t.Errorf("report = %d imports, %d failed, want 6, 1", report.Imports, report.Failed)
	}
	if len(report.Failures) != 1 || report.Failures[0].ErrorOffset != 25 {
		t.Errorf("failures = %+v", report.Failures)
	}
}

func TestLintCommand_Dir(t *testing.T) {
	dir := t.TempDir()
	clean := "aut-num: AS1\nmp-import: afi any from AS2 accept ANY\nsource: TEST\n"
	if err := os.WriteFile(filepath.Join(dir, "test.db"), []byte(clean), 0o644); err != nil {
		t.Fatal(err)
	}
	// Not a dump extension, so never read.
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("mp-import: broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := execute(t, "", "lint", "--dir", dir)
	if err != nil {
		t.Fatalf("lint --dir: %v", err)
	}
	if !strings.Contains(out, "1 dumps") || !strings.Contains(out, "1 imports") {
		t.Errorf("lint output = %q", out)
	}
}

func TestLintCommand_SourceFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"none", []string{"lint"}},
		{"file and dir", []string{"lint", "--file", "a.db", "--dir", "b"}},
		{"rev without repo", []string{"lint", "--file", "a.db", "--rev", "main"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, "", tt.args...)
			if cli.ExitCode(err) != 2 {
				t.Errorf("exit code = %d (err %v), want 2", cli.ExitCode(err), err)
			}
		})
	}
}

func TestLintCommand_MissingFile(t *testing.T) {
	_, _, err := execute(t, "", "lint", "--file", "testdata/nonexistent.db")
	if err == nil {
		t.Fatal("expected error for a missing dump")
	}
}
