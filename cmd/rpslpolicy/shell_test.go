package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/SichangHe/parse-rpsl-policy/pkg/cli"
	"github.com/SichangHe/parse-rpsl-policy/pkg/mpimport/parser"
)

func newTestShell() (*shell, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return &shell{parser: parser.NewParser(), format: cli.FormatText, out: buf}, buf
}

func TestShell_ParsesLines(t *testing.T) {
	sh, buf := newTestShell()

	if err := sh.handle("  from AS1 accept ANY  "); err != nil {
		t.Fatalf("handle() error = %v", err)
	}
	if !strings.HasPrefix(buf.String(), "from AS1 accept ANY;\n") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestShell_ParseErrorIsPrinted(t *testing.T) {
	sh, buf := newTestShell()

	if err := sh.handle("from AS1"); err != nil {
		t.Fatalf("handle() error = %v, want parse errors printed instead", err)
	}
	if !strings.Contains(buf.String(), "shell") {
		t.Errorf("error should name the shell as its source:\n%s", buf.String())
	}
}

func TestShell_Commands(t *testing.T) {
	sh, buf := newTestShell()

	if err := sh.handle(":format json"); err != nil {
		t.Fatalf(":format json error = %v", err)
	}
	if sh.format != cli.FormatJSON {
		t.Errorf("format = %q, want json", sh.format)
	}

	buf.Reset()
	if err := sh.handle("from AS1 accept ANY"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"mp-filter": "ANY"`) {
		t.Errorf("json output = %s", buf.String())
	}

	if err := sh.handle(":summary"); err != nil {
		t.Fatal(err)
	}
	if !sh.summary {
		t.Error(":summary did not enable summaries")
	}

	if err := sh.handle(":format csv"); err == nil {
		t.Error(":format csv should fail")
	}
	if err := sh.handle(":bogus"); err == nil {
		t.Error("unknown command should fail")
	}
	if err := sh.handle(":quit"); !errors.Is(err, errQuit) {
		t.Errorf(":quit error = %v, want errQuit", err)
	}
}

func TestShell_BlankLine(t *testing.T) {
	sh, buf := newTestShell()
	if err := sh.handle("   "); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("blank line produced output %q", buf.String())
	}
}
