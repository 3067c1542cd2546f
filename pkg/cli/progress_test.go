package cli

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func TestSimpleProgressBasic(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := NewProgressReporter(buf, "dumps")

	progress.Start(4)
	progress.Update(2)
	progress.Finish()

	output := buf.String()
	if !strings.Contains(output, "Progress:") {
		t.Error("Expected progress output to contain 'Progress:'")
	}
	if !strings.Contains(output, "(4/4)") {
		t.Errorf("Expected final count (4/4) in %q", output)
	}
	if !strings.Contains(output, "dumps/s") {
		t.Errorf("Expected unit in rate, got %q", output)
	}
	if !strings.HasSuffix(output, "\n") {
		t.Error("Finish() should end the progress line")
	}
}

func TestSimpleProgressClampsUpdate(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := NewProgressReporter(buf, "dumps").(*SimpleProgress)

	progress.Start(2)
	progress.Update(5)

	if progress.current != 2 {
		t.Errorf("current = %d, want 2", progress.current)
	}
}

func TestSimpleProgressZeroTotal(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := NewProgressReporter(buf, "").(*SimpleProgress)

	progress.Start(0)
	progress.Update(0)
	progress.Finish()

	if buf.Len() != 0 {
		t.Errorf("output = %q, want empty for zero total", buf.String())
	}
	if progress.unit != "items" {
		t.Errorf("unit = %q, want items", progress.unit)
	}
}

func TestSimpleProgressError(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := NewProgressReporter(buf, "dumps")

	progress.Start(100)
	progress.Error(fmt.Errorf("test error"))

	output := buf.String()
	if !strings.Contains(output, "Error:") {
		t.Error("Expected error output to contain 'Error:'")
	}
	if !strings.Contains(output, "test error") {
		t.Error("Expected error output to contain error message")
	}
}

func TestSimpleProgressConcurrent(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := NewProgressReporter(buf, "dumps")

	progress.Start(1000)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(start int) {
			for j := 0; j < 100; j++ {
				progress.Update(int64(start*100 + j))
			}
			done <- true
		}(i)
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	progress.Finish()

	if buf.Len() == 0 {
		t.Error("Expected some progress output")
	}
}

func TestNewProgressReporterNilWriter(t *testing.T) {
	progress := NewProgressReporter(nil, "dumps")
	if progress == nil {
		t.Fatal("NewProgressReporter(nil) should not return nil")
	}
}
