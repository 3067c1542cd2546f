package errors

import (
	"fmt"
	"strings"

	"github.com/SichangHe/parse-rpsl-policy/pkg/mpimport/ast"
)

// maxContextWidth bounds how much of a long line is shown around the caret.
const maxContextWidth = 72

// ExtractContext renders the input line containing location with a caret
// under the failing column. Long lines are windowed around the caret.
func ExtractContext(input string, location ast.Location) string {
	if !location.IsValid() {
		return ""
	}

	lines := strings.Split(input, "\n")
	idx := location.Line - 1
	if idx < 0 || idx >= len(lines) {
		return ""
	}
	line := strings.TrimRight(lines[idx], "\r")
	col := location.Column - 1
	if col > len(line) {
		col = len(line)
	}

	// Window long attribute values so the caret stays visible.
	start := 0
	prefix, suffix := "", ""
	if len(line) > maxContextWidth {
		start = col - maxContextWidth/2
		if start < 0 {
			start = 0
		}
		end := start + maxContextWidth
		if end > len(line) {
			end = len(line)
			start = end - maxContextWidth
		}
		if start > 0 {
			prefix = "..."
		}
		if end < len(line) {
			suffix = "..."
		}
		line = line[start:end]
	}

	lineNum := fmt.Sprintf("%d", location.Line)
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("-> %s | %s%s%s\n", lineNum, prefix, line, suffix))
	padding := strings.Repeat(" ", len(prefix)+col-start)
	sb.WriteString(fmt.Sprintf("   %s | %s^\n", strings.Repeat(" ", len(lineNum)), padding))
	return sb.String()
}

// WithContext fills err.Context from the parsed input and returns err.
func WithContext(err *Error, input string) *Error {
	if err.Location.IsValid() {
		err.Context = ExtractContext(input, err.Location)
	}
	return err
}
