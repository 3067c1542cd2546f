package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/SichangHe/parse-rpsl-policy/pkg/mpimport/ast"
)

// ErrorKind categorizes the failure encountered while parsing.
type ErrorKind string

const (
	KindTokenMismatch     ErrorKind = "token_mismatch"     // Expected keyword/field not found
	KindPrematureKeyword  ErrorKind = "premature_keyword"  // Stop keyword where a field was required
	KindUnterminatedBlock ErrorKind = "unterminated_block" // Missing '}' or ';' between list items
	KindTrailingInput     ErrorKind = "trailing_input"     // Input left after a complete expression
	KindEmptyAfiList      ErrorKind = "empty_afi_list"     // "afi" without a family
	KindNestingTooDeep    ErrorKind = "nesting_too_deep"   // except/refine chain over the limit
	KindInputTooLarge     ErrorKind = "input_too_large"    // Input over the size limit
	KindIO                ErrorKind = "io"                 // Reading the input failed
)

// Error is a single parse failure anchored at an input position.
type Error struct {
	Kind       ErrorKind    // Category of error
	Message    string       // Error message
	Expected   []string     // What the grammar would have accepted at Location
	Location   ast.Location // Where the failure happened
	Context    string       // Rendered input line with a caret
	Suggestion string       // Suggested fix (optional)
}

// Error implements the error interface.
// It returns a formatted error message with location and context.
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] %s\n", e.Kind, e.Message))

	if e.Location.IsValid() {
		sb.WriteString(fmt.Sprintf("  --> %s (offset %d)\n", e.Location.String(), e.Location.Offset))
	}

	if e.Context != "" {
		sb.WriteString("  |\n")
		sb.WriteString(e.Context)
		sb.WriteString("  |\n")
	}

	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("  = suggestion: %s\n", e.Suggestion))
	}

	return sb.String()
}

// Offset returns the byte offset of the failure.
func (e *Error) Offset() int {
	return e.Location.Offset
}

// IsKind reports whether err is, or wraps, an *Error of the given kind.
// An *ErrorList matches if any of its errors does.
func IsKind(err error, kind ErrorKind) bool {
	var list *ErrorList
	if stderrors.As(err, &list) {
		return list.HasErrorKind(kind)
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// ErrorList collects errors from several attribute values, e.g. all
// mp-import lines of one aut-num object.
type ErrorList struct {
	Errors []*Error
}

// NewErrorList creates a new empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{
		Errors: make([]*Error, 0),
	}
}

// Add appends an error to the list.
func (el *ErrorList) Add(err *Error) {
	el.Errors = append(el.Errors, err)
}

// AddError creates and adds a new error with the given parameters.
func (el *ErrorList) AddError(kind ErrorKind, message string, location ast.Location) {
	el.Add(&Error{
		Kind:     kind,
		Message:  message,
		Location: location,
	})
}

// HasErrors returns true if the error list contains any errors.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// Count returns the number of errors in the list.
func (el *ErrorList) Count() int {
	return len(el.Errors)
}

// Error implements the error interface.
func (el *ErrorList) Error() string {
	if !el.HasErrors() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d error(s):\n\n", el.Count()))

	for i, err := range el.Errors {
		sb.WriteString(fmt.Sprintf("Error %d:\n", i+1))
		sb.WriteString(err.Error())
		sb.WriteString("\n")
	}

	return sb.String()
}

// ToError returns nil if the error list is empty, otherwise the list itself.
func (el *ErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}

// ByKind returns all errors of the given kind.
func (el *ErrorList) ByKind(kind ErrorKind) []*Error {
	var result []*Error
	for _, err := range el.Errors {
		if err.Kind == kind {
			result = append(result, err)
		}
	}
	return result
}

// HasErrorKind returns true if the list contains at least one error of kind.
func (el *ErrorList) HasErrorKind(kind ErrorKind) bool {
	for _, err := range el.Errors {
		if err.Kind == kind {
			return true
		}
	}
	return false
}

// ListJoin joins expectations the way messages print them:
// "a", "a or b", "a, b or c".
func ListJoin(items []string, sep, lastSep string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], sep) + " " + lastSep + " " + items[len(items)-1]
	}
}
