package rpsl

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// maxLineSize bounds a single physical line of a dump.
const maxLineSize = 1024 * 1024

// Reader splits an RPSL dump into objects. It expects UTF-8 input; wrap
// the source with NewDecodingReader for other encodings.
type Reader struct {
	scanner   *bufio.Scanner
	line      int
	malformed int
	pending   *Object
}

// NewReader creates a reader over r.
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Reader{scanner: scanner}
}

// Next returns the next object, or io.EOF after the last one.
func (r *Reader) Next() (*Object, error) {
	for r.scanner.Scan() {
		r.line++
		raw := strings.TrimRight(r.scanner.Text(), "\r")

		if strings.TrimSpace(raw) == "" {
			if obj := r.flush(); obj != nil {
				return obj, nil
			}
			continue
		}

		switch raw[0] {
		case '%', '#':
			continue
		case ' ', '\t', '+':
			r.continueAttribute(raw[1:])
			continue
		}

		name, value, ok := strings.Cut(raw, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" || strings.ContainsAny(name, " \t") {
			r.malformed++
			continue
		}

		if r.pending == nil {
			r.pending = &Object{Line: r.line}
		}
		r.pending.Attributes = append(r.pending.Attributes, Attribute{
			Name:  strings.ToLower(name),
			Value: stripComment(value),
			Line:  r.line,
		})
	}

	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("read dump at line %d: %w", r.line+1, err)
	}
	if obj := r.flush(); obj != nil {
		return obj, nil
	}
	return nil, io.EOF
}

// Line returns the number of physical lines read so far.
func (r *Reader) Line() int {
	return r.line
}

// Malformed returns how many lines were neither attributes, continuations
// nor comments.
func (r *Reader) Malformed() int {
	return r.malformed
}

func (r *Reader) continueAttribute(rest string) {
	if r.pending == nil || len(r.pending.Attributes) == 0 {
		r.malformed++
		return
	}
	value := stripComment(rest)
	if value == "" {
		return
	}
	attr := &r.pending.Attributes[len(r.pending.Attributes)-1]
	if attr.Value == "" {
		attr.Value = value
	} else {
		attr.Value += " " + value
	}
}

func (r *Reader) flush() *Object {
	obj := r.pending
	r.pending = nil
	if obj == nil || len(obj.Attributes) == 0 {
		return nil
	}
	obj.Class = obj.Attributes[0].Name
	obj.Key = obj.Attributes[0].Value
	return obj
}

// stripComment drops an end-of-line '#' comment and surrounding blanks.
func stripComment(s string) string {
	if i := strings.IndexByte(s, '#'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// ReadAll reads every object of r.
func ReadAll(r io.Reader) ([]*Object, error) {
	reader := NewReader(r)
	var objects []*Object
	for {
		obj, err := reader.Next()
		if err == io.EOF {
			return objects, nil
		}
		if err != nil {
			return objects, err
		}
		objects = append(objects, obj)
	}
}
