package rpsl

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// DefaultEncoding is the label used when none is configured.
const DefaultEncoding = "latin1"

// LookupEncoding resolves a WHATWG encoding label such as "latin1",
// "iso-8859-1" or "utf-8".
func LookupEncoding(label string) (encoding.Encoding, error) {
	if strings.TrimSpace(label) == "" {
		label = DefaultEncoding
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", label, err)
	}
	return enc, nil
}

// NewDecodingReader wraps r so that it yields UTF-8 decoded from the
// encoding named by label.
func NewDecodingReader(r io.Reader, label string) (io.Reader, error) {
	enc, err := LookupEncoding(label)
	if err != nil {
		return nil, err
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}
