package rpsl

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/SichangHe/parse-rpsl-policy/pkg/mpimport/ast"
	mpErrors "github.com/SichangHe/parse-rpsl-policy/pkg/mpimport/errors"
	"github.com/SichangHe/parse-rpsl-policy/pkg/mpimport/parser"
)

const (
	// ClassAutNum is the object class carrying routing policy.
	ClassAutNum = "aut-num"
	// AttrMPImport is the multiprotocol import attribute (RFC 4012).
	AttrMPImport = "mp-import"
	// AttrImport is the IPv4 only import attribute (RFC 2622). Its value
	// is a subset of the mp-import grammar without afi selectors.
	AttrImport = "import"
	// FamilyAny stands for an import without an afi selector.
	FamilyAny = "any"
)

// DefaultAttributes are the policy attributes parsed by default.
var DefaultAttributes = []string{AttrMPImport, AttrImport}

// Import is one parsed import attribute of an aut-num.
type Import struct {
	Attribute string          // Attribute name, e.g. "mp-import"
	Line      int             // Dump line of the attribute
	Value     string          // Folded attribute value
	Document  *ast.Document   // Parsed tree, nil when Err is set
	Err       *mpErrors.Error // Parse failure, nil on success
	Duration  time.Duration   // Time spent parsing Value
}

// OK reports whether the value parsed.
func (i *Import) OK() bool {
	return i.Err == nil && i.Document != nil
}

// Families returns the afi list at the root of the import, or FamilyAny
// when there is none. Plain "import" attributes are always ipv4.unicast.
func (i *Import) Families() []string {
	if i.Attribute == AttrImport {
		return []string{"ipv4.unicast"}
	}
	if !i.OK() || !i.Document.Expression.HasAfiList() {
		return []string{FamilyAny}
	}
	families := make([]string, len(i.Document.Expression.AfiList))
	for n, afi := range i.Document.Expression.AfiList {
		families[n] = strings.ToLower(afi)
	}
	return families
}

// AutNum is an aut-num object with its import policy parsed.
type AutNum struct {
	Name    string // Object key, e.g. "AS3333"
	Source  string // Registry named by the "source" attribute
	Line    int    // Dump line of the object
	Imports []*Import
	Errors  *mpErrors.ErrorList
}

// ParseAutNum parses every attribute of obj named in attributes (all of
// DefaultAttributes when empty). Failures are kept per import and collected
// in Errors; the returned error is only set when obj is not an aut-num.
func ParseAutNum(obj *Object, p *parser.Parser, attributes []string) (*AutNum, error) {
	if obj.Class != ClassAutNum {
		return nil, fmt.Errorf("object %q is a %s, not an %s", obj.Key, obj.Class, ClassAutNum)
	}
	if p == nil {
		p = parser.NewParser()
	}
	if len(attributes) == 0 {
		attributes = DefaultAttributes
	}

	an := &AutNum{
		Name:   obj.Key,
		Source: obj.Source(),
		Line:   obj.Line,
		Errors: mpErrors.NewErrorList(),
	}

	for _, attr := range obj.Attributes {
		if !containsName(attributes, attr.Name) {
			continue
		}

		imp := &Import{
			Attribute: attr.Name,
			Line:      attr.Line,
			Value:     attr.Value,
		}
		start := time.Now()
		doc, err := p.ParseNamed(attr.Value, fmt.Sprintf("%s:%s@%d", obj.Key, attr.Name, attr.Line))
		imp.Duration = time.Since(start)
		if err != nil {
			imp.Err = asParseError(err)
			an.Errors.Add(imp.Err)
		} else {
			imp.Document = doc
		}
		an.Imports = append(an.Imports, imp)
	}

	return an, nil
}

// ByFamily groups imports by the address families they apply to. An import
// listing several families appears under each of them.
func (a *AutNum) ByFamily() map[string][]*Import {
	out := make(map[string][]*Import)
	for _, imp := range a.Imports {
		for _, family := range imp.Families() {
			out[family] = append(out[family], imp)
		}
	}
	return out
}

// Failed returns the number of imports that did not parse.
func (a *AutNum) Failed() int {
	return a.Errors.Count()
}

func asParseError(err error) *mpErrors.Error {
	var e *mpErrors.Error
	if stderrors.As(err, &e) {
		return e
	}
	return &mpErrors.Error{Kind: mpErrors.KindIO, Message: err.Error()}
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}
