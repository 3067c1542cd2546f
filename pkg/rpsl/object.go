package rpsl

import "strings"

// Attribute is one "name: value" pair of an RPSL object. Continuation
// lines are already folded into Value.
type Attribute struct {
	Name  string // Lower-cased attribute name
	Value string // Value with comments stripped and whitespace trimmed
	Line  int    // 1-based line of the attribute name in the dump
}

// Object is one RPSL object: the attributes between two blank lines.
type Object struct {
	Class      string // Name of the first attribute, e.g. "aut-num"
	Key        string // Value of the first attribute, e.g. "AS3333"
	Attributes []Attribute
	Line       int // Line of the first attribute
}

// Get returns every attribute named name in order.
func (o *Object) Get(name string) []Attribute {
	name = strings.ToLower(name)
	var out []Attribute
	for _, a := range o.Attributes {
		if a.Name == name {
			out = append(out, a)
		}
	}
	return out
}

// First returns the value of the first attribute named name.
func (o *Object) First(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, a := range o.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Source returns the value of the "source" attribute, if any.
func (o *Object) Source() string {
	v, _ := o.First("source")
	return v
}
