package ast

// Document is the root node for one parsed mp-import attribute value.
//
//	mp-import: [protocol <protocol-1>] [into <protocol-2>] <afi-import-expression>
type Document struct {
	Protocol     string               // protocol-1, empty when absent
	IntoProtocol string               // protocol-2, empty when absent
	Expression   *AfiImportExpression // Always set on a successful parse

	Source   string   // Name of the input, if the caller supplied one
	Location Location // Start of the attribute value
}

// HasProtocol reports whether a "protocol" clause was present.
func (d *Document) HasProtocol() bool {
	return d.Protocol != ""
}

// HasIntoProtocol reports whether an "into" clause was present.
func (d *Document) HasIntoProtocol() bool {
	return d.IntoProtocol != ""
}

// AfiImportExpression is an import expression with an optional leading
// address family selector.
//
//	[afi <afi-list>] <import-expression>
type AfiImportExpression struct {
	AfiList    []string // nil means every address family
	Expression *ImportExpression
	Location   Location
}

// HasAfiList reports whether an "afi" selector was present.
func (e *AfiImportExpression) HasAfiList() bool {
	return e.AfiList != nil
}

// Peering is a single "from" clause with its optional action block.
type Peering struct {
	ASSpec   []string // Opaque <mp-peering> tokens, at least one
	Actions  []string // Action statements without their ';', nil when absent
	Location Location
}

// HasActions reports whether an "action" block was present.
func (p *Peering) HasActions() bool {
	return p.Actions != nil
}

// ImportFactor is one or more peerings followed by "accept <mp-filter>".
type ImportFactor struct {
	Peerings []*Peering // At least one
	Filter   string     // Opaque <mp-filter> text
	Location Location
}
