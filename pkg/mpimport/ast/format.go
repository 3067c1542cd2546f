package ast

import "strings"

// String renders the document back into mp-import text. The output is
// canonical rather than byte-identical to the input: single import factors
// are always terminated with ';' so that a following except/refine is not
// read as part of the filter, and braced lists always carry a trailing ';'.
// Parsing the result yields a structurally identical tree.
func (d *Document) String() string {
	var sb strings.Builder
	if d.HasProtocol() {
		sb.WriteString("protocol ")
		sb.WriteString(d.Protocol)
		sb.WriteByte(' ')
	}
	if d.HasIntoProtocol() {
		sb.WriteString("into ")
		sb.WriteString(d.IntoProtocol)
		sb.WriteByte(' ')
	}
	if d.Expression != nil {
		d.Expression.write(&sb)
	}
	return sb.String()
}

// String renders the expression as mp-import text.
func (e *AfiImportExpression) String() string {
	var sb strings.Builder
	e.write(&sb)
	return sb.String()
}

func (e *AfiImportExpression) write(sb *strings.Builder) {
	if e.HasAfiList() {
		sb.WriteString("afi ")
		sb.WriteString(strings.Join(e.AfiList, ", "))
		sb.WriteByte(' ')
	}
	if e.Expression == nil {
		return
	}

	ie := e.Expression
	if ie.Term != nil {
		ie.Term.write(sb)
	}
	if ie.IsOperator() && ie.Right != nil {
		sb.WriteByte(' ')
		sb.WriteString(string(ie.Kind))
		sb.WriteByte(' ')
		ie.Right.write(sb)
	}
}

func (t *ImportTerm) write(sb *strings.Builder) {
	if !t.IsList() {
		if len(t.Factors) > 0 {
			t.Factors[0].write(sb)
		}
		sb.WriteByte(';')
		return
	}

	sb.WriteString("{ ")
	for _, f := range t.Factors {
		f.write(sb)
		sb.WriteString("; ")
	}
	sb.WriteByte('}')
}

// String renders the factor as "from ... accept <filter>".
func (f *ImportFactor) String() string {
	var sb strings.Builder
	f.write(&sb)
	return sb.String()
}

func (f *ImportFactor) write(sb *strings.Builder) {
	for _, p := range f.Peerings {
		p.write(sb)
		sb.WriteByte(' ')
	}
	sb.WriteString("accept ")
	sb.WriteString(f.Filter)
}

// String renders the peering as "from <mp-peering> [action ...;]".
func (p *Peering) String() string {
	var sb strings.Builder
	p.write(&sb)
	return sb.String()
}

func (p *Peering) write(sb *strings.Builder) {
	sb.WriteString("from ")
	sb.WriteString(strings.Join(p.ASSpec, " "))
	if !p.HasActions() {
		return
	}
	sb.WriteString(" action")
	for _, a := range p.Actions {
		sb.WriteByte(' ')
		sb.WriteString(a)
		sb.WriteByte(';')
	}
}
