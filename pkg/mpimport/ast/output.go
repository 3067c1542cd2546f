package ast

// Keys of the external map representation returned by ToMap.
const (
	KeyProtocol1     = "protocol-1"
	KeyProtocol2     = "protocol-2"
	KeyAfiList       = "afi-list"
	KeyFrom          = "from"
	KeyMPPeering     = "mp-peering"
	KeyActions       = "actions"
	KeyMPFilter      = "mp-filter"
	KeyImportFactors = "import-factors"
	KeyExcept        = string(ExpressionExcept)
	KeyRefine        = string(ExpressionRefine)
)

// ToMap converts the document into the nested, string keyed shape consumed
// by JSON/YAML output and external tooling:
//
//	protocol-1, protocol-2   optional strings
//	afi-list                 optional list of strings
//	from, mp-filter          single import factor
//	import-factors           braced list of {from, mp-filter}
//	except | refine          nested map of the same shape
//
// Absent optional parts are omitted rather than set to nil.
func (d *Document) ToMap() map[string]any {
	out := make(map[string]any)
	if d.HasProtocol() {
		out[KeyProtocol1] = d.Protocol
	}
	if d.HasIntoProtocol() {
		out[KeyProtocol2] = d.IntoProtocol
	}
	if d.Expression != nil {
		d.Expression.fillMap(out)
	}
	return out
}

// ToMap converts an afi import expression into the same shape as
// Document.ToMap without the protocol keys.
func (e *AfiImportExpression) ToMap() map[string]any {
	out := make(map[string]any)
	e.fillMap(out)
	return out
}

func (e *AfiImportExpression) fillMap(out map[string]any) {
	if e.HasAfiList() {
		out[KeyAfiList] = copyStrings(e.AfiList)
	}
	if e.Expression == nil {
		return
	}

	ie := e.Expression
	if ie.Term != nil {
		ie.Term.fillMap(out)
	}
	if ie.IsOperator() && ie.Right != nil {
		out[string(ie.Kind)] = ie.Right.ToMap()
	}
}

func (t *ImportTerm) fillMap(out map[string]any) {
	if t.IsList() {
		factors := make([]any, 0, len(t.Factors))
		for _, f := range t.Factors {
			factors = append(factors, f.ToMap())
		}
		out[KeyImportFactors] = factors
		return
	}
	if len(t.Factors) > 0 {
		t.Factors[0].fillMap(out)
	}
}

// ToMap converts an import factor into {from, mp-filter}.
func (f *ImportFactor) ToMap() map[string]any {
	out := make(map[string]any, 2)
	f.fillMap(out)
	return out
}

func (f *ImportFactor) fillMap(out map[string]any) {
	peerings := make([]any, 0, len(f.Peerings))
	for _, p := range f.Peerings {
		peerings = append(peerings, p.ToMap())
	}
	out[KeyFrom] = peerings
	out[KeyMPFilter] = f.Filter
}

// ToMap converts a peering into {mp-peering, actions?}.
func (p *Peering) ToMap() map[string]any {
	out := map[string]any{
		KeyMPPeering: copyStrings(p.ASSpec),
	}
	if p.HasActions() {
		out[KeyActions] = copyStrings(p.Actions)
	}
	return out
}

func copyStrings(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
