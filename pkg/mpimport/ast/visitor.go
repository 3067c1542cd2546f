package ast

// Visitor provides an interface for traversing the AST.
// Implement this interface to inspect nodes (listing peers, AFIs, actions).
type Visitor interface {
	VisitDocument(*Document) error
	VisitAfiImportExpression(*AfiImportExpression) error
	VisitImportExpression(*ImportExpression) error
	VisitImportTerm(*ImportTerm) error
	VisitImportFactor(*ImportFactor) error
	VisitPeering(*Peering) error
}

// Walk traverses the AST starting from the document node in source order
// and calls the visitor for each node. It returns the first error
// encountered, or nil if traversal completes.
func Walk(doc *Document, visitor Visitor) error {
	if err := visitor.VisitDocument(doc); err != nil {
		return err
	}
	if doc.Expression == nil {
		return nil
	}
	return walkAfiImportExpression(doc.Expression, visitor)
}

// walkAfiImportExpression recursively walks an except/refine chain.
func walkAfiImportExpression(expr *AfiImportExpression, visitor Visitor) error {
	if err := visitor.VisitAfiImportExpression(expr); err != nil {
		return err
	}
	if expr.Expression == nil {
		return nil
	}

	ie := expr.Expression
	if err := visitor.VisitImportExpression(ie); err != nil {
		return err
	}

	if ie.Term != nil {
		if err := walkImportTerm(ie.Term, visitor); err != nil {
			return err
		}
	}

	if ie.Right != nil {
		return walkAfiImportExpression(ie.Right, visitor)
	}
	return nil
}

func walkImportTerm(term *ImportTerm, visitor Visitor) error {
	if err := visitor.VisitImportTerm(term); err != nil {
		return err
	}

	for _, factor := range term.Factors {
		if err := visitor.VisitImportFactor(factor); err != nil {
			return err
		}
		for _, peering := range factor.Peerings {
			if err := visitor.VisitPeering(peering); err != nil {
				return err
			}
		}
	}

	return nil
}

// BaseVisitor implements Visitor with no-op methods. Embed it to override
// only the callbacks you need.
type BaseVisitor struct{}

func (BaseVisitor) VisitDocument(*Document) error                       { return nil }
func (BaseVisitor) VisitAfiImportExpression(*AfiImportExpression) error { return nil }
func (BaseVisitor) VisitImportExpression(*ImportExpression) error       { return nil }
func (BaseVisitor) VisitImportTerm(*ImportTerm) error                   { return nil }
func (BaseVisitor) VisitImportFactor(*ImportFactor) error               { return nil }
func (BaseVisitor) VisitPeering(*Peering) error                         { return nil }

type collector struct {
	BaseVisitor
	peerings []*Peering
	afis     [][]string
	actions  []string
	filters  []string
}

func (c *collector) VisitAfiImportExpression(e *AfiImportExpression) error {
	if e.HasAfiList() {
		c.afis = append(c.afis, e.AfiList)
	}
	return nil
}

func (c *collector) VisitImportFactor(f *ImportFactor) error {
	c.filters = append(c.filters, f.Filter)
	return nil
}

func (c *collector) VisitPeering(p *Peering) error {
	c.peerings = append(c.peerings, p)
	c.actions = append(c.actions, p.Actions...)
	return nil
}

func collect(doc *Document) *collector {
	c := &collector{}
	_ = Walk(doc, c) // collector never fails
	return c
}

// Peerings returns every peering in the document in source order.
func Peerings(doc *Document) []*Peering {
	return collect(doc).peerings
}

// AfiLists returns every afi selector in the document in source order,
// including the ones following except/refine.
func AfiLists(doc *Document) [][]string {
	return collect(doc).afis
}

// Actions returns every action statement in the document in source order.
func Actions(doc *Document) []string {
	return collect(doc).actions
}

// Filters returns the mp-filter text of every import factor in source order.
func Filters(doc *Document) []string {
	return collect(doc).filters
}
