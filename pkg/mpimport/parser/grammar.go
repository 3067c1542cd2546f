package parser

import (
	"fmt"

	"github.com/SichangHe/parse-rpsl-policy/pkg/mpimport/ast"
	mpErrors "github.com/SichangHe/parse-rpsl-policy/pkg/mpimport/errors"
)

// Every rule below returns (node, true) and leaves the cursor after the
// match, or (nil, false) with the cursor restored to where the rule began.
// Failures are recorded on the state so the farthest one can be reported.

// document matches the whole attribute value:
//
//	[protocol <field>] [into <field>] <afi-import-expression> <end>
func (s *state) document() (*ast.Document, bool) {
	doc := &ast.Document{
		Source:   s.source,
		Location: s.loc(0),
	}

	if proto, ok := s.protocolClause(kwProtocol); ok {
		doc.Protocol = proto
	}
	if proto, ok := s.protocolClause(kwInto); ok {
		doc.IntoProtocol = proto
	}

	expr, ok := s.afiImportExpression(0)
	if !ok {
		return nil, false
	}
	doc.Expression = expr

	s.skipSpace()
	if !s.atEnd() {
		s.failAt(s.pos, mpErrors.KindTrailingInput,
			fmt.Sprintf("unexpected %q after a complete import expression", s.tokenAt(s.pos)))
		return nil, false
	}

	return doc, true
}

// protocolClause matches the optional "<kw> <field>" prefixes.
func (s *state) protocolClause(kw string) (string, bool) {
	start := s.pos
	if !s.keyword(kw) {
		s.pos = start
		return "", false
	}
	name, ok := s.field(fieldPlain)
	if !ok {
		s.expect(s.pos, "protocol name")
		s.pos = start
		return "", false
	}
	return name, true
}

// afiImportExpression matches "[afi <afi-list>] <import-expression>".
func (s *state) afiImportExpression(depth int) (*ast.AfiImportExpression, bool) {
	if s.aborted {
		return nil, false
	}
	s.skipSpace()
	start := s.pos
	if s.maxDepth > 0 && depth > s.maxDepth {
		s.abort(start, mpErrors.KindNestingTooDeep,
			fmt.Sprintf("except/refine nesting exceeds the limit of %d", s.maxDepth))
		return nil, false
	}

	node := &ast.AfiImportExpression{Location: s.loc(start)}
	if afis, ok := s.afiList(); ok {
		node.AfiList = afis
	}

	expr, ok := s.importExpression(depth)
	if !ok {
		s.pos = start
		return nil, false
	}
	node.Expression = expr
	return node, true
}

// afiList matches "afi <field> [, <field>]...". The list is optional as a
// whole; an "afi" keyword without a family records KindEmptyAfiList.
func (s *state) afiList() ([]string, bool) {
	start := s.pos
	if !s.keyword(kwAfi) {
		s.pos = start
		return nil, false
	}

	var afis []string
	for {
		s.skipSpace()
		itemPos := s.pos
		_, isFrom := s.peekKeyword(kwFrom)
		var afi string
		ok := false
		if !isFrom && !s.peekByte('{') {
			afi, ok = s.field(fieldNoComma)
		}
		if !ok {
			if len(afis) == 0 {
				s.failAt(itemPos, mpErrors.KindEmptyAfiList, "expected an address family after 'afi'")
			} else {
				s.expect(itemPos, "address family")
			}
			s.pos = start
			return nil, false
		}
		afis = append(afis, afi)

		if !s.peekByte(',') {
			return afis, true
		}
		s.pos++
	}
}

// importExpression matches an import term optionally followed by
// "except" or "refine" and a nested afi import expression. Both operator
// arms are tried before settling for the plain term; the right operand is
// itself an afiImportExpression, so chains nest to the right.
func (s *state) importExpression(depth int) (*ast.ImportExpression, bool) {
	s.skipSpace()
	start := s.pos

	term, ok := s.importTerm()
	if !ok {
		s.pos = start
		return nil, false
	}
	afterTerm := s.pos

	operators := []struct {
		keyword string
		kind    ast.ExpressionKind
	}{
		{kwExcept, ast.ExpressionExcept},
		{kwRefine, ast.ExpressionRefine},
	}
	for _, op := range operators {
		s.pos = afterTerm
		if !s.keyword(op.keyword) {
			continue
		}
		right, ok := s.afiImportExpression(depth + 1)
		if !ok {
			continue
		}
		return &ast.ImportExpression{
			Kind:     op.kind,
			Term:     term,
			Right:    right,
			Location: s.loc(start),
		}, true
	}

	s.pos = afterTerm
	return &ast.ImportExpression{
		Kind:     ast.ExpressionTerm,
		Term:     term,
		Location: s.loc(start),
	}, true
}

// importTerm matches either "{ <factor>; ... [;] }" or a single factor with
// an optional ';'. A leading '{' commits to the braced form.
func (s *state) importTerm() (*ast.ImportTerm, bool) {
	s.skipSpace()
	start := s.pos

	if s.peekByte('{') {
		s.pos++
		factors, ok := s.importFactorList()
		if !ok {
			s.pos = start
			return nil, false
		}
		return &ast.ImportTerm{
			Kind:     ast.TermList,
			Factors:  factors,
			Location: s.loc(start),
		}, true
	}
	s.expect(start, quote("{"))

	factor, ok := s.importFactor()
	if !ok {
		s.pos = start
		return nil, false
	}

	end := s.pos
	if !s.semicolons() {
		s.pos = end
	}

	return &ast.ImportTerm{
		Kind:     ast.TermSingle,
		Factors:  []*ast.ImportFactor{factor},
		Location: s.loc(start),
	}, true
}

// importFactorList matches the body of a braced import term after '{'.
func (s *state) importFactorList() ([]*ast.ImportFactor, bool) {
	var factors []*ast.ImportFactor

	for {
		s.skipSpace()
		if s.atEnd() {
			s.failAt(s.pos, mpErrors.KindUnterminatedBlock, "missing '}' to close the import factor list")
			return nil, false
		}
		if len(factors) > 0 && s.peekByte('}') {
			// Trailing ';' before '}'.
			s.pos++
			return factors, true
		}

		factor, ok := s.importFactor()
		if !ok {
			return nil, false
		}
		factors = append(factors, factor)

		if s.literal(';') {
			continue
		}
		if s.literal('}') {
			return factors, true
		}
		if s.atEnd() {
			s.failAt(s.pos, mpErrors.KindUnterminatedBlock, "missing '}' to close the import factor list")
		} else {
			s.failAt(s.pos, mpErrors.KindUnterminatedBlock,
				fmt.Sprintf("expected ';' or '}' after import factor, found %q", s.tokenAt(s.pos)))
		}
		return nil, false
	}
}

// importFactor matches "<peering>... accept <mp-filter>".
func (s *state) importFactor() (*ast.ImportFactor, bool) {
	s.skipSpace()
	start := s.pos

	var peerings []*ast.Peering
	for {
		p, ok := s.peering()
		if !ok {
			break
		}
		peerings = append(peerings, p)
	}
	if len(peerings) == 0 {
		s.pos = start
		return nil, false
	}

	if !s.keyword(kwAccept) {
		s.pos = start
		return nil, false
	}

	filter, ok := s.filter()
	if !ok {
		s.expect(s.pos, "filter")
		s.pos = start
		return nil, false
	}

	return &ast.ImportFactor{
		Peerings: peerings,
		Filter:   filter,
		Location: s.loc(start),
	}, true
}

// peering matches "from <mp-peering> [<actions>]". The mp-peering tokens
// run until the next token is action, from or accept; the stop keywords
// are checked before each token is consumed.
func (s *state) peering() (*ast.Peering, bool) {
	s.skipSpace()
	start := s.pos
	if !s.keyword(kwFrom) {
		return nil, false
	}

	var spec []string
	for {
		if kw, stop := s.peekKeyword(peeringStops...); stop {
			if len(spec) == 0 {
				s.failAt(s.pos, mpErrors.KindPrematureKeyword,
					fmt.Sprintf("keyword %s where an AS expression was expected", quote(kw)))
			}
			break
		}
		tok, ok := s.field(fieldPlain)
		if !ok {
			break
		}
		spec = append(spec, tok)
	}
	if len(spec) == 0 {
		s.expect(s.pos, "AS expression")
		s.pos = start
		return nil, false
	}

	p := &ast.Peering{
		ASSpec:   spec,
		Location: s.loc(start),
	}
	if actions, ok := s.actions(); ok {
		p.Actions = actions
	}
	return p, true
}

// actions matches "action <stmt>; [<stmt>;]..." followed by a from or
// accept keyword (peeked, not consumed). Statements are kept verbatim.
func (s *state) actions() ([]string, bool) {
	start := s.pos
	if !s.keyword(kwAction) {
		s.pos = start
		return nil, false
	}

	var stmts []string
	for {
		stmt, ok := s.field(fieldSpaced)
		if !ok {
			s.expect(s.pos, "action statement")
			s.pos = start
			return nil, false
		}
		if !s.semicolons() {
			s.pos = start
			return nil, false
		}
		stmts = append(stmts, stmt)

		if _, done := s.peekKeyword(actionStops...); done {
			return stmts, true
		}
	}
}
