package ast

// TermKind distinguishes the two shapes of an import term.
type TermKind string

const (
	TermSingle TermKind = "single" // One bare import factor
	TermList   TermKind = "list"   // Braced, semicolon separated factors
)

// ImportTerm is either a single import factor or a braced list of them.
type ImportTerm struct {
	Kind     TermKind
	Factors  []*ImportFactor // Exactly one for TermSingle, at least one for TermList
	Location Location
}

// IsList reports whether the term used the braced form.
func (t *ImportTerm) IsList() bool {
	return t.Kind == TermList
}

// ExpressionKind is the operator combining an import term with the rest of
// the expression.
type ExpressionKind string

const (
	ExpressionTerm   ExpressionKind = "term"
	ExpressionExcept ExpressionKind = "except"
	ExpressionRefine ExpressionKind = "refine"
)

// ImportExpression is the recursive core of the grammar:
//
//	<import-term>
//	<import-term> except <afi-import-expression>
//	<import-term> refine <afi-import-expression>
//
// The right operand is a full AfiImportExpression, so chains nest to the
// right and an afi selector may follow every operator.
type ImportExpression struct {
	Kind     ExpressionKind
	Term     *ImportTerm
	Right    *AfiImportExpression // nil for ExpressionTerm
	Location Location
}

// IsOperator reports whether the expression is an except or refine node.
func (e *ImportExpression) IsOperator() bool {
	return e.Kind == ExpressionExcept || e.Kind == ExpressionRefine
}

// Depth returns the number of except/refine operators in the chain rooted
// at this expression.
func (e *ImportExpression) Depth() int {
	depth := 0
	for cur := e; cur != nil && cur.IsOperator(); {
		depth++
		if cur.Right == nil {
			break
		}
		cur = cur.Right.Expression
	}
	return depth
}
