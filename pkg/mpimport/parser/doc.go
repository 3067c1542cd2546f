// Package parser implements the mp-import grammar of RFC 4012 section 2.5
// as a backtracking recursive descent parser.
//
// # Grammar
//
//	mp-import             = [protocol <field>] [into <field>] afi-import-expression
//	afi-import-expression = [afi <field> {, <field>}] import-expression
//	import-expression     = import-term except afi-import-expression
//	                      | import-term refine afi-import-expression
//	                      | import-term
//	import-term           = "{" import-factor {";" import-factor} [";"] "}"
//	                      | import-factor [";"]
//	import-factor         = peering {peering} accept <mp-filter>
//	peering               = from <mp-peering> [action <stmt>; {<stmt>;}]
//
// Keywords are case-insensitive and respect word boundaries. <mp-peering>
// is the run of tokens up to the next action, from or accept keyword;
// <mp-filter> is the text up to ';', '#', an unbalanced '}' or the end of
// input. Neither is parsed further.
//
// Alternatives are tried in order. The except and refine operators bind to
// the right with no precedence between them, and an afi selector may
// appear at the head of every operand.
//
// # Basic Usage
//
//	p := parser.NewParser()
//	doc, err := p.Parse("afi ipv6.unicast from AS6939 action pref=100; accept ANY")
//	if err != nil {
//	    fmt.Println(err) // *errors.Error with offset, context and suggestion
//	    return
//	}
//	fmt.Println(doc.Expression.AfiList) // [ipv6.unicast]
//
// # Errors
//
// When no alternative matches, the error reports the farthest offset the
// parser reached together with everything it expected there, so a missing
// accept is reported after the peering rather than at the start of input.
//
// # Concurrency
//
// A *Parser holds only its limits. Parse allocates a fresh cursor for
// every call, so one Parser can be shared between goroutines.
package parser
