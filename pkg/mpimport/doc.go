// Package mpimport parses RPSL mp-import attribute values (RFC 4012
// section 2.5) into syntax trees.
//
// # Architecture
//
// The package is organized into subpackages:
//
// - ast: syntax tree, traversal helpers, map and text rendering
// - parser: the backtracking grammar
// - errors: positioned errors with context and suggestions
//
// # Basic Usage
//
//	doc, err := mpimport.Parse("afi ipv4.unicast, ipv6.unicast from AS2895 action pref=10; accept ANY")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(doc.Expression.AfiList) // [ipv4.unicast ipv6.unicast]
//
//	for _, p := range ast.Peerings(doc) {
//	    fmt.Println(p.ASSpec, p.Actions) // [AS2895] [pref=10]
//	}
//
// The input is the attribute value only: the "mp-import:" name and RPSL
// line continuations are handled by package rpsl.
//
// # Scope
//
// <mp-peering> and <mp-filter> are kept as opaque text. Nothing is
// evaluated: AS sets are not expanded and filters are not interpreted.
package mpimport
