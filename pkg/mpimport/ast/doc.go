// Package ast provides the syntax tree for RPSL mp-import attribute values
// (RFC 4012 section 2.5).
//
// The tree mirrors the grammar:
//
//	Document
//	├── Protocol / IntoProtocol (optional)
//	└── Expression (*AfiImportExpression)
//	    ├── AfiList (optional)
//	    └── Expression (*ImportExpression)
//	        ├── Kind: term | except | refine
//	        ├── Term (*ImportTerm)
//	        │   ├── Kind: single | list
//	        │   └── Factors ([]*ImportFactor)
//	        │       ├── Peerings ([]*Peering)
//	        │       │   ├── ASSpec
//	        │       │   └── Actions (optional)
//	        │       └── Filter
//	        └── Right (*AfiImportExpression, operators only)
//
// # Basic Usage
//
//	doc, err := parser.NewParser().Parse("afi ipv6.unicast from AS9002 accept ANY")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, p := range ast.Peerings(doc) {
//	    fmt.Println("peer:", strings.Join(p.ASSpec, " "))
//	}
//
// ToMap returns the string keyed representation used for JSON and YAML
// output; String renders canonical mp-import text that parses back to the
// same tree.
//
// # Immutability
//
// Nodes are created fresh for every parse and should be treated as
// immutable afterwards.
package ast
