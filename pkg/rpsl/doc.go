// Package rpsl reads IRR database dumps in RPSL format (RFC 2622) and
// parses the import policy of aut-num objects.
//
// # Dump Format
//
// A dump is a sequence of objects separated by blank lines. Each object is
// a list of "name: value" attributes; the first attribute names the
// object class and carries its key:
//
//	aut-num:    AS3333
//	as-name:    RIPE-NCC-AS
//	mp-import:  afi ipv6.unicast from AS9002
//	            accept ANY
//	source:     RIPE
//
// Lines starting with a space, tab or '+' continue the previous
// attribute and are folded into its value with a single space. Lines
// starting with '%' or '#' are comments, and text after '#' inside a value
// is dropped.
//
// # Encoding
//
// IRR dumps are mostly latin-1. The reader decodes input through
// golang.org/x/text using any WHATWG encoding label ("latin1",
// "utf-8", ...) before splitting lines.
//
// # Basic Usage
//
//	dump, err := rpsl.ParseDump(ctx, f, rpsl.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	for _, an := range dump.AutNums {
//	    fmt.Println(an.Name, len(an.Imports), an.Errors.Count())
//	}
package rpsl
