// Package errors provides the error types returned when an mp-import value
// does not match the grammar.
//
// # Error Kinds
//
// KindTokenMismatch: an expected keyword or field was not found
//
// KindPrematureKeyword: a stop keyword appeared where a field was required
// ("from accept ANY")
//
// KindUnterminatedBlock: a braced import-factor list is missing '}' or a
// ';' between factors
//
// KindTrailingInput: text remained after a complete expression
//
// KindEmptyAfiList: "afi" was not followed by an address family
//
// KindNestingTooDeep, KindInputTooLarge: parser limits were exceeded
//
// # Error Format
//
//	[token_mismatch] expected 'accept', 'action' or 'from'
//	  --> <input>:1:24 (offset 23)
//	  |
//	-> 1 | afi ipv6.unicast from AS1
//	     |                          ^
//	  |
//	  = suggestion: Add 'accept <filter>' after the peering
//
// Use IsKind to test an error returned by the parser:
//
//	if errors.IsKind(err, errors.KindTrailingInput) {
//	    ...
//	}
package errors
