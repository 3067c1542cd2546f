// Rpslpolicy parses RPSL mp-import and import policies (RFC 4012) and
// keeps track of how the policies of IRR dumps parse over time.
//
// Usage:
//
//	# Parse a single attribute value
//	rpslpolicy parse 'afi ipv6.unicast from AS1 accept ANY'
//
//	# Report every import that does not parse in a dump
//	rpslpolicy lint --file ripe.db.gz
//
//	# Store the results of a dump directory as a run
//	rpslpolicy import --dir /srv/irr
//
//	# List runs and query their records
//	rpslpolicy runs
//	rpslpolicy query --aut-num AS3333 --errors
//
//	# Re-import whenever the dumps change
//	rpslpolicy watch --path /srv/irr
//
//	# Interactive parser
//	rpslpolicy shell
package main

import "os"

func main() {
	os.Exit(Execute())
}
