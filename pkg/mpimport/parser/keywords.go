package parser

// Keywords of the mp-import grammar. Matching is case-insensitive.
const (
	kwProtocol = "protocol"
	kwInto     = "into"
	kwAfi      = "afi"
	kwFrom     = "from"
	kwAction   = "action"
	kwAccept   = "accept"
	kwExcept   = "except"
	kwRefine   = "refine"
)

// Keywords lists every keyword the grammar recognizes.
var Keywords = []string{
	kwProtocol, kwInto, kwAfi, kwFrom, kwAction, kwAccept, kwExcept, kwRefine,
}

// peeringStops end the <mp-peering> token run.
var peeringStops = []string{kwAction, kwFrom, kwAccept}

// actionStops end an action block.
var actionStops = []string{kwFrom, kwAccept}

// isIdentByte reports whether b continues an identifier. A keyword only
// matches when the byte after it is not an identifier byte, so "accept"
// does not match "acceptable" and "from" does not match "from-peers".
func isIdentByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '_', b == '$', b == '-', b == '.', b == ':':
		return true
	case b >= 0x80:
		return true
	}
	return false
}

func quote(s string) string {
	return "'" + s + "'"
}
