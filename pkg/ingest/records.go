package ingest

import (
	"encoding/json"
	"fmt"

	"github.com/SichangHe/parse-rpsl-policy/pkg/store"
)

// Records converts the imports of a parsed dump into store records, in
// dump order. Parsed imports carry their tree as JSON; failed ones carry
// the error kind, message and offset.
func Records(runID string, res *DumpResult) ([]*store.Record, error) {
	var records []*store.Record
	for _, an := range res.Dump.AutNums {
		for _, imp := range an.Imports {
			r := &store.Record{
				RunID:     runID,
				AutNum:    an.Name,
				Dump:      res.Name,
				Attribute: imp.Attribute,
				Line:      imp.Line,
				Value:     imp.Value,
			}
			if imp.OK() {
				tree, err := json.Marshal(imp.Document.ToMap())
				if err != nil {
					return nil, fmt.Errorf("encode %s line %d: %w", an.Name, imp.Line, err)
				}
				r.Tree = string(tree)
			} else {
				r.ErrorKind = string(imp.Err.Kind)
				r.Error = imp.Err.Message
				r.ErrorOffset = imp.Err.Offset()
			}
			records = append(records, r)
		}
	}
	return records, nil
}
