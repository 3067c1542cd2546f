package ingest

import (
	"context"
	"time"

	"github.com/SichangHe/parse-rpsl-policy/pkg/source"
	"github.com/SichangHe/parse-rpsl-policy/pkg/store"
)

// Report summarizes a lint pass.
type Report struct {
	Source   string          `json:"source" yaml:"source"`
	Revision string          `json:"revision,omitempty" yaml:"revision,omitempty"`
	Dumps    int             `json:"dumps" yaml:"dumps"`
	Objects  int             `json:"objects" yaml:"objects"`
	AutNums  int             `json:"aut_nums" yaml:"aut_nums"`
	Imports  int             `json:"imports" yaml:"imports"`
	Failed   int             `json:"failed" yaml:"failed"`
	Failures []*store.Record `json:"failures" yaml:"failures"`
	Duration time.Duration   `json:"duration_ns" yaml:"duration"`
}

// Lint parses every dump of src without storing anything and reports the
// imports that failed. The report covers the dumps that could be read
// even when err is set.
func (i *Ingester) Lint(ctx context.Context, src source.Source) (*Report, error) {
	start := time.Now()
	report := &Report{Source: src.String(), Failures: []*store.Record{}}

	err := i.scan(ctx, src, func(res *DumpResult) error {
		report.Dumps++
		if report.Revision == "" {
			report.Revision = res.Revision
		}
		report.Objects += res.Dump.Objects
		report.AutNums += len(res.Dump.AutNums)
		total, failed := res.Dump.ImportCounts()
		report.Imports += total
		report.Failed += failed

		records, err := Records("", res)
		if err != nil {
			return err
		}
		for _, r := range records {
			if !r.OK() {
				report.Failures = append(report.Failures, r)
			}
		}
		return nil
	})

	report.Duration = time.Since(start)
	i.logger.Info("lint finished",
		"source", report.Source,
		"imports", report.Imports,
		"failed", report.Failed,
	)
	return report, err
}
