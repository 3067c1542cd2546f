package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/SichangHe/parse-rpsl-policy/pkg/ingest"
	"github.com/SichangHe/parse-rpsl-policy/pkg/store"
)

// now is replaced in tests to pin relative times.
var now = time.Now

// RunList renders runs as a table, newest first.
type RunList []*store.Run

// WriteText implements TextWriter.
func (l RunList) WriteText(w io.Writer) error {
	if len(l) == 0 {
		_, err := fmt.Fprintln(w, "no runs")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tSTARTED\tDURATION\tAUT-NUMS\tIMPORTS\tFAILED\tSOURCE")
	for _, r := range l {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(r.ID),
			r.Status,
			relTime(r.StartedAt),
			duration(r),
			humanize.Comma(int64(r.AutNums)),
			humanize.Comma(int64(r.Imports)),
			humanize.Comma(int64(r.Failed)),
			r.Source,
		)
	}
	return tw.Flush()
}

// RunDetail renders a single run. It marshals exactly like store.Run.
type RunDetail store.Run

// WriteText implements TextWriter.
func (r *RunDetail) WriteText(w io.Writer) error {
	run := (*store.Run)(r)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Run:\t%s\n", r.ID)
	fmt.Fprintf(tw, "Source:\t%s\n", r.Source)
	if r.Revision != "" {
		fmt.Fprintf(tw, "Revision:\t%s\n", r.Revision)
	}
	fmt.Fprintf(tw, "Status:\t%s\n", r.Status)
	fmt.Fprintf(tw, "Started:\t%s (%s)\n", r.StartedAt.Format(time.RFC3339), relTime(r.StartedAt))
	fmt.Fprintf(tw, "Duration:\t%s\n", duration(run))
	fmt.Fprintf(tw, "Dumps:\t%s\n", humanize.Comma(int64(r.Dumps)))
	fmt.Fprintf(tw, "Objects:\t%s\n", humanize.Comma(int64(r.Objects)))
	fmt.Fprintf(tw, "Aut-nums:\t%s\n", humanize.Comma(int64(r.AutNums)))
	fmt.Fprintf(tw, "Imports:\t%s\n", humanize.Comma(int64(r.Imports)))
	fmt.Fprintf(tw, "Failed:\t%s\n", failedRatio(r.Failed, r.Imports))
	if r.Error != "" {
		fmt.Fprintf(tw, "Error:\t%s\n", r.Error)
	}
	return tw.Flush()
}

// RecordList renders stored records one per line, failures followed by
// their error.
type RecordList []*store.Record

// WriteText implements TextWriter.
func (l RecordList) WriteText(w io.Writer) error {
	if len(l) == 0 {
		_, err := fmt.Fprintln(w, "no records")
		return err
	}
	for _, r := range l {
		if err := writeRecord(w, r); err != nil {
			return err
		}
	}
	return nil
}

func writeRecord(w io.Writer, r *store.Record) error {
	mark := "ok"
	if !r.OK() {
		mark = r.ErrorKind
	}
	if _, err := fmt.Fprintf(w, "%s %s:%d [%s] %s: %s\n", r.AutNum, r.Dump, r.Line, mark, r.Attribute, r.Value); err != nil {
		return err
	}
	if !r.OK() {
		_, err := fmt.Fprintf(w, "    %s (offset %d)\n", r.Error, r.ErrorOffset)
		return err
	}
	return nil
}

// LintReport renders a lint report: failures first, then a summary.
type LintReport ingest.Report

// WriteText implements TextWriter.
func (r *LintReport) WriteText(w io.Writer) error {
	if err := RecordList(r.Failures).writeFailures(w); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "%s: %s dumps, %s objects, %s aut-nums, %s imports, %s failed in %s\n",
		r.Source,
		humanize.Comma(int64(r.Dumps)),
		humanize.Comma(int64(r.Objects)),
		humanize.Comma(int64(r.AutNums)),
		humanize.Comma(int64(r.Imports)),
		failedRatio(r.Failed, r.Imports),
		r.Duration.Round(time.Millisecond),
	)
	return err
}

func (l RecordList) writeFailures(w io.Writer) error {
	for _, r := range l {
		if err := writeRecord(w, r); err != nil {
			return err
		}
	}
	return nil
}

// DiffView renders a run diff in unified-diff style.
type DiffView ingest.RunDiff

// WriteText implements TextWriter.
func (d *DiffView) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "--- %s\n+++ %s\n", d.From, d.To); err != nil {
		return err
	}
	if len(d.Changes) == 0 {
		_, err := fmt.Fprintln(w, "no changes")
		return err
	}
	var sb strings.Builder
	for _, c := range d.Changes {
		sb.WriteString(c.String())
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func relTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.RelTime(t, now(), "ago", "from now")
}

func duration(r *store.Run) string {
	if r.FinishedAt.IsZero() {
		return "-"
	}
	return r.Duration().Round(time.Millisecond).String()
}

func failedRatio(failed, total int) string {
	if total == 0 {
		return humanize.Comma(int64(failed))
	}
	pct := float64(failed) * 100 / float64(total)
	return fmt.Sprintf("%s (%s%%)", humanize.Comma(int64(failed)), humanize.FtoaWithDigits(pct, 2))
}
