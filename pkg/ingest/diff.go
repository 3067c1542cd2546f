package ingest

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/SichangHe/parse-rpsl-policy/pkg/store"
)

// AutNumDiff lists the import lines of one aut-num that changed between
// two runs. A line is "attribute: value", with the error kind appended in
// brackets when the value did not parse.
type AutNumDiff struct {
	AutNum  string   `json:"aut_num" yaml:"aut_num"`
	Added   []string `json:"added,omitempty" yaml:"added,omitempty"`
	Removed []string `json:"removed,omitempty" yaml:"removed,omitempty"`
}

// String renders the change in unified-diff style.
func (d *AutNumDiff) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "@@ %s @@\n", d.AutNum)
	for _, line := range d.Removed {
		fmt.Fprintf(&sb, "-%s\n", line)
	}
	for _, line := range d.Added {
		fmt.Fprintf(&sb, "+%s\n", line)
	}
	return sb.String()
}

// RunDiff is the policy change between two runs.
type RunDiff struct {
	From    string        `json:"from" yaml:"from"`
	To      string        `json:"to" yaml:"to"`
	Changes []*AutNumDiff `json:"changes" yaml:"changes"`
}

// DiffRuns compares the stored imports of two runs, aut-num by aut-num.
// autNum limits the comparison to one aut-num when set. Line numbers are
// ignored, so moving an attribute within its object is not a change.
func DiffRuns(ctx context.Context, st store.Store, fromID, toID, autNum string) (*RunDiff, error) {
	from, err := loadLines(ctx, st, fromID, autNum)
	if err != nil {
		return nil, err
	}
	to, err := loadLines(ctx, st, toID, autNum)
	if err != nil {
		return nil, err
	}

	names := make(map[string]struct{}, len(from)+len(to))
	for name := range from {
		names[name] = struct{}{}
	}
	for name := range to {
		names[name] = struct{}{}
	}
	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	result := &RunDiff{From: fromID, To: toID, Changes: []*AutNumDiff{}}
	dmp := diffmatchpatch.New()
	for _, name := range sorted {
		if d := diffLines(dmp, name, from[name], to[name]); d != nil {
			result.Changes = append(result.Changes, d)
		}
	}
	return result, nil
}

func loadLines(ctx context.Context, st store.Store, runID, autNum string) (map[string][]string, error) {
	if _, err := st.GetRun(ctx, runID); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	records, err := st.QueryRecords(ctx, &store.Query{RunID: runID, AutNum: autNum})
	if err != nil {
		return nil, err
	}

	lines := make(map[string][]string)
	for _, r := range records {
		name := strings.ToUpper(r.AutNum)
		lines[name] = append(lines[name], recordLine(r))
	}
	return lines, nil
}

func recordLine(r *store.Record) string {
	if r.OK() {
		return fmt.Sprintf("%s: %s", r.Attribute, r.Value)
	}
	return fmt.Sprintf("%s: %s [%s]", r.Attribute, r.Value, r.ErrorKind)
}

// diffLines returns nil when the two line lists are equal.
func diffLines(dmp *diffmatchpatch.DiffMatchPatch, name string, from, to []string) *AutNumDiff {
	a, b, table := dmp.DiffLinesToChars(joinLines(from), joinLines(to))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), table)

	d := &AutNumDiff{AutNum: name}
	for _, diff := range diffs {
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			d.Added = append(d.Added, splitLines(diff.Text)...)
		case diffmatchpatch.DiffDelete:
			d.Removed = append(d.Removed, splitLines(diff.Text)...)
		}
	}
	if len(d.Added) == 0 && len(d.Removed) == 0 {
		return nil
	}
	return d
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func splitLines(text string) []string {
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
