package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SichangHe/parse-rpsl-policy/pkg/cli"
	"github.com/SichangHe/parse-rpsl-policy/pkg/ingest"
	"github.com/SichangHe/parse-rpsl-policy/pkg/store"
)

var diffFlags struct {
	autNum string
	format string
}

var diffCmd = &cobra.Command{
	Use:   "diff [from-run [to-run]]",
	Short: "Show how import policies changed between two runs",
	Long: `Compare the stored import attributes of two runs aut-num by aut-num.

Without arguments the two newest completed runs are compared. With one run ID
that run is compared with the newest completed run.

Examples:
  rpslpolicy diff
  rpslpolicy diff 0b6f3c2e-... --aut-num AS3333
  rpslpolicy diff 0b6f3c2e-... 7d1e55a0-... --format json`,
	Args: cobra.MaximumNArgs(2),
	RunE: diffRuns,
}

func init() {
	rootCmd.AddCommand(diffCmd)

	diffCmd.Flags().StringVarP(&diffFlags.autNum, "aut-num", "a", "", "only compare this aut-num")
	diffCmd.Flags().StringVar(&diffFlags.format, "format", "text", "output format: text, json, yaml")
}

func diffRuns(cmd *cobra.Command, args []string) error {
	if _, err := cli.ParseFormat(diffFlags.format); err != nil {
		return err
	}

	a, err := setup()
	if err != nil {
		return err
	}
	st, err := a.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	from, to, err := diffPair(cmd, st, args)
	if err != nil {
		return err
	}

	diff, err := ingest.DiffRuns(cmd.Context(), st, from, to, diffFlags.autNum)
	if err != nil {
		return err
	}
	return printResult(cmd, diffFlags.format, (*cli.DiffView)(diff))
}

// diffPair picks the runs to compare from the arguments, filling in the
// newest completed runs.
func diffPair(cmd *cobra.Command, st store.Store, args []string) (from, to string, err error) {
	if len(args) == 2 {
		return args[0], args[1], nil
	}

	runs, err := st.ListRuns(cmd.Context(), 0)
	if err != nil {
		return "", "", err
	}
	var completed []string
	for _, r := range runs {
		if r.Status == store.RunCompleted {
			completed = append(completed, r.ID)
		}
	}

	if len(args) == 1 {
		if len(completed) == 0 {
			return "", "", fmt.Errorf("no completed run to compare with")
		}
		return args[0], completed[0], nil
	}
	if len(completed) < 2 {
		return "", "", fmt.Errorf("need two completed runs to compare, have %d", len(completed))
	}
	return completed[1], completed[0], nil
}
