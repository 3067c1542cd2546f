package main

import (
	"github.com/spf13/cobra"

	"github.com/SichangHe/parse-rpsl-policy/pkg/cli"
	"github.com/SichangHe/parse-rpsl-policy/pkg/store"
)

var runsFlags struct {
	limit  int
	format string
}

var runsCmd = &cobra.Command{
	Use:   "runs [run-id|latest]",
	Short: "List stored runs or show one run",
	Long: `Without arguments, list the stored runs newest first. With a run ID, or
"latest", show that run in detail.

Examples:
  rpslpolicy runs
  rpslpolicy runs --limit 5 --format json
  rpslpolicy runs latest`,
	Args: cobra.MaximumNArgs(1),
	RunE: listRuns,
}

func init() {
	rootCmd.AddCommand(runsCmd)

	runsCmd.Flags().IntVarP(&runsFlags.limit, "limit", "n", 20, "maximum number of runs to list (0 for all)")
	runsCmd.Flags().StringVar(&runsFlags.format, "format", "text", "output format: text, json, yaml")
}

func listRuns(cmd *cobra.Command, args []string) error {
	if _, err := cli.ParseFormat(runsFlags.format); err != nil {
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

	ctx := cmd.Context()
	if len(args) == 1 {
		run, err := resolveRun(cmd, st, args[0])
		if err != nil {
			return err
		}
		return printResult(cmd, runsFlags.format, (*cli.RunDetail)(run))
	}

	runs, err := st.ListRuns(ctx, runsFlags.limit)
	if err != nil {
		return err
	}
	return printResult(cmd, runsFlags.format, cli.RunList(runs))
}

// resolveRun looks up a run by ID; "latest" and "" mean the newest run.
func resolveRun(cmd *cobra.Command, st store.Store, id string) (*store.Run, error) {
	if id == "" || id == "latest" {
		return store.LatestRun(cmd.Context(), st)
	}
	return st.GetRun(cmd.Context(), id)
}
