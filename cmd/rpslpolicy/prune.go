package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pruneFlags struct {
	retentionDays int
	maxRuns       int
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old runs according to the retention settings",
	Long: `Delete runs older than store.retention_days and the oldest runs beyond
store.max_runs. Runs still in progress are kept.

Examples:
  rpslpolicy prune
  rpslpolicy prune --max-runs 10`,
	Args: cobra.NoArgs,
	RunE: pruneRuns,
}

func init() {
	rootCmd.AddCommand(pruneCmd)

	pruneCmd.Flags().IntVar(&pruneFlags.retentionDays, "retention-days", 0, "override store.retention_days")
	pruneCmd.Flags().IntVar(&pruneFlags.maxRuns, "max-runs", 0, "override store.max_runs")
}

func pruneRuns(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	cfg := a.cfg()
	if cmd.Flags().Changed("retention-days") {
		cfg.Store.RetentionDays = pruneFlags.retentionDays
	}
	if cmd.Flags().Changed("max-runs") {
		cfg.Store.MaxRuns = pruneFlags.maxRuns
	}

	st, err := a.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	deleted, err := a.pruner(st, a.collector()).Prune(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "pruned %d runs\n", deleted)
	return nil
}
