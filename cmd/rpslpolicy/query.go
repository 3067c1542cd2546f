package main

import (
	"github.com/spf13/cobra"

	"github.com/SichangHe/parse-rpsl-policy/pkg/cli"
	"github.com/SichangHe/parse-rpsl-policy/pkg/store"
)

var queryFlags struct {
	run       string
	autNum    string
	attribute string
	kind      string
	errors    bool
	limit     int
	offset    int
	count     bool
	format    string
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query the stored import records of a run",
	Long: `Print the stored records of a run, by default the latest one.

Examples:
  # All imports of one aut-num
  rpslpolicy query --aut-num AS3333

  # Every failure of a given kind in a run
  rpslpolicy query --run 0b6f3c2e-... --errors --kind premature_keyword

  # Just the number of failures
  rpslpolicy query --errors --count`,
	Args: cobra.NoArgs,
	RunE: queryRecords,
}

func init() {
	rootCmd.AddCommand(queryCmd)

	queryCmd.Flags().StringVar(&queryFlags.run, "run", "latest", "run ID or 'latest'")
	queryCmd.Flags().StringVarP(&queryFlags.autNum, "aut-num", "a", "", "only records of this aut-num")
	queryCmd.Flags().StringVar(&queryFlags.attribute, "attribute", "", "only mp-import or import records")
	queryCmd.Flags().StringVar(&queryFlags.kind, "kind", "", "only failures of this error kind")
	queryCmd.Flags().BoolVarP(&queryFlags.errors, "errors", "e", false, "only records that failed to parse")
	queryCmd.Flags().IntVarP(&queryFlags.limit, "limit", "n", 0, "maximum number of records (0 for all)")
	queryCmd.Flags().IntVar(&queryFlags.offset, "offset", 0, "records to skip")
	queryCmd.Flags().BoolVar(&queryFlags.count, "count", false, "print the number of matching records only")
	queryCmd.Flags().StringVar(&queryFlags.format, "format", "text", "output format: text, json, yaml")
}

func queryRecords(cmd *cobra.Command, args []string) error {
	if _, err := cli.ParseFormat(queryFlags.format); err != nil {
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

	run, err := resolveRun(cmd, st, queryFlags.run)
	if err != nil {
		return err
	}

	q := &store.Query{
		RunID:      run.ID,
		AutNum:     queryFlags.autNum,
		Attribute:  queryFlags.attribute,
		ErrorKind:  queryFlags.kind,
		OnlyErrors: queryFlags.errors,
		Limit:      queryFlags.limit,
		Offset:     queryFlags.offset,
	}

	if queryFlags.count {
		n, err := st.CountRecords(cmd.Context(), q)
		if err != nil {
			return err
		}
		return printResult(cmd, queryFlags.format, n)
	}

	records, err := st.QueryRecords(cmd.Context(), q)
	if err != nil {
		return err
	}
	return printResult(cmd, queryFlags.format, cli.RecordList(records))
}
