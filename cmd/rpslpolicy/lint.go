package main

import (
	"github.com/spf13/cobra"

	"github.com/SichangHe/parse-rpsl-policy/pkg/cli"
)

var lintFlags struct {
	src      sourceFlags
	format   string
	exitZero bool
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Report the import policies of IRR dumps that do not parse",
	Long: `Parse every mp-import and import attribute of every aut-num object in the
selected dumps and report the ones that fail. Nothing is stored.

The exit status is 1 when any attribute fails, unless --exit-zero is set.

Examples:
  # Lint a single dump
  rpslpolicy lint --file ripe.db.gz

  # Lint a directory of dumps
  rpslpolicy lint --dir /srv/irr

  # Lint the dumps committed to a git mirror at a given revision
  rpslpolicy lint --git-repo /srv/irr-mirror --rev 2024-06-01

  # JSON output for CI/CD
  rpslpolicy lint --file ripe.db --format json`,
	RunE: lintDumps,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintFlags.src.register(lintCmd)
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json, yaml")
	lintCmd.Flags().BoolVar(&lintFlags.exitZero, "exit-zero", false, "exit with status 0 even when attributes fail")
}

func lintDumps(cmd *cobra.Command, args []string) error {
	if _, err := cli.ParseFormat(lintFlags.format); err != nil {
		return err
	}

	a, err := setup()
	if err != nil {
		return err
	}
	src, err := lintFlags.src.source(a.cfg().RPSL.Extensions)
	if err != nil {
		return err
	}

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	report, err := a.ingester(nil, nil, nil).Lint(ctx, src)
	if report != nil && report.Dumps > 0 {
		if perr := printResult(cmd, lintFlags.format, (*cli.LintReport)(report)); perr != nil {
			return perr
		}
	}
	if err != nil {
		return cli.NewCommandError("lint", err)
	}
	if report.Failed > 0 && !lintFlags.exitZero {
		return &cli.ExitError{Code: 1}
	}
	return nil
}
