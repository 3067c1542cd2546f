package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/SichangHe/parse-rpsl-policy/pkg/cli"
	"github.com/SichangHe/parse-rpsl-policy/pkg/ingest"
)

var importFlags struct {
	src         sourceFlags
	format      string
	progress    bool
	stopOnError bool
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Parse IRR dumps and store the results as a run",
	Long: `Parse every mp-import and import attribute of the selected dumps and store
one record per attribute in the configured store. Each import creates a run
that can be listed with 'runs', queried with 'query' and compared with 'diff'.

Examples:
  rpslpolicy import --dir /srv/irr
  rpslpolicy import --git-repo /srv/irr-mirror --rev main --progress
  rpslpolicy import --file ripe.db.gz --config /etc/rpslpolicy.yaml`,
	RunE: importDumps,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importFlags.src.register(importCmd)
	importCmd.Flags().StringVar(&importFlags.format, "format", "text", "output format: text, json, yaml")
	importCmd.Flags().BoolVar(&importFlags.progress, "progress", false, "show a progress bar on stderr")
	importCmd.Flags().BoolVar(&importFlags.stopOnError, "stop-on-error", false, "stop at the first dump that cannot be read")
}

func importDumps(cmd *cobra.Command, args []string) error {
	if _, err := cli.ParseFormat(importFlags.format); err != nil {
		return err
	}

	a, err := setup()
	if err != nil {
		return err
	}
	src, err := importFlags.src.source(a.cfg().RPSL.Extensions)
	if err != nil {
		return err
	}

	st, err := a.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	tracer, err := a.tracer()
	if err != nil {
		return err
	}
	defer tracer.Shutdown(context.Background())

	cfg := ingest.DefaultConfig()
	cfg.RPSL = a.rpslOptions()
	cfg.Tracer = tracer
	cfg.StopOnError = importFlags.stopOnError
	if importFlags.progress {
		progress := cli.NewProgressReporter(os.Stderr, "dumps")
		cfg.Progress = func(done, total int) {
			switch {
			case done == 0:
				progress.Start(int64(total))
			case done == total:
				progress.Finish()
			default:
				progress.Update(int64(done))
			}
		}
	}

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	run, err := ingest.NewIngester(st, a.collector(), cfg).Ingest(ctx, src)
	if run != nil {
		if perr := printResult(cmd, importFlags.format, (*cli.RunDetail)(run)); perr != nil {
			return perr
		}
	}
	if err != nil {
		return cli.NewCommandError("import", err)
	}
	return nil
}
