/*
Package cli provides command-line helpers for the rpslpolicy command.

Output Formatting:

Command results can be printed as text, JSON or YAML:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, runs); err != nil {
		return err
	}

Values implementing TextWriter control their own text rendering. RunList,
RunDetail, RecordList and LintReport render store runs, stored records and
lint reports as aligned tables with human readable counts and times.

Progress Reporting:

For long imports, use the progress reporter:

	progress := cli.NewProgressReporter(os.Stderr, "dumps")
	progress.Start(total)
	progress.Update(done)
	progress.Finish()

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli
