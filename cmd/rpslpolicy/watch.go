package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/SichangHe/parse-rpsl-policy/pkg/cli"
	"github.com/SichangHe/parse-rpsl-policy/pkg/store"
	"github.com/SichangHe/parse-rpsl-policy/pkg/telemetry/health"
	"github.com/SichangHe/parse-rpsl-policy/pkg/watch"
)

var watchFlags struct {
	path     string
	debounce time.Duration
	noPrune  bool
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-import dumps whenever they change",
	Long: `Import watch.path once, then again every time a dump below it changes.
Failed imports are retried with exponential backoff up to watch.max_retries
attempts. While watching, old runs are pruned on store.prune_schedule and,
when metrics.enabled is set, Prometheus metrics and the /health, /ready
and /version probes are served on metrics.listen_address.

When --config is given, the file is re-read after every change. A valid
new file replaces the active configuration and its logging section takes
effect at once; an invalid one is logged and ignored. Other sections
apply from the next start.

Stops on SIGINT or SIGTERM.

Examples:
  rpslpolicy watch --path /srv/irr
  rpslpolicy watch --config /etc/rpslpolicy.yaml`,
	Args: cobra.NoArgs,
	RunE: watchDumps,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchFlags.path, "path", "p", "", "override watch.path")
	watchCmd.Flags().DurationVar(&watchFlags.debounce, "debounce", 0, "override watch.debounce")
	watchCmd.Flags().BoolVar(&watchFlags.noPrune, "no-prune", false, "do not run the prune schedule")
}

func watchDumps(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	cfg := a.cfg()
	wc := cfg.Watch
	if watchFlags.path != "" {
		wc.Path = watchFlags.path
	}
	if watchFlags.debounce > 0 {
		wc.Debounce = watchFlags.debounce
	}
	if wc.Path == "" {
		return cli.NewConfigError("watch.path", "no path to watch (set watch.path or --path)")
	}
	if len(wc.Extensions) == 0 {
		wc.Extensions = cfg.RPSL.Extensions
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

	col := a.collector()
	w, err := watch.New(wc, a.ingester(st, col, tracer))
	if err != nil {
		return err
	}
	defer w.Close()
	w.Tracer = tracer
	w.OnImport = func(run *store.Run, err error) {
		if err == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%s imported %d attributes, %d failed\n", run.ID, run.Imports, run.Failed)
		}
	}

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	if !watchFlags.noPrune && cfg.Store.PruneSchedule != "" {
		pruner := a.pruner(st, col)
		if err := pruner.Start(ctx); err != nil {
			return fmt.Errorf("start prune schedule: %w", err)
		}
		defer pruner.Stop()
		if next := pruner.NextPruning(); next != nil {
			slog.Info("prune scheduled", "schedule", cfg.Store.PruneSchedule, "next", next.Format(time.RFC3339))
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	if col.Enabled() {
		checker := health.New(0)
		checker.RegisterCheck("store", health.StoreCheck(st))
		checker.RegisterCheck("import", w.Check)
		g.Go(func() error {
			return col.Serve(ctx, func(mux *http.ServeMux) {
				health.Mount(mux, checker, Version, GitCommit)
			})
		})
	}
	if cfgFile != "" {
		g.Go(func() error { return reloadOnChange(ctx, cfgFile) })
	}
	g.Go(func() error { return w.Run(ctx) })

	err = g.Wait()
	slog.Info("watch stopped", "imports", w.Imports())
	return err
}
