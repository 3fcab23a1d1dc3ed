package main

import (
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"ylwblog/internal/build"
	"ylwblog/internal/metrics"
	"ylwblog/internal/watch"
)

var watchMetricsAddr string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild the data files whenever a post changes",
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchMetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	if watchMetricsAddr != "" {
		cfg.Watch.MetricsAddr = watchMetricsAddr
	}

	b := &build.Builder{Cfg: cfg, Logger: logger}
	var rec *metrics.PrometheusRecorder
	if cfg.Watch.MetricsAddr != "" {
		rec = metrics.NewPrometheusRecorder(nil)
		b.Metrics = rec
	}

	w, err := watch.New(cfg, b, logger)
	if err != nil {
		return err
	}
	defer w.Close()

	g, ctx := errgroup.WithContext(cmd.Context())
	if rec != nil {
		g.Go(func() error {
			return metrics.ListenAndServe(ctx, cfg.Watch.MetricsAddr, rec.Handler(), logger)
		})
	}
	g.Go(func() error {
		return w.Run(ctx)
	})
	return g.Wait()
}
