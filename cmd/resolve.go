package main

import (
	"context"
	"fmt"
	"idresolve/internal/config"
	"idresolve/internal/output"
	"idresolve/internal/pipeline"
	"idresolve/pkg/candidates"
	"idresolve/pkg/domain"
	"idresolve/pkg/logger"
	"idresolve/pkg/metrics"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func resolveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Searches candidate profiles for a person and scores each against their contact details",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			var target domain.Identity
			target.Name, _ = cmd.Flags().GetString("name")
			target.Email, _ = cmd.Flags().GetString("email")
			target.Phone, _ = cmd.Flags().GetString("phone")
			asJSON, _ := cmd.Flags().GetBool("json")
			noColor, _ := cmd.Flags().GetBool("no-color")
			handles, _ := cmd.Flags().GetStringSlice("handle")

			opts := pipeline.NewOptions(cfg)
			if cmd.Flags().Changed("delay") {
				opts.Delay, _ = cmd.Flags().GetDuration("delay")
			}
			metricsFile := cfg.Metrics.File
			if cmd.Flags().Changed("metrics-file") {
				metricsFile, _ = cmd.Flags().GetString("metrics-file")
			}

			// bad input must fail before anything touches the network.
			if err := target.Validate(); err != nil {
				return err //nolint: wrapcheck
			}
			if err := cfg.RequireSession(); err != nil {
				return err //nolint: wrapcheck
			}
			if err := cfg.RequireSigning(); err != nil {
				return err //nolint: wrapcheck
			}

			m := metrics.New()
			opts.Metrics = m
			httpClient := newHTTPClient(cfg)

			client, err := newInstagram(cfg, httpClient, m)
			if err != nil {
				return err
			}

			var sink output.Sink
			if asJSON {
				sink = output.NewJSON(os.Stdout)
			} else {
				text := output.NewText(os.Stdout, output.ShouldColorize(os.Stdout) && !noColor)
				text.Banner()
				sink = text
			}

			if err := client.ValidateSession(ctx); err != nil {
				return err //nolint: wrapcheck
			}

			var source candidates.Source = candidates.NewDumpor(httpClient, cfg.Search.URL, cfg.Search.UserAgent)
			if len(handles) > 0 {
				source = candidates.Static(handles)
			}

			started := time.Now()
			summary, runErr := pipeline.New(client, source, sink, opts).Run(ctx, target)

			logger.Info(ctx, "run finished",
				zap.Int("candidates", summary.Candidates),
				zap.Int("resolved", summary.Resolved),
				zap.Int("emitted", summary.Emitted),
				zap.String("best", string(summary.Best)),
				zap.Bool("stopped", summary.Stopped),
				zap.Duration("took", time.Since(started)))

			writeMetrics(ctx, m, metricsFile)

			if runErr != nil {
				return fmt.Errorf("resolve failed: %w", runErr)
			}

			return nil
		},
	}

	cmd.Flags().String("name", "", "Full name of the person")
	cmd.Flags().String("email", "", "Email address of the person")
	cmd.Flags().String("phone", "", "Phone number of the person")
	cmd.Flags().Duration("delay", 0, "Pause between two candidates (e.g., 2s)")
	cmd.Flags().Bool("json", false, "Print one JSON object per resolved profile")
	cmd.Flags().Bool("no-color", false, "Disable colored output")
	cmd.Flags().StringSlice("handle", nil, "Check these handles instead of searching by name")
	cmd.Flags().String("metrics-file", "", "Write Prometheus metrics to this textfile after the run")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("phone")

	return cmd
}

func writeMetrics(ctx context.Context, m *metrics.Metrics, path string) {
	if path == "" {
		return
	}
	if err := m.WriteTextfile(path); err != nil {
		logger.Warn(ctx, "could not write metrics textfile", zap.String("path", path), zap.Error(err))
	}
}
