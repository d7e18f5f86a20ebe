// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/strategy-dashboard/internal/cache"
	"github.com/pdiddy/strategy-dashboard/internal/metrics"
	"github.com/pdiddy/strategy-dashboard/internal/scan"
	"github.com/pdiddy/strategy-dashboard/internal/server"
	"github.com/pdiddy/strategy-dashboard/internal/watch"
	"github.com/pdiddy/strategy-dashboard/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web dashboard",
	Long: `Serve scans the configured projects and serves the dashboard page at /,
the combined data as JSON at /api/data, and Prometheus metrics at /metrics.

Scan results are cached for --ttl. With --watch, a change to any strategy
file drops the cache so the next request rescans immediately.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntP("port", "p", 8080, "port to listen on")
	serveCmd.Flags().Duration("ttl", cache.DefaultTTL, "how long a scan result is served before rescanning (bare numbers are seconds)")
	serveCmd.Flags().Bool("watch", false, "invalidate the cache when strategy files change")
	serveCmd.Flags().Duration("read-timeout", 10*time.Second, "maximum duration for reading a request")
	serveCmd.Flags().Duration("write-timeout", 30*time.Second, "maximum duration for writing a response")

	for _, key := range []string{"port", "ttl", "watch", "read-timeout", "write-timeout"} {
		viper.BindPFlag(key, serveCmd.Flags().Lookup(key))
	}

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	scanCfg, err := resolveScanConfig()
	if err != nil {
		return err
	}
	ttl, err := durationSetting("ttl")
	if err != nil {
		return err
	}
	readTimeout, err := durationSetting("read-timeout")
	if err != nil {
		return err
	}
	writeTimeout, err := durationSetting("write-timeout")
	if err != nil {
		return err
	}
	cfg := types.ServerConfig{
		ScanConfig:   scanCfg,
		Port:         viper.GetInt("port"),
		CacheTTL:     ttl,
		Watch:        viper.GetBool("watch"),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
	logger := newLogger(os.Stderr)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	var scanner scan.Scanner
	c := cache.New(cfg.CacheTTL, func() types.Snapshot {
		return scanner.ScanAll(cfg.ProjectsDir, cfg.Projects).Snapshot(time.Now())
	}, cache.WithLogger(logger), cache.WithMetrics(metrics.New(reg)))

	out := cmd.OutOrStdout()
	printBanner(out, cfg, c.Get())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Watch {
		w, err := watch.New(cfg.ProjectsDir, cfg.Projects, c.Invalidate, logger)
		if err != nil {
			return err
		}
		defer w.Close()
		go func() {
			if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("File watcher stopped", "error", err)
			}
		}()
	}

	srv, err := server.New(cfg, c, reg, logger)
	if err != nil {
		return err
	}
	err = srv.Run(ctx)
	fmt.Fprintln(out, "\nShutting down...")
	return err
}

// printBanner writes the startup summary.
func printBanner(w io.Writer, cfg types.ServerConfig, snap types.Snapshot) {
	rule := strings.Repeat("=", 40)
	mode := "specified"
	if cfg.Discovered {
		mode = "auto-discovered"
	}

	fmt.Fprintln(w, "Strategy Dashboard")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Projects directory: %s\n", cfg.ProjectsDir)
	fmt.Fprintf(w, "Scanning (%s): %s\n", mode, strings.Join(cfg.Projects, ", "))
	fmt.Fprintf(w, "Found: %d projects, %d epics, %d tasks\n", len(snap.Projects), len(snap.Epics), len(snap.Tasks))
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Dashboard running at http://localhost:%d\n", cfg.Port)
	fmt.Fprintln(w, "Press Ctrl+C to stop")
	fmt.Fprintln(w)
}
