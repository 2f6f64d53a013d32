package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Nomadcxx/extrarr/internal/api"
	"github.com/Nomadcxx/extrarr/internal/logging"
	"github.com/spf13/cobra"
)

func newDaemonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Run periodic scans with a status API",
		Long: `Run extrarr as a long-lived process: scan on startup, then on the
configured interval. A small HTTP API reports status and download
history.

Endpoints:
  GET /healthz          liveness probe
  GET /api/status       last scan report and uptime
  GET /api/downloads    recent download history

Examples:
  extrarr daemon
  extrarr daemon --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			interval, err := time.ParseDuration(cfg.Daemon.ScanFrequency)
			if err != nil {
				return fmt.Errorf("invalid scan_frequency %q: %w", cfg.Daemon.ScanFrequency, err)
			}

			log := newLogger(cfg)
			defer log.Close()

			f, store, err := buildFinder(cfg, log)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			server := api.NewServer(store)
			httpServer := &http.Server{
				Addr:    cfg.Daemon.ListenAddr,
				Handler: server.Handler(),
			}

			go func() {
				log.Info("daemon", "status api listening", logging.F("addr", cfg.Daemon.ListenAddr))
				if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error("daemon", "status api failed", err)
				}
			}()

			runScan := func() {
				server.SetScanning(true)
				report, err := f.Run(ctx)
				if err != nil && ctx.Err() == nil {
					log.Error("daemon", "scan failed", err)
				}
				server.RecordReport(report)
			}

			fmt.Printf("Daemon started: scanning every %s, API on %s\n", interval, cfg.Daemon.ListenAddr)
			runScan()

			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					fmt.Println("\nShutting down")
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					return httpServer.Shutdown(shutdownCtx)
				case <-ticker.C:
					runScan()
				}
			}
		},
	}
}
