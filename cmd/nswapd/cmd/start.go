package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/nativeswap/nativeswap/api"
	"github.com/nativeswap/nativeswap/app"
	"github.com/nativeswap/nativeswap/app/telemetry"
)

const flagInvariantCheck = "invariant-check"

// StartCmd runs the engine and its gateway until interrupted.
func StartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run the engine and HTTP gateway",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			home, cfg, err := nodeConfig(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return run(ctx, home, cfg, logger)
		},
	}
	cmd.Flags().Bool(flagInvariantCheck, true, "check ledger invariants before every commit")
	return cmd
}

func run(ctx context.Context, home string, cfg NodeConfig, logger log.Logger) error {
	provider, err := telemetry.NewProvider(cfg.TelemetryConfig())
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown failed", "error", err)
		}
	}()

	if cfg.Telemetry.PrometheusEnabled && cfg.Telemetry.MetricsPort > 0 {
		metricsSrv := StartPrometheusServer(cfg.Telemetry.MetricsPort, logger)
		defer metricsSrv.Close()
	}

	appCfg, err := cfg.AppConfig()
	if err != nil {
		return err
	}
	db, err := dbm.NewDB("engine", dbm.BackendType(cfg.DBBackend), dataDir(home))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	engine, err := app.NewApp(logger, db, appCfg, app.WithMeter(provider.Meter()))
	if err != nil {
		return err
	}
	defer func() {
		if err := engine.Close(); err != nil {
			logger.Error("failed to close engine", "error", err)
		}
	}()

	if !engine.Initialized() {
		gs, err := app.LoadGenesisFile(filepath.Join(configDir(home), genesisFile))
		if err != nil {
			return err
		}
		if err := engine.InitChain(ctx, gs); err != nil {
			return err
		}
	}

	apiCfg, err := cfg.APIConfig()
	if err != nil {
		return err
	}
	srv, err := api.NewServer(engine, apiCfg, logger)
	if err != nil {
		return err
	}
	return srv.Start(ctx)
}

// StartPrometheusServer serves /metrics on port in the background.
func StartPrometheusServer(port int, logger log.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("prometheus server error", "error", err)
		}
	}()
	return server
}
