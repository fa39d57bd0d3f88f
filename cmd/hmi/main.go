package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/santhosh1815/hmi/internal/api"
	"github.com/santhosh1815/hmi/internal/config"
	"github.com/santhosh1815/hmi/internal/diagnostics"
	"github.com/santhosh1815/hmi/internal/logger"
	"github.com/santhosh1815/hmi/internal/pid"
	"github.com/santhosh1815/hmi/internal/simulation"
	"github.com/santhosh1815/hmi/internal/telemetry"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.LogLevel, logger.IsService()); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger.Debug().Msg("Config loaded")

	if err := pid.Write(); err != nil {
		logger.Fatal().Err(err).Msg("failed to write PID file")
	}

	driver, err := simulation.NewDriver(simulation.DriverConfig{
		HistorySize: cfg.HistorySize,
		InitialLoad: cfg.InitialLoad,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize simulation driver")
	}

	collector, err := telemetry.NewService(telemetry.Config{
		DBPath:       cfg.Database,
		BatchSize:    32,
		BatchTimeout: 30,
		Enabled:      cfg.Telemetry,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize telemetry collector")
	}

	interval := time.Duration(cfg.Interval) * time.Millisecond
	diagService := diagnostics.NewService(diagnostics.NewClient(diagnostics.ClientConfig{
		URL:     cfg.DiagnosticsURL,
		APIKey:  cfg.DiagnosticsAPIKey,
		Timeout: time.Duration(cfg.DiagnosticsTimeout) * time.Second,
	}))
	server := api.NewServer(driver, diagService, interval)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	go func() {
		logger.Info().Str("listen", cfg.Listen).Msg("API server starting")
		if err := server.Start(cfg.Listen); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("API server failed")
			cancel()
		}
	}()

	loop(ctx, interval, driver, collector, server)

	cleanup(server, collector)
}

func loop(ctx context.Context, interval time.Duration, driver *simulation.Driver,
	collector telemetry.Collector, server *api.Server,
) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info().
		Dur("interval", interval).
		Int("target_load", driver.TargetLoad()).
		Msg("Simulation loop started")

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sample, advanced := driver.Advance()
			if !advanced {
				continue
			}

			if err := collector.Record(ctx, &sample); err != nil {
				logger.ErrorWithCode(err).Msg("failed to record sample")
			}

			server.Broadcast(sample)
			logSample(sample)
		}
	}
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}

func cleanup(server *api.Server, collector telemetry.Collector) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shut down API server")
	}
	if err := collector.Close(); err != nil {
		logger.Error().Err(err).Msg("failed to close telemetry collector")
	}
	if err := pid.Remove(); err != nil {
		logger.Error().Err(err).Msg("failed to remove PID file")
	}
	logger.Info().Msg("Exiting...")
}

func logSample(sample simulation.Sample) {
	logger.Debug().
		Float64("voltage", sample.Voltage).
		Float64("current", sample.Current).
		Float64("power", sample.Power).
		Float64("temperature", sample.Temperature).
		Float64("frequency", sample.Frequency).
		Float64("efficiency", sample.Efficiency).
		Str("status", string(sample.Status)).
		Bool("voltage_out_of_band", simulation.IsVoltageOutOfBand(sample.Voltage)).
		Bool("current_elevated", simulation.IsCurrentElevated(sample.Current)).
		Msg("")
}
