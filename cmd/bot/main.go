package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/flor3z/fault-bot/internal/bot"
	"github.com/flor3z/fault-bot/internal/command"
	"github.com/flor3z/fault-bot/internal/config"
	"github.com/flor3z/fault-bot/internal/fault"
	"github.com/flor3z/fault-bot/internal/logging"
	"github.com/flor3z/fault-bot/internal/metrics"
	"github.com/flor3z/fault-bot/internal/poller"
	"github.com/flor3z/fault-bot/internal/stats"
	"github.com/flor3z/fault-bot/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Set up logging
	_, syncLogs, err := logging.Setup(logging.Config{Level: cfg.LogLevel, Environment: cfg.Environment})
	if err != nil {
		slog.Error("Failed to set up logging", "error", err)
		os.Exit(1)
	}
	defer syncLogs()

	if err := run(cfg); err != nil {
		slog.Error("Bot exited with error", "error", err)
		syncLogs()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	slog.Info("Starting Fault stats bot", "registry", cfg.RegistryBackend)

	// Create context that cancels on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := fault.NewClient(cfg.FaultAPIBaseURL, cfg.FaultAPITimeout)
	catalog := stats.LoadCatalog(ctx, client)

	store, err := storage.Open(ctx, cfg.StorageOptions())
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("Failed to close registry", "error", err)
		}
	}()

	aggregator := stats.NewAggregator(store, client, catalog)
	handler := command.NewHandler(store, aggregator, cfg.RankIconBaseURL)

	if cfg.CatalogRefreshInterval > 0 {
		refresher := poller.New("hero-catalog", cfg.CatalogRefreshInterval, aggregator.RefreshCatalog)
		refresher.Start(ctx)
		defer refresher.Stop()
	}

	var metricsServer *metrics.Server
	if cfg.MetricsAddr != "" {
		metricsServer = metrics.NewServer(cfg.MetricsAddr)
		go func() {
			if err := metricsServer.Start(); err != nil {
				slog.Error("Metrics server failed", "error", err)
			}
		}()
	}

	b, err := bot.New(cfg.DiscordToken, cfg.DiscordGuildID, handler)
	if err != nil {
		return err
	}
	if err := b.Start(ctx); err != nil {
		return err
	}

	slog.Info("Bot is running. Press Ctrl+C to stop.")
	<-ctx.Done()
	slog.Info("Shutting down...")

	if err := b.Stop(); err != nil {
		slog.Error("Error during shutdown", "error", err)
	}

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("Failed to stop metrics server", "error", err)
		}
	}

	slog.Info("Bot stopped")
	return nil
}
