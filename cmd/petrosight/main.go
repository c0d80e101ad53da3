package main

import (
	"context"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MikeSquared-Agency/petrosight/internal/analysis"
	"github.com/MikeSquared-Agency/petrosight/internal/anthropic"
	"github.com/MikeSquared-Agency/petrosight/internal/api"
	"github.com/MikeSquared-Agency/petrosight/internal/config"
	"github.com/MikeSquared-Agency/petrosight/internal/connector"
	"github.com/MikeSquared-Agency/petrosight/internal/features"
	"github.com/MikeSquared-Agency/petrosight/internal/hermes"
	"github.com/MikeSquared-Agency/petrosight/internal/oracle"
	"github.com/MikeSquared-Agency/petrosight/internal/processor"
	"github.com/MikeSquared-Agency/petrosight/internal/scheduler"
	"github.com/MikeSquared-Agency/petrosight/internal/store"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("petrosight starting", "port", cfg.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Oracle, constructed on first use
	adapter := oracle.NewAdapter(func() (oracle.Oracle, error) {
		llm, err := anthropic.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
		if err != nil {
			return nil, err
		}
		return llm, nil
	}, cfg.OracleTimeout, slog.Default())
	if cfg.AnthropicAPIKey == "" {
		slog.Warn("ANTHROPIC_API_KEY not set, analyses will fail until it is configured")
	}

	// Basin registry and data connector
	var registry *connector.Registry
	if cfg.RegistryPath != "" {
		reg, err := connector.LoadRegistry(cfg.RegistryPath)
		if err != nil {
			slog.Error("failed to load basin registry", "path", cfg.RegistryPath, "error", err)
			os.Exit(1)
		}
		registry = reg
		slog.Info("basin registry loaded", "path", cfg.RegistryPath, "basins", len(reg.Basins))
	}
	conn, err := connector.New(adapter, connector.Options{
		Registry:    registry,
		Rand:        rand.New(rand.NewSource(cfg.DataSeed)),
		Concurrency: cfg.EnrichConcurrency,
	}, slog.Default())
	if err != nil {
		slog.Error("failed to build data connector", "error", err)
		os.Exit(1)
	}

	dispatcher := analysis.New(adapter, conn, features.New(adapter, slog.Default()), slog.Default())

	// Database (optional, no run history without it)
	var recorder processor.Recorder
	var runs api.RunLister
	if cfg.DatabaseURL != "" {
		db, err := store.New(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.Migrate(ctx); err != nil {
			slog.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}
		recorder, runs = db, db
		slog.Info("database connected")
	} else {
		slog.Warn("DATABASE_URL not set, running without run history")
	}

	// NATS/Hermes (optional, HTTP only without it)
	var publisher processor.Publisher
	var hermesClient *hermes.Client
	if cfg.NatsURL != "" {
		hermesClient, err = hermes.NewClient(ctx, cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer hermesClient.Close()
		publisher = hermesClient
		slog.Info("NATS connected", "url", cfg.NatsURL)
	}

	proc := processor.New(dispatcher, publisher, recorder, slog.Default())

	if hermesClient != nil {
		if err := hermesClient.Subscribe(hermes.SubjectAnalysisRequested, "petrosight", proc.HandleAnalysisRequested); err != nil {
			slog.Error("failed to subscribe to analysis requests", "error", err)
			os.Exit(1)
		}
	}

	// Scheduled basin surveys (optional)
	var survey *scheduler.Survey
	if cfg.SurveySchedule != "" {
		survey, err = scheduler.New(proc, cfg.SurveySchedule, cfg.SurveyBasins, slog.Default())
		if err != nil {
			slog.Error("failed to configure survey schedule", "error", err)
			os.Exit(1)
		}
		survey.Start()
	}

	// HTTP API
	srv := api.NewServer(proc, api.Options{
		Port:     cfg.Port,
		APIToken: cfg.APIToken,
		Model:    cfg.AnthropicModel,
		Oracle:   adapter,
		Runs:     runs,
	}, slog.Default())
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
			cancel()
		}
	}()

	// Announce registration
	if hermesClient != nil {
		types := make([]string, 0, len(analysis.Types()))
		for _, t := range analysis.Types() {
			types = append(types, string(t))
		}
		if err := hermesClient.Publish(hermes.SubjectAgentRegistered, hermes.AgentRegistered{
			Agent:         "petrosight",
			Model:         cfg.AnthropicModel,
			AnalysisTypes: types,
			StartedAt:     time.Now().UTC(),
		}); err != nil {
			slog.Warn("failed to publish registration", "error", err)
		}
	}

	slog.Info("petrosight ready", "port", cfg.Port)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
	case <-ctx.Done():
	}
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("HTTP shutdown", "error", err)
	}
	if survey != nil {
		survey.Stop(shutdownCtx)
	}
	if hermesClient != nil {
		if err := hermesClient.Drain(); err != nil {
			slog.Warn("NATS drain", "error", err)
		}
	}
	cancel()
	slog.Info("petrosight stopped")
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
