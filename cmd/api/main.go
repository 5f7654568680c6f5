// Package main provides the entrypoint for the ModeShift API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/modeshift/modeshift/internal/api"
	"github.com/modeshift/modeshift/internal/api/handler"
	"github.com/modeshift/modeshift/internal/api/middleware"
	"github.com/modeshift/modeshift/internal/calc"
	"github.com/modeshift/modeshift/internal/country"
	"github.com/modeshift/modeshift/internal/database"
	"github.com/modeshift/modeshift/internal/telemetry"
	"github.com/modeshift/modeshift/internal/variables"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "modeshift-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting ModeShift API")

	// Get configuration from environment
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	// Initialize OpenTelemetry
	ctx := context.Background()
	telemetryCfg := telemetry.ConfigFromEnv(serviceName, Version)

	tp, err := telemetry.Init(ctx, telemetryCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryCfg.Enabled {
		log.Info().
			Str("otlp_endpoint", telemetryCfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	calcMetrics, err := middleware.NewCalculationMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize calculation metrics")
		os.Exit(1)
	}

	// Load the embedded reference data
	store, err := country.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load reference data")
	}
	minYear, maxYear := store.YearRange()
	log.Info().
		Int("countries", len(store.Countries())).
		Int("min_year", minYear).
		Int("max_year", maxYear).
		Msg("reference data loaded")

	// Pick the variable table store. Postgres persists tables across
	// restarts; the in-memory store serves local development.
	var (
		repo   variables.Repository
		checks []handler.ReadinessCheck
	)
	if os.Getenv("STORE_BACKEND") == "postgres" {
		dbConfig := database.ConfigFromEnv()
		pool, err := database.Connect(ctx, dbConfig)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		log.Info().
			Str("host", dbConfig.Host).
			Int("port", dbConfig.Port).
			Str("database", dbConfig.Database).
			Msg("database connected")

		repo = variables.NewPostgresRepository(pool)
		checks = append(checks, handler.ReadinessCheck{
			Name:  "database",
			Check: pool.Ping,
		})
	} else {
		repo = variables.NewInMemoryRepository()
		log.Info().Msg("using in-memory variable store")
	}

	// Initialize the variables service
	variablesService := variables.NewService(variables.ServiceConfig{
		Repository: repo,
		Reference:  store,
		Logger:     log,
	})
	log.Info().Msg("variables service initialized")

	// Initialize the calculation engine
	engine := calc.NewEngine(calc.EngineConfig{
		Reference: store,
		Logger:    log,
	})
	log.Info().Msg("calculation engine initialized")

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:          Version,
		BuildTime:        BuildTime,
		Logger:           log,
		ServiceName:      serviceName,
		Metrics:          metrics,
		CalcMetrics:      calcMetrics,
		Engine:           engine,
		VariablesService: variablesService,
		CountryStore:     store,
		ReadinessChecks:  checks,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
