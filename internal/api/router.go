// Package api provides the HTTP API for ModeShift.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/modeshift/modeshift/internal/api/handler"
	"github.com/modeshift/modeshift/internal/api/middleware"
	"github.com/modeshift/modeshift/internal/calc"
	"github.com/modeshift/modeshift/internal/country"
	"github.com/modeshift/modeshift/internal/variables"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version          string
	BuildTime        string
	Logger           zerolog.Logger
	ServiceName      string
	Metrics          *middleware.Metrics
	CalcMetrics      *middleware.CalculationMetrics
	Engine           *calc.Engine
	VariablesService *variables.Service
	CountryStore     *country.Store
	ReadinessChecks  []handler.ReadinessCheck
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Set default service name if not provided
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "modeshift-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type
	r.Use(middleware.RequireJSON)          // Reject non-JSON request bodies

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.ReadinessChecks...)
	dataHandler := handler.NewDataHandler(cfg.CountryStore)
	variablesHandler := handler.NewVariablesHandler(cfg.VariablesService, cfg.CalcMetrics)
	calculationHandler := handler.NewCalculationHandler(cfg.Engine, cfg.VariablesService, cfg.CalcMetrics)

	// Create rate limit middleware for different endpoint categories
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
		})

		// Reference data endpoints (read-only) - standard rate limiting
		r.Route("/data", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/countries", dataHandler.ListCountries)
			r.Get("/countries/{country}", dataHandler.GetCountry)
			r.Route("/reference", func(r chi.Router) {
				r.Get("/new-car-co2", dataHandler.NewCarCo2Table)
				r.Get("/electricity-intensity", dataHandler.ElectricityIntensityTable)
			})
		})

		// Variable table endpoints - standard rate limiting
		r.Route("/variables", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/general", variablesHandler.GetGeneral)
			r.Put("/general", variablesHandler.PutGeneral)

			r.Route("/traditional-modes", func(r chi.Router) {
				r.Get("/", variablesHandler.ListTraditionalModes)
				r.Get("/private-car-defaults", variablesHandler.PrivateCarDefaults)
				r.Route("/{mode}", func(r chi.Router) {
					r.Get("/", variablesHandler.GetTraditionalMode)
					r.Put("/", variablesHandler.PutTraditionalMode)
				})
			})

			r.Route("/shared-services", func(r chi.Router) {
				r.Get("/", variablesHandler.ListSharedServices)
				r.Route("/{service}", func(r chi.Router) {
					r.Get("/", variablesHandler.GetSharedService)
					r.Put("/", variablesHandler.PutSharedService)
				})
			})
		})

		// Calculation endpoint - expensive compute, strict rate limiting
		r.With(expensiveRateLimit).Post("/calculations/emissions", calculationHandler.CalculateEmissions)
	})

	return r
}
