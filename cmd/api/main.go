package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/velora-health/patient-assistant/internal/adapters/cache"
	"github.com/velora-health/patient-assistant/internal/adapters/classifiers"
	"github.com/velora-health/patient-assistant/internal/adapters/geo"
	"github.com/velora-health/patient-assistant/internal/adapters/notifications"
	"github.com/velora-health/patient-assistant/internal/api/handlers"
	"github.com/velora-health/patient-assistant/internal/api/routes"
	"github.com/velora-health/patient-assistant/internal/application/services"
	"github.com/velora-health/patient-assistant/internal/domain/providers"
	"github.com/velora-health/patient-assistant/internal/infrastructure/clients/postgres"
	"github.com/velora-health/patient-assistant/internal/infrastructure/clients/redis"
	"github.com/velora-health/patient-assistant/internal/infrastructure/observability"
	"github.com/velora-health/patient-assistant/pkg/config"
)

func main() {
	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Environment)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Classifier registry is mandatory: without models there is nothing to serve
	registry, err := classifiers.BuildRegistry(cfg.Assistant.Classifiers)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build classifier registry")
	}
	log.Info().Strs("conditions", registry.Conditions()).Msg("classifier registry initialized")

	// Optional Redis cache
	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, facility lookups will not be cached")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		log.Info().Msg("Redis client initialized")
	}

	// Primary facility source: OpenStreetMap Overpass
	var primarySource providers.FacilitySource = geo.NewOverpassSource(
		cfg.Overpass.Endpoint,
		time.Duration(cfg.Overpass.TimeoutSeconds)*time.Second,
	)
	if cacheProvider != nil {
		primarySource = geo.NewCachedSource(primarySource, cacheProvider)
	}

	// Optional alternate source: the facility directory database
	var fallbackSource providers.FacilitySource
	if cfg.Database.Enabled {
		pgClient, err := postgres.NewClient(&cfg.Database)
		if err != nil {
			log.Warn().Err(err).Msg("facility directory unavailable, continuing without alternate source")
		} else {
			defer pgClient.Close()
			fallbackSource = geo.NewDirectorySource(pgClient)
			log.Info().Msg("facility directory initialized")
		}
	}

	// Core services
	validator := services.NewFeatureValidator()
	predictor := services.NewRiskPredictor(registry)
	zones := services.NewZoneClassifier(cfg.Assistant.Thresholds)
	engine := services.NewRecommendationEngine(zones)
	locator := services.NewFacilityLocator(primarySource, fallbackSource, cfg.Assistant.SpecialtyKeywords)

	// Alert transports are optional; the SOS endpoint is only mounted when at
	// least one is configured alongside emergency contacts.
	var smsSender, emailSender providers.AlertSender
	if sid := os.Getenv("TWILIO_ACCOUNT_SID"); sid != "" {
		sender, err := notifications.NewTwilioSender(
			sid,
			os.Getenv("TWILIO_AUTH_TOKEN"),
			os.Getenv("TWILIO_FROM_NUMBER"),
		)
		if err != nil {
			log.Warn().Err(err).Msg("Twilio sender misconfigured, SMS alerts disabled")
		} else {
			smsSender = sender
			log.Info().Msg("Twilio SMS sender initialized")
		}
	}
	if host := os.Getenv("SMTP_HOST"); host != "" {
		sender, err := notifications.NewSMTPSender(
			host,
			getEnvInt("SMTP_PORT", 587),
			os.Getenv("SMTP_USERNAME"),
			os.Getenv("SMTP_PASSWORD"),
			os.Getenv("SMTP_FROM"),
		)
		if err != nil {
			log.Warn().Err(err).Msg("SMTP sender misconfigured, email alerts disabled")
		} else {
			emailSender = sender
			log.Info().Msg("SMTP email sender initialized")
		}
	}

	var emergencyHandler *handlers.EmergencyHandler
	if (smsSender != nil || emailSender != nil) && len(cfg.Assistant.EmergencyContacts) > 0 {
		emergency := services.NewEmergencyService(smsSender, emailSender, cfg.Assistant.EmergencyContacts)
		emergencyHandler = handlers.NewEmergencyHandler(emergency)
	} else {
		log.Info().Msg("SOS dispatch disabled: no alert transport or contacts configured")
	}

	// Handlers and router
	healthHandler := handlers.NewHealthHandler(registry, cfg.OTEL.ServiceVersion)
	predictionHandler := handlers.NewPredictionHandler(validator, predictor, zones, metrics)
	recommendationHandler := handlers.NewRecommendationHandler(engine)
	hospitalHandler := handlers.NewHospitalHandler(locator)

	router := routes.NewRouter(
		healthHandler,
		predictionHandler,
		recommendationHandler,
		hospitalHandler,
		emergencyHandler,
		metrics,
	)
	handler := router.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("server stopped")
}

func getEnvInt(key string, defaultValue int) int {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return defaultValue
}
