package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/api/option"

	"airtrip-service/internal/domain/repository"
	"airtrip-service/internal/infrastructure/config"
	"airtrip-service/internal/infrastructure/oauth"
	"airtrip-service/internal/infrastructure/persistence"
	"airtrip-service/internal/infrastructure/router"
	"airtrip-service/internal/interface/gmail"
	"airtrip-service/internal/interface/handler"
	adapters "airtrip-service/internal/interface/repository"
	"airtrip-service/internal/usecase"
	"airtrip-service/pkg/logger"
	"airtrip-service/pkg/metrics"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger("info").Fatal("Failed to load config", "error", err)
	}

	// Create logger
	log := logger.NewLogger(cfg.LogLevel)
	defer log.Sync()
	log.Info("Starting Airtrip Service", "version", cfg.AppVersion)

	appMetrics := metrics.NewMetrics("airtrip")

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	// Set up PostgreSQL airport catalog
	log.Info("Connecting to PostgreSQL")
	gormDB, err := persistence.NewPostgresDB(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	// Sessions live in Redis when configured, in process memory otherwise
	var sessionRepo repository.SessionRepository
	if cfg.RedisAddr != "" {
		redisClient, err := persistence.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Fatal("Failed to connect to Redis", "error", err)
		}
		defer redisClient.Close()
		sessionRepo = adapters.NewRedisSessionRepository(redisClient, cfg.SessionTTL)
		log.Info("Using Redis session store", "addr", cfg.RedisAddr)
	} else {
		sessionRepo = adapters.NewMemorySessionRepository(cfg.SessionTTL)
		log.Info("Using in-memory session store")
	}

	// Set up repositories
	airportRepo := adapters.NewGormAirportRepository(gormDB)
	credentialRepo := adapters.NewMongoCredentialRepository(db)

	mapsRepo, err := adapters.NewGoogleMapsRepository(cfg.GoogleMapsAPIKey, log)
	if err != nil {
		log.Fatal("Failed to create Google Maps client", "error", err)
	}

	amadeusClient := oauth.NewAmadeusHTTPClient(ctx, cfg.AmadeusBaseURL, cfg.AmadeusClientID, cfg.AmadeusClientSecret, cfg.FareQueryTimeout)
	fareRepo := adapters.NewAmadeusFareRepository(amadeusClient, cfg.AmadeusBaseURL, log)

	// Set up Gmail OAuth
	var mailRepo repository.MailRepository
	gmailOAuth := oauth.NewGmailOAuth(cfg.GmailClientID, cfg.GmailClientSecret, cfg.GmailRefreshToken, log)
	if gmailOAuth.Configured() {
		mailRepo, err = gmail.NewGmailMailRepository(ctx, cfg.MailSender, log, option.WithTokenSource(gmailOAuth.GetTokenSource(ctx)))
		if err != nil {
			log.Fatal("Failed to create Gmail service", "error", err)
		}
	} else {
		log.Warn("Gmail credentials missing, reset links will only be logged")
		mailRepo = gmail.NewLogMailRepository(log)
	}

	// Set up use cases
	rangeFinder := usecase.NewRangeFinder(airportRepo, mapsRepo, usecase.RangeFinderConfig{
		BatchSize:       cfg.MatrixBatchSize,
		PrefilterMargin: cfg.PrefilterMargin,
		MaxRetries:      cfg.FareMaxRetries,
	}, appMetrics, log)
	enumerator := usecase.NewPairingEnumerator(rangeFinder, log)
	fares := usecase.NewFareAggregator(fareRepo, usecase.FareAggregatorConfig{
		MaxInflight:  cfg.MaxInflightFareQueries,
		QueryTimeout: cfg.FareQueryTimeout,
		MaxRetries:   cfg.FareMaxRetries,
	}, appMetrics, log)
	orchestrator := usecase.NewSearchOrchestrator(
		mapsRepo,
		sessionRepo,
		rangeFinder,
		enumerator,
		fares,
		usecase.NewResultAggregator(),
		cfg.SearchTimeout,
		appMetrics,
		log,
	)
	authService := usecase.NewAuthService(credentialRepo, mailRepo, cfg.ResetURLBase, log)
	clientLogs := usecase.NewClientLogService(log)

	// Set up HTTP server
	h := handler.NewHandler(orchestrator, authService, clientLogs, log)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.NewRouter(h, appMetrics.Registry, cfg.AllowedOrigins, log),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel()

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		sqlDB.Close()
	}

	log.Info("Service stopped")
}
