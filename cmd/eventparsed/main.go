package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sportbeacon/eventparse/internal/api"
	"github.com/sportbeacon/eventparse/internal/booking"
	"github.com/sportbeacon/eventparse/internal/config"
	"github.com/sportbeacon/eventparse/internal/enhance"
	"github.com/sportbeacon/eventparse/internal/parser"
	"github.com/sportbeacon/eventparse/internal/storage/sqlite"
	"github.com/sportbeacon/eventparse/internal/venues"
	"github.com/sportbeacon/eventparse/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	// Load .env before the config reads OPENAI_API_KEY and friends
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: failed to load .env file: %v\n", err)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting eventparsed",
		logger.String("config", *configPath),
		logger.String("db", cfg.Storage.Path),
		logger.String("default_locale", cfg.Parser.DefaultLocale),
		logger.Bool("ai_enabled", cfg.AI.Enabled),
	)

	db, err := sqlite.Open(cfg.Storage.Path)
	if err != nil {
		log.Error("Failed to open database", logger.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	venueStorage, err := sqlite.NewVenueStorage(db, log)
	if err != nil {
		log.Error("Failed to initialize venue storage", logger.Error(err))
		os.Exit(1)
	}
	bookingStorage, err := sqlite.NewBookingStorage(db, log)
	if err != nil {
		log.Error("Failed to initialize booking storage", logger.Error(err))
		os.Exit(1)
	}

	if cfg.Storage.SeedDemoVenues {
		if err := venueStorage.SeedDemoVenues(context.Background()); err != nil {
			log.Error("Failed to seed venue directory", logger.Error(err))
			os.Exit(1)
		}
	}

	resolver := venues.NewResolver(venueStorage, venues.Config{
		MaxDistanceKM: cfg.Venues.MaxDistanceKM,
	}, log)

	var checker *booking.Checker
	if cfg.Availability.Enabled {
		checker = booking.NewChecker(bookingStorage, log)
	}

	var enhancer enhance.Enhancer = enhance.Noop{}
	if cfg.AI.Enabled && cfg.AI.APIKey != "" {
		enhancer = enhance.NewOpenAIEnhancer(enhance.OpenAIConfig{
			APIKey:  cfg.AI.APIKey,
			Model:   cfg.AI.Model,
			Timeout: time.Duration(cfg.AI.TimeoutSeconds) * time.Second,
		}, log)
		log.Info("AI enhancement enabled", logger.String("model", cfg.AI.Model))
	}

	parserSvc := parser.New(resolver, checker, enhancer, parser.Options{
		DefaultLocale: cfg.Parser.DefaultLocale,
	}, log)

	router := api.NewRouter(parserSvc, venueStorage, bookingStorage, cfg, log)
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Routes(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	go func() {
		log.Info("HTTP server listening", logger.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server failed", logger.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", logger.Error(err))
		os.Exit(1)
	}

	log.Info("Server stopped")
}
