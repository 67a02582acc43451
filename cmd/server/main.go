package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/maxviazov/itinerary-planner/internal/config"
	"github.com/maxviazov/itinerary-planner/internal/endpoint"
	"github.com/maxviazov/itinerary-planner/internal/handler"
	"github.com/maxviazov/itinerary-planner/internal/llm"
	"github.com/maxviazov/itinerary-planner/internal/logger"
	"github.com/maxviazov/itinerary-planner/internal/repository"
	"github.com/maxviazov/itinerary-planner/internal/service"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config; empty to use defaults and env only")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Fatalf("❌ .env loading failed: %v", err)
	}

	// Load application config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Config loading failed: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, appLogger); err != nil {
		appLogger.Fatal().Err(err).Msg("❌ Service stopped with error")
	}
}

func run(ctx context.Context, cfg *config.Config, appLogger zerolog.Logger) error {
	var cache repository.ItineraryCache = repository.NoopCache{}
	if cfg.Redis.Enabled {
		rc, err := repository.New(ctx, cfg.Redis, &appLogger)
		if err != nil {
			return fmt.Errorf("redis connection failed: %w", err)
		}
		defer rc.Close()
		cache = rc
	}

	var client llm.Client
	if cfg.LLM.Enabled() {
		client = llm.NewClient(cfg.LLM, nil, appLogger)
		appLogger.Info().Str("model", cfg.LLM.Model).Str("base_url", cfg.LLM.BaseURL).Msg("✅ LLM client initialized")
	} else {
		appLogger.Warn().Msg("GROQ_API_KEY not set or using placeholder value; itinerary generation disabled")
	}

	svc := service.NewItineraryService(client, cache, appLogger)

	if cfg.App.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	handler.Use(r, cfg.CORS, appLogger)
	handler.Register(r, cache, svc)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info().
			Int("port", cfg.App.Port).
			Str("base_url", endpoint.BaseURL).
			Msg("🚀 Service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	appLogger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
