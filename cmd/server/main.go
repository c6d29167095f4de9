package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/merchops/support-assistant/internal/config"
	"github.com/merchops/support-assistant/internal/domain"
	"github.com/merchops/support-assistant/internal/eventbus"
	"github.com/merchops/support-assistant/internal/generator"
	"github.com/merchops/support-assistant/internal/handler"
	"github.com/merchops/support-assistant/internal/server"
	"github.com/merchops/support-assistant/internal/service"
	"github.com/merchops/support-assistant/internal/storage"
	"github.com/merchops/support-assistant/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.New(cfg.Logging.Level)
	defer log.Sync()

	ctx := context.Background()
	log.Info(ctx, "Starting application")

	files := storage.NewFileStore(cfg.Data.Dir)
	repo := storage.NewMerchantStore(files, log)
	log.Info(ctx, "Merchant store initialized",
		"data_dir", cfg.Data.Dir,
	)

	eventBusCfg := &eventbus.Config{
		ChannelBuffer: cfg.EventBus.ChannelBufferSize,
		MaxRetries:    cfg.Worker.MaxRetries,
	}
	bus := eventbus.New(log, eventBusCfg)

	notificationConsumer := eventbus.NewNotificationConsumer(repo, log, cfg.Worker.PoolSize)
	err := bus.Subscribe(eventbus.EventTypeNotification, notificationConsumer)
	if err != nil {
		log.Fatal(ctx, "Failed to subscribe consumer",
			"error", err,
		)
	}

	err = bus.Start(ctx)
	if err != nil {
		log.Fatal(ctx, "Failed to start event bus",
			"error", err,
		)
	}
	log.Info(ctx, "Event bus started",
		"worker_count", cfg.Worker.PoolSize,
	)

	rules, err := service.LoadRoutingRules(cfg.Router.RulesFile)
	if err != nil {
		log.Warn(ctx, "Failed to load routing rules, using defaults",
			"rules_file", cfg.Router.RulesFile,
			"error", err,
		)
	}

	// A nil *GeminiClient must stay a nil interface so the service detects
	// demo mode.
	var gen domain.Generator
	if client := generator.NewGeminiClient(cfg.Generator.APIKey, cfg.Generator.Model, cfg.Generator.Timeout); client != nil {
		gen = client
	} else {
		log.Warn(ctx, "No generator API key configured, running in demo mode")
	}

	supportService := service.NewSupportService(repo, gen, bus, rules, cfg.Router.ConversationLogSize, log)
	log.Info(ctx, "Support service initialized")

	supportHandler := handler.NewSupportHandler(supportService, log)
	dataHandler := handler.NewDataHandler(repo, log)
	ticketHandler := handler.NewTicketHandler(supportService, log)
	healthHandler := handler.NewHealthHandler()

	srv := server.New(cfg, log, supportHandler, dataHandler, ticketHandler, healthHandler)

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal(ctx, "Failed to start HTTP server",
				"error", err,
			)
		}
	}()

	log.Info(ctx, "Application started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info(ctx, "Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()

	// Graceful shutdown: stop accepting requests first, then drain workers.
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "HTTP server shutdown error",
			"error", err,
		)
	}

	if err := bus.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "Event bus shutdown error",
			"error", err,
		)
	}

	log.Info(ctx, "Application stopped gracefully")
}
