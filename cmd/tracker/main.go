package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caiovicentino/whalescope/internal/api"
	app_service "github.com/caiovicentino/whalescope/internal/application/service"
	"github.com/caiovicentino/whalescope/internal/domain/repository"
	domain_service "github.com/caiovicentino/whalescope/internal/domain/service"
	"github.com/caiovicentino/whalescope/internal/infrastructure/blockchain"
	"github.com/caiovicentino/whalescope/internal/infrastructure/config"
	"github.com/caiovicentino/whalescope/internal/infrastructure/logger"
	"github.com/caiovicentino/whalescope/internal/infrastructure/messaging"
	"github.com/caiovicentino/whalescope/internal/infrastructure/pricing"
	"github.com/caiovicentino/whalescope/internal/infrastructure/storage"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.App.LogLevel)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	app := fx.New(
		fx.Supply(cfg),
		fx.Supply(log),
		fx.Supply(&cfg.Helius),
		fx.Supply(&cfg.NATS),
		fx.Provide(func() *zap.Logger { return log.Logger }),

		// Infrastructure providers
		fx.Provide(
			newDataProvider,
			storage.NewMovementStore,
			storage.NewWhaleRegistry,
			pricing.NewStaticPriceService,
			messaging.NewMovementPublisher,
			func(p *messaging.MovementPublisher) domain_service.MovementPublisher { return p },
		),

		// Domain services
		fx.Provide(
			domain_service.NewTransactionClassifierService,
			domain_service.NewPatternDetectorService,
		),

		// Application providers
		fx.Provide(
			newTrackingService,
			newHTTPServer,
		),

		// Lifecycle hooks
		fx.Invoke(startPublisher),
		fx.Invoke(startServer),

		fx.WithLogger(func() fxevent.Logger {
			return fxevent.NopLogger
		}),
	)

	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		log.Error("Failed to start application", zap.Error(err))
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down application...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.Stop(stopCtx); err != nil {
		log.Error("Failed to stop application gracefully", zap.Error(err))
		os.Exit(1)
	}

	log.Info("Application stopped successfully")
}

// newDataProvider selects the live Helius client or the static mock,
// depending on whether an API key is configured. The core never checks
// credentials itself.
func newDataProvider(cfg *config.Config, log *logger.Logger) domain_service.BlockchainDataService {
	if cfg.Helius.APIKey != "" {
		return blockchain.NewHeliusClient(&cfg.Helius, log)
	}
	log.Warn("No Helius API key configured, using static mock data")
	return blockchain.NewMockProvider(log)
}

// newTrackingService wires the whale tracking application service
func newTrackingService(
	provider domain_service.BlockchainDataService,
	classifier *domain_service.TransactionClassifierService,
	detector *domain_service.PatternDetectorService,
	movements repository.MovementRepository,
	whales repository.WhaleRepository,
	publisher domain_service.MovementPublisher,
	cfg *config.Config,
	log *logger.Logger,
) domain_service.WhaleTrackingService {
	return app_service.NewWhaleTrackingApplicationService(
		provider, classifier, detector, movements, whales, publisher,
		cfg.Whale.Thresholds(), log)
}

// newHTTPServer wires the JSON API server
func newHTTPServer(
	cfg *config.Config,
	tracking domain_service.WhaleTrackingService,
	movements repository.MovementRepository,
	prices domain_service.PriceService,
	log *logger.Logger,
) *api.Server {
	return api.NewServer(cfg.App.HTTPPort, tracking, movements, prices, log)
}

// startPublisher connects the NATS movement publisher when enabled
func startPublisher(lifecycle fx.Lifecycle, publisher *messaging.MovementPublisher, log *logger.Logger) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return publisher.Connect(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return publisher.Disconnect()
		},
	})
}

// startServer starts the HTTP API server
func startServer(lifecycle fx.Lifecycle, server *api.Server, log *logger.Logger) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := server.Start(); err != nil {
					log.Error("HTTP server error", zap.Error(err))
				}
			}()
			log.Info("Whale tracker started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return server.Shutdown(ctx)
		},
	})
}
