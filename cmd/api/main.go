package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CAFxX/httpcompression"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/arivanan0218/hospital-staff-allocation-ai/internal/config"
	"github.com/arivanan0218/hospital-staff-allocation-ai/internal/handler"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/clients/groqclient"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/services"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/db"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/memstore"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/notify"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/postgres"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/seed"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/utils/logging"
)

func main() {
	logger, err := logging.InitLogger("api")
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx := context.Background()

	// Store backend: postgres when a DSN is configured, otherwise the
	// in-memory store loaded with the demo dataset.
	var store db.Database
	if cfg.DatabaseDSN != "" {
		pg, err := postgres.NewDB(ctx, cfg.DatabaseDSN)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer pg.Close()

		if err := pg.RunMigrations(ctx); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
		store = pg
		logger.Info("Using postgres store")
	} else {
		mem := memstore.New()
		if err := seed.Load(ctx, mem); err != nil {
			logger.Fatal("Failed to load demo dataset", zap.Error(err))
		}
		store = mem
		logger.Info("Using in-memory store with demo dataset")
	}

	// Redis is optional; without it the advisory client skips caching.
	var cache *redis.Client
	if cfg.RedisAddr != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := cache.Ping(ctx).Err(); err != nil {
			logger.Warn("Redis unreachable, advisory caching disabled", zap.Error(err))
			cache = nil
		}
	}

	// The advisory client is optional; without it every decision comes
	// from the deterministic engine alone.
	var advisory services.AdvisoryClient
	if cfg.GroqAPIKey != "" {
		advisory = groqclient.NewClient(groqclient.Config{
			APIKey: cfg.GroqAPIKey,
			Model:  cfg.GroqModel,
		}, nil, cache, logger)
		logger.Info("Advisory client configured")
	} else {
		logger.Warn("No advisory API key configured, running deterministic-only")
	}

	// RabbitMQ is optional; without it allocation events are dropped.
	var publisher *notify.Publisher
	if cfg.RabbitMQURL != "" {
		conn, err := amqp.Dial(cfg.RabbitMQURL)
		if err != nil {
			logger.Warn("RabbitMQ unreachable, notifications disabled", zap.Error(err))
		} else {
			defer conn.Close()
			channel, err := conn.Channel()
			if err != nil {
				logger.Warn("Failed to open RabbitMQ channel, notifications disabled", zap.Error(err))
			} else {
				defer channel.Close()
				publisher, err = notify.NewPublisher(channel, logger)
				if err != nil {
					logger.Warn("Failed to set up event publisher, notifications disabled", zap.Error(err))
				}
			}
		}
	}

	h, err := handler.NewHandler(store, advisory, publisher, logger)
	if err != nil {
		logger.Fatal("Failed to create handler", zap.Error(err))
	}
	h.RegisterRoutes()

	compress, err := httpcompression.DefaultAdapter()
	if err != nil {
		logger.Fatal("Failed to create compression adapter", zap.Error(err))
	}

	srv := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      compress(h.Mux),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting server", zap.String("addr", cfg.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shut down cleanly", zap.Error(err))
	}
	logger.Info("Server stopped")
}
