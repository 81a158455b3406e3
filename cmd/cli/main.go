package main

import (
	"context"
	"fmt"
	"os"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arivanan0218/hospital-staff-allocation-ai/cmd/cli/commands"
	"github.com/arivanan0218/hospital-staff-allocation-ai/internal/config"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/clients/groqclient"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/db"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/memstore"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/notify"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/postgres"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/seed"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/utils/logging"
)

var (
	env string
	app = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hospital-cli",
		Short: "Hospital staff allocation CLI",
		Long:  "Command line interface for managing hospital staff, shifts and allocations",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(
		commands.SeedCmd(app),
		commands.ListStaffCmd(app),
		commands.CreateAllocationCmd(app),
		commands.AutoAllocateCmd(app),
		commands.ValidateCmd(app),
		commands.AlternativesCmd(app),
		commands.OptimizeCmd(app),
		commands.ConflictsCmd(app),
		commands.SummaryCmd(app),
		commands.DefineShiftSeriesCmd(app),
		commands.CheckInCmd(app),
		commands.CheckOutCmd(app),
		commands.CompleteShiftCmd(app),
		commands.SweepShiftsCmd(app),
		commands.TimelineCmd(app),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// initApp builds the shared AppContext after flag parsing, so the
// environment flag is available. The command constructors receive the
// pointer before it is populated and read it lazily at run time.
func initApp() error {
	logger, err := logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Info("Logger initialized", zap.String("env", env))

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Info("Configuration loaded")

	ctx := context.Background()

	// Store backend: postgres when a DSN is configured, otherwise the
	// in-memory store loaded with the demo dataset.
	var store db.Database
	if cfg.DatabaseDSN != "" {
		pg, err := postgres.NewDB(ctx, cfg.DatabaseDSN)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := pg.RunMigrations(ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		store = pg
		logger.Info("Using postgres store")
	} else {
		mem := memstore.New()
		if err := seed.Load(ctx, mem); err != nil {
			return fmt.Errorf("failed to load demo dataset: %w", err)
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

	app.Cfg = cfg
	app.Database = store
	app.Logger = logger
	app.Ctx = ctx

	// The advisory client is optional; without it every decision comes
	// from the deterministic engine alone.
	if cfg.GroqAPIKey != "" {
		app.Advisory = groqclient.NewClient(groqclient.Config{
			APIKey: cfg.GroqAPIKey,
			Model:  cfg.GroqModel,
		}, nil, cache, logger)
		logger.Info("Advisory client configured")
	} else {
		logger.Warn("No advisory API key configured, running deterministic-only")
	}

	// RabbitMQ is optional; without it allocation events are dropped.
	// The connection lives for the duration of the process.
	if cfg.RabbitMQURL != "" {
		conn, err := amqp.Dial(cfg.RabbitMQURL)
		if err != nil {
			logger.Warn("RabbitMQ unreachable, notifications disabled", zap.Error(err))
		} else {
			channel, err := conn.Channel()
			if err != nil {
				logger.Warn("Failed to open RabbitMQ channel, notifications disabled", zap.Error(err))
			} else {
				publisher, err := notify.NewPublisher(channel, logger)
				if err != nil {
					logger.Warn("Failed to set up event publisher, notifications disabled", zap.Error(err))
				} else {
					app.Publisher = publisher
				}
			}
		}
	}

	return nil
}
