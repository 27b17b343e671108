// Package main runs one prediction pass over upcoming fixtures.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/WarenOdhiambo1/lead-magnet/internal/cache"
	"github.com/WarenOdhiambo1/lead-magnet/internal/config"
	"github.com/WarenOdhiambo1/lead-magnet/internal/database"
	"github.com/WarenOdhiambo1/lead-magnet/internal/logger"
	"github.com/WarenOdhiambo1/lead-magnet/internal/repository"
	"github.com/WarenOdhiambo1/lead-magnet/internal/service"
)

var (
	configFile string
	batchSize  int
	status     string
	cfg        *config.Config
	appLog     *logrus.Logger
	db         *database.DB
	repos      *repository.Repositories
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", config.DefaultConfigPath, "Path to configuration file")
	rootCmd.Flags().IntVar(&batchSize, "batch-size", 0, "Maximum fixtures to predict (overrides engine.batch_size)")
	rootCmd.Flags().StringVar(&status, "status", "", "Match status to select (overrides engine.match_status)")
}

var rootCmd = &cobra.Command{
	Use:   "generate-predictions",
	Short: "Generate Dixon-Coles predictions for upcoming fixtures",
	Long:  `Prices every upcoming fixture without a stored prediction and upserts the result.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := setupDependencies(cmd.Context()); err != nil {
			return fmt.Errorf("failed to setup dependencies: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		defer db.Close()
		return generate(cmd.Context())
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig(ctx context.Context) error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}
	if batchSize > 0 {
		cfg.Engine.BatchSize = batchSize
	}
	if status != "" {
		cfg.Engine.MatchStatus = status
	}
	if err := config.ApplySecrets(ctx, cfg); err != nil {
		return err
	}
	return config.Validate(cfg)
}

func setupDependencies(ctx context.Context) error {
	appLog = logger.NewLogger(cfg.App.LogLevel)

	var err error
	db, err = database.Initialize(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	repos, err = repository.NewRepositories(db)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to initialize repositories: %w", err)
	}
	return nil
}

func generate(ctx context.Context) error {
	predCache := cache.NewPredictionCache(cfg.Cache.TTL(), cfg.Cache.MaxSize)
	svc := service.NewPredictionService(repos.Match, repos.Prediction, predCache, cfg.Engine, appLog)

	report, err := svc.GenerateUpcoming(ctx)
	if report != nil {
		fmt.Printf("Run %s: %d fixtures, %d predictions stored, %d failed (%s)\n",
			report.RunID, report.Processed, report.Generated, report.Failed, report.Duration)
	}
	if err != nil {
		return err
	}
	if report.Failed > 0 {
		return fmt.Errorf("%d of %d fixtures failed", report.Failed, report.Processed)
	}
	return nil
}
