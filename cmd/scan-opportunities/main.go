// Package main runs one value bet and arbitrage scan over predicted fixtures.
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

	"github.com/WarenOdhiambo1/lead-magnet/internal/config"
	"github.com/WarenOdhiambo1/lead-magnet/internal/database"
	"github.com/WarenOdhiambo1/lead-magnet/internal/logger"
	"github.com/WarenOdhiambo1/lead-magnet/internal/repository"
	"github.com/WarenOdhiambo1/lead-magnet/internal/service"
)

var (
	configFile string
	minMargin  float64
	cfg        *config.Config
	appLog     *logrus.Logger
	db         *database.DB
	repos      *repository.Repositories
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", config.DefaultConfigPath, "Path to configuration file")
	rootCmd.Flags().Float64Var(&minMargin, "min-margin", -1, "Minimum relative edge for a value bet (overrides engine.min_value_margin)")
}

var rootCmd = &cobra.Command{
	Use:   "scan-opportunities",
	Short: "Scan stored predictions against bookmaker prices",
	Long:  `Compares stored predictions with the best available 1X2 prices and records value bets and arbitrage.`,
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
		return scan(cmd.Context())
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
	if minMargin >= 0 {
		cfg.Engine.MinValueMargin = minMargin
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

func scan(ctx context.Context) error {
	scanner := service.NewOpportunityScanner(db, repos.Prediction, repos.Odds, repos.Opportunity, cfg.Engine, appLog)

	report, err := scanner.Scan(ctx)
	if report != nil {
		fmt.Printf("Run %s: %d matches scanned, %d value bets, %d arbitrages, %d new rows, %d failed (%s)\n",
			report.RunID, report.MatchesScanned, report.ValueBets, report.Arbitrages, report.Stored, report.Failed, report.Duration)
	}
	return err
}
