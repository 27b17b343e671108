// Package main provides the entry point for the prediction API and its scheduled jobs.
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

	"github.com/WarenOdhiambo1/lead-magnet/internal/api"
	"github.com/WarenOdhiambo1/lead-magnet/internal/cache"
	"github.com/WarenOdhiambo1/lead-magnet/internal/config"
	"github.com/WarenOdhiambo1/lead-magnet/internal/database"
	"github.com/WarenOdhiambo1/lead-magnet/internal/logger"
	"github.com/WarenOdhiambo1/lead-magnet/internal/metrics"
	"github.com/WarenOdhiambo1/lead-magnet/internal/repository"
	"github.com/WarenOdhiambo1/lead-magnet/internal/scheduler"
	"github.com/WarenOdhiambo1/lead-magnet/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile  string
	noScheduler bool
	cfg         *config.Config
	appLog      *logrus.Logger
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", config.DefaultConfigPath, "Path to configuration file")
	rootCmd.Flags().BoolVar(&noScheduler, "no-scheduler", false, "Serve the API without running scheduled jobs")
}

var rootCmd = &cobra.Command{
	Use:     "quant-api",
	Short:   "Serve match predictions and betting opportunities",
	Long:    `Serves the Dixon-Coles engine over HTTP and runs the scheduled prediction and opportunity scan jobs.`,
	Version: fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd.Context())
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
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
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := config.ApplySecrets(ctx, cfg); err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	appLog = logger.NewLogger(cfg.App.LogLevel)
	logger.NewAuditLogger(appLog).LogConfigLoaded("quant-api", map[string]interface{}{
		"environment": cfg.App.Environment,
		"max_goals":   cfg.Engine.MaxGoals,
		"rho":         cfg.Engine.Rho,
		"port":        cfg.API.Port,
		"scheduler":   cfg.Schedule.Enabled && !noScheduler,
	})
	return nil
}

func run(ctx context.Context) error {
	metrics.InitRegistry()

	db, err := database.Initialize(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()
	appLog.Info("Database connection established")

	repos, err := repository.NewRepositories(db)
	if err != nil {
		return fmt.Errorf("failed to initialize repositories: %w", err)
	}

	predCache := cache.NewPredictionCache(cfg.Cache.TTL(), cfg.Cache.MaxSize)
	predictions := service.NewPredictionService(repos.Match, repos.Prediction, predCache, cfg.Engine, appLog)
	scanner := service.NewOpportunityScanner(db, repos.Prediction, repos.Odds, repos.Opportunity, cfg.Engine, appLog)

	if cfg.Schedule.Enabled && !noScheduler {
		sched := scheduler.NewScheduler(predictions, scanner, appLog)
		if err := sched.SchedulePredictions(cfg.Schedule.Predictions); err != nil {
			return err
		}
		if err := sched.ScheduleScan(cfg.Schedule.Scan); err != nil {
			return err
		}
		if err := sched.Start(); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
		defer func() {
			if err := sched.Stop(); err != nil {
				appLog.WithError(err).Error("Error stopping scheduler")
			}
		}()
	}

	server := api.NewServer(api.Config{
		ServiceName:   cfg.App.Name,
		Version:       Version,
		Commit:        GitCommit,
		Port:          cfg.API.Port,
		MetricsPath:   cfg.Metrics.Path,
		NoMetrics:     !cfg.Metrics.Enabled,
		RateLimit:     cfg.API.RateLimit,
		Burst:         cfg.API.Burst,
		Engine:        cfg.Engine,
		Logger:        appLog,
		DB:            db,
		Predictor:     predictions,
		Teams:         repos.Team,
		Matches:       repos.Match,
		Predictions:   repos.Prediction,
		Opportunities: repos.Opportunity,
		Stats:         repos.Stats,
	})
	if err := server.Start(); err != nil {
		return fmt.Errorf("failed to start API server: %w", err)
	}
	server.SetReady(true)

	appLog.WithFields(logrus.Fields{
		"version":     Version,
		"environment": cfg.App.Environment,
		"port":        cfg.API.Port,
	}).Info("Quant API running")

	<-ctx.Done()
	appLog.Info("Shutdown signal received")
	server.SetReady(false)
	return server.Shutdown()
}
