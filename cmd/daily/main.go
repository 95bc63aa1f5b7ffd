// Package main provides the entry point for the daily pick pipeline.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/logger"
	"github.com/yourusername/gridiron-edge/internal/metrics"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/pipeline"
	"github.com/yourusername/gridiron-edge/internal/scheduler"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	league     string
	season     int
	week       int
	scheduled  bool

	cfg *config.Config
	lg  *logrus.Logger
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().StringVar(&league, "league", "NFL", "League to run (NFL or CFB)")
	rootCmd.Flags().IntVar(&season, "season", time.Now().Year(), "Season year")
	rootCmd.Flags().IntVar(&week, "week", 1, "Week number")
	rootCmd.Flags().BoolVar(&scheduled, "schedule", false, "Run under the configured cron schedule instead of once")
}

var rootCmd = &cobra.Command{
	Use:   "daily",
	Short: "Run the full pick pipeline for one league week",
	Long: `Ingests results, fits team ratings, prices the odds board against the
model, sizes stakes with fractional Kelly, and writes tickets to the data lake.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if scheduled {
			return runScheduled()
		}
		return runOnce()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func setup() error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			return fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	lg = logger.New(cfg.App.LogLevel, cfg.App.Environment)
	lg.WithFields(logrus.Fields{
		"version": Version,
		"commit":  GitCommit,
		"built":   BuildDate,
	}).Info("Gridiron Edge daily pipeline")
	return nil
}

func runOnce() error {
	p := pipeline.New(cfg, lg)
	tickets, err := p.Run(context.Background(), pipeline.Target{League: league, Season: season, Week: week})
	if err != nil {
		return err
	}
	printTickets(tickets)
	return nil
}

func runScheduled() error {
	if !cfg.Schedule.Enabled {
		return fmt.Errorf("schedule.enabled must be true for --schedule mode")
	}

	if cfg.Metrics.Enabled {
		go serveMetrics()
	}

	p := pipeline.New(cfg, lg)
	sched := scheduler.New(lg)
	err := sched.Schedule(cfg.Schedule.Cron, "daily-pipeline", func(ctx context.Context) error {
		_, err := p.Run(ctx, pipeline.Target{League: league, Season: season, Week: week})
		return err
	})
	if err != nil {
		return err
	}
	if err := sched.Start(); err != nil {
		return err
	}
	lg.WithField("next_run", sched.NextRun().Format(time.RFC3339)).Info("Scheduler running")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	lg.Info("Shutting down")
	return sched.Stop()
}

func serveMetrics() {
	path := cfg.Metrics.Path
	if path == "" {
		path = "/metrics"
	}
	mux := http.NewServeMux()
	mux.Handle(path, metrics.Handler())
	addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
	lg.WithField("addr", addr).Info("Serving metrics")
	if err := http.ListenAndServe(addr, mux); err != nil {
		lg.WithError(err).Error("Metrics server stopped")
	}
}

func printTickets(tickets []models.Ticket) {
	if len(tickets) == 0 {
		fmt.Println("No tickets passed filters.")
		return
	}
	fmt.Printf("\n=== Tickets: %s %d Week %d ===\n", league, season, week)
	for _, t := range tickets {
		line := ""
		if t.Line != nil {
			line = fmt.Sprintf(" line %+.1f", *t.Line)
		}
		fmt.Printf("%s  %s %s%s  odds %+d  fair %.4f  model %.4f  edge %+.4f  stake $%s\n",
			t.GameID, t.Market, t.Side, line, t.AmericanPrice, t.FairProb, t.ModelProb, t.Edge, t.Stake.StringFixed(2))
	}
}
