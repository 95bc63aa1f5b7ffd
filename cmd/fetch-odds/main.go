// Package main fetches the current odds board and stores it in the bronze
// partition for later pipeline runs.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/datalake"
	"github.com/yourusername/gridiron-edge/internal/datasource"
	"github.com/yourusername/gridiron-edge/internal/ingest"
	"github.com/yourusername/gridiron-edge/internal/logger"
)

var (
	configFile string
	league     string
	season     int
	week       int

	cfg *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().StringVar(&league, "league", "NFL", "League to fetch (NFL or CFB)")
	rootCmd.Flags().IntVar(&season, "season", time.Now().Year(), "Season year")
	rootCmd.Flags().IntVar(&week, "week", 1, "Week number")
}

var rootCmd = &cobra.Command{
	Use:   "fetch-odds",
	Short: "Fetch current odds from The Odds API into the data lake",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
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
		if cfg.OddsAPI.APIKey == "" {
			return fmt.Errorf("odds_api.api_key is required to fetch odds")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	lg := logger.New(cfg.App.LogLevel, cfg.App.Environment)

	sport, err := datasource.SportSlug(league)
	if err != nil {
		return err
	}

	client := datasource.NewClient(cfg.OddsAPI.APIKey, cfg.OddsAPI.Region, cfg.OddsAPI.CacheTTL(), lg)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	boards, err := client.FetchOddsBoards(ctx, sport)
	if err != nil {
		return fmt.Errorf("fetching odds boards: %w", err)
	}

	dir := datalake.PartPath(cfg.Paths.Datalake, datalake.LayerBronze, league, season, week)
	if err := datalake.EnsureDir(dir); err != nil {
		return err
	}
	out := filepath.Join(dir, "odds.csv")
	if err := ingest.WriteOddsCSV(out, boards); err != nil {
		return err
	}
	lg.WithFields(map[string]interface{}{
		"boards": len(boards),
		"output": out,
	}).Info("Odds board stored")

	if cfg.OddsAPI.ScoresDaysFrom > 0 {
		results, err := client.FetchRecentResults(ctx, sport, cfg.OddsAPI.ScoresDaysFrom)
		if err != nil {
			return fmt.Errorf("fetching recent scores: %w", err)
		}
		scoresOut := filepath.Join(dir, "results.csv")
		if err := ingest.WriteResultsCSV(scoresOut, results); err != nil {
			return err
		}
		lg.WithFields(map[string]interface{}{
			"games":  len(results),
			"output": scoresOut,
		}).Info("Recent scores stored")
	}
	return nil
}
