// Package main provides a standalone rating fitter for historical results.
package main

import (
	"fmt"
	"log"
	"sort"

	"github.com/spf13/cobra"

	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/ingest"
	"github.com/yourusername/gridiron-edge/internal/logger"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/ratings"
)

var (
	configFile string
	inputFile  string
	outputFile string
	method     string

	cfg *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Results CSV to fit from (required)")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Ratings CSV to write (optional, prints when omitted)")
	rootCmd.Flags().StringVarP(&method, "method", "m", "", "Override the configured fit method (ridge or elo)")
	rootCmd.MarkFlagRequired("input")
}

var rootCmd = &cobra.Command{
	Use:   "fit-ratings",
	Short: "Fit team ratings from a historical results file",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadWithDefaults(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if method != "" {
			cfg.Ratings.Method = method
		}
		return config.Validate(cfg)
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

	results, err := ingest.LoadResultsCSV(inputFile, lg)
	if err != nil {
		return err
	}
	lg.WithField("games", len(results)).Info("Loaded results")

	var fitted models.RatingMap
	switch cfg.Ratings.Method {
	case "ridge":
		fitted, _, err = ratings.FitRidge(results, ratings.RidgeOptions{
			HFAPoints:      cfg.Model.HFAPoints,
			Lambda:         cfg.Ratings.L2Lambda,
			EnforceSumZero: cfg.Ratings.EnforceSumZero,
		})
		if err != nil {
			return fmt.Errorf("ridge fit: %w", err)
		}
	case "elo":
		fitted = ratings.FitElo(results, ratings.EloOptions{
			K:           cfg.Ratings.EloK,
			HFAPoints:   cfg.Model.HFAPoints,
			Iters:       cfg.Ratings.EloIters,
			ScalePts:    cfg.Ratings.ScalePts,
			UseMOV:      cfg.Ratings.MOVEnabled,
			MOVScalePts: cfg.Ratings.MOVScalePts,
			MOVCap:      cfg.Ratings.MOVCap,
		})
		if cfg.Ratings.TargetStd > 0 {
			fitted = ratings.Normalize(fitted, cfg.Ratings.TargetStd)
		}
	default:
		return fmt.Errorf("unknown ratings method %q", cfg.Ratings.Method)
	}

	if outputFile != "" {
		if err := ingest.WriteRatingsCSV(outputFile, fitted); err != nil {
			return err
		}
		lg.WithFields(map[string]interface{}{
			"teams":  len(fitted),
			"output": outputFile,
		}).Info("Ratings written")
		return nil
	}

	teams := make([]string, 0, len(fitted))
	for team := range fitted {
		teams = append(teams, team)
	}
	sort.Slice(teams, func(i, j int) bool { return fitted[teams[i]] > fitted[teams[j]] })

	fmt.Printf("=== %s ratings (%d teams) ===\n", cfg.Ratings.Method, len(teams))
	for i, team := range teams {
		fmt.Printf("%3d. %-24s %+7.2f\n", i+1, team, fitted[team])
	}
	return nil
}
