// Package pipeline orchestrates the weekly run: ingest results, fit ratings,
// price the board, size stakes, persist tickets, and push the top picks.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/datalake"
	"github.com/yourusername/gridiron-edge/internal/datasource"
	"github.com/yourusername/gridiron-edge/internal/ingest"
	"github.com/yourusername/gridiron-edge/internal/metrics"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/notify"
	"github.com/yourusername/gridiron-edge/internal/picks"
	"github.com/yourusername/gridiron-edge/internal/probability"
	"github.com/yourusername/gridiron-edge/internal/ratings"
)

// OddsSource supplies live boards and recent final scores. Satisfied by
// datasource.Client; tests substitute a stub.
type OddsSource interface {
	FetchOddsBoards(ctx context.Context, sport string) ([]models.OddsBoard, error)
	FetchRecentResults(ctx context.Context, sport string, daysFrom int) ([]models.GameResult, error)
}

// Sender delivers a formatted pick notification.
type Sender interface {
	Send(ctx context.Context, title, message string) error
}

// Target identifies the league partition a run operates on.
type Target struct {
	League string
	Season int
	Week   int
}

// Pipeline wires the stages of a run together.
type Pipeline struct {
	cfg    *config.Config
	logger *logrus.Logger
	odds   OddsSource
	sender Sender
}

// New builds a pipeline from config, constructing the odds client and
// notifier only when their sections are enabled.
func New(cfg *config.Config, logger *logrus.Logger) *Pipeline {
	p := &Pipeline{cfg: cfg, logger: logger}
	if cfg.OddsAPI.Enabled {
		p.odds = datasource.NewClient(cfg.OddsAPI.APIKey, cfg.OddsAPI.Region, cfg.OddsAPI.CacheTTL(), logger)
	}
	if cfg.Notify.Enabled {
		p.sender = notify.NewNotifier(cfg.Notify.IFTTTKey, cfg.Notify.Event, logger)
	}
	return p
}

// SetOddsSource replaces the live odds client, used by tests.
func (p *Pipeline) SetOddsSource(src OddsSource) { p.odds = src }

// SetSender replaces the notifier, used by tests.
func (p *Pipeline) SetSender(s Sender) { p.sender = s }

// Run executes one full pass for the target partition and returns the
// tickets that passed the filters.
func (p *Pipeline) Run(ctx context.Context, target Target) ([]models.Ticket, error) {
	start := time.Now()
	log := p.logger.WithFields(logrus.Fields{
		"league": target.League,
		"season": target.Season,
		"week":   target.Week,
	})
	log.Info("Starting pipeline run")

	root := p.cfg.Paths.Datalake
	bronzeDir := datalake.PartPath(root, datalake.LayerBronze, target.League, target.Season, target.Week)
	silverDir := datalake.SeasonPath(root, datalake.LayerSilver, target.League, target.Season)
	goldDir := datalake.PartPath(root, datalake.LayerGold, target.League, target.Season, target.Week)
	for _, dir := range []string{bronzeDir, silverDir, goldDir} {
		if err := datalake.EnsureDir(dir); err != nil {
			return nil, fmt.Errorf("preparing partition %s: %w", dir, err)
		}
	}

	results, err := p.collectResults(ctx, target, bronzeDir)
	if err != nil {
		return nil, err
	}
	metrics.GamesIngestedTotal.Add(float64(len(results)))

	fitted, err := p.fitRatings(results, silverDir)
	if err != nil {
		return nil, err
	}
	metrics.RecordRatingFit(p.cfg.Ratings.Method, len(fitted))
	if err := ingest.WriteRatingsCSV(filepath.Join(silverDir, "ratings.csv"), fitted); err != nil {
		return nil, fmt.Errorf("persisting ratings: %w", err)
	}

	boards, err := p.collectBoards(ctx, target, bronzeDir)
	if err != nil {
		return nil, err
	}
	metrics.BoardsEvaluatedTotal.Add(float64(len(boards)))

	model := probability.NewModel(fitted,
		p.cfg.Model.HFAPoints, p.cfg.Model.SigmaDiff, p.cfg.Model.SigmaTotal, p.cfg.Model.LeagueTotalMean)
	builder := picks.NewBuilder(model, picks.Config{
		Bankroll:      p.cfg.Betting.Bankroll,
		KellyFraction: p.cfg.Betting.KellyFraction,
		MinEdge:       p.cfg.Betting.MinEdgePct,
		MinStake:      p.cfg.Betting.MinKellyStake,
		Simulate:      p.cfg.Simulation.Enabled,
		SimN:          p.cfg.Simulation.N,
		SimSeed:       p.cfg.Simulation.Seed,
	}, p.logger)
	tickets := builder.Build(boards)
	metrics.TicketsGeneratedTotal.Add(float64(len(tickets)))
	metrics.CurrentBankroll.Set(p.cfg.Betting.Bankroll)

	if err := ingest.WriteTicketsCSV(filepath.Join(goldDir, "tickets.csv"), tickets); err != nil {
		return nil, fmt.Errorf("persisting tickets: %w", err)
	}
	historyPath := filepath.Join(datalake.SeasonPath(root, datalake.LayerGold, target.League, target.Season), "tickets_history.csv")
	if err := ingest.AppendTicketsHistory(historyPath, tickets); err != nil {
		return nil, fmt.Errorf("appending ticket history: %w", err)
	}

	p.notifyPicks(ctx, target, tickets)

	metrics.RecordPipelineRun(time.Since(start).Seconds(), len(tickets))
	log.WithFields(logrus.Fields{
		"games":    len(results),
		"teams":    len(fitted),
		"boards":   len(boards),
		"tickets":  len(tickets),
		"duration": time.Since(start).String(),
	}).Info("Pipeline run completed")

	return tickets, nil
}

// collectResults loads the bronze results file and, when a live source is
// wired, folds in recently completed games the file does not have yet.
func (p *Pipeline) collectResults(ctx context.Context, target Target, bronzeDir string) ([]models.GameResult, error) {
	var results []models.GameResult
	resultsPath := filepath.Join(bronzeDir, "results.csv")
	if _, statErr := os.Stat(resultsPath); statErr == nil {
		loaded, err := ingest.LoadResultsCSV(resultsPath, p.logger)
		if err != nil {
			return nil, fmt.Errorf("loading results: %w", err)
		}
		results = loaded
	} else if !os.IsNotExist(statErr) {
		return nil, fmt.Errorf("loading results: %w", statErr)
	}

	if p.odds != nil && p.cfg.OddsAPI.ScoresDaysFrom > 0 {
		sport, err := datasource.SportSlug(target.League)
		if err != nil {
			return nil, err
		}
		recent, err := p.odds.FetchRecentResults(ctx, sport, p.cfg.OddsAPI.ScoresDaysFrom)
		if err != nil {
			p.logger.WithError(err).Warn("Recent scores fetch failed, continuing with file results")
		} else {
			results = mergeResults(results, recent)
		}
	}
	return results, nil
}

// mergeResults appends fetched games not already present in the file, keyed
// by date and matchup.
func mergeResults(existing, fetched []models.GameResult) []models.GameResult {
	seen := make(map[string]struct{}, len(existing))
	key := func(r models.GameResult) string {
		return fmt.Sprintf("%s|%s|%s", r.Date.Format("2006-01-02"), r.HomeTeam, r.AwayTeam)
	}
	for _, r := range existing {
		seen[key(r)] = struct{}{}
	}
	merged := existing
	for _, r := range fetched {
		if _, ok := seen[key(r)]; ok {
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

func (p *Pipeline) fitRatings(results []models.GameResult, silverDir string) (models.RatingMap, error) {
	rc := p.cfg.Ratings
	switch rc.Method {
	case "ridge":
		fitted, _, err := ratings.FitRidge(results, ratings.RidgeOptions{
			HFAPoints:      p.cfg.Model.HFAPoints,
			Lambda:         rc.L2Lambda,
			EnforceSumZero: rc.EnforceSumZero,
		})
		if err != nil {
			return nil, fmt.Errorf("ridge fit: %w", err)
		}
		return fitted, nil
	case "elo":
		// Warm-start from last week's snapshot when one exists.
		start, err := ingest.LoadRatingsCSV(filepath.Join(silverDir, "ratings.csv"))
		if err != nil {
			return nil, fmt.Errorf("loading rating snapshot: %w", err)
		}
		fitted := ratings.FitElo(results, ratings.EloOptions{
			StartRatings: start,
			K:            rc.EloK,
			HFAPoints:    p.cfg.Model.HFAPoints,
			Iters:        rc.EloIters,
			ScalePts:     rc.ScalePts,
			UseMOV:       rc.MOVEnabled,
			MOVScalePts:  rc.MOVScalePts,
			MOVCap:       rc.MOVCap,
		})
		if rc.TargetStd > 0 {
			fitted = ratings.Normalize(fitted, rc.TargetStd)
		}
		return fitted, nil
	default:
		return nil, fmt.Errorf("unknown ratings method %q", rc.Method)
	}
}

// collectBoards prefers the live odds source and falls back to the bronze
// odds file when the API is not wired.
func (p *Pipeline) collectBoards(ctx context.Context, target Target, bronzeDir string) ([]models.OddsBoard, error) {
	if p.odds != nil {
		sport, err := datasource.SportSlug(target.League)
		if err != nil {
			return nil, err
		}
		fetchStart := time.Now()
		boards, err := p.odds.FetchOddsBoards(ctx, sport)
		metrics.RecordOddsFetch(time.Since(fetchStart).Seconds(), err)
		if err != nil {
			return nil, fmt.Errorf("fetching odds boards: %w", err)
		}
		return boards, nil
	}

	boards, err := ingest.LoadOddsCSV(filepath.Join(bronzeDir, "odds.csv"), p.logger)
	if err != nil {
		return nil, fmt.Errorf("loading odds: %w", err)
	}
	return boards, nil
}

// notifyPicks delivers the top picks. Delivery failure is logged, not fatal:
// the tickets are already on disk.
func (p *Pipeline) notifyPicks(ctx context.Context, target Target, tickets []models.Ticket) {
	if p.sender == nil {
		return
	}
	topN := p.cfg.Notify.TopN
	if topN <= 0 {
		topN = 3
	}
	title, message := notify.BuildTitleAndMessage(tickets, target.League, target.Season, target.Week, topN)
	if err := p.sender.Send(ctx, title, message); err != nil {
		metrics.RecordNotifyFailure()
		p.logger.WithError(err).Warn("Pick notification failed")
	}
}
