// Package ingest reads and writes the CSV shapes the pipeline works with:
// historical results, odds boards, rating snapshots, and ticket output.
package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// LoadResultsCSV loads historical final scores. Headers are matched
// case/space-insensitively and the score columns accept both the short
// (home_pts) and long (home_points) names. Rows with non-integer scores are
// skipped, not fatal.
func LoadResultsCSV(path string, logger *logrus.Logger) ([]models.GameResult, error) {
	if logger == nil {
		logger = logrus.New()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening results csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading results csv %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	cols := headerIndex(records[0])
	homeCol, okH := firstOf(cols, "home_pts", "home_points")
	awayCol, okA := firstOf(cols, "away_pts", "away_points")
	if !okH || !okA {
		return nil, fmt.Errorf("results csv %s: missing score columns", path)
	}

	var results []models.GameResult
	for i, rec := range records[1:] {
		homePts, errH := strconv.Atoi(field(rec, homeCol))
		awayPts, errA := strconv.Atoi(field(rec, awayCol))
		if errH != nil || errA != nil {
			logger.WithField("row", i+2).Debug("Skipping results row with non-integer score")
			continue
		}

		result := models.GameResult{
			HomePoints: homePts,
			AwayPoints: awayPts,
		}
		if col, ok := cols["home_team"]; ok {
			result.HomeTeam = field(rec, col)
		}
		if col, ok := cols["away_team"]; ok {
			result.AwayTeam = field(rec, col)
		}
		if col, ok := cols["date"]; ok {
			if parsed, err := time.Parse("2006-01-02", field(rec, col)); err == nil {
				result.Date = parsed
			}
		}
		results = append(results, result)
	}
	return results, nil
}

// WriteResultsCSV persists final scores in the canonical results shape.
func WriteResultsCSV(path string, results []models.GameResult) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating results dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating results csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"date", "home_team", "away_team", "home_pts", "away_pts"}); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{
			r.Date.Format("2006-01-02"),
			r.HomeTeam,
			r.AwayTeam,
			strconv.Itoa(r.HomePoints),
			strconv.Itoa(r.AwayPoints),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// headerIndex normalizes header names to lower_snake_case column positions.
func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
		cols[key] = i
	}
	return cols
}

func firstOf(cols map[string]int, names ...string) (int, bool) {
	for _, name := range names {
		if col, ok := cols[name]; ok {
			return col, true
		}
	}
	return 0, false
}

func field(rec []string, col int) string {
	if col < 0 || col >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[col])
}
