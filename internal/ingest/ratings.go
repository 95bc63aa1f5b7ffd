package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// LoadRatingsCSV reads a team,rating snapshot. A missing file is not an
// error: the caller just starts from an empty map.
func LoadRatingsCSV(path string) (models.RatingMap, error) {
	fitted := models.RatingMap{}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fitted, nil
		}
		return nil, fmt.Errorf("opening ratings csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ratings csv %s: %w", path, err)
	}

	for _, rec := range records {
		if len(rec) < 2 {
			continue
		}
		team := strings.TrimSpace(rec[0])
		if team == "" || strings.EqualFold(team, "team") {
			continue
		}
		rating, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if err != nil {
			continue
		}
		fitted[team] = rating
	}
	return fitted, nil
}

// WriteRatingsCSV persists a rating snapshot sorted by team name so diffs
// between weeks stay readable.
func WriteRatingsCSV(path string, fitted models.RatingMap) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating ratings dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating ratings csv: %w", err)
	}
	defer f.Close()

	teams := make([]string, 0, len(fitted))
	for team := range fitted {
		teams = append(teams, team)
	}
	sort.Strings(teams)

	w := csv.NewWriter(f)
	if err := w.Write([]string{"team", "rating"}); err != nil {
		return err
	}
	for _, team := range teams {
		if err := w.Write([]string{team, strconv.FormatFloat(fitted[team], 'f', 4, 64)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
