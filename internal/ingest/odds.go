package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// LoadOddsCSV loads one odds board row per game. Blank market fields leave
// the corresponding pointers nil; the ticket builder simply skips unquoted
// markets. A row without a game id is dropped.
func LoadOddsCSV(path string, logger *logrus.Logger) ([]models.OddsBoard, error) {
	if logger == nil {
		logger = logrus.New()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening odds csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading odds csv %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	cols := headerIndex(records[0])
	var boards []models.OddsBoard
	for i, rec := range records[1:] {
		get := func(name string) string {
			col, ok := cols[name]
			if !ok {
				return ""
			}
			return field(rec, col)
		}

		board := models.OddsBoard{
			GameID:   get("game_id"),
			HomeTeam: get("home_team"),
			AwayTeam: get("away_team"),
		}
		if board.GameID == "" {
			logger.WithField("row", i+2).Warn("Skipping odds row without game id")
			continue
		}

		board.HomeML = parseIntField(get("home_ml"))
		board.AwayML = parseIntField(get("away_ml"))
		board.HomeSpread = parseFloatField(get("home_spread"))
		board.HomeSpreadPrice = parseIntField(get("home_spread_price"))
		board.AwaySpreadPrice = parseIntField(get("away_spread_price"))
		board.TotalLine = parseFloatField(get("total_line"))
		board.OverPrice = parseIntField(get("over_price"))
		board.UnderPrice = parseIntField(get("under_price"))

		boards = append(boards, board)
	}
	return boards, nil
}

// WriteOddsCSV persists fetched odds boards in the same shape LoadOddsCSV
// reads, with blank fields for unquoted markets.
func WriteOddsCSV(path string, boards []models.OddsBoard) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating odds dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating odds csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"game_id", "home_team", "away_team", "home_ml", "away_ml",
		"home_spread", "home_spread_price", "away_spread_price",
		"total_line", "over_price", "under_price",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, b := range boards {
		row := []string{
			b.GameID, b.HomeTeam, b.AwayTeam,
			intField(b.HomeML), intField(b.AwayML),
			floatField(b.HomeSpread), intField(b.HomeSpreadPrice), intField(b.AwaySpreadPrice),
			floatField(b.TotalLine), intField(b.OverPrice), intField(b.UnderPrice),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func intField(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func floatField(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func parseIntField(s string) *int {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

func parseFloatField(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
