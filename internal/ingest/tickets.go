package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yourusername/gridiron-edge/internal/models"
)

var ticketHeaders = []string{
	"game_id", "market", "side_or_bet", "odds_am", "odds_dec", "line",
	"fair_prob", "model_prob", "model_prob_lo", "model_prob_hi",
	"edge", "ev_per_dollar", "kelly_stake",
}

// WriteTicketsCSV writes the selected tickets for one run, overwriting any
// previous output at path.
func WriteTicketsCSV(path string, tickets []models.Ticket) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating tickets dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating tickets csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(ticketHeaders); err != nil {
		return err
	}
	for _, ticket := range tickets {
		if err := w.Write(ticketRow(ticket)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// AppendTicketsHistory appends tickets to a running history file, writing
// the header only when the file is first created.
func AppendTicketsHistory(path string, tickets []models.Ticket) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}

	_, statErr := os.Stat(path)
	writeHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening tickets history: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(ticketHeaders); err != nil {
			return err
		}
	}
	for _, ticket := range tickets {
		if err := w.Write(ticketRow(ticket)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func ticketRow(t models.Ticket) []string {
	line := ""
	if t.Line != nil {
		line = fmt.Sprintf("%+.1f", *t.Line)
	}
	lo, hi := "", ""
	if t.ModelProbLo != nil {
		lo = fmt.Sprintf("%.4f", *t.ModelProbLo)
	}
	if t.ModelProbHi != nil {
		hi = fmt.Sprintf("%.4f", *t.ModelProbHi)
	}
	return []string{
		t.GameID,
		string(t.Market),
		string(t.Side),
		fmt.Sprintf("%+d", t.AmericanPrice),
		fmt.Sprintf("%.4f", t.DecimalPrice),
		line,
		fmt.Sprintf("%.4f", t.FairProb),
		fmt.Sprintf("%.4f", t.ModelProb),
		lo,
		hi,
		fmt.Sprintf("%+.4f", t.Edge),
		fmt.Sprintf("%+.4f", t.EVPerDollar),
		t.Stake.StringFixed(2),
	}
}
