package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/models"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadWithDefaults("")
	require.NoError(t, err)
	cfg.Paths.Datalake = t.TempDir()
	cfg.Betting.MinEdgePct = -1 // keep every quoted leg
	cfg.Betting.MinKellyStake = 0
	return cfg
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

const resultsCSV = `date,home_team,away_team,home_pts,away_pts
2025-09-07,Chiefs,Bengals,27,20
2025-09-14,Bengals,Jets,24,10
2025-09-14,Chiefs,Jets,31,13
`

const oddsCSV = `game_id,home_team,away_team,home_ml,away_ml,home_spread,home_spread_price,away_spread_price,total_line,over_price,under_price
W3-001,Chiefs,Bengals,-150,130,-3.5,-110,-110,47.5,-108,-112
W3-002,Jets,Bengals,120,-140,2.5,-105,-115,41.5,-110,-110
`

func target() Target { return Target{League: "NFL", Season: 2025, Week: 3} }

func TestRunFromFiles(t *testing.T) {
	cfg := testConfig(t)
	root := cfg.Paths.Datalake
	bronze := filepath.Join(root, "bronze", "league=NFL", "season=2025", "week=3")
	writeFile(t, filepath.Join(bronze, "results.csv"), resultsCSV)
	writeFile(t, filepath.Join(bronze, "odds.csv"), oddsCSV)

	p := New(cfg, quietLogger())
	tickets, err := p.Run(context.Background(), target())
	require.NoError(t, err)

	// Two fully quoted boards produce three legs each.
	assert.Len(t, tickets, 6)
	assert.Equal(t, "W3-001", tickets[0].GameID)
	assert.Equal(t, models.MarketMoneyline, tickets[0].Market)

	assert.FileExists(t, filepath.Join(root, "silver", "league=NFL", "season=2025", "ratings.csv"))
	assert.FileExists(t, filepath.Join(root, "gold", "league=NFL", "season=2025", "week=3", "tickets.csv"))
	assert.FileExists(t, filepath.Join(root, "gold", "league=NFL", "season=2025", "tickets_history.csv"))
}

func TestRunEloWarmStart(t *testing.T) {
	cfg := testConfig(t)
	cfg.Ratings.Method = "elo"
	root := cfg.Paths.Datalake
	bronze := filepath.Join(root, "bronze", "league=NFL", "season=2025", "week=3")
	writeFile(t, filepath.Join(bronze, "results.csv"), resultsCSV)
	writeFile(t, filepath.Join(bronze, "odds.csv"), oddsCSV)
	writeFile(t, filepath.Join(root, "silver", "league=NFL", "season=2025", "ratings.csv"),
		"team,rating\nChiefs,5.0000\nBengals,-2.0000\n")

	p := New(cfg, quietLogger())
	_, err := p.Run(context.Background(), target())
	require.NoError(t, err)
}

type stubSource struct {
	boards      []models.OddsBoard
	results     []models.GameResult
	boardCalls  int
	scoresCalls int
}

func (s *stubSource) FetchOddsBoards(ctx context.Context, sport string) ([]models.OddsBoard, error) {
	s.boardCalls++
	return s.boards, nil
}

func (s *stubSource) FetchRecentResults(ctx context.Context, sport string, daysFrom int) ([]models.GameResult, error) {
	s.scoresCalls++
	return s.results, nil
}

type stubSender struct {
	titles   []string
	messages []string
}

func (s *stubSender) Send(ctx context.Context, title, message string) error {
	s.titles = append(s.titles, title)
	s.messages = append(s.messages, message)
	return nil
}

func intPtr(v int) *int { return &v }

func date(s string) time.Time { d, _ := time.Parse("2006-01-02", s); return d }

func TestRunWithLiveSourceAndNotify(t *testing.T) {
	cfg := testConfig(t)
	cfg.OddsAPI.Enabled = true
	cfg.OddsAPI.ScoresDaysFrom = 3
	cfg.Notify.Enabled = true
	cfg.Notify.TopN = 2

	src := &stubSource{
		boards: []models.OddsBoard{{
			GameID:   "W3-API-001",
			HomeTeam: "Chiefs",
			AwayTeam: "Bengals",
			HomeML:   intPtr(-150),
			AwayML:   intPtr(130),
		}},
		results: []models.GameResult{{
			Date: date("2025-09-14"), HomeTeam: "Chiefs", AwayTeam: "Bengals",
			HomePoints: 27, AwayPoints: 20,
		}},
	}
	sender := &stubSender{}

	p := New(cfg, quietLogger())
	p.SetOddsSource(src)
	p.SetSender(sender)

	tickets, err := p.Run(context.Background(), target())
	require.NoError(t, err)

	assert.Equal(t, 1, src.boardCalls)
	assert.Equal(t, 1, src.scoresCalls)
	assert.Len(t, tickets, 1)
	require.Len(t, sender.titles, 1)
	assert.Contains(t, sender.titles[0], "NFL 2025 W3")
	assert.Contains(t, sender.messages[0], "W3-API-001")
}

func TestMergeResultsDeduplicates(t *testing.T) {
	existing := []models.GameResult{{
		Date: date("2025-09-07"), HomeTeam: "Chiefs", AwayTeam: "Bengals",
		HomePoints: 27, AwayPoints: 20,
	}}
	fetched := []models.GameResult{
		{Date: date("2025-09-07"), HomeTeam: "Chiefs", AwayTeam: "Bengals", HomePoints: 27, AwayPoints: 20},
		{Date: date("2025-09-14"), HomeTeam: "Jets", AwayTeam: "Bills", HomePoints: 13, AwayPoints: 30},
	}

	merged := mergeResults(existing, fetched)
	assert.Len(t, merged, 2)
}

func TestRunUnknownLeague(t *testing.T) {
	cfg := testConfig(t)
	cfg.OddsAPI.Enabled = true
	p := New(cfg, quietLogger())
	p.SetOddsSource(&stubSource{})

	_, err := p.Run(context.Background(), Target{League: "XFL", Season: 2025, Week: 1})
	assert.Error(t, err)
}
