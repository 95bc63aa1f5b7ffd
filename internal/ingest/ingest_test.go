package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/gridiron-edge/internal/models"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadResultsCSVFlexibleHeaders(t *testing.T) {
	path := writeFile(t, t.TempDir(), "results.csv",
		"Date, Home Team ,Away Team,HOME_PTS,away_pts\n"+
			"2025-09-07,Chiefs,Bengals,27,20\n"+
			"2025-09-07,49ers,Cowboys,bad,20\n"+ // skipped
			"2025-09-08,Bills,Jets,31,10\n")

	results, err := LoadResultsCSV(path, nil)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "Chiefs", results[0].HomeTeam)
	assert.Equal(t, 27, results[0].HomePoints)
	assert.Equal(t, 20, results[0].AwayPoints)
	assert.Equal(t, 2025, results[0].Date.Year())
	assert.Equal(t, "Bills", results[1].HomeTeam)
}

func TestLoadResultsCSVLongScoreNames(t *testing.T) {
	path := writeFile(t, t.TempDir(), "results.csv",
		"date,home_team,away_team,home_points,away_points\n2025-09-07,A,B,21,14\n")

	results, err := LoadResultsCSV(path, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 7, results[0].Margin())
}

func TestLoadResultsCSVMissingScores(t *testing.T) {
	path := writeFile(t, t.TempDir(), "results.csv", "date,home_team,away_team\n2025-09-07,A,B\n")
	_, err := LoadResultsCSV(path, nil)
	assert.Error(t, err)
}

func TestLoadOddsCSV(t *testing.T) {
	path := writeFile(t, t.TempDir(), "odds.csv",
		"game_id,home_team,away_team,home_ml,away_ml,home_spread,home_spread_price,away_spread_price,total_line,over_price,under_price\n"+
			"W1-001,Chiefs,Bengals,-120,110,-2.5,-110,-110,48.5,-110,-110\n"+
			"W1-002,49ers,Cowboys,-140,120,,,,45.0,-105,-115\n"+
			",Ghost,Game,-110,-110,,,,,,\n")

	boards, err := LoadOddsCSV(path, nil)
	require.NoError(t, err)
	require.Len(t, boards, 2, "row without a game id is dropped")

	first := boards[0]
	assert.True(t, first.HasMoneyline())
	assert.True(t, first.HasSpread())
	assert.True(t, first.HasTotal())
	assert.Equal(t, -120, *first.HomeML)
	assert.Equal(t, -2.5, *first.HomeSpread)

	second := boards[1]
	assert.True(t, second.HasMoneyline())
	assert.False(t, second.HasSpread(), "blank spread fields leave the market unquoted")
	assert.True(t, second.HasTotal())
}

func TestRatingsCSVRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "teams", "ratings.csv")

	fitted := models.RatingMap{"Chiefs": 6.25, "Bengals": -1.5}
	require.NoError(t, WriteRatingsCSV(path, fitted))

	loaded, err := LoadRatingsCSV(path)
	require.NoError(t, err)
	assert.InDelta(t, 6.25, loaded["Chiefs"], 1e-9)
	assert.InDelta(t, -1.5, loaded["Bengals"], 1e-9)
}

func TestLoadRatingsCSVMissingFile(t *testing.T) {
	loaded, err := LoadRatingsCSV(filepath.Join(t.TempDir(), "nope.csv"))
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestWriteAndAppendTickets(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "gold", "tickets.csv")
	history := filepath.Join(dir, "gold", "history.csv")

	line := -2.5
	ticket := models.Ticket{
		GameID:        "W1-001",
		Market:        models.MarketSpread,
		Side:          models.SideHome,
		AmericanPrice: -110,
		DecimalPrice:  1.9091,
		Line:          &line,
		FairProb:      0.5,
		ModelProb:     0.55,
		Edge:          0.05,
		EVPerDollar:   0.05,
		Stake:         decimal.NewFromFloat(42.50),
	}

	require.NoError(t, WriteTicketsCSV(out, []models.Ticket{ticket}))
	require.NoError(t, AppendTicketsHistory(history, []models.Ticket{ticket}))
	require.NoError(t, AppendTicketsHistory(history, []models.Ticket{ticket}))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "game_id,market,side_or_bet")
	assert.Contains(t, content, "W1-001,ATS,HOME,-110,1.9091,-2.5,0.5000,0.5500")
	assert.Contains(t, content, "42.50")

	histData, err := os.ReadFile(history)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(histData)), "\n")
	assert.Len(t, lines, 3, "one header plus two appended rows")
}

func TestOddsCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bronze", "odds.csv")

	homeML, awayML := -150, 130
	spread := -3.5
	spreadPrice := -110
	boards := []models.OddsBoard{
		{
			GameID: "W3-001", HomeTeam: "Chiefs", AwayTeam: "Bengals",
			HomeML: &homeML, AwayML: &awayML,
			HomeSpread: &spread, HomeSpreadPrice: &spreadPrice, AwaySpreadPrice: &spreadPrice,
		},
		{GameID: "W3-002", HomeTeam: "Jets", AwayTeam: "Bills"},
	}

	require.NoError(t, WriteOddsCSV(path, boards))

	loaded, err := LoadOddsCSV(path, nil)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, boards[0], loaded[0])
	assert.Nil(t, loaded[1].HomeML)
	assert.Nil(t, loaded[1].TotalLine)
}

func TestResultsCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bronze", "results.csv")

	d, _ := time.Parse("2006-01-02", "2025-09-07")
	results := []models.GameResult{
		{Date: d, HomeTeam: "Chiefs", AwayTeam: "Bengals", HomePoints: 27, AwayPoints: 20},
	}

	require.NoError(t, WriteResultsCSV(path, results))

	loaded, err := LoadResultsCSV(path, nil)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, results[0], loaded[0])
}
