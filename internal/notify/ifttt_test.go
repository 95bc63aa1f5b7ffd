package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/gridiron-edge/internal/models"
)

func ticket(gameID string, edge, stake float64) models.Ticket {
	return models.Ticket{
		GameID:    gameID,
		Market:    models.MarketMoneyline,
		Side:      models.SideHome,
		Edge:      edge,
		Stake:     decimal.NewFromFloat(stake),
		ModelProb: 0.55,
		FairProb:  0.5,
	}
}

func TestSelectTopOrdersByEdgeThenStake(t *testing.T) {
	tickets := []models.Ticket{
		ticket("g1", 0.02, 10),
		ticket("g2", 0.08, 5),
		ticket("g3", 0.08, 50),
		ticket("g4", 0.05, 20),
	}

	top := SelectTop(tickets, 3)
	require.Len(t, top, 3)
	assert.Equal(t, "g3", top[0].GameID, "highest edge, bigger stake wins the tie")
	assert.Equal(t, "g2", top[1].GameID)
	assert.Equal(t, "g4", top[2].GameID)
}

func TestSelectTopDoesNotMutateInput(t *testing.T) {
	tickets := []models.Ticket{ticket("g1", 0.01, 1), ticket("g2", 0.09, 1)}
	_ = SelectTop(tickets, 1)
	assert.Equal(t, "g1", tickets[0].GameID)
}

func TestBuildTitleAndMessage(t *testing.T) {
	title, msg := BuildTitleAndMessage([]models.Ticket{ticket("W1-001", 0.05, 25)}, "NFL", 2025, 3, 3)
	assert.Equal(t, "Gridiron Edge Picks — NFL 2025 W3", title)
	assert.Contains(t, msg, "W1-001")
	assert.Contains(t, msg, "ML HOME")
	assert.Contains(t, msg, "stake $25.00")
}

func TestBuildTitleAndMessageEmpty(t *testing.T) {
	_, msg := BuildTitleAndMessage(nil, "NFL", 2025, 1, 3)
	assert.Equal(t, "No tickets passed filters.", msg)
}

func TestBuildMessageTruncates(t *testing.T) {
	var tickets []models.Ticket
	for i := 0; i < 50; i++ {
		tickets = append(tickets, ticket("some-long-game-identifier", 0.05, 25))
	}
	_, msg := BuildTitleAndMessage(tickets, "NFL", 2025, 1, 50)
	assert.LessOrEqual(t, len(msg), maxMessageLen)
	assert.True(t, strings.HasSuffix(msg, "…(truncated)"))
}

func TestSendPostsFormPayload(t *testing.T) {
	var gotPath, gotTitle string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseForm())
		gotTitle = r.PostFormValue("value1")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := NewNotifier("secret", "picks", nil)
	n.SetBaseURL(server.URL)

	require.NoError(t, n.Send(context.Background(), "Title", "Body"))
	assert.Equal(t, "/trigger/picks/with/key/secret", gotPath)
	assert.Equal(t, "Title", gotTitle)
}

func TestSendReportsHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	n := NewNotifier("bad-key", "picks", nil)
	n.SetBaseURL(server.URL)

	err := n.Send(context.Background(), "Title", "Body")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
