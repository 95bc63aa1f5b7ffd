package probability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yourusername/gridiron-edge/internal/models"
)

func TestWinProbMovesWithRatings(t *testing.T) {
	m := NewModel(models.RatingMap{"A": 3.0, "B": 0.0}, 2.0, 13.0, 10.0, 45.0)

	assert.Greater(t, m.WinProbHome("A", "B"), 0.5)
	assert.Less(t, m.WinProbHome("B", "A"), 0.5)
}

func TestUnseenTeamsRateZero(t *testing.T) {
	m := NewModel(nil, 2.0, 13.0, 10.0, 45.0)

	// Two unknown teams: home edge is exactly the HFA.
	assert.InDelta(t, 2.0, m.MeanDiff("X", "Y"), 1e-12)
	assert.Greater(t, m.WinProbHome("X", "Y"), 0.5)
}

func TestCoverProbUsesLine(t *testing.T) {
	m := NewModel(models.RatingMap{"A": 5.0}, 2.0, 13.0, 10.0, 45.0)

	// Laying more points lowers the cover probability.
	pSmall := m.CoverProbHome("A", "B", -1.5)
	pBig := m.CoverProbHome("A", "B", -10.5)
	assert.Greater(t, pSmall, pBig)
}

func TestOverProbUsesLeagueMean(t *testing.T) {
	m := NewModel(nil, 2.0, 13.0, 10.0, 48.0)
	assert.Greater(t, m.OverProb(45.0), 0.5)
	assert.Less(t, m.OverProb(51.0), 0.5)
}
