package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/gridiron-edge/internal/models"
)

func TestAmericanToDecimal(t *testing.T) {
	dec, err := AmericanToDecimal(150)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, dec, 1e-9)

	dec, err = AmericanToDecimal(-120)
	require.NoError(t, err)
	assert.InDelta(t, 1.0+100.0/120.0, dec, 1e-9)

	_, err = AmericanToDecimal(0)
	assert.ErrorIs(t, err, models.ErrInvalidOdds)
}

func TestImpliedProbability(t *testing.T) {
	p, err := ImpliedProbability(150)
	require.NoError(t, err)
	assert.InDelta(t, 0.4, p, 1e-9)

	p, err = ImpliedProbability(-120)
	require.NoError(t, err)
	assert.InDelta(t, 120.0/220.0, p, 1e-9)

	_, err = ImpliedProbability(0)
	assert.ErrorIs(t, err, models.ErrInvalidOdds)
}

func TestRemoveVigTwoWay(t *testing.T) {
	pHome, err := ImpliedProbability(-120)
	require.NoError(t, err)
	pAway, err := ImpliedProbability(110)
	require.NoError(t, err)

	fairHome, fairAway, err := RemoveVigTwoWay(pHome, pAway)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, fairHome+fairAway, 1e-9)
	assert.Greater(t, fairHome, fairAway, "de-vig must preserve ordering")
}

func TestRemoveVigTwoWayRejectsNonPositive(t *testing.T) {
	_, _, err := RemoveVigTwoWay(0, 0.5)
	assert.ErrorIs(t, err, models.ErrInvalidProbability)

	_, _, err = RemoveVigTwoWay(0.5, -0.1)
	assert.ErrorIs(t, err, models.ErrInvalidProbability)
}
