package probability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimulateDeterministicWithSeed(t *testing.T) {
	cfg := SimConfig{N: 5000, Seed: 42}
	p1 := SimulateCoverSpread(3.0, 13.0, -2.5, cfg)
	p2 := SimulateCoverSpread(3.0, 13.0, -2.5, cfg)
	assert.Equal(t, p1, p2, "same seed and inputs must be bit-identical")
}

func TestSimulateAgreesWithClosedForm(t *testing.T) {
	cfg := SimConfig{N: 200000, Seed: 7}

	exact := ProbCoverSpread(3.0, 13.0, -2.5)
	sampled := SimulateCoverSpread(3.0, 13.0, -2.5, cfg)
	assert.InDelta(t, exact, sampled, 0.01)

	exact = ProbTotalOver(48.0, 10.0, 45.0)
	sampled = SimulateTotalOver(48.0, 10.0, 45.0, cfg)
	assert.InDelta(t, exact, sampled, 0.01)
}

func TestSimulateDegenerateSigma(t *testing.T) {
	cfg := SimConfig{N: 100, Seed: 1}
	assert.Equal(t, 1.0, SimulateTotalOver(50, 0, 49, cfg))
	assert.Equal(t, 0.0, SimulateTotalOver(50, 0, 51, cfg))
	assert.Equal(t, 0.5, SimulateTotalOver(50, 0, 50, cfg))
}

func TestMCCINormalBoundsAndWidth(t *testing.T) {
	lo, hi := MCCINormal(0.6, 10000, DefaultZ)
	assert.Greater(t, lo, 0.55)
	assert.Less(t, lo, 0.6)
	assert.Greater(t, hi, 0.6)
	assert.Less(t, hi, 0.65)
}

func TestMCCINormalClipsAndDegenerates(t *testing.T) {
	lo, hi := MCCINormal(1.2, 100, DefaultZ)
	assert.LessOrEqual(t, hi, 1.0)
	assert.LessOrEqual(t, lo, hi)

	lo, hi = MCCINormal(0.4, 0, DefaultZ)
	assert.Equal(t, 0.4, lo)
	assert.Equal(t, 0.4, hi)

	lo, hi = MCCINormal(-0.3, 50, DefaultZ)
	assert.GreaterOrEqual(t, lo, 0.0)
	assert.GreaterOrEqual(t, hi, lo)
}
