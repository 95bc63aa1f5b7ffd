package probability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverPlusUnderIsOne(t *testing.T) {
	cases := []struct{ mean, sigma, line float64 }{
		{0, 10, 0},
		{3, 13, -2.5},
		{48, 10, 45},
		{-7, 6.5, 1},
	}
	for _, tc := range cases {
		over := ProbOverNormal(tc.mean, tc.sigma, tc.line)
		under := ProbUnderNormal(tc.mean, tc.sigma, tc.line)
		assert.InDelta(t, 1.0, over+under, 1e-9)
	}
}

func TestSymmetryAtMean(t *testing.T) {
	assert.InDelta(t, 0.5, ProbOverNormal(0, 10, 0), 1e-9)
	assert.InDelta(t, 0.5, ProbUnderNormal(0, 10, 0), 1e-9)
}

func TestSpreadCoverLogic(t *testing.T) {
	// Home favored by 3, laying 3: cover prob above 50%.
	assert.Greater(t, ProbCoverSpread(3.0, 13.0, -3.0), 0.5)
}

func TestTotalsOverLogic(t *testing.T) {
	assert.Greater(t, ProbTotalOver(48.0, 10.0, 45.0), 0.5)
}

func TestDegenerateSigmaIsPointMass(t *testing.T) {
	assert.Equal(t, 1.0, ProbOverNormal(50, 0, 49))
	assert.Equal(t, 0.0, ProbOverNormal(50, 0, 51))
	assert.Equal(t, 0.5, ProbOverNormal(50, 0, 50))

	assert.Equal(t, 1.0, ProbUnderNormal(50, -1, 51))
	assert.Equal(t, 0.0, ProbUnderNormal(50, -1, 49))
	assert.Equal(t, 0.5, ProbUnderNormal(50, -1, 50))
}
