package market

import (
	"fmt"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// EVAndEdge computes expected profit per dollar wagered and the edge over
// the market's fair probability.
//
// ev = p*b - (1-p) with b the net payout ratio (decimal odds - 1);
// edge = modelProb - fairProb in absolute probability points.
func EVAndEdge(modelProb, fairProb, decimalOdds float64) (ev float64, edge float64, err error) {
	if modelProb <= 0 || modelProb >= 1 {
		return 0, 0, fmt.Errorf("%w: model probability must be in (0,1), got %v", models.ErrInvalidProbability, modelProb)
	}
	if fairProb <= 0 || fairProb >= 1 {
		return 0, 0, fmt.Errorf("%w: fair probability must be in (0,1), got %v", models.ErrInvalidProbability, fairProb)
	}
	if decimalOdds <= 1.0 {
		return 0, 0, fmt.Errorf("%w: decimal odds must be > 1.0, got %v", models.ErrInvalidOdds, decimalOdds)
	}

	b := decimalOdds - 1.0
	ev = modelProb*b - (1.0 - modelProb)
	edge = modelProb - fairProb
	return ev, edge, nil
}
