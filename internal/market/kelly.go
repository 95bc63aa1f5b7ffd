package market

import (
	"fmt"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// KellyFractional sizes a stake in dollars using fractional Kelly.
// Returns exactly 0 when the model has no edge at the quoted price; never
// returns a negative stake.
func KellyFractional(pWin, decimalOdds, bankroll, fraction float64) (float64, error) {
	if pWin <= 0 || pWin >= 1 {
		return 0, fmt.Errorf("%w: p_win must be in (0,1), got %v", models.ErrInvalidProbability, pWin)
	}
	if decimalOdds <= 1.0 {
		return 0, fmt.Errorf("%w: decimal odds must be > 1.0, got %v", models.ErrInvalidOdds, decimalOdds)
	}
	if bankroll < 0 {
		return 0, fmt.Errorf("%w: bankroll must be >= 0, got %v", models.ErrInvalidInput, bankroll)
	}
	if fraction <= 0 || fraction > 1 {
		return 0, fmt.Errorf("%w: kelly fraction must be in (0,1], got %v", models.ErrInvalidInput, fraction)
	}

	b := decimalOdds - 1.0
	edge := b*pWin - (1.0 - pWin)
	if edge <= 0 {
		return 0, nil
	}
	return bankroll * fraction * (edge / b), nil
}
