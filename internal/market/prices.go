// Package market converts bookmaker prices between formats, strips the vig
// from two-way markets, and turns model probabilities into expected value
// and fractional-Kelly stakes.
package market

import (
	"fmt"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// AmericanToDecimal converts an American price to decimal odds.
// +150 -> 2.50, -120 -> 1.8333...
func AmericanToDecimal(american int) (float64, error) {
	if american == 0 {
		return 0, fmt.Errorf("%w: american price cannot be 0", models.ErrInvalidOdds)
	}
	if american > 0 {
		return 1.0 + float64(american)/100.0, nil
	}
	return 1.0 + 100.0/float64(-american), nil
}

// ImpliedProbability returns the break-even probability of an American price.
// +150 -> 100/(150+100) = 0.4, -120 -> 120/(120+100) = 0.54545...
func ImpliedProbability(american int) (float64, error) {
	if american == 0 {
		return 0, fmt.Errorf("%w: american price cannot be 0", models.ErrInvalidOdds)
	}
	if american > 0 {
		return 100.0 / float64(american+100), nil
	}
	abs := float64(-american)
	return abs / (abs + 100.0), nil
}

// RemoveVigTwoWay normalizes the two implied probabilities of a two-way
// market so they sum to 1.0, removing the bookmaker margin while preserving
// their relative ordering.
func RemoveVigTwoWay(pA, pB float64) (float64, float64, error) {
	if pA <= 0 {
		return 0, 0, fmt.Errorf("%w: side A probability must be > 0, got %v", models.ErrInvalidProbability, pA)
	}
	if pB <= 0 {
		return 0, 0, fmt.Errorf("%w: side B probability must be > 0, got %v", models.ErrInvalidProbability, pB)
	}
	sum := pA + pB
	return pA / sum, pB / sum, nil
}
