// Package ratings estimates latent team strength (in points) from final
// scores. Two interchangeable fitters are provided: a closed-form ridge
// regression on point differentials and an iterative Elo-style fitter with
// optional margin-of-victory weighting.
package ratings

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// RidgeOptions configures the regularized regression fit.
type RidgeOptions struct {
	HFAPoints      float64 // home-field advantage subtracted from the target
	Lambda         float64 // ridge penalty, must be > 0
	EnforceSumZero bool    // recenter ratings to a league-wide mean of 0
}

// DefaultRidgeOptions returns the standard fit parameters.
func DefaultRidgeOptions() RidgeOptions {
	return RidgeOptions{
		HFAPoints:      2.0,
		Lambda:         4.0,
		EnforceSumZero: true,
	}
}

// FitRidge solves the regularized normal equations (XtX + lambda*I) beta = Xty
// where each game contributes a row with +1 for the home team, -1 for the
// away team, and target home_pts - away_pts - hfa. The penalty acts as a
// Gaussian prior on ratings, so the system is positive-definite and solvable
// even with fewer games than teams.
//
// Returns the fitted ratings and the team index used in the design matrix
// (exposed for diagnostics). An empty result set yields empty maps.
func FitRidge(results []models.GameResult, opts RidgeOptions) (models.RatingMap, map[string]int, error) {
	if opts.Lambda <= 0 {
		return nil, nil, fmt.Errorf("%w: ridge lambda must be > 0, got %v", models.ErrInvalidInput, opts.Lambda)
	}
	if len(results) == 0 {
		return models.RatingMap{}, map[string]int{}, nil
	}

	index := teamIndex(results)
	n := len(index)

	// Accumulate XtX and Xty directly; the design matrix has exactly two
	// non-zero entries per row.
	xtx := mat.NewSymDense(n, nil)
	xty := make([]float64, n)
	for _, g := range results {
		h := index[g.HomeTeam]
		a := index[g.AwayTeam]
		y := float64(g.HomePoints) - float64(g.AwayPoints) - opts.HFAPoints

		xtx.SetSym(h, h, xtx.At(h, h)+1)
		xtx.SetSym(a, a, xtx.At(a, a)+1)
		xtx.SetSym(h, a, xtx.At(h, a)-1)
		xty[h] += y
		xty[a] -= y
	}
	for i := 0; i < n; i++ {
		xtx.SetSym(i, i, xtx.At(i, i)+opts.Lambda)
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(xtx); !ok {
		return nil, nil, fmt.Errorf("%w: normal equations not positive-definite (lambda=%v)", models.ErrInvalidInput, opts.Lambda)
	}
	var beta mat.VecDense
	if err := chol.SolveVecTo(&beta, mat.NewVecDense(n, xty)); err != nil {
		return nil, nil, fmt.Errorf("solving ridge system: %w", err)
	}

	coeffs := beta.RawVector().Data
	if opts.EnforceSumZero {
		mean := floats.Sum(coeffs) / float64(n)
		for i := range coeffs {
			coeffs[i] -= mean
		}
	}

	fitted := make(models.RatingMap, n)
	for team, i := range index {
		fitted[team] = coeffs[i]
	}
	return fitted, index, nil
}

// teamIndex assigns each team a column in the design matrix, sorted by name
// so repeated fits over the same data are bit-identical.
func teamIndex(results []models.GameResult) map[string]int {
	seen := make(map[string]struct{})
	for _, g := range results {
		seen[g.HomeTeam] = struct{}{}
		seen[g.AwayTeam] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	index := make(map[string]int, len(names))
	for i, name := range names {
		index[name] = i
	}
	return index
}
