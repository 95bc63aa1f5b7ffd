package ratings

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// EloOptions configures the iterative fitter.
type EloOptions struct {
	StartRatings models.RatingMap // optional warm start; copied, never mutated
	K            float64          // update size in points per unit of error
	HFAPoints    float64          // home-field advantage added to the home rating
	Iters        int              // full passes over the result set
	ScalePts     float64          // rating-diff scale mapping points to win prob
	UseMOV       bool             // weight updates by margin of victory
	MOVScalePts  float64          // margin that roughly doubles the log term
	MOVCap       float64          // hard cap on the MOV multiplier
}

// DefaultEloOptions returns the standard fit parameters.
func DefaultEloOptions() EloOptions {
	return EloOptions{
		K:           20.0,
		HFAPoints:   2.0,
		Iters:       2,
		ScalePts:    13.0,
		UseMOV:      true,
		MOVScalePts: 7.0,
		MOVCap:      2.0,
	}
}

// FitElo runs Iters full passes over results in their given order, nudging
// each game's teams toward the observed outcome. Each single update is
// pairwise zero-sum. The repeated-epoch design converges ratings from a cold
// start; callers that want a chronological single pass pre-sort the input
// and set Iters to 1. Unseen teams start at 0.
func FitElo(results []models.GameResult, opts EloOptions) models.RatingMap {
	fitted := opts.StartRatings.Clone()

	passes := opts.Iters
	if passes < 1 {
		passes = 1
	}

	for pass := 0; pass < passes; pass++ {
		for _, g := range results {
			outcome := 0.5
			switch {
			case g.HomePoints > g.AwayPoints:
				outcome = 1.0
			case g.HomePoints < g.AwayPoints:
				outcome = 0.0
			}

			diff := (fitted.Rating(g.HomeTeam) + opts.HFAPoints) - fitted.Rating(g.AwayTeam)
			expected := winProbFromDiff(diff, opts.ScalePts)
			err := outcome - expected

			mult := 1.0
			if opts.UseMOV {
				mult = movMultiplier(g.Margin(), opts.MOVScalePts, opts.MOVCap)
			}

			delta := opts.K * mult * err
			fitted[g.HomeTeam] = fitted.Rating(g.HomeTeam) + delta
			fitted[g.AwayTeam] = fitted.Rating(g.AwayTeam) - delta
		}
	}
	return fitted
}

// winProbFromDiff maps a rating differential in points to a home win
// probability. The logistic curve with the 1.7 steepness factor is a cheap
// proxy for a Normal CDF at scale scalePts.
func winProbFromDiff(diffPts, scalePts float64) float64 {
	return 1.0 / (1.0 + math.Exp(-(diffPts/scalePts)*1.7))
}

// movMultiplier scales an update by margin of victory: sub-linear growth and
// a hard cap keep outlier blowouts from inflating ratings.
func movMultiplier(margin int, scalePts, capAt float64) float64 {
	mult := 1.0 + math.Log(1.0+math.Abs(float64(margin))/scalePts)
	return math.Min(capAt, mult)
}

// Normalize recenters ratings to mean 0 and rescales them so the population
// standard deviation equals targetStd. A zero-variance map is returned
// centered but unscaled.
func Normalize(r models.RatingMap, targetStd float64) models.RatingMap {
	if len(r) == 0 {
		return models.RatingMap{}
	}

	values := make([]float64, 0, len(r))
	for _, v := range r {
		values = append(values, v)
	}
	mean := stat.Mean(values, nil)

	sumSq := 0.0
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	std := math.Sqrt(sumSq / float64(len(values)))

	out := make(models.RatingMap, len(r))
	if std == 0 {
		for team, v := range r {
			out[team] = v - mean
		}
		return out
	}
	for team, v := range r {
		out[team] = (v - mean) / std * targetStd
	}
	return out
}
