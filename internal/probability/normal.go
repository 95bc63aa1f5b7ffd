// Package probability turns team ratings into win/cover/over probabilities
// under a Normal outcome model, both in closed form and by Monte Carlo
// sampling, with normal-approximation confidence intervals for the latter.
package probability

import "gonum.org/v1/gonum/stat/distuv"

// ProbOverNormal returns P(X > line) for X ~ N(mean, sigma^2).
// A non-positive sigma is treated as a point mass at the mean, never an
// error: 1.0 above the line, 0.0 below, 0.5 exactly on it.
func ProbOverNormal(mean, sigma, line float64) float64 {
	if sigma <= 0 {
		switch {
		case mean > line:
			return 1.0
		case mean < line:
			return 0.0
		}
		return 0.5
	}
	z := (line - mean) / sigma
	return 1.0 - distuv.UnitNormal.CDF(z)
}

// ProbUnderNormal returns P(X < line) for X ~ N(mean, sigma^2), with the
// same point-mass policy for non-positive sigma.
func ProbUnderNormal(mean, sigma, line float64) float64 {
	if sigma <= 0 {
		switch {
		case mean < line:
			return 1.0
		case mean > line:
			return 0.0
		}
		return 0.5
	}
	z := (line - mean) / sigma
	return distuv.UnitNormal.CDF(z)
}

// ProbCoverSpread returns P(home covers) when the margin Home - Away is
// N(meanDiff, sigmaDiff^2). A home spread of -2.5 means P(margin > -2.5).
// Push probability is ignored (zero for half-point lines).
func ProbCoverSpread(meanDiff, sigmaDiff, homeSpread float64) float64 {
	return ProbOverNormal(meanDiff, sigmaDiff, homeSpread)
}

// ProbTotalOver returns P(over) when the combined score is
// N(meanTotal, sigmaTotal^2).
func ProbTotalOver(meanTotal, sigmaTotal, totalLine float64) float64 {
	return ProbOverNormal(meanTotal, sigmaTotal, totalLine)
}
