package probability

import (
	"math"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// SimConfig configures a Monte Carlo probability estimate. A zero Seed
// draws a time-based seed, so two runs only agree when the caller supplies
// an explicit seed. There is no hidden global RNG state.
type SimConfig struct {
	N    int
	Seed int64
}

const defaultSimN = 10000

// SimulateCoverSpread estimates P(home margin > spread) by sampling the
// same N(meanDiff, sigma^2) distribution the closed form integrates, so the
// two agree in expectation as N grows.
func SimulateCoverSpread(meanDiff, sigma, spread float64, cfg SimConfig) float64 {
	return simulateExceeds(meanDiff, sigma, spread, cfg)
}

// SimulateTotalOver estimates P(total points > line) by sampling
// N(totalMean, sigmaTotal^2).
func SimulateTotalOver(totalMean, sigmaTotal, line float64, cfg SimConfig) float64 {
	return simulateExceeds(totalMean, sigmaTotal, line, cfg)
}

func simulateExceeds(mean, sigma, line float64, cfg SimConfig) float64 {
	if sigma <= 0 {
		// Point mass: sampling would be a constant stream of the mean.
		return ProbOverNormal(mean, sigma, line)
	}

	n := cfg.N
	if n <= 0 {
		n = defaultSimN
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	dist := distuv.Normal{
		Mu:    mean,
		Sigma: sigma,
		Src:   rand.NewSource(uint64(seed)),
	}

	exceeds := 0
	for i := 0; i < n; i++ {
		if dist.Rand() > line {
			exceeds++
		}
	}
	return float64(exceeds) / float64(n)
}

// DefaultZ is the two-sided z value for a ~95% interval.
const DefaultZ = 1.96

// MCCINormal returns the normal-approximation confidence interval around a
// Monte Carlo probability estimate. pHat is clipped to [0,1]; n <= 0 yields
// a zero-width interval. Purely descriptive: the point estimate used for
// edge and stake sizing is unchanged.
func MCCINormal(pHat float64, n int, z float64) (lo, hi float64) {
	p := math.Max(0.0, math.Min(1.0, pHat))
	if n <= 0 {
		return p, p
	}
	if z <= 0 {
		z = DefaultZ
	}
	se := math.Sqrt(p * (1.0 - p) / float64(n))
	lo = math.Max(0.0, p-z*se)
	hi = math.Min(1.0, p+z*se)
	return lo, hi
}
