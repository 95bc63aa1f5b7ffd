package probability

import "github.com/yourusername/gridiron-edge/internal/models"

// Model maps ratings to outcome distributions. The point differential is
// N(rating gap + HFA, SigmaDiff^2); totals are N(LeagueTotalMean,
// SigmaTotal^2). Teams missing from the rating map rate 0.
type Model struct {
	Ratings         models.RatingMap
	HFAPoints       float64
	SigmaDiff       float64
	SigmaTotal      float64
	LeagueTotalMean float64
}

// NewModel builds a model over the given ratings. A nil map is valid: every
// team then rates 0 and the home side is favored by exactly the HFA.
func NewModel(ratings models.RatingMap, hfaPoints, sigmaDiff, sigmaTotal, leagueTotalMean float64) *Model {
	if ratings == nil {
		ratings = models.RatingMap{}
	}
	return &Model{
		Ratings:         ratings,
		HFAPoints:       hfaPoints,
		SigmaDiff:       sigmaDiff,
		SigmaTotal:      sigmaTotal,
		LeagueTotalMean: leagueTotalMean,
	}
}

// MeanDiff is the expected point differential Home - Away.
func (m *Model) MeanDiff(homeTeam, awayTeam string) float64 {
	return (m.Ratings.Rating(homeTeam) - m.Ratings.Rating(awayTeam)) + m.HFAPoints
}

// WinProbHome is P(home wins), i.e. P(margin > 0).
func (m *Model) WinProbHome(homeTeam, awayTeam string) float64 {
	return ProbOverNormal(m.MeanDiff(homeTeam, awayTeam), m.SigmaDiff, 0.0)
}

// CoverProbHome is P(margin > spreadLine); -2.5 means home laying 2.5.
func (m *Model) CoverProbHome(homeTeam, awayTeam string, spreadLine float64) float64 {
	return ProbCoverSpread(m.MeanDiff(homeTeam, awayTeam), m.SigmaDiff, spreadLine)
}

// OverProb is P(total > totalLine) under the league-wide total mean.
func (m *Model) OverProb(totalLine float64) float64 {
	return ProbTotalOver(m.LeagueTotalMean, m.SigmaTotal, totalLine)
}
