// Package picks turns odds boards and a fitted probability model into
// ranked, stake-sized ticket recommendations.
package picks

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-edge/internal/market"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/probability"
)

// Config holds the bankroll and selection thresholds for a build run.
type Config struct {
	Bankroll      float64
	KellyFraction float64
	MinEdge       float64 // minimum edge in probability points
	MinStake      float64 // minimum stake in dollars
	Simulate      bool    // Monte Carlo probabilities with CI annotation
	SimN          int
	SimSeed       int64
}

// Builder evaluates the canonical legs of each board: home moneyline, home
// spread, and the over. A malformed leg is logged and skipped so it cannot
// take down the rest of the batch.
type Builder struct {
	model  *probability.Model
	cfg    Config
	logger *logrus.Logger
}

// NewBuilder creates a ticket builder over a fitted model.
func NewBuilder(model *probability.Model, cfg Config, logger *logrus.Logger) *Builder {
	if logger == nil {
		logger = logrus.New()
	}
	return &Builder{model: model, cfg: cfg, logger: logger}
}

// Build evaluates every board and returns the tickets passing the edge and
// stake thresholds, sorted by game id then market so output order is
// deterministic regardless of evaluation order.
func (b *Builder) Build(boards []models.OddsBoard) []models.Ticket {
	var tickets []models.Ticket
	for _, board := range boards {
		for _, eval := range []func(models.OddsBoard) (models.Ticket, bool, error){
			b.moneylineLeg,
			b.spreadLeg,
			b.totalLeg,
		} {
			ticket, quoted, err := eval(board)
			if err != nil {
				b.logger.WithFields(logrus.Fields{
					"game_id": board.GameID,
				}).WithError(err).Warn("Skipping market leg")
				continue
			}
			if !quoted {
				continue
			}
			if b.passes(ticket) {
				tickets = append(tickets, ticket)
			}
		}
	}

	sort.Slice(tickets, func(i, j int) bool {
		if tickets[i].GameID != tickets[j].GameID {
			return tickets[i].GameID < tickets[j].GameID
		}
		return tickets[i].Market.Rank() < tickets[j].Market.Rank()
	})
	return tickets
}

func (b *Builder) passes(t models.Ticket) bool {
	return t.Edge >= b.cfg.MinEdge && t.Stake.InexactFloat64() >= b.cfg.MinStake
}

func (b *Builder) moneylineLeg(board models.OddsBoard) (models.Ticket, bool, error) {
	if !board.HasMoneyline() {
		return models.Ticket{}, false, nil
	}

	modelProb := b.model.WinProbHome(board.HomeTeam, board.AwayTeam)
	var lo, hi *float64
	if b.cfg.Simulate {
		meanDiff := b.model.MeanDiff(board.HomeTeam, board.AwayTeam)
		p := probability.SimulateCoverSpread(meanDiff, b.model.SigmaDiff, 0.0, b.simConfig())
		modelProb = p
		lo, hi = b.interval(p)
	}

	ticket, err := b.makeTicket(board.GameID, models.MarketMoneyline, models.SideHome,
		*board.HomeML, *board.AwayML, nil, modelProb, lo, hi)
	return ticket, true, err
}

func (b *Builder) spreadLeg(board models.OddsBoard) (models.Ticket, bool, error) {
	if !board.HasSpread() {
		return models.Ticket{}, false, nil
	}

	line := *board.HomeSpread
	modelProb := b.model.CoverProbHome(board.HomeTeam, board.AwayTeam, line)
	var lo, hi *float64
	if b.cfg.Simulate {
		meanDiff := b.model.MeanDiff(board.HomeTeam, board.AwayTeam)
		p := probability.SimulateCoverSpread(meanDiff, b.model.SigmaDiff, line, b.simConfig())
		modelProb = p
		lo, hi = b.interval(p)
	}

	ticket, err := b.makeTicket(board.GameID, models.MarketSpread, models.SideHome,
		*board.HomeSpreadPrice, *board.AwaySpreadPrice, &line, modelProb, lo, hi)
	return ticket, true, err
}

func (b *Builder) totalLeg(board models.OddsBoard) (models.Ticket, bool, error) {
	if !board.HasTotal() {
		return models.Ticket{}, false, nil
	}

	line := *board.TotalLine
	modelProb := b.model.OverProb(line)
	var lo, hi *float64
	if b.cfg.Simulate {
		p := probability.SimulateTotalOver(b.model.LeagueTotalMean, b.model.SigmaTotal, line, b.simConfig())
		modelProb = p
		lo, hi = b.interval(p)
	}

	ticket, err := b.makeTicket(board.GameID, models.MarketTotal, models.SideOver,
		*board.OverPrice, *board.UnderPrice, &line, modelProb, lo, hi)
	return ticket, true, err
}

// makeTicket runs the shared leg math: implied probabilities for both sides,
// de-vig, price conversion, EV/edge, and fractional-Kelly sizing.
func (b *Builder) makeTicket(gameID string, kind models.MarketKind, side models.Side,
	price, oppositePrice int, line *float64, modelProb float64, lo, hi *float64) (models.Ticket, error) {

	implied, err := market.ImpliedProbability(price)
	if err != nil {
		return models.Ticket{}, fmt.Errorf("%s %s price: %w", kind, side, err)
	}
	impliedOpp, err := market.ImpliedProbability(oppositePrice)
	if err != nil {
		return models.Ticket{}, fmt.Errorf("%s opposite price: %w", kind, err)
	}
	fairProb, _, err := market.RemoveVigTwoWay(implied, impliedOpp)
	if err != nil {
		return models.Ticket{}, fmt.Errorf("%s de-vig: %w", kind, err)
	}

	dec, err := market.AmericanToDecimal(price)
	if err != nil {
		return models.Ticket{}, fmt.Errorf("%s %s price: %w", kind, side, err)
	}
	ev, edge, err := market.EVAndEdge(modelProb, fairProb, dec)
	if err != nil {
		return models.Ticket{}, fmt.Errorf("%s edge: %w", kind, err)
	}
	stake, err := market.KellyFractional(modelProb, dec, b.cfg.Bankroll, b.cfg.KellyFraction)
	if err != nil {
		return models.Ticket{}, fmt.Errorf("%s stake: %w", kind, err)
	}

	return models.Ticket{
		ID:            uuid.New(),
		GameID:        gameID,
		Market:        kind,
		Side:          side,
		AmericanPrice: price,
		DecimalPrice:  dec,
		Line:          line,
		FairProb:      fairProb,
		ModelProb:     modelProb,
		ModelProbLo:   lo,
		ModelProbHi:   hi,
		Edge:          edge,
		EVPerDollar:   ev,
		Stake:         decimal.NewFromFloat(stake).Round(2),
		CreatedAt:     time.Now().UTC(),
	}, nil
}

func (b *Builder) simConfig() probability.SimConfig {
	return probability.SimConfig{N: b.cfg.SimN, Seed: b.cfg.SimSeed}
}

func (b *Builder) interval(p float64) (*float64, *float64) {
	n := b.cfg.SimN
	if n <= 0 {
		n = 10000
	}
	lo, hi := probability.MCCINormal(p, n, probability.DefaultZ)
	return &lo, &hi
}
