package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ticket is one recommended market leg: the price taken, the market's
// de-vigged fair probability, the model's probability (with an optional
// Monte Carlo confidence interval), and the sized stake. Immutable after
// creation; written to the gold layer and pushed to notifiers.
type Ticket struct {
	ID            uuid.UUID       `json:"id"`
	GameID        string          `json:"game_id"`
	Market        MarketKind      `json:"market"`
	Side          Side            `json:"side"`
	AmericanPrice int             `json:"american_price"`
	DecimalPrice  float64         `json:"decimal_price"`
	Line          *float64        `json:"line,omitempty"`
	FairProb      float64         `json:"fair_prob"`
	ModelProb     float64         `json:"model_prob"`
	ModelProbLo   *float64        `json:"model_prob_lo,omitempty"`
	ModelProbHi   *float64        `json:"model_prob_hi,omitempty"`
	Edge          float64         `json:"edge"`
	EVPerDollar   float64         `json:"ev_per_dollar"`
	Stake         decimal.Decimal `json:"kelly_stake"`
	CreatedAt     time.Time       `json:"created_at"`
}
