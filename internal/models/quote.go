package models

// MarketKind identifies the bet market a quote or ticket belongs to.
type MarketKind string

const (
	MarketMoneyline MarketKind = "ML"
	MarketSpread    MarketKind = "ATS"
	MarketTotal     MarketKind = "OU"
)

// Rank orders markets for deterministic output (ML before ATS before OU).
func (m MarketKind) Rank() int {
	switch m {
	case MarketMoneyline:
		return 0
	case MarketSpread:
		return 1
	case MarketTotal:
		return 2
	}
	return 3
}

// Side identifies which leg of a two-way market a quote prices.
type Side string

const (
	SideHome  Side = "HOME"
	SideAway  Side = "AWAY"
	SideOver  Side = "OVER"
	SideUnder Side = "UNDER"
)

// MarketQuote is a single market leg as supplied by an odds loader.
// AmericanPrice is never 0 in a valid quote; Line is nil for moneylines.
type MarketQuote struct {
	GameID        string     `json:"game_id"`
	Market        MarketKind `json:"market"`
	Side          Side       `json:"side"`
	AmericanPrice int        `json:"american_price"`
	Line          *float64   `json:"line,omitempty"`
}

// OddsBoard is the full set of quoted legs for one game: a moneyline pair,
// a spread pair at one line, and a totals pair at one line. Fields are
// pointers because a book may not post every market for every game.
type OddsBoard struct {
	GameID          string   `json:"game_id"`
	HomeTeam        string   `json:"home_team"`
	AwayTeam        string   `json:"away_team"`
	HomeML          *int     `json:"home_ml"`
	AwayML          *int     `json:"away_ml"`
	HomeSpread      *float64 `json:"home_spread"`
	HomeSpreadPrice *int     `json:"home_spread_price"`
	AwaySpreadPrice *int     `json:"away_spread_price"`
	TotalLine       *float64 `json:"total_line"`
	OverPrice       *int     `json:"over_price"`
	UnderPrice      *int     `json:"under_price"`
}

// HasMoneyline reports whether both moneyline prices are posted.
func (b OddsBoard) HasMoneyline() bool {
	return b.HomeML != nil && b.AwayML != nil
}

// HasSpread reports whether the spread line and both prices are posted.
func (b OddsBoard) HasSpread() bool {
	return b.HomeSpread != nil && b.HomeSpreadPrice != nil && b.AwaySpreadPrice != nil
}

// HasTotal reports whether the total line and both prices are posted.
func (b OddsBoard) HasTotal() bool {
	return b.TotalLine != nil && b.OverPrice != nil && b.UnderPrice != nil
}
