package models

import "time"

// MarketTypeH2H is the three-way match result market
const MarketTypeH2H = "h2h"

// Selection identifies an outcome of the 1X2 market
type Selection string

const (
	SelectionHome Selection = "HOME"
	SelectionDraw Selection = "DRAW"
	SelectionAway Selection = "AWAY"
)

// DrawSelectionName is how bookmaker feeds label the draw
const DrawSelectionName = "Draw"

// MarketOdds is one bookmaker's decimal price for one selection
type MarketOdds struct {
	MatchID     int64     `db:"match_id" json:"match_id" validate:"required,gt=0"`
	BookmakerID int64     `db:"bookie_id" json:"bookie_id" validate:"required,gt=0"`
	Bookmaker   string    `db:"bookmaker" json:"bookmaker"`
	MarketType  string    `db:"market_type" json:"market_type" validate:"required"`
	Selection   string    `db:"selection" json:"selection" validate:"required"`
	Odds        float64   `db:"odds" json:"odds" validate:"required,gt=1"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// GetImpliedProbability returns the implied probability of the price
func (o *MarketOdds) GetImpliedProbability() float64 {
	if o.Odds <= 0 {
		return 0
	}
	return 1.0 / o.Odds
}

// BestPrice is the highest price on offer for a selection across bookmakers
type BestPrice struct {
	Selection     string  `json:"selection"`
	Odds          float64 `json:"odds"`
	Bookmaker     string  `json:"bookmaker"`
	NumBookmakers int     `json:"num_bookmakers"`
}

// ResolveSelection maps a feed selection label onto HOME/DRAW/AWAY using the
// fixture's team names
func ResolveSelection(label, homeTeam, awayTeam string) (Selection, bool) {
	switch label {
	case homeTeam:
		return SelectionHome, true
	case awayTeam:
		return SelectionAway, true
	case DrawSelectionName:
		return SelectionDraw, true
	default:
		return "", false
	}
}
