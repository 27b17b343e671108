package models

import (
	"time"

	"github.com/google/uuid"
)

// OpportunityType distinguishes value bets from arbitrage
type OpportunityType string

const (
	OpportunityValueBet  OpportunityType = "VALUE_BET"
	OpportunityArbitrage OpportunityType = "ARBITRAGE"
)

// OpportunityStatusOpen marks an opportunity that has not been acted on
const OpportunityStatusOpen = "OPEN"

// ArbitrageSelection is the selection label stored for arbitrage rows
const ArbitrageSelection = "ALL"

// Opportunity is a value bet or arbitrage found against bookmaker prices
type Opportunity struct {
	ID                  uuid.UUID       `db:"opportunity_id" json:"opportunity_id" validate:"required"`
	MatchID             int64           `db:"match_id" json:"match_id" validate:"required,gt=0"`
	Type                OpportunityType `db:"opportunity_type" json:"opportunity_type" validate:"required,oneof=VALUE_BET ARBITRAGE"`
	Selection           string          `db:"selection" json:"selection" validate:"required"`
	Bookmaker           string          `db:"bookmaker" json:"bookmaker,omitempty"`
	ModelProb           float64         `db:"model_prob" json:"model_prob" validate:"gte=0,lte=1"`
	BestOdds            float64         `db:"best_odds" json:"best_odds" validate:"gt=1"`
	FairOdds            float64         `db:"fair_odds" json:"fair_odds" validate:"gte=0"`
	EdgePercent         float64         `db:"edge_percent" json:"edge_percent"`
	ExpectedValue       float64         `db:"expected_value" json:"expected_value"`
	ProfitMarginPercent float64         `db:"profit_margin_percent" json:"profit_margin_percent"`
	Status              string          `db:"status" json:"status"`
	Timestamp           time.Time       `db:"timestamp" json:"timestamp"`
}

// OpportunityWithFixture pairs an opportunity with its fixture and prediction
type OpportunityWithFixture struct {
	Opportunity
	HomeTeam    string    `json:"home_team"`
	AwayTeam    string    `json:"away_team"`
	KickoffTime time.Time `json:"kickoff_time"`
	ProbHome    *float64  `json:"prob_home"`
	ProbDraw    *float64  `json:"prob_draw"`
	ProbAway    *float64  `json:"prob_away"`
}

// Stats summarises the stored data set
type Stats struct {
	Teams           int64 `json:"teams"`
	Matches         int64 `json:"matches"`
	FinishedMatches int64 `json:"finished_matches"`
	UpcomingMatches int64 `json:"upcoming_matches"`
	Odds            int64 `json:"odds"`
	Predictions     int64 `json:"predictions"`
	Opportunities   int64 `json:"opportunities"`
	Bookmakers      int64 `json:"bookmakers"`
}
