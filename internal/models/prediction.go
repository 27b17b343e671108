package models

import (
	"time"

	"github.com/WarenOdhiambo1/lead-magnet/internal/quant"
)

// Prediction represents the stored engine output for one match
type Prediction struct {
	ID           int64     `db:"pred_id" json:"pred_id"`
	MatchID      int64     `db:"match_id" json:"match_id" validate:"required,gt=0"`
	ProbHome     float64   `db:"prob_home" json:"prob_home" validate:"gte=0,lte=1"`
	ProbDraw     float64   `db:"prob_draw" json:"prob_draw" validate:"gte=0,lte=1"`
	ProbAway     float64   `db:"prob_away" json:"prob_away" validate:"gte=0,lte=1"`
	XGHome       float64   `db:"xg_home" json:"xg_home" validate:"gte=0"`
	XGAway       float64   `db:"xg_away" json:"xg_away" validate:"gte=0"`
	Prob00       float64   `db:"prob_0_0" json:"prob_0_0" validate:"gte=0,lte=1"`
	ProbOver25   float64   `db:"prob_over_2_5" json:"prob_over_2_5" validate:"gte=0,lte=1"`
	ProbBTTS     float64   `db:"prob_btts" json:"prob_btts" validate:"gte=0,lte=1"`
	ModelVersion string    `db:"model_version" json:"model_version" validate:"required"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// NewPrediction builds a storable row from an engine prediction
func NewPrediction(matchID int64, p quant.MatchPrediction, modelVersion string) *Prediction {
	return &Prediction{
		MatchID:      matchID,
		ProbHome:     p.ProbHome,
		ProbDraw:     p.ProbDraw,
		ProbAway:     p.ProbAway,
		XGHome:       p.XGHome,
		XGAway:       p.XGAway,
		Prob00:       p.Prob00,
		ProbOver25:   p.ProbOver25,
		ProbBTTS:     p.ProbBTTS,
		ModelVersion: modelVersion,
		CreatedAt:    time.Now().UTC(),
	}
}

// Outcome returns the engine view of the stored row
func (p *Prediction) Outcome() quant.MatchPrediction {
	return quant.MatchPrediction{
		ProbHome:   p.ProbHome,
		ProbDraw:   p.ProbDraw,
		ProbAway:   p.ProbAway,
		XGHome:     p.XGHome,
		XGAway:     p.XGAway,
		Prob00:     p.Prob00,
		ProbOver25: p.ProbOver25,
		ProbBTTS:   p.ProbBTTS,
	}
}

// ProbabilityFor returns the model probability of a 1X2 selection
func (p *Prediction) ProbabilityFor(sel Selection) (float64, bool) {
	switch sel {
	case SelectionHome:
		return p.ProbHome, true
	case SelectionDraw:
		return p.ProbDraw, true
	case SelectionAway:
		return p.ProbAway, true
	default:
		return 0, false
	}
}

// PredictionWithFixture pairs a stored prediction with its fixture
type PredictionWithFixture struct {
	Prediction
	HomeTeam    string    `json:"home_team"`
	AwayTeam    string    `json:"away_team"`
	KickoffTime time.Time `json:"kickoff_time"`
}
