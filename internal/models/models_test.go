package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/WarenOdhiambo1/lead-magnet/internal/quant"
)

func TestTeamStrength(t *testing.T) {
	attack, defense := 1.3, 0.8
	team := &Team{ID: 1, Name: "Arsenal", AttackStrength: &attack, DefenseStrength: &defense}
	assert.Equal(t, quant.Strength{Attack: 1.3, Defense: 0.8}, team.Strength())
	assert.True(t, team.HasRatings())

	unrated := &Team{ID: 2, Name: "Promoted FC"}
	assert.Equal(t, quant.Strength{}, unrated.Strength())
	assert.False(t, unrated.HasRatings())
}

func TestNewPredictionRoundTripsOutcome(t *testing.T) {
	pred, err := quant.PredictMatch(1.5, 1.2)
	assert.NoError(t, err)

	row := NewPrediction(10, pred, "dixon_coles_v1")
	assert.Equal(t, int64(10), row.MatchID)
	assert.Equal(t, "dixon_coles_v1", row.ModelVersion)
	assert.False(t, row.CreatedAt.IsZero())
	assert.Equal(t, pred, row.Outcome())
}

func TestPredictionProbabilityFor(t *testing.T) {
	row := &Prediction{ProbHome: 0.5, ProbDraw: 0.3, ProbAway: 0.2}

	p, ok := row.ProbabilityFor(SelectionHome)
	assert.True(t, ok)
	assert.Equal(t, 0.5, p)

	p, ok = row.ProbabilityFor(SelectionAway)
	assert.True(t, ok)
	assert.Equal(t, 0.2, p)

	_, ok = row.ProbabilityFor(Selection("OVER"))
	assert.False(t, ok)
}

func TestResolveSelection(t *testing.T) {
	tests := []struct {
		label string
		want  Selection
		ok    bool
	}{
		{label: "Leeds", want: SelectionHome, ok: true},
		{label: "Burnley", want: SelectionAway, ok: true},
		{label: "Draw", want: SelectionDraw, ok: true},
		{label: "Over 2.5", ok: false},
	}

	for _, tt := range tests {
		got, ok := ResolveSelection(tt.label, "Leeds", "Burnley")
		assert.Equal(t, tt.ok, ok, tt.label)
		assert.Equal(t, tt.want, got, tt.label)
	}
}

func TestMarketOddsImpliedProbability(t *testing.T) {
	o := &MarketOdds{Odds: 2.5}
	assert.InDelta(t, 0.4, o.GetImpliedProbability(), 1e-12)
	assert.Equal(t, 0.0, (&MarketOdds{}).GetImpliedProbability())
}

func TestFixtureContextFactors(t *testing.T) {
	c := &FixtureContext{
		FormWindow:  5,
		HomeForm:    TeamForm{Points: 10, Played: 5},
		AwayForm:    TeamForm{Points: 4, Played: 5},
		HomePlayed:  10,
		HomeWon:     6,
		Meetings:    5,
		HomeWins:    3,
		HomeInjured: 1,
		AwayInjured: 5,
	}

	f := c.Factors(1.15)
	assert.InDelta(t, 1.1, f.HomeForm, 1e-12)
	assert.InDelta(t, 0.86, f.AwayForm, 1e-12)
	assert.InDelta(t, 1.18, f.Venue, 1e-12)
	assert.InDelta(t, 1.02, f.H2HHome, 1e-12)
	assert.InDelta(t, 0.98, f.H2HAway, 1e-12)
	assert.Equal(t, 0.95, f.HomeInjury)
	assert.Equal(t, 0.85, f.AwayInjury)
}

func TestFixtureContextWithoutHistory(t *testing.T) {
	f := (&FixtureContext{}).Factors(1.15)
	assert.Equal(t, quant.AdjustmentFactors{
		HomeForm: 1, AwayForm: 1, Venue: 1.15, H2HHome: 1, H2HAway: 1, HomeInjury: 1, AwayInjury: 1,
	}, f)
}
