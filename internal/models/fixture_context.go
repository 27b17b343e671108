package models

import "github.com/WarenOdhiambo1/lead-magnet/internal/quant"

// TeamForm is a team's league points over its latest finished matches
type TeamForm struct {
	Points int `json:"points"`
	Played int `json:"played"`
}

// FixtureContext is the finished-match and squad history behind a fixture's
// rate adjustments. Only matches kicking off before the fixture are counted.
type FixtureContext struct {
	FormWindow  int      `json:"form_window"`
	HomeForm    TeamForm `json:"home_form"`
	AwayForm    TeamForm `json:"away_form"`
	HomePlayed  int      `json:"home_played"`
	HomeWon     int      `json:"home_won"`
	Meetings    int      `json:"meetings"`
	HomeWins    int      `json:"home_wins"`
	HomeInjured int      `json:"home_injured"`
	AwayInjured int      `json:"away_injured"`
}

// Factors converts the history into engine adjustment factors. homeAdvantage
// is the venue factor used while the home record is too short.
func (c *FixtureContext) Factors(homeAdvantage float64) quant.AdjustmentFactors {
	window := c.FormWindow
	if window <= 0 {
		window = quant.FormWindow
	}
	h2hHome, h2hAway := quant.HeadToHeadFactors(c.Meetings, c.HomeWins)

	return quant.AdjustmentFactors{
		HomeForm:   quant.FormFactor(c.HomeForm.Points, c.HomeForm.Played, window),
		AwayForm:   quant.FormFactor(c.AwayForm.Points, c.AwayForm.Played, window),
		Venue:      quant.VenueFactor(c.HomePlayed, c.HomeWon, homeAdvantage),
		H2HHome:    h2hHome,
		H2HAway:    h2hAway,
		HomeInjury: quant.InjuryFactor(c.HomeInjured),
		AwayInjury: quant.InjuryFactor(c.AwayInjured),
	}
}
