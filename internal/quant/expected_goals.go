package quant

import "math"

const (
	// DefaultLeagueAverage is goals per team per match in an average fixture.
	DefaultLeagueAverage = 1.5
	// DefaultVenueAdvantage is the neutral venue multiplier.
	DefaultVenueAdvantage = 1.0
)

// ExpectedGoals returns the Poisson rate for one side of a fixture.
//
// Strength ratios are centred on 1.0 for a league-average team: an attack of
// 1.2 scores 20% more than average, a defence of 0.8 concedes 20% less. No
// bounds are applied here; see FixtureRates for the clamped fixture rule.
func ExpectedGoals(attackStrength, opponentDefenseStrength, leagueAverage, venueAdvantage float64) float64 {
	return attackStrength * opponentDefenseStrength * leagueAverage * venueAdvantage
}

// Strength is a team's attack and defence rating.
type Strength struct {
	Attack  float64 `json:"attack"`
	Defense float64 `json:"defense"`
}

// RateParams controls how strengths become fixture rates.
type RateParams struct {
	LeagueAverage float64
	HomeAdvantage float64
	MinStrength   float64
	MaxStrength   float64
	MinRate       float64
}

// DefaultRateParams returns the production fixture parameters.
func DefaultRateParams() RateParams {
	return RateParams{
		LeagueAverage: DefaultLeagueAverage,
		HomeAdvantage: 1.15,
		MinStrength:   0.5,
		MaxStrength:   2.0,
		MinRate:       0.1,
	}
}

// FixtureRates converts both teams' strengths into home and away rates.
// Ratings are clamped to [MinStrength, MaxStrength], a zero rating is read as
// league average, only the home side gets HomeAdvantage and both rates are
// floored at MinRate.
func FixtureRates(home, away Strength, p RateParams) (lambdaHome, lambdaAway float64) {
	homeAttack := p.clamp(home.Attack)
	homeDefense := p.clamp(home.Defense)
	awayAttack := p.clamp(away.Attack)
	awayDefense := p.clamp(away.Defense)

	lambdaHome = ExpectedGoals(homeAttack, awayDefense, p.LeagueAverage, p.HomeAdvantage)
	lambdaAway = ExpectedGoals(awayAttack, homeDefense, p.LeagueAverage, DefaultVenueAdvantage)

	return math.Max(p.MinRate, lambdaHome), math.Max(p.MinRate, lambdaAway)
}

func (p RateParams) clamp(rating float64) float64 {
	if rating == 0 || math.IsNaN(rating) {
		rating = 1.0
	}
	if p.MinStrength > 0 && rating < p.MinStrength {
		return p.MinStrength
	}
	if p.MaxStrength > 0 && rating > p.MaxStrength {
		return p.MaxStrength
	}
	return rating
}
