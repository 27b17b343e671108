package quant

import "math"

const (
	// FormWindow is the number of recent finished matches form is read from.
	FormWindow = 5
	// MinHistory is the fewest finished matches a venue or head-to-head
	// record needs before it moves the rates.
	MinHistory = 3
	// MinAdjustedRate and MaxAdjustedRate bound the rates AdjustedFixtureRates returns.
	MinAdjustedRate = 0.3
	MaxAdjustedRate = 4.0
)

// AdjustmentFactors are the multiplicative context factors applied to a
// fixture on top of the team ratings. A zero factor is read as neutral (1.0),
// so the zero value leaves the ratings unchanged apart from venue.
type AdjustmentFactors struct {
	HomeForm   float64 `json:"home_form"`
	AwayForm   float64 `json:"away_form"`
	Venue      float64 `json:"venue"`
	H2HHome    float64 `json:"h2h_home"`
	H2HAway    float64 `json:"h2h_away"`
	HomeInjury float64 `json:"home_injury"`
	AwayInjury float64 `json:"away_injury"`
}

// FormFactor maps league points from a team's last window matches onto
// [0.7, 1.3]. Fewer matches than window count as points lost; no matches
// at all is neutral.
func FormFactor(points, played, window int) float64 {
	if played <= 0 || window <= 0 {
		return 1.0
	}
	ratio := float64(points) / float64(window*3)
	return 0.7 + math.Min(1, math.Max(0, ratio))*0.6
}

// VenueFactor is the home side's multiplier from its home record. Short
// records fall back to homeAdvantage; otherwise it lies in [1.0, 1.3].
func VenueFactor(played, won int, homeAdvantage float64) float64 {
	if played < MinHistory {
		return homeAdvantage
	}
	return 1.0 + float64(won)/float64(played)*0.3
}

// HeadToHeadFactors returns the home and away multipliers from previous
// meetings, counted from the home side's point of view.
func HeadToHeadFactors(meetings, homeWins int) (home, away float64) {
	if meetings < MinHistory {
		return 1.0, 1.0
	}
	rate := float64(homeWins) / float64(meetings)
	return 0.9 + rate*0.2, 1.1 - rate*0.2
}

// InjuryFactor discounts a side's attack by its count of injured players.
func InjuryFactor(injured int) float64 {
	switch {
	case injured <= 0:
		return 1.0
	case injured <= 2:
		return 0.95
	case injured <= 4:
		return 0.90
	default:
		return 0.85
	}
}

// AdjustedFixtureRates is FixtureRates with context factors. Form and venue
// scale the home attack and shrink what its defence concedes, form scales the
// away side the same way, head-to-head and injuries scale attack only. The
// venue factor replaces p.HomeAdvantage. Both rates are bounded to
// [MinAdjustedRate, MaxAdjustedRate].
func AdjustedFixtureRates(home, away Strength, f AdjustmentFactors, p RateParams) (lambdaHome, lambdaAway float64) {
	homeForm, awayForm := neutral(f.HomeForm), neutral(f.AwayForm)
	venue := neutral(f.Venue)

	homeAttack := p.clamp(home.Attack) * homeForm * venue * neutral(f.H2HHome) * neutral(f.HomeInjury)
	homeDefense := p.clamp(home.Defense) / (homeForm * venue)
	awayAttack := p.clamp(away.Attack) * awayForm * neutral(f.H2HAway) * neutral(f.AwayInjury)
	awayDefense := p.clamp(away.Defense) / awayForm

	lambdaHome = ExpectedGoals(homeAttack, awayDefense, p.LeagueAverage, DefaultVenueAdvantage)
	lambdaAway = ExpectedGoals(awayAttack, homeDefense, p.LeagueAverage, DefaultVenueAdvantage)

	return boundRate(lambdaHome), boundRate(lambdaAway)
}

func neutral(factor float64) float64 {
	if factor <= 0 || !isFinite(factor) {
		return 1.0
	}
	return factor
}

func boundRate(lambda float64) float64 {
	return math.Max(MinAdjustedRate, math.Min(MaxAdjustedRate, lambda))
}
