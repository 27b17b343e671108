package quant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormFactor(t *testing.T) {
	assert.Equal(t, 1.0, FormFactor(0, 0, FormWindow))
	assert.InDelta(t, 0.7, FormFactor(0, 5, FormWindow), 1e-12)
	assert.InDelta(t, 1.3, FormFactor(15, 5, FormWindow), 1e-12)
	assert.InDelta(t, 1.1, FormFactor(10, 5, FormWindow), 1e-12)
	// two wins from only two matches still count against the full window
	assert.InDelta(t, 0.7+6.0/15*0.6, FormFactor(6, 2, FormWindow), 1e-12)
	assert.InDelta(t, 1.3, FormFactor(99, 5, FormWindow), 1e-12)
}

func TestVenueFactor(t *testing.T) {
	assert.Equal(t, 1.15, VenueFactor(2, 2, 1.15))
	assert.InDelta(t, 1.0, VenueFactor(4, 0, 1.15), 1e-12)
	assert.InDelta(t, 1.3, VenueFactor(4, 4, 1.15), 1e-12)
	assert.InDelta(t, 1.18, VenueFactor(10, 6, 1.15), 1e-12)
}

func TestHeadToHeadFactors(t *testing.T) {
	home, away := HeadToHeadFactors(2, 2)
	assert.Equal(t, 1.0, home)
	assert.Equal(t, 1.0, away)

	home, away = HeadToHeadFactors(5, 3)
	assert.InDelta(t, 1.02, home, 1e-12)
	assert.InDelta(t, 0.98, away, 1e-12)

	home, away = HeadToHeadFactors(4, 0)
	assert.InDelta(t, 0.9, home, 1e-12)
	assert.InDelta(t, 1.1, away, 1e-12)
}

func TestInjuryFactor(t *testing.T) {
	tests := []struct {
		injured int
		want    float64
	}{
		{0, 1.0}, {1, 0.95}, {2, 0.95}, {3, 0.90}, {4, 0.90}, {5, 0.85}, {11, 0.85},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, InjuryFactor(tt.injured), "injured=%d", tt.injured)
	}
}

func TestAdjustedFixtureRates(t *testing.T) {
	home := Strength{Attack: 1.2, Defense: 0.9}
	away := Strength{Attack: 1.0, Defense: 1.1}
	f := AdjustmentFactors{
		HomeForm: 1.1, AwayForm: 0.86, Venue: 1.18,
		H2HHome: 1.02, H2HAway: 0.98,
		HomeInjury: 0.95, AwayInjury: 0.85,
	}

	lambdaHome, lambdaAway := AdjustedFixtureRates(home, away, f, DefaultRateParams())

	assert.InDelta(t, 1.5*(1.2*1.1*1.18*1.02*0.95)*(1.1/0.86), lambdaHome, 1e-12)
	assert.InDelta(t, 1.5*(1.0*0.86*0.98*0.85)*(0.9/(1.1*1.18)), lambdaAway, 1e-12)
}

func TestAdjustedFixtureRatesZeroFactorsAreNeutral(t *testing.T) {
	home := Strength{Attack: 1.2, Defense: 0.9}
	away := Strength{Attack: 1.0, Defense: 1.1}
	params := DefaultRateParams()

	lambdaHome, lambdaAway := AdjustedFixtureRates(home, away, AdjustmentFactors{}, params)

	params.HomeAdvantage = 1.0
	wantHome, wantAway := FixtureRates(home, away, params)
	assert.InDelta(t, wantHome, lambdaHome, 1e-12)
	assert.InDelta(t, wantAway, lambdaAway, 1e-12)
}

func TestAdjustedFixtureRatesAreBounded(t *testing.T) {
	strong := Strength{Attack: 2.0, Defense: 0.5}
	weak := Strength{Attack: 0.5, Defense: 2.0}
	f := AdjustmentFactors{HomeForm: 1.3, AwayForm: 0.7, Venue: 1.3, HomeInjury: 1.0, AwayInjury: 0.85}

	lambdaHome, lambdaAway := AdjustedFixtureRates(strong, weak, f, DefaultRateParams())
	assert.Equal(t, MaxAdjustedRate, lambdaHome)
	assert.Equal(t, MinAdjustedRate, lambdaAway)
}
