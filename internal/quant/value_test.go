package quant

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueBetDetectsEdge(t *testing.T) {
	result, err := ValueBet(0.50, 2.20, DefaultMinMargin)
	require.NoError(t, err)

	assert.InDelta(t, 0.4545, result.ImpliedProbability, 1e-4)
	assert.InDelta(t, 10.0, result.EdgePercent, 1e-9)
	assert.InDelta(t, 2.0, result.FairOdds, 1e-12)
	assert.InDelta(t, 0.1, result.ExpectedValue, 1e-12)
	assert.True(t, result.HasValue)
}

func TestValueBetNegativeEdge(t *testing.T) {
	result, err := ValueBet(0.40, 2.20, DefaultMinMargin)
	require.NoError(t, err)

	assert.Less(t, result.EdgePercent, 0.0)
	assert.InDelta(t, -12.0, result.EdgePercent, 1e-9)
	assert.InDelta(t, 2.5, result.FairOdds, 1e-12)
	assert.False(t, result.HasValue)
}

func TestValueBetBelowMargin(t *testing.T) {
	result, err := ValueBet(0.51, 2.0, DefaultMinMargin)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, result.EdgePercent, 1e-9)
	assert.False(t, result.HasValue)

	result, err = ValueBet(0.51, 2.0, 0.01)
	require.NoError(t, err)
	assert.True(t, result.HasValue)
}

func TestValueBetZeroProbability(t *testing.T) {
	result, err := ValueBet(0, 3.0, DefaultMinMargin)
	require.NoError(t, err)

	assert.False(t, result.HasValue)
	assert.Equal(t, 0.0, result.FairOdds)
	assert.False(t, math.IsInf(result.FairOdds, 0))
	assert.InDelta(t, -100.0, result.EdgePercent, 1e-9)
}

func TestValueBetInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		prob   float64
		odds   float64
		margin float64
	}{
		{name: "probability above one", prob: 1.2, odds: 2.0, margin: 0.05},
		{name: "negative probability", prob: -0.1, odds: 2.0, margin: 0.05},
		{name: "nan probability", prob: math.NaN(), odds: 2.0, margin: 0.05},
		{name: "odds of one", prob: 0.5, odds: 1.0, margin: 0.05},
		{name: "odds below one", prob: 0.5, odds: 0.8, margin: 0.05},
		{name: "infinite margin", prob: 0.5, odds: 2.0, margin: math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValueBet(tt.prob, tt.odds, tt.margin)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
