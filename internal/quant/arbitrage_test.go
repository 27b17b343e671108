package quant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArbitrageTwoWay(t *testing.T) {
	result, err := Arbitrage(2.10, 2.10)
	require.NoError(t, err)

	assert.InDelta(t, 0.9524, result.ImpliedSum, 1e-4)
	assert.True(t, result.IsArbitrage)
	assert.InDelta(t, 5.0, result.ProfitMarginPercent, 1e-9)
	assert.Equal(t, []float64{2.10, 2.10}, result.Odds)
}

func TestArbitrageTwoWayNoEdge(t *testing.T) {
	result, err := Arbitrage(1.90, 1.90)
	require.NoError(t, err)

	assert.InDelta(t, 1.0526, result.ImpliedSum, 1e-4)
	assert.False(t, result.IsArbitrage)
	assert.Less(t, result.ProfitMarginPercent, 0.0)
}

func TestArbitrageThreeWay(t *testing.T) {
	result, err := Arbitrage(3.0, 3.6, 3.3)
	require.NoError(t, err)
	assert.True(t, result.IsArbitrage)
	assert.InDelta(t, 1/3.0+1/3.6+1/3.3, result.ImpliedSum, 1e-12)

	result, err = Arbitrage(2.0, 3.4, 4.0)
	require.NoError(t, err)
	assert.False(t, result.IsArbitrage)
}

func TestArbitrageExactBookIsNotArbitrage(t *testing.T) {
	result, err := Arbitrage(2.0, 2.0)
	require.NoError(t, err)
	assert.False(t, result.IsArbitrage)
	assert.InDelta(t, 0.0, result.ProfitMarginPercent, 1e-12)
}

func TestArbitrageInvalidInput(t *testing.T) {
	_, err := Arbitrage(2.0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Arbitrage(2.0, 3.0, 4.0, 5.0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Arbitrage(1.0, 3.0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestArbitrageCopiesOdds(t *testing.T) {
	odds := []float64{2.2, 2.1}
	result, err := Arbitrage(odds...)
	require.NoError(t, err)
	odds[0] = 9
	assert.Equal(t, 2.2, result.Odds[0])
}

func TestOverroundAndRemoveMargin(t *testing.T) {
	margin, err := Overround(1.90, 1.90)
	require.NoError(t, err)
	assert.InDelta(t, 2/1.9-1, margin, 1e-12)

	fair, err := RemoveMargin(2.0, 3.4, 4.0)
	require.NoError(t, err)
	require.Len(t, fair, 3)
	assert.InDelta(t, 1.0, fair[0]+fair[1]+fair[2], 1e-12)
	assert.Greater(t, fair[0], fair[1])

	_, err = RemoveMargin()
	assert.ErrorIs(t, err, ErrInvalidInput)
}
