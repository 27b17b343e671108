package quant

// ArbitrageAssessment is the overround check across the legs of one market.
type ArbitrageAssessment struct {
	Odds                []float64 `json:"odds"`
	ImpliedSum          float64   `json:"implied_sum"`
	ProfitMarginPercent float64   `json:"profit_margin_percent"`
	IsArbitrage         bool      `json:"is_arbitrage"`
}

// Arbitrage sums the implied probabilities of two or three prices covering the
// outcomes of one market. The caller guarantees those outcomes are mutually
// exclusive and exhaustive.
func Arbitrage(odds ...float64) (ArbitrageAssessment, error) {
	if len(odds) < 2 || len(odds) > 3 {
		return ArbitrageAssessment{}, invalidf("arbitrage needs 2 or 3 prices, got %d", len(odds))
	}

	sum, err := impliedSum(odds)
	if err != nil {
		return ArbitrageAssessment{}, err
	}

	return ArbitrageAssessment{
		Odds:                append([]float64(nil), odds...),
		ImpliedSum:          sum,
		ProfitMarginPercent: (1/sum - 1) * 100,
		IsArbitrage:         sum < 1,
	}, nil
}

// Overround returns the bookmaker margin of a full set of prices: the implied
// probability sum minus one. Negative values mean arbitrage.
func Overround(odds ...float64) (float64, error) {
	sum, err := impliedSum(odds)
	if err != nil {
		return 0, err
	}
	return sum - 1, nil
}

// RemoveMargin scales the implied probabilities of a full set of prices so they
// sum to one.
func RemoveMargin(odds ...float64) ([]float64, error) {
	sum, err := impliedSum(odds)
	if err != nil {
		return nil, err
	}
	fair := make([]float64, len(odds))
	for i, o := range odds {
		fair[i] = (1.0 / o) / sum
	}
	return fair, nil
}

func impliedSum(odds []float64) (float64, error) {
	if len(odds) == 0 {
		return 0, invalidf("no prices supplied")
	}
	sum := 0.0
	for _, o := range odds {
		if err := validateOdds(o); err != nil {
			return 0, err
		}
		sum += 1.0 / o
	}
	return sum, nil
}
