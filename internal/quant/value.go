package quant

// DefaultMinMargin is the minimum relative edge for a price to count as value.
const DefaultMinMargin = 0.05

// ValueAssessment compares a model probability against one decimal price.
type ValueAssessment struct {
	TrueProbability    float64 `json:"true_probability"`
	Odds               float64 `json:"odds"`
	ImpliedProbability float64 `json:"implied_probability"`
	// FairOdds is 1/TrueProbability, or 0 when the probability is 0.
	FairOdds      float64 `json:"fair_odds"`
	EdgePercent   float64 `json:"edge_percent"`
	ExpectedValue float64 `json:"expected_value"`
	HasValue      bool    `json:"has_value"`
}

// ValueBet assesses a price against a model probability. The edge is the
// signed relative deviation of the true probability from the implied one and
// HasValue is set only when it exceeds minMargin.
func ValueBet(trueProbability, decimalOdds, minMargin float64) (ValueAssessment, error) {
	if !isFinite(trueProbability) || trueProbability < 0 || trueProbability > 1 {
		return ValueAssessment{}, invalidf("probability must lie in [0, 1], got %v", trueProbability)
	}
	if err := validateOdds(decimalOdds); err != nil {
		return ValueAssessment{}, err
	}
	if !isFinite(minMargin) {
		return ValueAssessment{}, invalidf("margin must be finite, got %v", minMargin)
	}

	implied := 1.0 / decimalOdds
	edge := (trueProbability - implied) / implied

	result := ValueAssessment{
		TrueProbability:    trueProbability,
		Odds:               decimalOdds,
		ImpliedProbability: implied,
		EdgePercent:        edge * 100,
		ExpectedValue:      trueProbability*decimalOdds - 1,
	}
	if trueProbability == 0 {
		return result, nil
	}

	result.FairOdds = 1.0 / trueProbability
	result.HasValue = edge > minMargin
	return result, nil
}
