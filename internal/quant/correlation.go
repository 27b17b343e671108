package quant

// CorrelationAdjustment returns the Dixon-Coles multiplier for a scoreline.
// Only 0-0, 1-0, 0-1 and 1-1 are adjusted; every other cell gets 1.
func CorrelationAdjustment(homeGoals, awayGoals int, rho float64) float64 {
	switch {
	case homeGoals == 0 && awayGoals == 0:
		return 1 - rho
	case homeGoals == 1 && awayGoals == 0:
		return 1 + rho
	case homeGoals == 0 && awayGoals == 1:
		return 1 + rho
	case homeGoals == 1 && awayGoals == 1:
		return 1 - rho
	default:
		return 1.0
	}
}
