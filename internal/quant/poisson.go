// Package quant implements the match-outcome engine: Poisson scoring rates,
// the Dixon-Coles adjusted score matrix, the markets derived from it and the
// value / arbitrage checks run against bookmaker prices.
//
// Every function in this package is pure and safe for concurrent use.
package quant

import "math"

// StirlingThreshold is the smallest k for which LogFactorial switches from the
// exact sum to Stirling's approximation.
const StirlingThreshold = 20

// PoissonProbability returns P(X = k) where X ~ Poisson(lambda).
// Negative k yields 0. The mass is computed in log space to avoid overflow.
func PoissonProbability(lambda float64, k int) float64 {
	if k < 0 {
		return 0
	}
	if lambda == 0 {
		// ln(0) is undefined; all mass sits at zero goals
		if k == 0 {
			return 1
		}
		return 0
	}

	logProb := float64(k)*math.Log(lambda) - lambda - LogFactorial(k)
	return math.Exp(logProb)
}

// LogFactorial returns ln(k!).
func LogFactorial(k int) float64 {
	if k <= 1 {
		return 0
	}
	if k < StirlingThreshold {
		result := 0.0
		for i := 2; i <= k; i++ {
			result += math.Log(float64(i))
		}
		return result
	}

	n := float64(k)
	return n*math.Log(n) - n + 0.5*math.Log(2*math.Pi*n)
}
