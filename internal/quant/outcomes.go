package quant

// OverUnderLine is the total-goals line reported in MatchPrediction.
const OverUnderLine = 2.5

// MatchPrediction summarises a score matrix into the headline markets.
type MatchPrediction struct {
	ProbHome   float64 `json:"prob_home"`
	ProbDraw   float64 `json:"prob_draw"`
	ProbAway   float64 `json:"prob_away"`
	XGHome     float64 `json:"xg_home"`
	XGAway     float64 `json:"xg_away"`
	Prob00     float64 `json:"prob_0_0"`
	ProbOver25 float64 `json:"prob_over_2_5"`
	ProbBTTS   float64 `json:"prob_btts"`
}

// Aggregate classifies every cell of m into the 1X2, 0-0, over 2.5 and
// both-teams-to-score buckets in a single pass. XGHome/XGAway echo the input
// rates of the matrix.
func Aggregate(m *ScoreMatrix) MatchPrediction {
	pred := MatchPrediction{
		XGHome: m.LambdaHome,
		XGAway: m.LambdaAway,
	}

	for homeGoals, row := range m.cells {
		for awayGoals, p := range row {
			switch {
			case homeGoals > awayGoals:
				pred.ProbHome += p
			case homeGoals == awayGoals:
				pred.ProbDraw += p
			default:
				pred.ProbAway += p
			}

			if homeGoals == 0 && awayGoals == 0 {
				pred.Prob00 += p
			}
			// strict comparison against the half-goal line, never rounded
			if float64(homeGoals+awayGoals) > OverUnderLine {
				pred.ProbOver25 += p
			}
			if homeGoals > 0 && awayGoals > 0 {
				pred.ProbBTTS += p
			}
		}
	}

	return pred
}

// OverUnder returns the probability that total goals are strictly above
// threshold, and its complement within the grid.
func (m *ScoreMatrix) OverUnder(threshold float64) (over, under float64) {
	for homeGoals, row := range m.cells {
		for awayGoals, p := range row {
			if float64(homeGoals+awayGoals) > threshold {
				over += p
			} else {
				under += p
			}
		}
	}
	return over, under
}

// BothTeamsToScore returns the probability both sides score and its complement.
func (m *ScoreMatrix) BothTeamsToScore() (yes, no float64) {
	for homeGoals, row := range m.cells {
		for awayGoals, p := range row {
			if homeGoals > 0 && awayGoals > 0 {
				yes += p
			} else {
				no += p
			}
		}
	}
	return yes, no
}

// CorrectScore returns the probability of a specific scoreline.
func (m *ScoreMatrix) CorrectScore(homeGoals, awayGoals int) float64 {
	return m.Probability(homeGoals, awayGoals)
}

// MostLikelyScore returns the modal scoreline. Ties resolve to the lowest
// home, then away, goal count.
func (m *ScoreMatrix) MostLikelyScore() (homeGoals, awayGoals int, p float64) {
	p = -1
	for h, row := range m.cells {
		for a, cell := range row {
			if cell > p {
				homeGoals, awayGoals, p = h, a, cell
			}
		}
	}
	return homeGoals, awayGoals, p
}

// MeanGoals returns expected home and away goals under the truncated,
// adjusted grid. It differs slightly from the input rates.
func (m *ScoreMatrix) MeanGoals() (home, away float64) {
	for homeGoals, row := range m.cells {
		for awayGoals, p := range row {
			home += float64(homeGoals) * p
			away += float64(awayGoals) * p
		}
	}
	return home, away
}

// Predictor bundles the matrix parameters so callers with configured values
// share one prediction path.
type Predictor struct {
	MaxGoals int
	Rho      float64
}

// DefaultPredictor returns a Predictor using DefaultMaxGoals and DefaultRho.
func DefaultPredictor() Predictor {
	return Predictor{MaxGoals: DefaultMaxGoals, Rho: DefaultRho}
}

// Matrix builds the score matrix for the given rates.
func (p Predictor) Matrix(lambdaHome, lambdaAway float64) (*ScoreMatrix, error) {
	return BuildScoreMatrix(lambdaHome, lambdaAway, p.MaxGoals, p.Rho)
}

// Predict builds the score matrix and aggregates it.
func (p Predictor) Predict(lambdaHome, lambdaAway float64) (MatchPrediction, error) {
	m, err := p.Matrix(lambdaHome, lambdaAway)
	if err != nil {
		return MatchPrediction{}, err
	}
	return Aggregate(m), nil
}

// PredictMatch predicts a fixture with the default matrix parameters.
func PredictMatch(lambdaHome, lambdaAway float64) (MatchPrediction, error) {
	return DefaultPredictor().Predict(lambdaHome, lambdaAway)
}
