package quant

import "math"

const (
	// DefaultMaxGoals is the inclusive per-side goal bound of the score matrix.
	// It keeps truncated tail mass negligible while both rates stay below ~4-5.
	DefaultMaxGoals = 10
	// DefaultRho is the Dixon-Coles low-score correlation parameter.
	DefaultRho = -0.13
)

// ScoreMatrix is the joint distribution of (homeGoals, awayGoals) over
// [0, MaxGoals] x [0, MaxGoals]. Cells sum to 1.
type ScoreMatrix struct {
	MaxGoals   int
	Rho        float64
	LambdaHome float64
	LambdaAway float64
	cells      [][]float64
}

// NewScoreMatrix builds a score matrix with DefaultMaxGoals and DefaultRho.
func NewScoreMatrix(lambdaHome, lambdaAway float64) (*ScoreMatrix, error) {
	return BuildScoreMatrix(lambdaHome, lambdaAway, DefaultMaxGoals, DefaultRho)
}

// BuildScoreMatrix fills the grid with the product of two independent Poisson
// masses, applies the Dixon-Coles adjustment and renormalises so the cells
// form a probability distribution again.
func BuildScoreMatrix(lambdaHome, lambdaAway float64, maxGoals int, rho float64) (*ScoreMatrix, error) {
	if err := validateRate("home rate", lambdaHome); err != nil {
		return nil, err
	}
	if err := validateRate("away rate", lambdaAway); err != nil {
		return nil, err
	}
	if maxGoals < 0 {
		return nil, invalidf("max goals must be non-negative, got %d", maxGoals)
	}
	if !isFinite(rho) || math.Abs(rho) >= 1 {
		return nil, invalidf("rho must lie in (-1, 1), got %v", rho)
	}

	homeMass := make([]float64, maxGoals+1)
	awayMass := make([]float64, maxGoals+1)
	for k := 0; k <= maxGoals; k++ {
		homeMass[k] = PoissonProbability(lambdaHome, k)
		awayMass[k] = PoissonProbability(lambdaAway, k)
	}

	cells := make([][]float64, maxGoals+1)
	total := 0.0
	for homeGoals := 0; homeGoals <= maxGoals; homeGoals++ {
		cells[homeGoals] = make([]float64, maxGoals+1)
		for awayGoals := 0; awayGoals <= maxGoals; awayGoals++ {
			p := homeMass[homeGoals] * awayMass[awayGoals] * CorrelationAdjustment(homeGoals, awayGoals, rho)
			cells[homeGoals][awayGoals] = p
			total += p
		}
	}

	// the adjustment moves the total away from 1
	if total <= 0 || !isFinite(total) {
		return nil, invalidf("no probability mass within %d goals for rates %v/%v", maxGoals, lambdaHome, lambdaAway)
	}
	for _, row := range cells {
		for i := range row {
			row[i] /= total
		}
	}

	return &ScoreMatrix{
		MaxGoals:   maxGoals,
		Rho:        rho,
		LambdaHome: lambdaHome,
		LambdaAway: lambdaAway,
		cells:      cells,
	}, nil
}

// Size returns the number of rows (and columns) in the grid.
func (m *ScoreMatrix) Size() int {
	return m.MaxGoals + 1
}

// Probability returns the probability of the exact scoreline, or 0 when the
// scoreline lies outside the grid.
func (m *ScoreMatrix) Probability(homeGoals, awayGoals int) float64 {
	if homeGoals < 0 || awayGoals < 0 || homeGoals > m.MaxGoals || awayGoals > m.MaxGoals {
		return 0
	}
	return m.cells[homeGoals][awayGoals]
}

// Cells returns a copy of the grid indexed [homeGoals][awayGoals].
func (m *ScoreMatrix) Cells() [][]float64 {
	out := make([][]float64, len(m.cells))
	for i, row := range m.cells {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

// Total returns the sum of all cells.
func (m *ScoreMatrix) Total() float64 {
	total := 0.0
	for _, row := range m.cells {
		for _, p := range row {
			total += p
		}
	}
	return total
}

// Transpose swaps the home and away axes.
func (m *ScoreMatrix) Transpose() *ScoreMatrix {
	n := m.Size()
	cells := make([][]float64, n)
	for i := range cells {
		cells[i] = make([]float64, n)
		for j := range cells[i] {
			cells[i][j] = m.cells[j][i]
		}
	}
	return &ScoreMatrix{
		MaxGoals:   m.MaxGoals,
		Rho:        m.Rho,
		LambdaHome: m.LambdaAway,
		LambdaAway: m.LambdaHome,
		cells:      cells,
	}
}
