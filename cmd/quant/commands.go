package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/WarenOdhiambo1/lead-magnet/internal/quant"
)

type predictOutput struct {
	quant.MatchPrediction
	MostLikelyScore string  `json:"most_likely_score"`
	MostLikelyProb  float64 `json:"most_likely_prob"`
	Line            float64 `json:"line"`
	ProbOver        float64 `json:"prob_over"`
	ProbUnder       float64 `json:"prob_under"`
}

func newPredictCmd() *cobra.Command {
	var (
		homeXG, awayXG float64
		maxGoals       int
		rho, line      float64
	)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict a match from two expected goal rates",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := quant.BuildScoreMatrix(homeXG, awayXG, maxGoals, rho)
			if err != nil {
				return err
			}
			h, a, p := m.MostLikelyScore()
			over, under := m.OverUnder(line)
			out := predictOutput{
				MatchPrediction: quant.Aggregate(m),
				MostLikelyScore: fmt.Sprintf("%d-%d", h, a),
				MostLikelyProb:  p,
				Line:            line,
				ProbOver:        over,
				ProbUnder:       under,
			}
			return renderPrediction(cmd, out)
		},
	}

	cmd.Flags().Float64Var(&homeXG, "home-xg", 0, "Home expected goals")
	cmd.Flags().Float64Var(&awayXG, "away-xg", 0, "Away expected goals")
	cmd.Flags().IntVar(&maxGoals, "max-goals", quant.DefaultMaxGoals, "Highest goal count per side in the score grid")
	cmd.Flags().Float64Var(&rho, "rho", quant.DefaultRho, "Dixon-Coles low score correlation")
	cmd.Flags().Float64Var(&line, "line", quant.OverUnderLine, "Total goals line for over/under")
	_ = cmd.MarkFlagRequired("home-xg")
	_ = cmd.MarkFlagRequired("away-xg")
	return cmd
}

func renderPrediction(cmd *cobra.Command, out predictOutput) error {
	w := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(w, out)
	}
	fmt.Fprintf(w, "Expected goals:   %.3f - %.3f\n", out.XGHome, out.XGAway)
	fmt.Fprintf(w, "Home / Draw / Away: %.4f / %.4f / %.4f\n", out.ProbHome, out.ProbDraw, out.ProbAway)
	fmt.Fprintf(w, "0-0:              %.4f\n", out.Prob00)
	fmt.Fprintf(w, "Over/Under %.1f:   %.4f / %.4f\n", out.Line, out.ProbOver, out.ProbUnder)
	fmt.Fprintf(w, "Both teams score: %.4f\n", out.ProbBTTS)
	fmt.Fprintf(w, "Most likely:      %s (%.4f)\n", out.MostLikelyScore, out.MostLikelyProb)
	return nil
}

func newRatesCmd() *cobra.Command {
	var home, away quant.Strength
	params := quant.DefaultRateParams()

	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Convert team attack and defense ratings into expected goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			lambdaHome, lambdaAway := quant.FixtureRates(home, away, params)
			w := cmd.OutOrStdout()
			if jsonOutput {
				return printJSON(w, map[string]float64{"home_xg": lambdaHome, "away_xg": lambdaAway})
			}
			fmt.Fprintf(w, "Home xG: %.4f\nAway xG: %.4f\n", lambdaHome, lambdaAway)
			return nil
		},
	}

	cmd.Flags().Float64Var(&home.Attack, "home-attack", 1.0, "Home attack rating")
	cmd.Flags().Float64Var(&home.Defense, "home-defense", 1.0, "Home defense rating")
	cmd.Flags().Float64Var(&away.Attack, "away-attack", 1.0, "Away attack rating")
	cmd.Flags().Float64Var(&away.Defense, "away-defense", 1.0, "Away defense rating")
	cmd.Flags().Float64Var(&params.LeagueAverage, "league-average", params.LeagueAverage, "League average goals per side")
	cmd.Flags().Float64Var(&params.HomeAdvantage, "home-advantage", params.HomeAdvantage, "Home advantage multiplier")
	return cmd
}

func newValueCmd() *cobra.Command {
	var prob, odds, margin float64

	cmd := &cobra.Command{
		Use:   "value",
		Short: "Check a decimal price against a model probability",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := quant.ValueBet(prob, odds, margin)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if jsonOutput {
				return printJSON(w, res)
			}
			fmt.Fprintf(w, "Implied probability: %.4f\n", res.ImpliedProbability)
			fmt.Fprintf(w, "Fair odds:           %.3f\n", res.FairOdds)
			fmt.Fprintf(w, "Edge:                %.2f%%\n", res.EdgePercent)
			fmt.Fprintf(w, "Expected value:      %.4f\n", res.ExpectedValue)
			fmt.Fprintf(w, "Value bet:           %t\n", res.HasValue)
			return nil
		},
	}

	cmd.Flags().Float64Var(&prob, "prob", 0, "Model probability of the outcome")
	cmd.Flags().Float64Var(&odds, "odds", 0, "Decimal odds offered")
	cmd.Flags().Float64Var(&margin, "margin", quant.DefaultMinMargin, "Minimum relative edge")
	_ = cmd.MarkFlagRequired("prob")
	_ = cmd.MarkFlagRequired("odds")
	return cmd
}

func newArbCmd() *cobra.Command {
	var odds []float64

	cmd := &cobra.Command{
		Use:   "arb",
		Short: "Check two or three prices covering one market for arbitrage",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := quant.Arbitrage(odds...)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if jsonOutput {
				return printJSON(w, res)
			}
			fmt.Fprintf(w, "Implied sum:   %.4f\n", res.ImpliedSum)
			fmt.Fprintf(w, "Profit margin: %.2f%%\n", res.ProfitMarginPercent)
			fmt.Fprintf(w, "Arbitrage:     %t\n", res.IsArbitrage)
			return nil
		},
	}

	cmd.Flags().Float64SliceVar(&odds, "odds", nil, "Comma separated decimal odds, one per outcome")
	_ = cmd.MarkFlagRequired("odds")
	return cmd
}
