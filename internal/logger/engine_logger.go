// Package logger provides engine-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// EngineLogger provides dedicated logging for prediction and scan runs.
type EngineLogger struct {
	*logrus.Entry
}

// NewEngineLogger creates a new engine logger.
func NewEngineLogger(baseLogger *logrus.Logger) *EngineLogger {
	return &EngineLogger{
		Entry: baseLogger.WithField("component", "engine"),
	}
}

// LogPrediction logs a generated match prediction.
func (el *EngineLogger) LogPrediction(matchID int64, fixture string, lambdaHome, lambdaAway, probHome, probDraw, probAway float64) {
	el.WithFields(logrus.Fields{
		"match_id":    matchID,
		"fixture":     fixture,
		"lambda_home": lambdaHome,
		"lambda_away": lambdaAway,
		"prob_home":   probHome,
		"prob_draw":   probDraw,
		"prob_away":   probAway,
	}).Debug("Prediction generated")
}

// LogPredictionError logs a fixture that could not be priced.
func (el *EngineLogger) LogPredictionError(matchID int64, fixture string, err error) {
	el.WithFields(logrus.Fields{
		"match_id": matchID,
		"fixture":  fixture,
	}).WithError(err).Warn("Prediction failed")
}

// LogValueBet logs a detected value bet.
func (el *EngineLogger) LogValueBet(matchID int64, selection, bookmaker string, modelProb, odds, edgePercent float64) {
	el.WithFields(logrus.Fields{
		"match_id":     matchID,
		"selection":    selection,
		"bookmaker":    bookmaker,
		"model_prob":   modelProb,
		"odds":         odds,
		"edge_percent": edgePercent,
	}).Info("Value bet detected")
}

// LogArbitrage logs a detected arbitrage.
func (el *EngineLogger) LogArbitrage(matchID int64, odds []float64, impliedSum, profitMarginPercent float64) {
	el.WithFields(logrus.Fields{
		"match_id":              matchID,
		"odds":                  odds,
		"implied_sum":           impliedSum,
		"profit_margin_percent": profitMarginPercent,
	}).Info("Arbitrage detected")
}

// LogRunSummary logs the outcome of a batch run.
func (el *EngineLogger) LogRunSummary(job, runID string, processed, succeeded, failed int, durationMs float64) {
	el.WithFields(logrus.Fields{
		"job":         job,
		"run_id":      runID,
		"processed":   processed,
		"succeeded":   succeeded,
		"failed":      failed,
		"duration_ms": durationMs,
	}).Info("Run completed")
}
