// Package service runs the engine against stored fixtures and prices.
package service

import (
	"github.com/go-playground/validator/v10"
)

// Job names used in logs and metrics
const (
	JobGeneratePredictions = "generate_predictions"
	JobScanOpportunities   = "scan_opportunities"
)

var validate = validator.New()
