// Package logger provides audit logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// AuditLogger provides dedicated audit trail logging.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogOpportunityRecorded logs an opportunity persisted for publication.
func (al *AuditLogger) LogOpportunityRecorded(opportunityID string, matchID int64, oppType, selection string, odds, edgePercent float64, timestamp time.Time) {
	al.WithFields(logrus.Fields{
		"opportunity_id": opportunityID,
		"match_id":       matchID,
		"type":           oppType,
		"selection":      selection,
		"odds":           odds,
		"edge_percent":   edgePercent,
		"timestamp":      timestamp.Unix(),
	}).Info("Opportunity recorded")
}

// LogAPIRequest logs a served API request.
func (al *AuditLogger) LogAPIRequest(method, path string, status int, duration time.Duration, remoteAddr string) {
	al.WithFields(logrus.Fields{
		"method":      method,
		"path":        path,
		"status":      status,
		"duration_ms": float64(duration.Microseconds()) / 1000,
		"remote_addr": remoteAddr,
	}).Info("API request served")
}

// LogConfigLoaded logs the engine parameters a process started with.
func (al *AuditLogger) LogConfigLoaded(process string, params map[string]interface{}) {
	al.WithFields(logrus.Fields{
		"process": process,
		"params":  params,
	}).Info("Configuration loaded")
}
