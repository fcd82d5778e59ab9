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

// LogProfileSwap logs a profile replacement.
func (al *AuditLogger) LogProfileSwap(oldName, oldVersion, newName, newVersion, source string) {
	al.WithFields(logrus.Fields{
		"old_profile": oldName,
		"old_version": oldVersion,
		"new_profile": newName,
		"new_version": newVersion,
		"source":      source,
	}).Info("Profile swapped")
}

// LogProfileRejected logs a profile that failed to load or validate.
func (al *AuditLogger) LogProfileRejected(source string, err error) {
	al.WithFields(logrus.Fields{
		"source": source,
	}).WithError(err).Warn("Profile rejected, keeping current profile")
}

// LogStakeRecommendation logs a non-zero stake recommendation.
func (al *AuditLogger) LogStakeRecommendation(evaluationID, matchID, selection string, price, units float64, tags []string, timestamp time.Time) {
	al.WithFields(logrus.Fields{
		"evaluation_id": evaluationID,
		"match_id":      matchID,
		"selection":     selection,
		"price":         price,
		"units":         units,
		"tags":          tags,
		"timestamp":     timestamp.Unix(),
	}).Info("Stake recommendation recorded")
}

// LogCounterRecommendation logs a counter signal on the opposite side.
func (al *AuditLogger) LogCounterRecommendation(evaluationID, matchID, side string, price float64, reason string) {
	al.WithFields(logrus.Fields{
		"evaluation_id": evaluationID,
		"match_id":      matchID,
		"side":          side,
		"price":         price,
		"reason":        reason,
	}).Info("Counter recommendation recorded")
}
