// Package logger provides evaluation logging.
package logger

import (
	"github.com/sirupsen/logrus"

	"github.com/yourusername/matchedge/internal/models"
)

// EvaluationLogger provides dedicated logging for engine evaluations.
type EvaluationLogger struct {
	*logrus.Entry
}

// NewEvaluationLogger creates a new evaluation logger.
func NewEvaluationLogger(baseLogger *logrus.Logger) *EvaluationLogger {
	return &EvaluationLogger{
		Entry: baseLogger.WithField("component", "evaluation"),
	}
}

// LogFactorScores logs every factor score at debug level.
func (el *EvaluationLogger) LogFactorScores(matchID string, scores models.FactorSet) {
	if !el.Logger.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	fields := logrus.Fields{"match_id": matchID}
	for _, name := range models.AllFactors {
		score := scores[name]
		if !score.HasData {
			fields[string(name)] = "no_data"
			continue
		}
		fields[string(name)] = score.Value
	}
	el.WithFields(fields).Debug("Factor scores computed")
}

// LogBreakout logs an effective-rank override.
func (el *EvaluationLogger) LogBreakout(matchID string, override models.EffectiveRank) {
	el.WithFields(logrus.Fields{
		"match_id":     matchID,
		"side":         override.Side,
		"nominal_rank": override.Nominal,
		"implied_rank": override.Implied,
		"effective":    override.Effective,
		"blend":        override.Blend,
		"quality_wins": override.QualityWins,
	}).Info("Breakout detected")
}

// LogDecision logs the outcome of an evaluation.
func (el *EvaluationLogger) LogDecision(evaluationID string, eval *models.Evaluation, durationMs float64) {
	el.WithFields(logrus.Fields{
		"evaluation_id":   evaluationID,
		"match_id":        eval.MatchID,
		"profile":         eval.ProfileName,
		"profile_version": eval.ProfileVersion,
		"selection":       eval.Edge.Selection,
		"probability":     eval.Probability.Calibrated,
		"confidence":      eval.Probability.Confidence,
		"edge":            eval.Edge.Edge,
		"tags":            eval.Edge.Tags,
		"units":           eval.Stake.Units,
		"tier":            eval.Stake.Tier,
		"duration_ms":     durationMs,
	}).Info("Evaluation completed")
}

// LogRejection logs a zero-stake outcome and its reason.
func (el *EvaluationLogger) LogRejection(evaluationID, matchID, reason string, edge float64) {
	el.WithFields(logrus.Fields{
		"evaluation_id": evaluationID,
		"match_id":      matchID,
		"reason":        reason,
		"edge":          edge,
	}).Debug("Stake rejected")
}

// LogInputError logs an evaluation refused for malformed input.
func (el *EvaluationLogger) LogInputError(matchID string, err error) {
	el.WithFields(logrus.Fields{
		"match_id": matchID,
	}).WithError(err).Warn("Evaluation input rejected")
}
