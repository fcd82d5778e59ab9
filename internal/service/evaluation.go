// Package service wraps the engine with ids, memoization, logging and metrics.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/matchedge/internal/config"
	"github.com/yourusername/matchedge/internal/engine"
	"github.com/yourusername/matchedge/internal/logger"
	"github.com/yourusername/matchedge/internal/metrics"
	"github.com/yourusername/matchedge/internal/models"
)

// Evaluation outcomes used as metric labels
const (
	OutcomeStaked        = "staked"
	OutcomeRejected      = "rejected"
	OutcomeInvalidInput  = "invalid_input"
	OutcomeInvariant     = "invariant_violation"
	OutcomeInternalError = "error"
)

// Evaluator runs the decision pipeline for one input
type Evaluator interface {
	Evaluate(in *models.MatchInput, profile *config.Profile) (*models.Evaluation, error)
}

// EvaluationService evaluates inputs against the active profile
type EvaluationService struct {
	evaluator Evaluator
	profiles  *engine.ProfileStore
	memo      *EvaluationMemo
	evalLog   *logger.EvaluationLogger
	audit     *logger.AuditLogger
	now       func() time.Time
}

// NewEvaluationService creates a new evaluation service. memo may be nil.
func NewEvaluationService(evaluator Evaluator, profiles *engine.ProfileStore, memo *EvaluationMemo, log *logrus.Logger) *EvaluationService {
	if log == nil {
		log = logger.Discard()
	}
	return &EvaluationService{
		evaluator: evaluator,
		profiles:  profiles,
		memo:      memo,
		evalLog:   logger.NewEvaluationLogger(log),
		audit:     logger.NewAuditLogger(log),
		now:       time.Now,
	}
}

// Profile returns the active profile
func (s *EvaluationService) Profile() *config.Profile {
	return s.profiles.Load()
}

// Evaluate runs one evaluation and stamps it with a fresh id and time
func (s *EvaluationService) Evaluate(ctx context.Context, in *models.MatchInput) (*models.Evaluation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	profile := s.profiles.Load()

	result, err := s.evaluate(in, profile)
	if err != nil {
		metrics.RecordEvaluationError(errorOutcome(err))
		return nil, err
	}

	eval := *result
	eval.ID = uuid.New().String()
	eval.EvaluatedAt = s.now().UTC()

	s.record(&eval, time.Since(start))
	return &eval, nil
}

func (s *EvaluationService) evaluate(in *models.MatchInput, profile *config.Profile) (*models.Evaluation, error) {
	if s.memo == nil {
		return s.evaluator.Evaluate(in, profile)
	}

	key, err := NewMemoKey(in, profile)
	if err != nil {
		return nil, err
	}
	if cached, ok := s.memo.Get(key); ok {
		return cached, nil
	}

	result, err := s.evaluator.Evaluate(in, profile)
	if err != nil {
		return nil, err
	}
	s.memo.Set(key, result)
	return result, nil
}

func (s *EvaluationService) record(eval *models.Evaluation, elapsed time.Duration) {
	outcome := OutcomeRejected
	if eval.Stake.IsStaked() {
		outcome = OutcomeStaked
	}
	metrics.RecordEvaluation(outcome, elapsed.Seconds(), eval.Probability.Confidence)
	metrics.RecordTags(eval.Edge.Tags)
	for range eval.Breakouts {
		metrics.RecordBreakout()
	}

	if eval.Stake.IsStaked() {
		metrics.RecordStake(eval.Stake.Units)
		s.audit.LogStakeRecommendation(eval.ID, eval.MatchID, string(eval.Edge.Selection),
			eval.Edge.Price, eval.Stake.Units, eval.Edge.Tags, eval.EvaluatedAt)
	} else {
		metrics.RecordRejection(eval.Stake.RejectionReason)
		s.evalLog.LogRejection(eval.ID, eval.MatchID, eval.Stake.RejectionReason, eval.Edge.Edge)
	}
	if c := eval.Edge.Counter; c != nil {
		s.audit.LogCounterRecommendation(eval.ID, eval.MatchID, string(c.Side), c.Price, c.Reason)
	}

	s.evalLog.LogDecision(eval.ID, eval, float64(elapsed.Microseconds())/1000)
}

// SwapProfile installs a new profile, drops memoized results of the profile
// it replaces and records the swap on the audit trail
func (s *EvaluationService) SwapProfile(next *config.Profile, source string) error {
	previous, err := s.profiles.Swap(next)
	if err != nil {
		return err
	}
	if s.memo != nil {
		s.memo.InvalidateProfile(previous.Name)
	}
	s.audit.LogProfileSwap(previous.Name, previous.Version, next.Name, next.Version, source)
	metrics.SetActiveProfile(next.Name, next.Version)
	return nil
}

func errorOutcome(err error) string {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		return OutcomeInvalidInput
	case errors.Is(err, models.ErrInvariantViolation):
		return OutcomeInvariant
	default:
		return OutcomeInternalError
	}
}
