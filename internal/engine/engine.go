// Package engine runs the full evaluation pipeline for one match input.
package engine

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/matchedge/internal/adjuster"
	"github.com/yourusername/matchedge/internal/breakout"
	"github.com/yourusername/matchedge/internal/classifier"
	"github.com/yourusername/matchedge/internal/config"
	"github.com/yourusername/matchedge/internal/edge"
	"github.com/yourusername/matchedge/internal/factors"
	"github.com/yourusername/matchedge/internal/logger"
	"github.com/yourusername/matchedge/internal/models"
	"github.com/yourusername/matchedge/internal/probability"
	"github.com/yourusername/matchedge/internal/staking"
)

// Engine evaluates match inputs against a profile. It holds no per-evaluation
// state and is safe for concurrent use.
type Engine struct {
	factors *factors.Engine
	log     *logger.EvaluationLogger
}

// New creates an engine with a fixed factor worker pool
func New(workers int, log *logrus.Logger) *Engine {
	if log == nil {
		log = logger.Discard()
	}
	return &Engine{
		factors: factors.NewEngine(workers),
		log:     logger.NewEvaluationLogger(log),
	}
}

// Evaluate runs factors, breakout detection, context adjustment, probability,
// edge, classification and staking. Invalid input returns an InputError and a
// failed consistency check returns an InvariantError; neither yields a result.
func (e *Engine) Evaluate(in *models.MatchInput, profile *config.Profile) (*models.Evaluation, error) {
	if profile == nil {
		return nil, fmt.Errorf("evaluate %s: no profile", in.Match.ID)
	}
	if err := in.Validate(); err != nil {
		e.log.LogInputError(in.Match.ID, err)
		return nil, err
	}

	inputs := factors.NewInputs(in, profile)
	base, err := e.factors.Compute(inputs)
	if err != nil {
		return nil, fmt.Errorf("compute factors: %w", err)
	}
	e.log.LogFactorScores(in.Match.ID, base.Scores)

	breakouts, err := breakout.DetectAll(in, profile.Breakout)
	if err != nil {
		return nil, fmt.Errorf("detect breakouts: %w", err)
	}

	result := base
	overrides := breakout.Overrides(breakouts)
	if len(overrides) > 0 {
		for _, b := range breakouts {
			e.log.LogBreakout(in.Match.ID, b)
		}
		inputs = inputs.WithOverrides(overrides)
		if result, err = e.factors.Recompute(inputs, base); err != nil {
			return nil, fmt.Errorf("recompute rank factors: %w", err)
		}
	}

	adjusted, err := adjuster.Adjust(&adjuster.Input{
		Match:       in.Match,
		PlayerA:     &in.PlayerA,
		PlayerB:     &in.PlayerB,
		Scores:      result.Scores,
		RankRatingA: result.RankRatingA,
		RankRatingB: result.RankRatingB,
		Overrides:   overrides,
	}, profile)
	if err != nil {
		return nil, fmt.Errorf("adjust context: %w", err)
	}

	prob := probability.Combine(&probability.Input{
		Factors:      adjusted.Factors,
		Weights:      adjusted.Weights,
		BaseWeights:  profile.Weights.Vector().Normalized(),
		RankRatingA:  result.RankRatingA,
		RankRatingB:  result.RankRatingB,
		RankDominant: adjusted.RankDominant,
		PriceA:       in.PriceA,
		PriceB:       in.PriceB,
	}, profile)

	assessment := edge.Assess(&edge.Input{
		ProbabilityA:   prob.Calibrated,
		PriceA:         in.PriceA,
		PriceB:         in.PriceB,
		PlayerA:        &in.PlayerA,
		PlayerB:        &in.PlayerB,
		MatchDate:      in.Match.Date,
		CommissionRate: profile.CommissionRate,
	}, profile.Edge)

	classified := classifier.Classify(&classifier.Input{
		Edge:      &assessment,
		MinSample: min(len(in.PlayerA.Recent), len(in.PlayerB.Recent)),
	}, profile.Classifier)
	assessment.Tags = classified.Tags
	assessment.Counter = classified.Counter

	stake := staking.Recommend(&staking.Input{
		Edge:      &assessment,
		Factors:   adjusted.Factors,
		Weights:   adjusted.Weights,
		Advantage: prob.Advantage,
		PlayerA:   &in.PlayerA,
		PlayerB:   &in.PlayerB,
		MatchDate: in.Match.Date,
	}, profile.Staking)

	return &models.Evaluation{
		MatchID:        in.Match.ID,
		ProfileName:    profile.Name,
		ProfileVersion: profile.Version,
		BaseFactors:    base.Scores,
		Factors:        adjusted.Factors,
		Weights:        adjusted.Weights,
		Breakouts:      breakouts,
		Displacements:  adjusted.Displacements,
		Probability:    prob,
		Edge:           assessment,
		Stake:          stake,
	}, nil
}
