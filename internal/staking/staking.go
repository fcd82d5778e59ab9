// Package staking sizes a recommendation from an edge assessment.
package staking

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yourusername/matchedge/internal/classifier"
	"github.com/yourusername/matchedge/internal/config"
	"github.com/yourusername/matchedge/internal/models"
)

// Rejection reasons
const (
	RejectNonPositiveEdge  = "non_positive_edge"
	RejectEVBelowFloor     = "ev_below_floor"
	RejectPriceBelowFloor  = "price_below_floor"
	RejectNoGateTag        = "no_gate_tag"
	RejectCounterSignal    = "counter_signal"
	RejectInsufficientData = "insufficient_data"
	RejectBelowMinStake    = "below_min_stake"
)

// Modifier trail labels
const (
	LabelKellyFull        = "kelly_full"
	LabelFractionalKelly  = "fractional_kelly"
	LabelDisagreement     = "disagreement"
	LabelPremium          = "premium"
	LabelEdgeModifiers    = "edge_modifiers"
	LabelFallbackVerified = "dq_fallback_verified"
	LabelPartialData      = "dq_partial"
	LabelNoSurface        = "no_surface"
	LabelNoHeadToHead     = "no_head_to_head"
	LabelThinForm         = "thin_form"
	LabelRankDominated    = "rank_dominated"
	LabelConfidenceFloor  = "confidence_floor"
)

// Input is everything the staking engine reads
type Input struct {
	Edge      *models.EdgeAssessment
	Factors   models.FactorSet
	Weights   models.WeightVector
	Advantage float64
	PlayerA   *models.PlayerSnapshot
	PlayerB   *models.PlayerSnapshot
	MatchDate time.Time
}

func reject(reason string) models.StakeRecommendation {
	return models.StakeRecommendation{
		Modifiers:       []models.Modifier{},
		Tier:            models.StakeTierNone,
		RejectionReason: reason,
	}
}

// Precheck returns the first rejection reason that applies, or ""
func Precheck(e *models.EdgeAssessment, cfg config.StakingConfig) string {
	switch {
	case e.Edge <= 0:
		return RejectNonPositiveEdge
	case e.ExpectedValue < cfg.MinExpectedValue:
		return RejectEVBelowFloor
	case e.Price < cfg.MinPrice:
		return RejectPriceBelowFloor
	case !classifier.HasGateTag(e.Tags):
		return RejectNoGateTag
	case e.Counter != nil:
		return RejectCounterSignal
	default:
		return ""
	}
}

// Recommend runs the staking pipeline. Every multiplier applied is recorded
// on the modifier trail in the order it was applied.
func Recommend(in *Input, cfg config.StakingConfig) models.StakeRecommendation {
	e := in.Edge
	if reason := Precheck(e, cfg); reason != "" {
		return reject(reason)
	}

	rec := models.StakeRecommendation{Modifiers: []models.Modifier{}}
	trail := func(label string, m float64) {
		rec.Modifiers = append(rec.Modifiers, models.Modifier{Label: label, Multiplier: m})
	}

	kelly := e.Edge / (e.Price - 1)
	trail(LabelKellyFull, kelly)

	fraction := kelly * cfg.KellyFraction
	trail(LabelFractionalKelly, cfg.KellyFraction)

	disagreement := cfg.DisagreementMultiplier(e.Probability / e.ImpliedProbability)
	fraction *= disagreement
	trail(LabelDisagreement, disagreement)

	if e.HasTag(classifier.TagPremium) {
		fraction *= cfg.PremiumMultiplier
		trail(LabelPremium, cfg.PremiumMultiplier)
	}

	if edgeModifier := math.Min(e.ServeMultiplier, e.ActivityMultiplier); edgeModifier < 1 {
		fraction *= edgeModifier
		trail(LabelEdgeModifiers, edgeModifier)
	}

	units := fraction / cfg.UnitSize
	rec.PreCapUnits = units

	dq, label, ok := dataQuality(in, units, cfg.DataQuality)
	if !ok {
		rec.Tier = models.StakeTierNone
		rec.RejectionReason = RejectInsufficientData
		return rec
	}
	if label != "" {
		units *= dq
		trail(label, dq)
	}

	if units >= cfg.Confidence.MinUnits {
		units *= confidenceReduction(in, cfg.Confidence, trail)
	}

	units = math.Min(roundTo(units, cfg.Granularity), capUnits(cfg.MaxUnits, cfg.Granularity))
	if units < cfg.MinUnits {
		rec.Tier = models.StakeTierNone
		rec.RejectionReason = RejectBelowMinStake
		return rec
	}

	rec.Units = units
	rec.BankrollFraction = units * cfg.UnitSize
	rec.Tier = cfg.TierFor(units)
	return rec
}

// dataQuality checks both players have enough recent matches for the stake
// size. Short histories may be verified from activity timestamps instead.
func dataQuality(in *Input, units float64, cfg config.DataQualityConfig) (multiplier float64, label string, ok bool) {
	required := cfg.RequiredMatches(units)
	from := in.MatchDate.Add(-time.Duration(cfg.FallbackWindowDays * 24 * float64(time.Hour)))

	multiplier = 1
	for _, p := range []*models.PlayerSnapshot{in.PlayerA, in.PlayerB} {
		if len(p.Recent) >= required {
			continue
		}
		verified := max(len(p.Recent), p.ActivityBetween(from, in.MatchDate))
		switch {
		case verified >= required:
			if label == "" {
				label = LabelFallbackVerified
			}
		case 2*verified >= required:
			multiplier = cfg.PartialMultiplier
			label = LabelPartialData
		default:
			return 0, "", false
		}
	}
	return multiplier, label, true
}

// confidenceReduction multiplies the reductions that apply, floored
func confidenceReduction(in *Input, cfg config.ConfidenceReductionConfig, trail func(string, float64)) float64 {
	product := 1.0
	apply := func(label string, m float64) {
		product *= m
		trail(label, m)
	}

	if !in.Factors[models.FactorSurface].HasData {
		apply(LabelNoSurface, cfg.NoSurface)
	}
	if !in.Factors[models.FactorHeadToHead].HasData {
		apply(LabelNoHeadToHead, cfg.NoHeadToHead)
	}
	if len(in.PlayerA.Recent) < cfg.ThinFormMatches || len(in.PlayerB.Recent) < cfg.ThinFormMatches {
		apply(LabelThinForm, cfg.ThinForm)
	}
	rankContribution := math.Abs(in.Factors[models.FactorRank].Value * in.Weights[models.FactorRank])
	if in.Advantage != 0 && rankContribution > cfg.RankDominanceShare*math.Abs(in.Advantage) {
		apply(LabelRankDominated, cfg.RankDominated)
	}

	if product < cfg.Floor {
		trail(LabelConfidenceFloor, cfg.Floor/product)
		return cfg.Floor
	}
	return product
}

// roundTo rounds half-up to a multiple of the granularity
func roundTo(units, granularity float64) float64 {
	g := decimal.NewFromFloat(granularity)
	return decimal.NewFromFloat(units).Div(g).Round(0).Mul(g).InexactFloat64()
}

// capUnits returns the largest multiple of the granularity not above maxUnits
func capUnits(maxUnits, granularity float64) float64 {
	g := decimal.NewFromFloat(granularity)
	return decimal.NewFromFloat(maxUnits).Div(g).Floor().Mul(g).InexactFloat64()
}
