// Package probability combines factor scores into a calibrated win probability for player A.
package probability

import (
	"math"

	"github.com/yourusername/matchedge/internal/config"
	"github.com/yourusername/matchedge/internal/models"
)

// Input is everything the combiner reads
type Input struct {
	Factors     models.FactorSet
	Weights     models.WeightVector
	BaseWeights models.WeightVector
	RankRatingA float64
	RankRatingB float64
	// RankDominant enables the rank-implied blend
	RankDominant bool
	PriceA       float64
	PriceB       float64
}

// Advantage sums score times weight in canonical factor order
func Advantage(factors models.FactorSet, weights models.WeightVector) float64 {
	total := 0.0
	for _, name := range models.AllFactors {
		total += factors[name].Value * weights[name]
	}
	return total
}

// Raw maps an advantage to a probability with a logistic of the given steepness
func Raw(advantage, steepness float64) float64 {
	return 1 / (1 + math.Exp(-steepness*advantage))
}

// RankImplied is the Elo expectation of the rank-factor ratings
func RankImplied(ratingA, ratingB, scale float64) float64 {
	return 1 / (1 + math.Pow(10, (ratingB-ratingA)/scale))
}

// Shrink pulls probabilities above 0.5 toward 0.5; lower values pass through
func Shrink(p, shrinkage float64) float64 {
	if p <= 0.5 {
		return p
	}
	return 0.5 + (p-0.5)*(1-shrinkage)
}

// FairProbability returns A's overround-normalized market probability
func FairProbability(priceA, priceB float64) float64 {
	impliedA := 1 / priceA
	impliedB := 1 / priceB
	return impliedA / (impliedA + impliedB)
}

// Calibrate shrinks the model probability and blends it with the market
func Calibrate(p, fairA float64, cfg config.ProbabilityConfig) float64 {
	return cfg.ModelWeight*Shrink(p, cfg.Shrinkage) + (1-cfg.ModelWeight)*fairA
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// Confidence scores how much the probability can be trusted, from data
// coverage, factor agreement with the final direction, and margin from 0.5
func Confidence(factors models.FactorSet, base models.WeightVector, p float64, cfg config.ProbabilityConfig) float64 {
	covered, total := 0.0, 0.0
	for _, name := range models.AllFactors {
		total += base[name]
		if factors[name].HasData {
			covered += base[name]
		}
	}
	coverage := 0.0
	if total > 0 {
		coverage = covered / total
	}

	direction := sign(p - 0.5)
	voting, agreeing := 0, 0
	for _, name := range models.AllFactors {
		score := factors[name]
		if !score.HasData || score.Value == 0 {
			continue
		}
		voting++
		if sign(score.Value) == direction {
			agreeing++
		}
	}
	agreement := 0.0
	if voting > 0 {
		agreement = float64(agreeing) / float64(voting)
	}

	margin := math.Min(1, math.Abs(p-0.5)/cfg.MarginCeiling)

	confidence := cfg.CoverageWeight*coverage + cfg.AgreementWeight*agreement + cfg.MarginWeight*margin
	return math.Max(cfg.MinConfidence, math.Min(cfg.MaxConfidence, confidence))
}

// formAgrees reports whether form points the same way as rank. Form without
// data does not vote against rank.
func formAgrees(factors models.FactorSet) bool {
	form := factors[models.FactorForm]
	if !form.HasData {
		return true
	}
	return sign(factors[models.FactorRank].Value) == sign(form.Value)
}

// Combine runs advantage, rank blend, calibration and confidence
func Combine(in *Input, profile *config.Profile) models.ProbabilityResult {
	cfg := profile.Probability
	result := models.ProbabilityResult{}

	result.Advantage = Advantage(in.Factors, in.Weights)
	result.Raw = Raw(result.Advantage, cfg.Steepness)
	result.Model = result.Raw

	if in.RankDominant {
		blend := cfg.ConflictRankBlend
		if formAgrees(in.Factors) {
			blend = cfg.AlignedRankBlend
		}
		implied := RankImplied(in.RankRatingA, in.RankRatingB, profile.Ratings.EloScale)
		result.RankBlend = blend
		result.Model = (1-blend)*result.Raw + blend*implied
	}

	result.Calibrated = Calibrate(result.Model, FairProbability(in.PriceA, in.PriceB), cfg)
	result.Confidence = Confidence(in.Factors, in.BaseWeights, result.Calibrated, cfg)
	return result
}
