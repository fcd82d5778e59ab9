// Package adjuster discounts displaced players and redistributes factor weights.
package adjuster

import (
	"fmt"
	"math"

	"github.com/yourusername/matchedge/internal/config"
	"github.com/yourusername/matchedge/internal/models"
)

// discounted lists the factors a displacement discount applies to
var discounted = []models.FactorName{models.FactorRank, models.FactorRating, models.FactorHeadToHead}

// Input is everything the context adjuster reads
type Input struct {
	Match       models.MatchContext
	PlayerA     *models.PlayerSnapshot
	PlayerB     *models.PlayerSnapshot
	Scores      models.FactorSet
	RankRatingA float64
	RankRatingB float64
	Overrides   map[models.Side]models.EffectiveRank
}

// Result holds the adjusted scores and effective weights
type Result struct {
	Factors           models.FactorSet
	Weights           models.WeightVector
	Displacements     []models.Displacement
	HeavyDisplacement bool
	LargeGap          bool
	// RankDominant is a large gap with no breakout and no heavy displacement
	RankDominant bool
	RankBoosted  bool
}

func (in *Input) player(side models.Side) *models.PlayerSnapshot {
	if side == models.SideB {
		return in.PlayerB
	}
	return in.PlayerA
}

// HomeLevel returns the competitive level a player normally plays at
func HomeLevel(p *models.PlayerSnapshot, override *models.EffectiveRank, match models.MatchContext, cfg config.ContextConfig) int {
	rank := p.NominalRank()
	if override != nil {
		rank = override.Effective
	}
	if rank >= 1 {
		for _, band := range cfg.HomeBands {
			if rank <= band.MaxRank {
				return band.Level
			}
		}
		return cfg.DefaultLevel
	}

	// unranked: most frequent level in history, ties to the higher level
	counts := make(map[int]int)
	for i := range p.Recent {
		if level := p.Recent[i].Tier.Level(); level > 0 {
			counts[level]++
		}
	}
	best, bestCount := 0, 0
	for level := 4; level >= 1; level-- {
		if counts[level] > bestCount {
			best, bestCount = level, counts[level]
		}
	}
	if best == 0 {
		return match.Tier.Level()
	}
	return best
}

// Displace computes a player's displacement below their home level
func Displace(side models.Side, p *models.PlayerSnapshot, override *models.EffectiveRank, match models.MatchContext, cfg config.ContextConfig) models.Displacement {
	home := HomeLevel(p, override, match, cfg)
	levels := max(0, home-match.Tier.Level())
	return models.Displacement{
		Side:      side,
		HomeLevel: home,
		Levels:    levels,
		Discount:  math.Min(float64(levels)*cfg.DiscountPerLevel, cfg.MaxDiscount),
	}
}

// Adjust applies displacement discounts, weight redistribution and the large-gap boost
func Adjust(in *Input, profile *config.Profile) (*Result, error) {
	cfg := profile.Context
	result := &Result{Factors: in.Scores.Clone()}

	for _, side := range []models.Side{models.SideA, models.SideB} {
		var override *models.EffectiveRank
		if o, ok := in.Overrides[side]; ok {
			override = &o
		}
		d := Displace(side, in.player(side), override, in.Match, cfg)
		result.Displacements = append(result.Displacements, d)
		if d.Levels >= cfg.HeavyDisplacement {
			result.HeavyDisplacement = true
		}
		if d.Discount > 0 {
			applyDiscount(result.Factors, side, d.Discount)
		}
	}

	result.Weights = redistribute(result.Factors, profile.Weights.Vector().Normalized())

	gap := math.Abs(in.RankRatingA - in.RankRatingB)
	result.LargeGap = gap >= cfg.LargeGap && result.Factors[models.FactorRank].HasData
	result.RankDominant = result.LargeGap && len(in.Overrides) == 0 && !result.HeavyDisplacement
	if result.RankDominant {
		result.RankBoosted = boostRank(result.Weights, cfg)
	}

	if !result.Weights.SumsToOne(cfg.WeightTolerance) {
		return nil, models.NewInvariantError("weights_sum_to_one",
			fmt.Sprintf("effective weights sum to %.12f", result.Weights.Sum()))
	}
	return result, nil
}

// applyDiscount shrinks scores that favor the displaced side
func applyDiscount(scores models.FactorSet, side models.Side, discount float64) {
	for _, name := range discounted {
		score, ok := scores[name]
		if !ok {
			continue
		}
		favorsA := score.Value > 0
		favorsB := score.Value < 0
		if (side == models.SideA && favorsA) || (side == models.SideB && favorsB) {
			score.Value *= 1 - discount
			scores[name] = score
		}
	}
}

// redistribute zeroes the weight of factors without data. Freed weight goes to
// rank; if rank has no data it is spread proportionally over factors with data.
func redistribute(scores models.FactorSet, base models.WeightVector) models.WeightVector {
	out := make(models.WeightVector, len(models.AllFactors))
	dataTotal := 0.0
	for _, name := range models.AllFactors {
		if scores[name].HasData {
			dataTotal += base[name]
		}
	}

	switch {
	case dataTotal == 0:
		for _, name := range models.AllFactors {
			out[name] = 0
		}
		out[models.FactorRank] = 1
	case scores[models.FactorRank].HasData:
		freed := 0.0
		for _, name := range models.AllFactors {
			if scores[name].HasData {
				out[name] = base[name]
			} else {
				out[name] = 0
				freed += base[name]
			}
		}
		out[models.FactorRank] += freed
	default:
		for _, name := range models.AllFactors {
			if scores[name].HasData {
				out[name] = base[name] / dataTotal
			} else {
				out[name] = 0
			}
		}
	}
	return out
}

// boostRank raises the rank weight toward the cap and rescales the rest
func boostRank(w models.WeightVector, cfg config.ContextConfig) bool {
	old := w[models.FactorRank]
	boosted := math.Min(old+cfg.RankBoost, cfg.RankWeightCap)
	if boosted <= old || old >= 1 {
		return false
	}

	scale := (1 - boosted) / (1 - old)
	for _, name := range models.AllFactors {
		if name == models.FactorRank {
			continue
		}
		w[name] *= scale
	}
	w[models.FactorRank] = boosted
	return true
}
