// Package factors computes the directional advantage factors for a match.
package factors

import (
	"math"

	"github.com/yourusername/matchedge/internal/config"
	"github.com/yourusername/matchedge/internal/models"
)

// RankToRating converts a rank to a rating: max(floor, base - slope*log2(rank))
func RankToRating(rank int, cfg config.RatingsConfig) float64 {
	if rank < 1 {
		rank = 1
	}
	return math.Max(cfg.RankFloor, cfg.RankBase-cfg.RankSlope*math.Log2(float64(rank)))
}

// EstimateRank looks up an estimated rank for an unranked player from their market price
func EstimateRank(price float64, cfg config.RatingsConfig) int {
	for _, band := range cfg.UnrankedBands {
		if price <= band.MaxPrice {
			return band.Rank
		}
	}
	return cfg.UnrankedDefault
}

// EloExpectation returns the expected score of a against b
func EloExpectation(a, b, scale float64) float64 {
	return 1 / (1 + math.Pow(10, (b-a)/scale))
}

// Logistic is the natural logistic function
func Logistic(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// ratingDifferential maps a rating gap onto [-1, 1]
func ratingDifferential(a, b, scale float64) float64 {
	return 2 * (Logistic((a-b)/scale) - 0.5)
}

// OpponentRating rates a historical opponent from their rank at the time
func OpponentRating(rank int, cfg config.RatingsConfig) float64 {
	if rank < 1 {
		return RankToRating(cfg.UnrankedDefault, cfg)
	}
	return RankToRating(rank, cfg)
}

// SeedRating returns the starting rating for a player. With an effective-rank
// override the seed never falls below the rating of the effective rank.
func SeedRating(p *models.PlayerSnapshot, override *models.EffectiveRank, cfg config.RatingsConfig) float64 {
	if p.Rating != nil {
		if override != nil {
			return math.Max(*p.Rating, RankToRating(override.Effective, cfg))
		}
		return *p.Rating
	}
	if override != nil {
		return RankToRating(override.Effective, cfg)
	}
	if p.IsRanked() {
		return RankToRating(p.NominalRank(), cfg)
	}
	return cfg.DefaultRating
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
