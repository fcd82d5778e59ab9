package factors

import (
	"fmt"

	"github.com/yourusername/matchedge/internal/models"
)

// Rank compares rank-derived ratings, using effective ranks when overridden
func Rank(in *Inputs) models.FactorScore {
	if !in.PlayerA.IsRanked() && !in.PlayerB.IsRanked() {
		return models.NoData(models.FactorRank, 0, "both players unranked")
	}

	a := in.RankRating(models.SideA)
	b := in.RankRating(models.SideB)
	return models.FactorScore{
		Value:   ratingDifferential(a, b, in.Profile.Ratings.FactorScale),
		HasData: true,
		Detail:  fmt.Sprintf("ratings %.0f vs %.0f", a, b),
	}
}

// PerformanceRating replays a player's history oldest to newest from the seed
// rating, moving the rating by the tier's K factor after every result
func (in *Inputs) PerformanceRating(side models.Side) float64 {
	p := in.Player(side)
	ratings := in.Profile.Ratings
	rating := SeedRating(p, in.Override(side), ratings)

	for i := len(p.Recent) - 1; i >= 0; i-- {
		m := &p.Recent[i]
		expected := EloExpectation(rating, OpponentRating(m.OpponentRank, ratings), ratings.EloScale)
		actual := 0.0
		if m.Won {
			actual = 1
		}
		rating += in.Profile.Rating.KFactors.For(m.Tier) * (actual - expected)
	}
	return rating
}

func hasRatingData(p *models.PlayerSnapshot, minMatches int) bool {
	return p.Rating != nil || len(p.Recent) >= minMatches
}

// Rating compares rolling performance ratings
func Rating(in *Inputs) models.FactorScore {
	minMatches := in.Profile.Rating.MinMatches
	if !hasRatingData(in.PlayerA, minMatches) || !hasRatingData(in.PlayerB, minMatches) {
		return models.NoData(models.FactorRating, 0, "no rating and too few matches")
	}

	a := in.PerformanceRating(models.SideA)
	b := in.PerformanceRating(models.SideB)
	return models.FactorScore{
		Value:   ratingDifferential(a, b, in.Profile.Ratings.FactorScale),
		HasData: true,
		Detail:  fmt.Sprintf("ratings %.0f vs %.0f", a, b),
	}
}
