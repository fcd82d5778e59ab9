package factors

import (
	"fmt"
	"math"

	"github.com/yourusername/matchedge/internal/models"
)

type formEntry struct {
	score    float64
	weight   float64
	won      bool
	opponent float64
}

// FormScore returns a player's weighted recent-form score on a 0-100 scale
func (in *Inputs) FormScore(side models.Side) float64 {
	cfg := in.Profile.Form
	p := in.Player(side)
	rating := SeedRating(p, in.Override(side), in.Profile.Ratings)

	n := len(p.Recent)
	if n > cfg.Window {
		n = cfg.Window
	}
	entries := make([]formEntry, n)
	for i := 0; i < n; i++ {
		m := &p.Recent[i]
		opp := OpponentRating(m.OpponentRank, in.Profile.Ratings)
		expected := EloExpectation(rating, opp, in.Profile.Ratings.EloScale)

		var score float64
		if m.Won {
			score = cfg.WinBase + cfg.WinScale*(1-expected)
		} else {
			score = cfg.LossScale * (1 - expected)
		}
		won, lost := m.Games()
		if total := won + lost; total > 0 {
			d := float64(won-lost) / float64(total)
			score *= clamp(1+cfg.DominanceSlope*d, cfg.DominanceMin, cfg.DominanceMax)
		}

		weight := math.Pow(cfg.PositionDecay, float64(i)) *
			cfg.TierMultipliers.For(m.Tier) *
			math.Exp(-math.Max(0, in.daysBefore(m.Date))/cfg.AgeScaleDays)
		if !m.Won && expected < 1 {
			weight *= clamp(expected/(1-expected), 1, cfg.SurpriseMax)
		}
		entries[i] = formEntry{score: score, weight: weight, won: m.Won, opponent: opp}
	}

	// confirmed breakthroughs: nearby wins over similar opponents at or above the player's level
	boosted := make([]bool, n)
	for i := 0; i < n; i++ {
		if !entries[i].won || entries[i].opponent < rating {
			continue
		}
		for j := i + 1; j < n && j-i <= cfg.BreakthroughSpan; j++ {
			if !entries[j].won || entries[j].opponent < rating {
				continue
			}
			if math.Abs(entries[i].opponent-entries[j].opponent) <= cfg.BreakthroughBand {
				boosted[i] = true
				boosted[j] = true
			}
		}
	}

	var sum, weights float64
	for i, e := range entries {
		w := e.weight
		if boosted[i] {
			w *= cfg.BreakthroughMultiplier
		}
		sum += e.score * w
		weights += w
	}
	if weights == 0 {
		return 0
	}
	return sum / weights
}

// Form compares weighted recent results, adjusted for opponent strength
func Form(in *Inputs) models.FactorScore {
	cfg := in.Profile.Form
	if len(in.PlayerA.Recent) < cfg.MinMatches || len(in.PlayerB.Recent) < cfg.MinMatches {
		return models.NoData(models.FactorForm, 0, fmt.Sprintf("fewer than %d matches", cfg.MinMatches))
	}

	sA := in.FormScore(models.SideA)
	sB := in.FormScore(models.SideB)
	value := cfg.ValueScale*math.Tanh((sA-sB)/cfg.ScoreDivisor) +
		LossStability(in.PlayerA, in.PlayerB, cfg.StabilityCap, in.Profile)

	return models.FactorScore{
		Value:   clamp(value, -1, 1),
		HasData: true,
		Detail:  fmt.Sprintf("scores %.1f vs %.1f", sA, sB),
	}
}
