// Package breakout detects players whose recent quality wins outrun their nominal rank.
package breakout

import (
	"fmt"
	"math"
	"time"

	"github.com/yourusername/matchedge/internal/config"
	"github.com/yourusername/matchedge/internal/models"
)

// QualityWins returns the ranks of opponents beaten inside the window who were
// ranked at or above the quality threshold for the player's rank
func QualityWins(p *models.PlayerSnapshot, matchDate time.Time, cfg config.BreakoutConfig) []int {
	threshold := float64(p.NominalRank()) * cfg.QualityRankRatio
	var ranks []int
	for i := range p.Recent {
		m := &p.Recent[i]
		if !m.Won || m.OpponentRank < 1 {
			continue
		}
		if d := m.DaysBefore(matchDate); d < 0 || d > cfg.WindowDays {
			continue
		}
		if float64(m.OpponentRank) <= threshold {
			ranks = append(ranks, m.OpponentRank)
		}
	}
	return ranks
}

// Detect returns an effective-rank override for one player, or nil when the
// player does not break out. Unranked players never break out.
func Detect(side models.Side, p *models.PlayerSnapshot, matchDate time.Time, cfg config.BreakoutConfig) (*models.EffectiveRank, error) {
	if !p.IsRanked() || p.NominalRank() <= cfg.MinRank {
		return nil, nil
	}

	wins := QualityWins(p, matchDate, cfg)
	if len(wins) < cfg.MinQualityWins {
		return nil, nil
	}

	nominal := p.NominalRank()
	sum := 0
	for _, r := range wins {
		sum += r
	}
	mean := float64(sum) / float64(len(wins))
	implied := int(math.Round(mean * cfg.ImpliedMultiplier))
	implied = max(1, min(implied, nominal))

	blend := cfg.BaseBlend + cfg.PerWinBlend*float64(len(wins)-cfg.MinQualityWins)
	if p.Age > 0 && p.Age <= cfg.YouthAge {
		blend += cfg.YouthBlend
	}
	blend = math.Min(blend, cfg.MaxBlend)

	effective := int(math.Round(float64(nominal) - blend*float64(nominal-implied)))

	er := &models.EffectiveRank{
		Side:        side,
		Nominal:     nominal,
		Implied:     implied,
		Effective:   effective,
		Blend:       blend,
		QualityWins: len(wins),
	}
	if err := Check(er); err != nil {
		return nil, err
	}
	return er, nil
}

// Check asserts implied <= effective <= nominal
func Check(er *models.EffectiveRank) error {
	if er.Implied > er.Effective || er.Effective > er.Nominal || er.Implied < 1 {
		return models.NewInvariantError("effective_rank_bounds",
			fmt.Sprintf("side %s: implied %d, effective %d, nominal %d", er.Side, er.Implied, er.Effective, er.Nominal))
	}
	return nil
}

// DetectAll runs detection for both players, A first
func DetectAll(in *models.MatchInput, cfg config.BreakoutConfig) ([]models.EffectiveRank, error) {
	var out []models.EffectiveRank
	for _, side := range []models.Side{models.SideA, models.SideB} {
		er, err := Detect(side, in.Player(side), in.Match.Date, cfg)
		if err != nil {
			return nil, err
		}
		if er != nil {
			out = append(out, *er)
		}
	}
	return out, nil
}

// Overrides indexes detected overrides by side
func Overrides(list []models.EffectiveRank) map[models.Side]models.EffectiveRank {
	out := make(map[models.Side]models.EffectiveRank, len(list))
	for _, er := range list {
		out[er.Side] = er
	}
	return out
}
