package factors

import (
	"fmt"
	"math"

	"github.com/yourusername/matchedge/internal/models"
)

// windowMatches counts matches and same-surface wins in the momentum window
func (in *Inputs) windowMatches(side models.Side) (matches, surfaceWins int) {
	window := in.Profile.Momentum.WindowDays
	p := in.Player(side)
	for i := range p.Recent {
		m := &p.Recent[i]
		if d := in.daysBefore(m.Date); d < 0 || d >= window {
			continue
		}
		matches++
		if m.Won && m.Surface == in.Match.Surface {
			surfaceWins++
		}
	}
	return matches, surfaceWins
}

// MomentumScore returns a player's capped same-surface momentum
func (in *Inputs) MomentumScore(side models.Side) float64 {
	cfg := in.Profile.Momentum
	_, wins := in.windowMatches(side)
	return math.Min(cfg.Cap, cfg.PerWin*float64(wins))
}

// Momentum compares recent same-surface winning runs
func Momentum(in *Inputs) models.FactorScore {
	matchesA, _ := in.windowMatches(models.SideA)
	matchesB, _ := in.windowMatches(models.SideB)
	if matchesA+matchesB == 0 {
		return models.NoData(models.FactorMomentum, 0, "no matches in window")
	}

	mA := in.MomentumScore(models.SideA)
	mB := in.MomentumScore(models.SideB)
	return models.FactorScore{
		Value:   mA - mB,
		HasData: true,
		Detail:  fmt.Sprintf("momentum %.3f vs %.3f", mA, mB),
	}
}
