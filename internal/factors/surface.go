package factors

import (
	"fmt"
	"math"

	"github.com/yourusername/matchedge/internal/models"
)

// SurfaceRate returns a player's reliability-weighted win rate on the match surface
func (in *Inputs) SurfaceRate(side models.Side) float64 {
	cfg := in.Profile.Surface
	rec, _ := in.Player(side).SurfaceRecord(in.Match.Surface)

	rate := cfg.CareerWeight*rec.CareerRate() + cfg.RecentWeight*rec.RecentRate()
	reliability := math.Min(1, float64(rec.CareerMatches)/cfg.ReliabilityMatches)
	return 0.5 + (rate-0.5)*reliability
}

// Surface compares win rates on the match surface
func Surface(in *Inputs) models.FactorScore {
	cfg := in.Profile.Surface
	recA, _ := in.PlayerA.SurfaceRecord(in.Match.Surface)
	recB, _ := in.PlayerB.SurfaceRecord(in.Match.Surface)
	if recA.CareerMatches < cfg.MinMatches || recB.CareerMatches < cfg.MinMatches {
		return models.NoData(models.FactorSurface, 0,
			fmt.Sprintf("fewer than %d %s matches", cfg.MinMatches, in.Match.Surface))
	}

	rateA := in.SurfaceRate(models.SideA)
	rateB := in.SurfaceRate(models.SideB)
	value := rateA - rateB + LossStability(in.PlayerA, in.PlayerB, cfg.StabilityCap, in.Profile)

	return models.FactorScore{
		Value:   clamp(value, -1, 1),
		HasData: true,
		Detail:  fmt.Sprintf("rates %.3f vs %.3f", rateA, rateB),
	}
}
