package factors

import (
	"fmt"

	"github.com/yourusername/matchedge/internal/models"
)

// LossPenalty returns the penalty for a player whose last match was a recent loss
func (in *Inputs) LossPenalty(side models.Side) float64 {
	cfg := in.Profile.RecentLoss
	last, ok := in.Player(side).LastMatch()
	if !ok || last.Won {
		return 0
	}

	d := in.daysBefore(last.Date)
	penalty := 0.0
	switch {
	case d <= cfg.ShortDays:
		penalty = cfg.ShortPenalty
	case d <= cfg.LongDays:
		penalty = cfg.LongPenalty
	default:
		return 0
	}
	if last.WentDistance() {
		penalty += cfg.DistancePenalty
	}
	return -penalty
}

// RecentLoss penalizes a player coming off a fresh loss
func RecentLoss(in *Inputs) models.FactorScore {
	if len(in.PlayerA.Recent) == 0 || len(in.PlayerB.Recent) == 0 {
		return models.NoData(models.FactorRecentLoss, 0, "no match history")
	}

	penA := in.LossPenalty(models.SideA)
	penB := in.LossPenalty(models.SideB)
	return models.FactorScore{
		Value:   penA - penB,
		HasData: true,
		Detail:  fmt.Sprintf("penalties %.2f vs %.2f", penA, penB),
	}
}
