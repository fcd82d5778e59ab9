package factors

import (
	"math"

	"github.com/yourusername/matchedge/internal/config"
	"github.com/yourusername/matchedge/internal/models"
)

// lossRatings returns the ratings of the opponents a player lost to
func lossRatings(p *models.PlayerSnapshot, cfg config.RatingsConfig) []float64 {
	var out []float64
	for i := range p.Recent {
		if !p.Recent[i].Won {
			out = append(out, OpponentRating(p.Recent[i].OpponentRank, cfg))
		}
	}
	return out
}

func meanStd(values []float64) (mean, std float64) {
	if len(values) == 0 {
		return 0, 0
	}
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	for _, v := range values {
		std += (v - mean) * (v - mean)
	}
	return mean, math.Sqrt(std / float64(len(values)))
}

// LossStability compares the quality of each player's losses. A player whose
// losses came against stronger opponents gets a positive term, capped at cap
// and damped when the loss ratings are widely spread.
func LossStability(a, b *models.PlayerSnapshot, capValue float64, profile *config.Profile) float64 {
	cfg := profile.Stability
	lossesA := lossRatings(a, profile.Ratings)
	lossesB := lossRatings(b, profile.Ratings)
	if len(lossesA) < cfg.MinLosses || len(lossesB) < cfg.MinLosses {
		return 0
	}

	meanA, stdA := meanStd(lossesA)
	meanB, stdB := meanStd(lossesB)
	sigma := (stdA + stdB) / 2
	damping := 1 / (1 + math.Pow(sigma/cfg.SigmaScale, 2))

	return capValue * math.Tanh((meanA-meanB)/cfg.Scale) * damping
}
