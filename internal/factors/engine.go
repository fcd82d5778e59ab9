package factors

import (
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yourusername/matchedge/internal/config"
	"github.com/yourusername/matchedge/internal/models"
)

// Inputs is the read-only view every factor computes from
type Inputs struct {
	Match      models.MatchContext
	PlayerA    *models.PlayerSnapshot
	PlayerB    *models.PlayerSnapshot
	PriceA     float64
	PriceB     float64
	HeadToHead models.HeadToHead
	Overrides  map[models.Side]models.EffectiveRank
	Profile    *config.Profile
}

// NewInputs builds factor inputs from an evaluation input
func NewInputs(in *models.MatchInput, profile *config.Profile) *Inputs {
	return &Inputs{
		Match:      in.Match,
		PlayerA:    &in.PlayerA,
		PlayerB:    &in.PlayerB,
		PriceA:     in.PriceA,
		PriceB:     in.PriceB,
		HeadToHead: in.HeadToHead,
		Profile:    profile,
	}
}

// WithOverrides returns a copy of the inputs carrying effective-rank overrides
func (in *Inputs) WithOverrides(overrides map[models.Side]models.EffectiveRank) *Inputs {
	out := *in
	out.Overrides = overrides
	return &out
}

// Player returns the snapshot for a side
func (in *Inputs) Player(side models.Side) *models.PlayerSnapshot {
	if side == models.SideB {
		return in.PlayerB
	}
	return in.PlayerA
}

// Price returns the decimal price for a side
func (in *Inputs) Price(side models.Side) float64 {
	if side == models.SideB {
		return in.PriceB
	}
	return in.PriceA
}

// Override returns the effective-rank override for a side, if any
func (in *Inputs) Override(side models.Side) *models.EffectiveRank {
	if o, ok := in.Overrides[side]; ok {
		return &o
	}
	return nil
}

// EffectiveRank returns the override rank, else the nominal rank; false when unranked
func (in *Inputs) EffectiveRank(side models.Side) (int, bool) {
	if o := in.Override(side); o != nil {
		return o.Effective, true
	}
	p := in.Player(side)
	if !p.IsRanked() {
		return 0, false
	}
	return p.NominalRank(), true
}

// RankRating returns the rating the rank factor uses for a side. Unranked
// players are rated from a rank estimated from their market price.
func (in *Inputs) RankRating(side models.Side) float64 {
	cfg := in.Profile.Ratings
	if rank, ok := in.EffectiveRank(side); ok {
		return RankToRating(rank, cfg)
	}
	return RankToRating(EstimateRank(in.Price(side), cfg), cfg)
}

// daysBefore returns fractional days between t and the match date
func (in *Inputs) daysBefore(t time.Time) float64 {
	return in.Match.Date.Sub(t).Hours() / 24
}

// Func computes one factor score
type Func func(in *Inputs) models.FactorScore

var registry = map[models.FactorName]Func{
	models.FactorSurface:    Surface,
	models.FactorForm:       Form,
	models.FactorFatigue:    Fatigue,
	models.FactorRank:       Rank,
	models.FactorRating:     Rating,
	models.FactorRecentLoss: RecentLoss,
	models.FactorHeadToHead: HeadToHead,
	models.FactorMomentum:   Momentum,
}

// RankDependent lists the factors recomputed after a breakout override
var RankDependent = []models.FactorName{models.FactorRank, models.FactorRating}

// Result holds the factor scores and the ratings behind the rank factor
type Result struct {
	Scores      models.FactorSet
	RankRatingA float64
	RankRatingB float64
}

// RatingGap returns the absolute gap between the rank factor ratings
func (r *Result) RatingGap() float64 {
	gap := r.RankRatingA - r.RankRatingB
	if gap < 0 {
		return -gap
	}
	return gap
}

// Engine fans factor computations out over a fixed-size worker pool
type Engine struct {
	workers int
}

// NewEngine creates a factor engine with the given pool size
func NewEngine(workers int) *Engine {
	if workers < 1 {
		workers = 1
	}
	return &Engine{workers: workers}
}

// Compute runs every factor and joins the results
func (e *Engine) Compute(in *Inputs) (*Result, error) {
	scores, err := e.run(in, models.AllFactors)
	if err != nil {
		return nil, err
	}
	return &Result{
		Scores:      scores,
		RankRatingA: in.RankRating(models.SideA),
		RankRatingB: in.RankRating(models.SideB),
	}, nil
}

// Recompute reruns the rank-dependent factors with the inputs' overrides,
// keeping every other score from prev
func (e *Engine) Recompute(in *Inputs, prev *Result) (*Result, error) {
	scores, err := e.run(in, RankDependent)
	if err != nil {
		return nil, err
	}
	merged := prev.Scores.Clone()
	for name, score := range scores {
		merged[name] = score
	}
	return &Result{
		Scores:      merged,
		RankRatingA: in.RankRating(models.SideA),
		RankRatingB: in.RankRating(models.SideB),
	}, nil
}

// run computes the named factors concurrently; each goroutine owns one slot
func (e *Engine) run(in *Inputs, names []models.FactorName) (models.FactorSet, error) {
	slots := make([]models.FactorScore, len(names))
	weights := in.Profile.Weights.Vector()

	var g errgroup.Group
	g.SetLimit(e.workers)
	for i, name := range names {
		i, name := i, name
		fn, ok := registry[name]
		if !ok {
			return nil, fmt.Errorf("unknown factor %q", name)
		}
		g.Go(func() error {
			score := fn(in)
			score.Name = name
			score.Weight = weights[name]
			if !score.HasData && score.Value != 0 {
				return models.NewInvariantError("factor_no_data_zero",
					fmt.Sprintf("factor %s has no data but value %v", name, score.Value))
			}
			slots[i] = score
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(models.FactorSet, len(names))
	for i, name := range names {
		out[name] = slots[i]
	}
	return out, nil
}
