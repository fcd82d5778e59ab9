// Package edge selects a side and measures its edge against the market.
package edge

import (
	"math"
	"sort"
	"time"

	"github.com/yourusername/matchedge/internal/config"
	"github.com/yourusername/matchedge/internal/factors"
	"github.com/yourusername/matchedge/internal/models"
)

// Modifier labels
const (
	LabelServe    = "serve_alignment"
	LabelActivity = "activity"
)

// Input is everything the edge layer reads
type Input struct {
	ProbabilityA   float64
	PriceA         float64
	PriceB         float64
	PlayerA        *models.PlayerSnapshot
	PlayerB        *models.PlayerSnapshot
	MatchDate      time.Time
	CommissionRate float64
}

func (in *Input) player(side models.Side) *models.PlayerSnapshot {
	if side == models.SideB {
		return in.PlayerB
	}
	return in.PlayerA
}

func (in *Input) price(side models.Side) float64 {
	if side == models.SideB {
		return in.PriceB
	}
	return in.PriceA
}

func (in *Input) probability(side models.Side) float64 {
	if side == models.SideB {
		return 1 - in.ProbabilityA
	}
	return in.ProbabilityA
}

// RawEdge returns probability minus the market's raw implied probability
func RawEdge(p, price float64) float64 {
	return p - 1/price
}

// Select returns the side with the larger raw edge; ties go to A
func Select(in *Input) models.Side {
	edgeA := RawEdge(in.probability(models.SideA), in.PriceA)
	edgeB := RawEdge(in.probability(models.SideB), in.PriceB)
	if edgeB > edgeA {
		return models.SideB
	}
	return models.SideA
}

// ServeAlignment compares serve dominance of the pick and the opponent and
// returns the state with the edge multiplier it implies
func ServeAlignment(pick, opponent *models.PlayerSnapshot, cfg config.ServeConfig) (models.ServeAlignment, float64) {
	ratioPick, ok := sampledRatio(pick, cfg.MinMatches)
	if !ok {
		return models.ServeUnknown, 1
	}
	ratioOpp, ok := sampledRatio(opponent, cfg.MinMatches)
	if !ok {
		return models.ServeUnknown, 1
	}

	gap := ratioPick - ratioOpp
	switch {
	case gap > cfg.Threshold:
		return models.ServeAligned, 1
	case gap < -cfg.Threshold:
		reduction := math.Min(cfg.MaxReduction, cfg.Slope*(math.Abs(gap)-cfg.Threshold))
		return models.ServeConflicting, 1 - reduction
	default:
		return models.ServeNeutral, 1
	}
}

func sampledRatio(p *models.PlayerSnapshot, minMatches int) (float64, bool) {
	if p.Serve == nil || p.Serve.Matches < minMatches {
		return 0, false
	}
	return p.Serve.DominanceRatio()
}

// ActivityScore rates a player's recent activity 0-100 from match frequency
// and the longest idle stretch in the window. The stretch from the window
// start to the first match and the one from the last match to the match date
// both count.
func ActivityScore(p *models.PlayerSnapshot, matchDate time.Time, cfg config.ActivityConfig) float64 {
	from := matchDate.Add(-time.Duration(cfg.WindowDays * 24 * float64(time.Hour)))

	var dates []time.Time
	for _, ts := range factors.MatchDates(p) {
		if !ts.Before(from) && ts.Before(matchDate) {
			dates = append(dates, ts)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	frequency := math.Min(cfg.FrequencyCap, cfg.PerMatch*float64(len(dates)))

	longest := cfg.WindowDays
	if len(dates) > 0 {
		longest = dates[0].Sub(from).Hours() / 24
		for i := 1; i < len(dates); i++ {
			longest = math.Max(longest, dates[i].Sub(dates[i-1]).Hours()/24)
		}
		longest = math.Max(longest, matchDate.Sub(dates[len(dates)-1]).Hours()/24)
	}

	var gapScore float64
	switch {
	case longest <= cfg.GapFullDays:
		gapScore = cfg.GapScore
	case longest >= cfg.GapZeroDays:
		gapScore = 0
	default:
		gapScore = cfg.GapScore * (cfg.GapZeroDays - longest) / (cfg.GapZeroDays - cfg.GapFullDays)
	}

	return frequency + gapScore
}

// ActivityMultiplier returns the edge multiplier for the less active player's score
func ActivityMultiplier(minScore float64, cfg config.ActivityConfig) float64 {
	if minScore >= cfg.Threshold {
		return 1
	}
	return 1 - cfg.MaxReduction*(cfg.Threshold-minScore)/cfg.Threshold
}

// Assess selects a side and applies the serve and activity modifiers to its edge.
// Tags and counter recommendations are left to the classifier.
func Assess(in *Input, cfg config.EdgeConfig) models.EdgeAssessment {
	side := Select(in)
	p := in.probability(side)
	price := in.price(side)

	a := models.EdgeAssessment{
		Selection:          side,
		Price:              price,
		OpponentPrice:      in.price(side.Opposite()),
		Probability:        p,
		ImpliedProbability: 1 / price,
		RawEdge:            RawEdge(p, price),
		ExpectedValue:      p*price - 1,
		NetExpectedValue:   p*(1+(price-1)*(1-in.CommissionRate)) - 1,
		Modifiers:          []models.Modifier{},
		Tags:               []string{},
	}

	a.ServeAlignment, a.ServeMultiplier = ServeAlignment(in.player(side), in.player(side.Opposite()), cfg.Serve)
	if a.ServeMultiplier < 1 {
		a.Modifiers = append(a.Modifiers, models.Modifier{Label: LabelServe, Multiplier: a.ServeMultiplier})
	}

	a.ActivityA = ActivityScore(in.PlayerA, in.MatchDate, cfg.Activity)
	a.ActivityB = ActivityScore(in.PlayerB, in.MatchDate, cfg.Activity)
	a.ActivityMultiplier = ActivityMultiplier(math.Min(a.ActivityA, a.ActivityB), cfg.Activity)
	if a.ActivityMultiplier < 1 {
		a.Modifiers = append(a.Modifiers, models.Modifier{Label: LabelActivity, Multiplier: a.ActivityMultiplier})
	}

	a.Edge = a.RawEdge * a.ServeMultiplier * a.ActivityMultiplier
	return a
}
