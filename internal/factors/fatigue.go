package factors

import (
	"fmt"
	"math"
	"time"

	"github.com/yourusername/matchedge/internal/models"
)

const day = 24 * time.Hour

// MatchDates returns the dates a player played on: activity timestamps when
// supplied, else the dates of the recent matches
func MatchDates(p *models.PlayerSnapshot) []time.Time {
	if len(p.Activity) > 0 {
		return p.Activity
	}
	out := make([]time.Time, len(p.Recent))
	for i := range p.Recent {
		out[i] = p.Recent[i].Date
	}
	return out
}

// CountWithin counts dates in the window of the given days before ref
func CountWithin(dates []time.Time, ref time.Time, days float64) int {
	from := ref.Add(-time.Duration(days * float64(day)))
	count := 0
	for _, ts := range dates {
		if !ts.Before(from) && ts.Before(ref) {
			count++
		}
	}
	return count
}

// lastPlayed returns the latest date before ref
func lastPlayed(dates []time.Time, ref time.Time) (time.Time, bool) {
	var last time.Time
	found := false
	for _, ts := range dates {
		if ts.Before(ref) && (!found || ts.After(last)) {
			last = ts
			found = true
		}
	}
	return last, found
}

// Freshness returns a player's 0-100 freshness: rest minus workload penalties
func (in *Inputs) Freshness(side models.Side) float64 {
	cfg := in.Profile.Fatigue
	p := in.Player(side)
	ref := in.Match.Date
	dates := MatchDates(p)

	rest := 100.0
	if last, ok := lastPlayed(dates, ref); ok {
		d := ref.Sub(last).Hours() / 24
		switch {
		case d < cfg.ShortRestDays:
			rest = 100 - cfg.ShortRestPenalty*(cfg.ShortRestDays-d)
		case d > cfg.LongRestDays:
			rest = math.Max(cfg.RustFloor, 100*math.Exp(-(d-cfg.LongRestDays)/cfg.RustDecayDays))
		}
	}

	load := 0.0
	for i := range p.Recent {
		m := &p.Recent[i]
		if d := in.daysBefore(m.Date); d >= 0 && d < cfg.LoadWindowDays {
			load += float64(m.SetsPlayed()) * in.Profile.Form.TierMultipliers.For(m.Tier)
		}
	}
	penalty := math.Min(cfg.LoadCap, load*cfg.LoadScale)

	short := CountWithin(dates, ref, cfg.ShortWindowDays)
	penalty += math.Min(cfg.ShortWindowCap, cfg.ShortWindowCost*float64(max(0, short-cfg.ShortWindowFree)))
	long := CountWithin(dates, ref, cfg.LongWindowDays)
	penalty += math.Min(cfg.LongWindowCap, cfg.LongWindowCost*float64(max(0, long-cfg.LongWindowFree)))

	return clamp(rest-penalty, 0, 100)
}

// Fatigue compares rest and recent workload
func Fatigue(in *Inputs) models.FactorScore {
	if len(MatchDates(in.PlayerA)) == 0 || len(MatchDates(in.PlayerB)) == 0 {
		return models.NoData(models.FactorFatigue, 0, "no match or activity dates")
	}

	fA := in.Freshness(models.SideA)
	fB := in.Freshness(models.SideB)
	return models.FactorScore{
		Value:   (fA - fB) / 100,
		HasData: true,
		Detail:  fmt.Sprintf("freshness %.1f vs %.1f", fA, fB),
	}
}
