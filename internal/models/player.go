package models

import (
	"time"
)

// SurfaceRecord holds win/loss aggregates for one surface
type SurfaceRecord struct {
	CareerWins    int `json:"career_wins" validate:"gte=0,ltefield=CareerMatches"`
	CareerMatches int `json:"career_matches" validate:"gte=0"`
	RecentWins    int `json:"recent_wins" validate:"gte=0,ltefield=RecentMatches"`
	RecentMatches int `json:"recent_matches" validate:"gte=0"`
}

// CareerRate returns the career win rate, or 0.5 with no matches
func (s SurfaceRecord) CareerRate() float64 {
	if s.CareerMatches == 0 {
		return 0.5
	}
	return float64(s.CareerWins) / float64(s.CareerMatches)
}

// RecentRate returns the trailing-window win rate, falling back to career
func (s SurfaceRecord) RecentRate() float64 {
	if s.RecentMatches == 0 {
		return s.CareerRate()
	}
	return float64(s.RecentWins) / float64(s.RecentMatches)
}

// ServeStats holds service and return game aggregates
type ServeStats struct {
	ServiceGamesWon float64 `json:"service_games_won" validate:"gte=0,lte=1"`
	ReturnGamesWon  float64 `json:"return_games_won" validate:"gte=0,lte=1"`
	Matches         int     `json:"matches" validate:"gte=0"`
}

// DominanceRatio returns service games won over return games won
func (s *ServeStats) DominanceRatio() (float64, bool) {
	if s == nil || s.ServiceGamesWon <= 0 || s.ReturnGamesWon <= 0 {
		return 0, false
	}
	return s.ServiceGamesWon / s.ReturnGamesWon, true
}

// PlayerSnapshot is a read-only view of a player supplied per evaluation.
// The engine never mutates a snapshot; callers may share it across evaluations.
type PlayerSnapshot struct {
	ID       string                    `json:"id" validate:"required"`
	Name     string                    `json:"name"`
	Rank     *int                      `json:"rank,omitempty" validate:"omitempty,gte=1"`
	Rating   *float64                  `json:"rating,omitempty" validate:"omitempty,gt=0"`
	Age      int                       `json:"age" validate:"gte=0,lte=60"`
	Recent   []MatchRecord             `json:"recent_matches" validate:"max=20,dive"`
	Surfaces map[Surface]SurfaceRecord `json:"surfaces" validate:"dive,keys,surface,endkeys"`
	Serve    *ServeStats               `json:"serve,omitempty"`
	Activity []time.Time               `json:"activity"`
}

// IsRanked checks if the player carries a nominal rank
func (p *PlayerSnapshot) IsRanked() bool {
	return p.Rank != nil && *p.Rank >= 1
}

// NominalRank returns the rank or 0 when unranked
func (p *PlayerSnapshot) NominalRank() int {
	if !p.IsRanked() {
		return 0
	}
	return *p.Rank
}

// LastMatch returns the most recent match, if any
func (p *PlayerSnapshot) LastMatch() (*MatchRecord, bool) {
	if len(p.Recent) == 0 {
		return nil, false
	}
	return &p.Recent[0], true
}

// SurfaceRecord returns the aggregates for a surface
func (p *PlayerSnapshot) SurfaceRecord(surface Surface) (SurfaceRecord, bool) {
	rec, ok := p.Surfaces[surface]
	return rec, ok
}

// ActivityBetween counts activity timestamps in [from, to)
func (p *PlayerSnapshot) ActivityBetween(from, to time.Time) int {
	count := 0
	for _, ts := range p.Activity {
		if !ts.Before(from) && ts.Before(to) {
			count++
		}
	}
	return count
}

// HeadToHead holds the meeting record between the two players
type HeadToHead struct {
	WinsA        int `json:"wins_a" validate:"gte=0"`
	WinsB        int `json:"wins_b" validate:"gte=0"`
	SurfaceWinsA int `json:"surface_wins_a" validate:"gte=0,ltefield=WinsA"`
	SurfaceWinsB int `json:"surface_wins_b" validate:"gte=0,ltefield=WinsB"`
}

// Meetings returns the total number of meetings
func (h HeadToHead) Meetings() int {
	return h.WinsA + h.WinsB
}

// SurfaceMeetings returns the number of meetings on the match surface
func (h HeadToHead) SurfaceMeetings() int {
	return h.SurfaceWinsA + h.SurfaceWinsB
}

// MatchInput is everything the engine needs for one (match, price snapshot) evaluation
type MatchInput struct {
	Match      MatchContext   `json:"match"`
	PlayerA    PlayerSnapshot `json:"player_a"`
	PlayerB    PlayerSnapshot `json:"player_b"`
	PriceA     float64        `json:"price_a" validate:"gt=1"`
	PriceB     float64        `json:"price_b" validate:"gt=1"`
	HeadToHead HeadToHead     `json:"head_to_head"`
}

// Player returns the snapshot for a side
func (in *MatchInput) Player(side Side) *PlayerSnapshot {
	if side == SideB {
		return &in.PlayerB
	}
	return &in.PlayerA
}

// Price returns the decimal price for a side
func (in *MatchInput) Price(side Side) float64 {
	if side == SideB {
		return in.PriceB
	}
	return in.PriceA
}
