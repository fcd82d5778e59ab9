package models

import (
	"time"
)

// Surface represents the court surface a match is played on
type Surface string

const (
	SurfaceHard   Surface = "hard"
	SurfaceClay   Surface = "clay"
	SurfaceGrass  Surface = "grass"
	SurfaceCarpet Surface = "carpet"
)

// IsValid checks if the surface is one of the known surfaces
func (s Surface) IsValid() bool {
	switch s {
	case SurfaceHard, SurfaceClay, SurfaceGrass, SurfaceCarpet:
		return true
	default:
		return false
	}
}

// Tier represents the tournament category of a match
type Tier string

const (
	TierGrandSlam  Tier = "grand_slam"
	TierMasters    Tier = "masters"
	TierATP500     Tier = "atp500"
	TierATP250     Tier = "atp250"
	TierChallenger Tier = "challenger"
	TierITF        Tier = "itf"
)

// IsValid checks if the tier is one of the known tiers
func (t Tier) IsValid() bool {
	return t.Level() > 0
}

// Level returns the competitive level of the tier (4 highest, 1 lowest, 0 unknown)
func (t Tier) Level() int {
	switch t {
	case TierGrandSlam, TierMasters:
		return 4
	case TierATP500, TierATP250:
		return 3
	case TierChallenger:
		return 2
	case TierITF:
		return 1
	default:
		return 0
	}
}

// MatchContext describes the match being evaluated
type MatchContext struct {
	ID      string    `json:"id" validate:"required"`
	Surface Surface   `json:"surface" validate:"required,surface"`
	Tier    Tier      `json:"tier" validate:"required,tier"`
	Date    time.Time `json:"date" validate:"required"`
	BestOf  int       `json:"best_of" validate:"oneof=3 5"`
}

// SetScore is the game count of a single set from the player's perspective
type SetScore struct {
	Player   int `json:"player" validate:"gte=0,lte=99"`
	Opponent int `json:"opponent" validate:"gte=0,lte=99"`
}

// MatchRecord is one completed match in a player's history
type MatchRecord struct {
	OpponentID   string     `json:"opponent_id"`
	OpponentRank int        `json:"opponent_rank" validate:"gte=0"` // 0 when unranked
	Surface      Surface    `json:"surface" validate:"required,surface"`
	Date         time.Time  `json:"date" validate:"required"`
	Tier         Tier       `json:"tier" validate:"required,tier"`
	BestOf       int        `json:"best_of" validate:"oneof=3 5"`
	Sets         []SetScore `json:"sets" validate:"required,min=1,max=5,dive"`
	Won          bool       `json:"won"`
}

// SetsPlayed returns the number of sets in the match
func (m *MatchRecord) SetsPlayed() int {
	return len(m.Sets)
}

// WentDistance checks if the match reached a deciding set
func (m *MatchRecord) WentDistance() bool {
	return m.BestOf > 0 && len(m.Sets) >= m.BestOf
}

// Games returns total games won and lost by the player
func (m *MatchRecord) Games() (won, lost int) {
	for _, set := range m.Sets {
		won += set.Player
		lost += set.Opponent
	}
	return won, lost
}

// DaysBefore returns whole days between the match and a reference date
func (m *MatchRecord) DaysBefore(ref time.Time) float64 {
	return ref.Sub(m.Date).Hours() / 24
}
