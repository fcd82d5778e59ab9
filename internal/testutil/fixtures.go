// Package testutil provides match fixtures shared by package tests.
package testutil

import (
	"time"

	"github.com/yourusername/matchedge/internal/models"
)

// MatchDate is the date of every fixture match
var MatchDate = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

// IntPtr returns a pointer to v
func IntPtr(v int) *int {
	return &v
}

// FloatPtr returns a pointer to v
func FloatPtr(v float64) *float64 {
	return &v
}

// DaysAgo returns the fixture match date minus the given days
func DaysAgo(days int) time.Time {
	return MatchDate.AddDate(0, 0, -days)
}

// Win returns a straight-sets hard-court ATP 250 win
func Win(daysAgo, opponentRank int) models.MatchRecord {
	return models.MatchRecord{
		OpponentID:   "opp",
		OpponentRank: opponentRank,
		Surface:      models.SurfaceHard,
		Date:         DaysAgo(daysAgo),
		Tier:         models.TierATP250,
		BestOf:       3,
		Sets:         []models.SetScore{{Player: 6, Opponent: 4}, {Player: 6, Opponent: 4}},
		Won:          true,
	}
}

// Loss returns a straight-sets hard-court ATP 250 loss
func Loss(daysAgo, opponentRank int) models.MatchRecord {
	m := Win(daysAgo, opponentRank)
	m.Sets = []models.SetScore{{Player: 4, Opponent: 6}, {Player: 4, Opponent: 6}}
	m.Won = false
	return m
}

// Player builds a snapshot with hard-court records and serve stats. A rank of 0 is unranked.
func Player(id string, rank int, recent ...models.MatchRecord) models.PlayerSnapshot {
	p := models.PlayerSnapshot{
		ID:     id,
		Name:   id,
		Age:    26,
		Recent: recent,
		Surfaces: map[models.Surface]models.SurfaceRecord{
			models.SurfaceHard: {CareerWins: 24, CareerMatches: 40, RecentWins: 9, RecentMatches: 15},
		},
		Serve: &models.ServeStats{ServiceGamesWon: 0.80, ReturnGamesWon: 0.25, Matches: 20},
	}
	if rank > 0 {
		p.Rank = IntPtr(rank)
	}
	return p
}

// Input returns a complete, valid evaluation input between a rank 20 and a rank 45 player
func Input() *models.MatchInput {
	return &models.MatchInput{
		Match: models.MatchContext{
			ID:      "m-2024-0610-01",
			Surface: models.SurfaceHard,
			Tier:    models.TierATP250,
			Date:    MatchDate,
			BestOf:  3,
		},
		PlayerA: Player("player-a", 20,
			Win(5, 30), Win(9, 55), Win(14, 25), Win(20, 70),
			Win(28, 40), Loss(35, 8), Loss(42, 15), Win(50, 60),
		),
		PlayerB: Player("player-b", 45,
			Win(6, 90), Loss(10, 30), Win(16, 120), Loss(22, 25),
			Win(30, 80), Loss(40, 50), Loss(48, 12), Win(55, 100),
		),
		PriceA:     1.80,
		PriceB:     2.10,
		HeadToHead: models.HeadToHead{WinsA: 2, WinsB: 1, SurfaceWinsA: 1, SurfaceWinsB: 1},
	}
}
