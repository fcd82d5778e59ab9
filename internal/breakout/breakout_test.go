package breakout

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/matchedge/internal/config"
	"github.com/yourusername/matchedge/internal/models"
	"github.com/yourusername/matchedge/internal/testutil"
)

func TestDetect(t *testing.T) {
	cfg := config.DefaultProfile().Breakout

	tests := []struct {
		name      string
		rank      int
		age       int
		recent    []models.MatchRecord
		triggered bool
		implied   int
		effective int
		blend     float64
	}{
		{
			name:      "two quality wins",
			rank:      120,
			recent:    []models.MatchRecord{testutil.Win(5, 30), testutil.Win(20, 50)},
			triggered: true,
			implied:   60,
			effective: 90,
			blend:     0.5,
		},
		{
			name:      "three quality wins",
			rank:      120,
			recent:    []models.MatchRecord{testutil.Win(5, 30), testutil.Win(12, 40), testutil.Win(20, 50)},
			triggered: true,
			implied:   60,
			effective: 84,
			blend:     0.6,
		},
		{
			name:      "youth bonus",
			rank:      120,
			age:       20,
			recent:    []models.MatchRecord{testutil.Win(5, 30), testutil.Win(20, 50)},
			triggered: true,
			implied:   60,
			effective: 84,
			blend:     0.6,
		},
		{
			name: "blend capped",
			rank: 200,
			age:  19,
			recent: []models.MatchRecord{
				testutil.Win(2, 50), testutil.Win(4, 50), testutil.Win(6, 50),
				testutil.Win(8, 50), testutil.Win(10, 50), testutil.Win(12, 50),
			},
			triggered: true,
			implied:   75,
			effective: 106,
			blend:     0.75,
		},
		{
			name:   "single quality win",
			rank:   120,
			recent: []models.MatchRecord{testutil.Win(5, 30), testutil.Win(20, 100)},
		},
		{
			name:   "quality loss does not count",
			rank:   120,
			recent: []models.MatchRecord{testutil.Win(5, 30), testutil.Loss(20, 50)},
		},
		{
			name:   "win outside window",
			rank:   120,
			recent: []models.MatchRecord{testutil.Win(5, 30), testutil.Win(75, 50)},
		},
		{
			name:   "rank not above threshold",
			rank:   40,
			recent: []models.MatchRecord{testutil.Win(5, 10), testutil.Win(20, 15)},
		},
		{
			name:   "unranked",
			rank:   0,
			recent: []models.MatchRecord{testutil.Win(5, 10), testutil.Win(20, 15)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testutil.Player("p", tt.rank, tt.recent...)
			p.Age = tt.age

			er, err := Detect(models.SideB, &p, testutil.MatchDate, cfg)
			require.NoError(t, err)
			if !tt.triggered {
				assert.Nil(t, er)
				return
			}

			require.NotNil(t, er)
			assert.Equal(t, models.SideB, er.Side)
			assert.Equal(t, tt.rank, er.Nominal)
			assert.Equal(t, tt.implied, er.Implied)
			assert.Equal(t, tt.effective, er.Effective)
			assert.InDelta(t, tt.blend, er.Blend, 1e-12)
		})
	}
}

func TestDetectBounds(t *testing.T) {
	for _, multiplier := range []float64{1.0, 1.5, 2.0, 3.0, 10.0} {
		for _, rank := range []int{41, 60, 120, 500} {
			cfg := config.DefaultProfile().Breakout
			cfg.ImpliedMultiplier = multiplier
			quality := max(1, rank/2)
			p := testutil.Player("p", rank, testutil.Win(3, quality), testutil.Win(9, max(1, quality/2)))

			er, err := Detect(models.SideA, &p, testutil.MatchDate, cfg)
			require.NoError(t, err)
			require.NotNil(t, er, "rank %d multiplier %v", rank, multiplier)

			assert.LessOrEqual(t, er.Implied, er.Effective)
			assert.LessOrEqual(t, er.Effective, er.Nominal)
			assert.GreaterOrEqual(t, er.Implied, 1)
		}
	}
}

func TestDetectAll(t *testing.T) {
	in := testutil.Input()
	in.PlayerB = testutil.Player("b", 120, testutil.Win(5, 30), testutil.Win(20, 50))

	list, err := DetectAll(in, config.DefaultProfile().Breakout)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.SideB, list[0].Side)

	overrides := Overrides(list)
	assert.Contains(t, overrides, models.SideB)
	assert.NotContains(t, overrides, models.SideA)
}

func TestCheck(t *testing.T) {
	err := Check(&models.EffectiveRank{Side: models.SideA, Nominal: 50, Implied: 30, Effective: 60})
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrInvariantViolation))

	assert.NoError(t, Check(&models.EffectiveRank{Nominal: 50, Implied: 30, Effective: 40}))
}
