package adjuster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/matchedge/internal/config"
	"github.com/yourusername/matchedge/internal/models"
	"github.com/yourusername/matchedge/internal/testutil"
)

func scoresWith(values map[models.FactorName]float64, missing ...models.FactorName) models.FactorSet {
	set := make(models.FactorSet)
	for _, name := range models.AllFactors {
		set[name] = models.FactorScore{Name: name, Value: values[name], HasData: true}
	}
	for _, name := range missing {
		set[name] = models.NoData(name, 0, "missing")
	}
	return set
}

func newInput(scores models.FactorSet) *Input {
	raw := testutil.Input()
	return &Input{
		Match:       raw.Match,
		PlayerA:     &raw.PlayerA,
		PlayerB:     &raw.PlayerB,
		Scores:      scores,
		RankRatingA: 1850,
		RankRatingB: 1680,
	}
}

func TestAdjustKeepsBaseWeightsWithFullData(t *testing.T) {
	profile := config.DefaultProfile()

	result, err := Adjust(newInput(scoresWith(nil)), profile)
	require.NoError(t, err)

	base := profile.Weights.Vector()
	for _, name := range models.AllFactors {
		assert.InDelta(t, base[name], result.Weights[name], 1e-12, "%s", name)
	}
	assert.False(t, result.LargeGap)
	assert.False(t, result.RankBoosted)
}

func TestAdjustRedistribution(t *testing.T) {
	tests := []struct {
		name    string
		missing []models.FactorName
		want    map[models.FactorName]float64
	}{
		{
			name:    "form moves to rank",
			missing: []models.FactorName{models.FactorForm},
			want:    map[models.FactorName]float64{models.FactorForm: 0, models.FactorRank: 0.40, models.FactorSurface: 0.20},
		},
		{
			name:    "several factors move to rank",
			missing: []models.FactorName{models.FactorSurface, models.FactorHeadToHead, models.FactorMomentum},
			want:    map[models.FactorName]float64{models.FactorRank: 0.55, models.FactorForm: 0.20},
		},
		{
			name:    "rank missing spreads proportionally",
			missing: []models.FactorName{models.FactorRank, models.FactorForm},
			want: map[models.FactorName]float64{
				models.FactorRank:    0,
				models.FactorForm:    0,
				models.FactorSurface: 0.20 / 0.60,
				models.FactorFatigue: 0.10 / 0.60,
			},
		},
		{
			name:    "nothing has data",
			missing: models.AllFactors,
			want:    map[models.FactorName]float64{models.FactorRank: 1, models.FactorForm: 0, models.FactorSurface: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Adjust(newInput(scoresWith(nil, tt.missing...)), config.DefaultProfile())
			require.NoError(t, err)

			for name, want := range tt.want {
				assert.InDelta(t, want, result.Weights[name], 1e-12, "%s", name)
			}
			assert.InDelta(t, 1.0, result.Weights.Sum(), 1e-9)
		})
	}
}

func TestAdjustWeightsAlwaysSumToOne(t *testing.T) {
	profile := config.DefaultProfile()

	for mask := 0; mask < 1<<len(models.AllFactors); mask++ {
		var missing []models.FactorName
		for i, name := range models.AllFactors {
			if mask&(1<<i) != 0 {
				missing = append(missing, name)
			}
		}
		for _, gap := range []float64{0, 300, 900} {
			in := newInput(scoresWith(nil, missing...))
			in.RankRatingA, in.RankRatingB = 1500+gap, 1500

			result, err := Adjust(in, profile)
			require.NoError(t, err, "mask %08b gap %v", mask, gap)
			assert.InDelta(t, 1.0, result.Weights.Sum(), 1e-9, "mask %08b gap %v", mask, gap)
			for _, name := range models.AllFactors {
				assert.GreaterOrEqual(t, result.Weights[name], 0.0)
			}
		}
	}
}

func TestAdjustLargeGapBoost(t *testing.T) {
	profile := config.DefaultProfile()

	t.Run("boosts rank and rescales the rest", func(t *testing.T) {
		in := newInput(scoresWith(nil))
		in.RankRatingA, in.RankRatingB = 2300, 1900

		result, err := Adjust(in, profile)
		require.NoError(t, err)
		assert.True(t, result.LargeGap)
		assert.True(t, result.RankDominant)
		assert.True(t, result.RankBoosted)
		assert.InDelta(t, 0.30, result.Weights[models.FactorRank], 1e-12)
		assert.InDelta(t, 0.20*0.70/0.80, result.Weights[models.FactorForm], 1e-12)
	})

	t.Run("capped", func(t *testing.T) {
		in := newInput(scoresWith(nil, models.FactorSurface, models.FactorHeadToHead, models.FactorMomentum))
		in.RankRatingA, in.RankRatingB = 2300, 1900

		result, err := Adjust(in, profile)
		require.NoError(t, err)
		assert.InDelta(t, 0.60, result.Weights[models.FactorRank], 1e-12)
	})

	t.Run("never reduces rank weight", func(t *testing.T) {
		in := newInput(scoresWith(nil,
			models.FactorSurface, models.FactorForm, models.FactorHeadToHead, models.FactorMomentum))
		in.RankRatingA, in.RankRatingB = 2300, 1900

		result, err := Adjust(in, profile)
		require.NoError(t, err)
		assert.False(t, result.RankBoosted)
		assert.InDelta(t, 0.75, result.Weights[models.FactorRank], 1e-12)
	})

	t.Run("suppressed by breakout", func(t *testing.T) {
		in := newInput(scoresWith(nil))
		in.RankRatingA, in.RankRatingB = 2300, 1900
		in.Overrides = map[models.Side]models.EffectiveRank{
			models.SideB: {Side: models.SideB, Nominal: 120, Implied: 60, Effective: 90},
		}

		result, err := Adjust(in, profile)
		require.NoError(t, err)
		assert.True(t, result.LargeGap)
		assert.False(t, result.RankDominant)
		assert.InDelta(t, 0.20, result.Weights[models.FactorRank], 1e-12)
	})

	t.Run("needs rank data", func(t *testing.T) {
		in := newInput(scoresWith(nil, models.FactorRank))
		in.RankRatingA, in.RankRatingB = 2300, 1900

		result, err := Adjust(in, profile)
		require.NoError(t, err)
		assert.False(t, result.LargeGap)
	})
}

func TestAdjustDisplacementDiscount(t *testing.T) {
	values := map[models.FactorName]float64{
		models.FactorRank:       0.5,
		models.FactorRating:     -0.2,
		models.FactorHeadToHead: 0.3,
		models.FactorForm:       0.4,
	}
	in := newInput(scoresWith(values))
	in.Match.Tier = models.TierChallenger

	result, err := Adjust(in, config.DefaultProfile())
	require.NoError(t, err)

	// A (rank 20) is two levels down; B (rank 45) one level down
	require.Len(t, result.Displacements, 2)
	assert.Equal(t, 2, result.Displacements[0].Levels)
	assert.InDelta(t, 0.20, result.Displacements[0].Discount, 1e-12)
	assert.Equal(t, 1, result.Displacements[1].Levels)
	assert.True(t, result.HeavyDisplacement)

	assert.InDelta(t, 0.40, result.Factors[models.FactorRank].Value, 1e-12)
	assert.InDelta(t, 0.24, result.Factors[models.FactorHeadToHead].Value, 1e-12)
	assert.InDelta(t, -0.18, result.Factors[models.FactorRating].Value, 1e-12)
	assert.InDelta(t, 0.40, result.Factors[models.FactorForm].Value, 1e-12)

	// the input set is not modified
	assert.Equal(t, 0.5, in.Scores[models.FactorRank].Value)
}

func TestHomeLevel(t *testing.T) {
	cfg := config.DefaultProfile().Context
	match := testutil.Input().Match

	challenger := testutil.Win(5, 200)
	challenger.Tier = models.TierChallenger
	itf := testutil.Win(9, 400)
	itf.Tier = models.TierITF

	tests := []struct {
		name     string
		player   models.PlayerSnapshot
		override *models.EffectiveRank
		want     int
	}{
		{name: "top 30", player: testutil.Player("p", 30), want: 4},
		{name: "top 100", player: testutil.Player("p", 31), want: 3},
		{name: "top 300", player: testutil.Player("p", 300), want: 2},
		{name: "outside bands", player: testutil.Player("p", 301), want: 1},
		{name: "override rank", player: testutil.Player("p", 150), override: &models.EffectiveRank{Effective: 90}, want: 3},
		{name: "unranked by history", player: testutil.Player("p", 0, challenger, challenger, itf), want: 2},
		{name: "unranked tie goes higher", player: testutil.Player("p", 0, challenger, itf), want: 2},
		{name: "unranked without history", player: testutil.Player("p", 0), want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HomeLevel(&tt.player, tt.override, match, cfg))
		})
	}
}
