package staking

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/matchedge/internal/classifier"
	"github.com/yourusername/matchedge/internal/config"
	"github.com/yourusername/matchedge/internal/models"
	"github.com/yourusername/matchedge/internal/testutil"
)

func assessment(price, probability float64, tags ...string) *models.EdgeAssessment {
	edge := probability - 1/price
	return &models.EdgeAssessment{
		Selection:          models.SideA,
		Price:              price,
		OpponentPrice:      1.70,
		Probability:        probability,
		ImpliedProbability: 1 / price,
		RawEdge:            edge,
		Edge:               edge,
		ExpectedValue:      probability*price - 1,
		ServeAlignment:     models.ServeNeutral,
		ServeMultiplier:    1,
		ActivityMultiplier: 1,
		Tags:               tags,
	}
}

func scenario(e *models.EdgeAssessment) *Input {
	raw := testutil.Input()
	factors := make(models.FactorSet)
	for _, name := range models.AllFactors {
		factors[name] = models.FactorScore{Name: name, Value: 0.1, HasData: true}
	}
	return &Input{
		Edge:      e,
		Factors:   factors,
		Weights:   config.DefaultProfile().Weights.Vector(),
		Advantage: 0.1,
		PlayerA:   &raw.PlayerA,
		PlayerB:   &raw.PlayerB,
		MatchDate: raw.Match.Date,
	}
}

func labels(rec models.StakeRecommendation) []string {
	out := make([]string, 0, len(rec.Modifiers))
	for _, m := range rec.Modifiers {
		out = append(out, m.Label)
	}
	return out
}

func TestRecommendReferenceScenario(t *testing.T) {
	cfg := config.DefaultProfile().Staking

	rec := Recommend(scenario(assessment(2.20, 0.58, classifier.TagMidValue)), cfg)

	assert.Empty(t, rec.RejectionReason)
	assert.Equal(t, 1.5, rec.Units)
	assert.InDelta(t, 1.47, rec.PreCapUnits, 0.001)
	assert.InDelta(t, 0.03, rec.BankrollFraction, 1e-12)
	assert.Equal(t, models.StakeTierStandard, rec.Tier)
	assert.Equal(t, []string{LabelKellyFull, LabelFractionalKelly, LabelDisagreement}, labels(rec))
	assert.InDelta(t, 0.1046, rec.Modifiers[0].Multiplier, 1e-4)
	assert.Equal(t, 0.375, rec.Modifiers[1].Multiplier)
	assert.Equal(t, 0.75, rec.Modifiers[2].Multiplier)
}

func TestRecommendRejections(t *testing.T) {
	cfg := config.DefaultProfile().Staking

	tests := []struct {
		name   string
		input  func() *Input
		reason string
	}{
		{
			name:   "non-positive edge",
			input:  func() *Input { return scenario(assessment(2.20, 0.40, classifier.TagMidValue)) },
			reason: RejectNonPositiveEdge,
		},
		{
			name: "expected value below floor",
			input: func() *Input {
				e := assessment(2.20, 0.58, classifier.TagMidValue)
				e.ExpectedValue = 0.01
				return scenario(e)
			},
			reason: RejectEVBelowFloor,
		},
		{
			name:   "price below floor",
			input:  func() *Input { return scenario(assessment(1.25, 0.90, classifier.TagFavValue)) },
			reason: RejectPriceBelowFloor,
		},
		{
			name:   "no gate tag",
			input:  func() *Input { return scenario(assessment(2.20, 0.58, classifier.TagThinSample)) },
			reason: RejectNoGateTag,
		},
		{
			name: "counter signal",
			input: func() *Input {
				e := assessment(3.20, 0.42, classifier.TagDogValue, classifier.TagFade)
				e.Counter = &models.CounterRecommendation{Side: models.SideB, Price: 1.36, Reason: classifier.TagFade}
				return scenario(e)
			},
			reason: RejectCounterSignal,
		},
		{
			name: "insufficient data",
			input: func() *Input {
				in := scenario(assessment(2.20, 0.58, classifier.TagMidValue))
				in.PlayerB.Recent = in.PlayerB.Recent[:1]
				return in
			},
			reason: RejectInsufficientData,
		},
		{
			name:   "below minimum stake",
			input:  func() *Input { return scenario(assessment(2.20, 0.47, classifier.TagMidValue)) },
			reason: RejectBelowMinStake,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Recommend(tt.input(), cfg)
			assert.Equal(t, tt.reason, rec.RejectionReason)
			assert.Zero(t, rec.Units)
			assert.Equal(t, models.StakeTierNone, rec.Tier)
			assert.False(t, rec.IsStaked())
		})
	}
}

func TestRecommendDataQualityFallback(t *testing.T) {
	cfg := config.DefaultProfile().Staking

	t.Run("verified by activity", func(t *testing.T) {
		in := scenario(assessment(2.20, 0.58, classifier.TagMidValue))
		in.PlayerB.Recent = in.PlayerB.Recent[:3]
		for d := 3; d <= 63; d += 12 {
			in.PlayerB.Activity = append(in.PlayerB.Activity, testutil.DaysAgo(d))
		}

		rec := Recommend(in, cfg)
		assert.Contains(t, labels(rec), LabelFallbackVerified)
		assert.Contains(t, labels(rec), LabelThinForm)
		// 1.47 * 0.90 rounds to 1.25
		assert.Equal(t, 1.25, rec.Units)
	})

	t.Run("partially verified", func(t *testing.T) {
		in := scenario(assessment(2.20, 0.58, classifier.TagMidValue))
		in.PlayerB.Recent = in.PlayerB.Recent[:3]

		rec := Recommend(in, cfg)
		assert.Contains(t, labels(rec), LabelPartialData)
		// 1.47 * 0.5 is below the confidence threshold and rounds to 0.75
		assert.NotContains(t, labels(rec), LabelThinForm)
		assert.Equal(t, 0.75, rec.Units)
		assert.Equal(t, models.StakeTierSmall, rec.Tier)
	})
}

func TestRecommendConfidenceReductions(t *testing.T) {
	cfg := config.DefaultProfile().Staking

	in := scenario(assessment(2.20, 0.58, classifier.TagMidValue))
	in.Factors[models.FactorSurface] = models.NoData(models.FactorSurface, 0.2, "")
	in.Factors[models.FactorHeadToHead] = models.NoData(models.FactorHeadToHead, 0.05, "")
	in.Factors[models.FactorRank] = models.FactorScore{Name: models.FactorRank, Value: 1, HasData: true}
	in.PlayerA.Recent = in.PlayerA.Recent[:5]

	rec := Recommend(in, cfg)
	assert.Equal(t, []string{
		LabelKellyFull, LabelFractionalKelly, LabelDisagreement,
		LabelNoSurface, LabelNoHeadToHead, LabelThinForm, LabelRankDominated,
	}, labels(rec))
	// 1.47 * 0.85 * 0.95 * 0.90 * 0.85 = 0.908
	assert.Equal(t, 1.0, rec.Units)

	t.Run("floor", func(t *testing.T) {
		cfg := config.DefaultProfile().Staking
		cfg.Confidence.Floor = 0.70

		rec := Recommend(in, cfg)
		require.NotEmpty(t, rec.Modifiers)
		last := rec.Modifiers[len(rec.Modifiers)-1]
		assert.Equal(t, LabelConfidenceFloor, last.Label)
		assert.Greater(t, last.Multiplier, 1.0)
		assert.Equal(t, 1.0, rec.Units)
	})
}

func TestRecommendCapAndPremium(t *testing.T) {
	cfg := config.DefaultProfile().Staking

	in := scenario(assessment(2.20, 0.80, classifier.TagMidValue, classifier.TagPremium))
	for d := 2; d <= 24; d += 2 {
		in.PlayerA.Activity = append(in.PlayerA.Activity, testutil.DaysAgo(d))
		in.PlayerB.Activity = append(in.PlayerB.Activity, testutil.DaysAgo(d))
	}

	rec := Recommend(in, cfg)
	assert.Contains(t, labels(rec), LabelPremium)
	assert.Greater(t, rec.PreCapUnits, cfg.MaxUnits)
	assert.Equal(t, 3.0, rec.Units)
	assert.Equal(t, models.StakeTierMax, rec.Tier)
}

func TestRecommendCapOffGranularity(t *testing.T) {
	profile := config.DefaultProfile()
	profile.Staking.MaxUnits = 2.9
	require.NoError(t, config.ValidateProfile(profile))

	in := scenario(assessment(2.20, 0.80, classifier.TagMidValue, classifier.TagPremium))
	for d := 2; d <= 24; d += 2 {
		in.PlayerA.Activity = append(in.PlayerA.Activity, testutil.DaysAgo(d))
		in.PlayerB.Activity = append(in.PlayerB.Activity, testutil.DaysAgo(d))
	}

	rec := Recommend(in, profile.Staking)
	assert.Greater(t, rec.PreCapUnits, 2.9)
	assert.Equal(t, 2.75, rec.Units, "capped to the last granularity step under max_units")
	assert.Equal(t, models.StakeTierStrong, rec.Tier)
}

func TestRecommendEdgeModifiers(t *testing.T) {
	cfg := config.DefaultProfile().Staking

	e := assessment(2.20, 0.58, classifier.TagMidValue)
	e.ServeMultiplier = 0.875
	e.ActivityMultiplier = 0.85
	e.Edge = e.RawEdge * 0.875 * 0.85

	rec := Recommend(scenario(e), cfg)
	require.Len(t, rec.Modifiers, 4)
	assert.Equal(t, LabelEdgeModifiers, rec.Modifiers[3].Label)
	assert.Equal(t, 0.85, rec.Modifiers[3].Multiplier)
}

func TestPreCapUnitsMonotonicInEdge(t *testing.T) {
	cfg := config.DefaultProfile().Staking
	price := 2.20

	previous := 0.0
	for edge := 0.01; edge <= 0.09; edge += 0.005 {
		rec := Recommend(scenario(assessment(price, 1/price+edge, classifier.TagMidValue)), cfg)
		require.NotEqual(t, RejectNonPositiveEdge, rec.RejectionReason)
		assert.GreaterOrEqual(t, rec.PreCapUnits, previous, "edge %v", edge)
		previous = rec.PreCapUnits
	}
}

func TestStakeRange(t *testing.T) {
	for _, maxUnits := range []float64{3.0, 2.9} {
		cfg := config.DefaultProfile().Staking
		cfg.MaxUnits = maxUnits

		for price := 1.30; price <= 5.0; price += 0.1 {
			for p := 0.30; p <= 0.90; p += 0.05 {
				rec := Recommend(scenario(assessment(price, p, classifier.TagMidValue)), cfg)

				assert.GreaterOrEqual(t, rec.Units, 0.0)
				assert.LessOrEqual(t, rec.Units, cfg.MaxUnits, "max %v price %v p %v", maxUnits, price, p)
				if rec.Units > 0 {
					assert.GreaterOrEqual(t, rec.Units, cfg.MinUnits)
					assert.Empty(t, rec.RejectionReason)
				} else {
					assert.NotEmpty(t, rec.RejectionReason)
				}
				steps := rec.Units / cfg.Granularity
				assert.InDelta(t, math.Round(steps), steps, 1e-9)
			}
		}
	}
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 1.5, roundTo(1.47, 0.25))
	assert.Equal(t, 1.5, roundTo(1.375, 0.25))
	assert.Equal(t, 1.0, roundTo(1.12, 0.25))
	assert.Equal(t, 0.25, roundTo(0.242, 0.25))
	assert.Equal(t, 3.0, roundTo(3.0, 0.25))
}

func TestCapUnits(t *testing.T) {
	assert.Equal(t, 3.0, capUnits(3.0, 0.25))
	assert.Equal(t, 2.75, capUnits(2.9, 0.25))
	assert.Equal(t, 2.5, capUnits(2.5, 0.5))
	assert.Equal(t, 0.3, capUnits(0.35, 0.1))
}
