package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/matchedge/internal/models"
)

func TestDefaultProfileValidates(t *testing.T) {
	p := DefaultProfile()

	require.NoError(t, ValidateProfile(p))
	assert.InDelta(t, 1.0, p.Weights.Vector().Sum(), 1e-12)
	assert.Len(t, p.Weights.Vector(), len(models.AllFactors))
}

func TestDefaultProfileIsFresh(t *testing.T) {
	a := DefaultProfile()
	b := DefaultProfile()

	a.Staking.Disagreement[0].Multiplier = 0.1
	assert.Equal(t, 1.0, b.Staking.Disagreement[0].Multiplier)
}

func TestLoadProfileOverrides(t *testing.T) {
	p, err := LoadAndValidateProfile("testdata/override_profile.yaml")
	require.NoError(t, err)

	assert.Equal(t, "aggressive", p.Name)
	assert.Equal(t, "2.1.0", p.Version)
	assert.Equal(t, 0.02, p.CommissionRate)
	assert.Equal(t, 0.15, p.Weights.Surface)
	assert.Equal(t, 0.25, p.Weights.Form)
	assert.Equal(t, 0.5, p.Staking.KellyFraction)

	// untouched keys keep their defaults
	assert.Equal(t, 0.20, p.Weights.Rank)
	assert.Equal(t, 3.0, p.Staking.MaxUnits)

	// lists replace rather than merge
	require.Len(t, p.Staking.Disagreement, 1)
	assert.Equal(t, 1.30, p.Staking.Disagreement[0].MaxRatio)
}

func TestLoadProfileEmptyPathReturnsDefault(t *testing.T) {
	p, err := LoadProfile("")
	require.NoError(t, err)
	assert.Equal(t, DefaultProfile(), p)
}

func TestLoadProfileMissingFile(t *testing.T) {
	_, err := LoadProfile("testdata/missing_profile.yaml")
	assert.Error(t, err)
}

func TestLoadProfileRejectsBadWeights(t *testing.T) {
	_, err := LoadAndValidateProfile("testdata/invalid_weights_profile.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sum to 1.0")
}

func TestValidateProfileCrossField(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Profile)
		wantErr string
	}{
		{
			name:    "weights do not sum to one",
			mutate:  func(p *Profile) { p.Weights.Momentum = 0.2 },
			wantErr: "factor weights",
		},
		{
			name:    "surface blend does not sum to one",
			mutate:  func(p *Profile) { p.Surface.RecentWeight = 0.5 },
			wantErr: "surface career_weight",
		},
		{
			name: "home bands out of order",
			mutate: func(p *Profile) {
				p.Context.HomeBands = []RankBand{{MaxRank: 100, Level: 3}, {MaxRank: 30, Level: 4}}
			},
			wantErr: "home_bands",
		},
		{
			name: "disagreement multipliers increase",
			mutate: func(p *Profile) {
				p.Staking.Disagreement = []DisagreementBand{{MaxRatio: 1.2, Multiplier: 0.5}, {MaxRatio: 1.5, Multiplier: 0.75}}
			},
			wantErr: "disagreement",
		},
		{
			name:    "overlapping gate bands",
			mutate:  func(p *Profile) { p.Classifier.Middle.MinPrice = 1.70 },
			wantErr: "gate bands",
		},
		{
			name:    "min units below granularity",
			mutate:  func(p *Profile) { p.Staking.Granularity = 1.0 },
			wantErr: "granularity",
		},
		{
			name:    "missing version",
			mutate:  func(p *Profile) { p.Version = "" },
			wantErr: "Version",
		},
		{
			name:    "dominance bounds inverted",
			mutate:  func(p *Profile) { p.Form.DominanceMax = 0.5 },
			wantErr: "DominanceMax",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultProfile()
			tt.mutate(p)

			err := ValidateProfile(p)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDisagreementMultiplier(t *testing.T) {
	s := DefaultProfile().Staking

	assert.Equal(t, 1.0, s.DisagreementMultiplier(1.10))
	assert.Equal(t, 1.0, s.DisagreementMultiplier(1.20))
	assert.Equal(t, 0.75, s.DisagreementMultiplier(1.276))
	assert.Equal(t, 0.50, s.DisagreementMultiplier(1.80))
}

func TestRequiredMatches(t *testing.T) {
	dq := DefaultProfile().Staking.DataQuality

	assert.Equal(t, 5, dq.RequiredMatches(1.0))
	assert.Equal(t, 5, dq.RequiredMatches(1.5))
	assert.Equal(t, 8, dq.RequiredMatches(2.0))
	assert.Equal(t, 12, dq.RequiredMatches(2.75))
}

func TestTierFor(t *testing.T) {
	s := DefaultProfile().Staking

	assert.Equal(t, models.StakeTierNone, s.TierFor(0))
	assert.Equal(t, models.StakeTierSmall, s.TierFor(0.75))
	assert.Equal(t, models.StakeTierStandard, s.TierFor(1.5))
	assert.Equal(t, models.StakeTierStrong, s.TierFor(2.75))
	assert.Equal(t, models.StakeTierMax, s.TierFor(3.0))
}

func TestGateBandContains(t *testing.T) {
	p := DefaultProfile().Classifier

	assert.True(t, p.Favorite.Contains(1.30))
	assert.False(t, p.Favorite.Contains(1.80))
	assert.True(t, p.Middle.Contains(1.80))
	assert.True(t, p.Underdog.Contains(4.00))
	assert.False(t, p.Underdog.Contains(4.01))
}
