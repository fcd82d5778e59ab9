package config

import (
	"github.com/yourusername/matchedge/internal/models"
)

// Profile is the complete weight and threshold set used by one evaluation.
// A profile is never mutated after loading; callers swap whole profiles.
type Profile struct {
	Name           string            `mapstructure:"name" json:"name" validate:"required"`
	Version        string            `mapstructure:"version" json:"version" validate:"required"`
	CommissionRate float64           `mapstructure:"commission_rate" json:"commission_rate" validate:"gte=0,lt=0.5"`
	Weights        WeightsConfig     `mapstructure:"weights" json:"weights"`
	Ratings        RatingsConfig     `mapstructure:"ratings" json:"ratings"`
	Stability      StabilityConfig   `mapstructure:"stability" json:"stability"`
	Form           FormConfig        `mapstructure:"form" json:"form"`
	Surface        SurfaceConfig     `mapstructure:"surface" json:"surface"`
	Rating         RatingConfig      `mapstructure:"rating" json:"rating"`
	Fatigue        FatigueConfig     `mapstructure:"fatigue" json:"fatigue"`
	RecentLoss     RecentLossConfig  `mapstructure:"recent_loss" json:"recent_loss"`
	HeadToHead     HeadToHeadConfig  `mapstructure:"head_to_head" json:"head_to_head"`
	Momentum       MomentumConfig    `mapstructure:"momentum" json:"momentum"`
	Breakout       BreakoutConfig    `mapstructure:"breakout" json:"breakout"`
	Context        ContextConfig     `mapstructure:"context" json:"context"`
	Probability    ProbabilityConfig `mapstructure:"probability" json:"probability"`
	Edge           EdgeConfig        `mapstructure:"edge" json:"edge"`
	Classifier     ClassifierConfig  `mapstructure:"classifier" json:"classifier"`
	Staking        StakingConfig     `mapstructure:"staking" json:"staking"`
}

// WeightsConfig holds the base factor weights; they must sum to 1.0
type WeightsConfig struct {
	Surface    float64 `mapstructure:"surface" json:"surface" validate:"gte=0,lte=1"`
	Form       float64 `mapstructure:"form" json:"form" validate:"gte=0,lte=1"`
	Fatigue    float64 `mapstructure:"fatigue" json:"fatigue" validate:"gte=0,lte=1"`
	Rank       float64 `mapstructure:"rank" json:"rank" validate:"gte=0,lte=1"`
	Rating     float64 `mapstructure:"rating" json:"rating" validate:"gte=0,lte=1"`
	RecentLoss float64 `mapstructure:"recent_loss" json:"recent_loss" validate:"gte=0,lte=1"`
	HeadToHead float64 `mapstructure:"head_to_head" json:"head_to_head" validate:"gte=0,lte=1"`
	Momentum   float64 `mapstructure:"momentum" json:"momentum" validate:"gte=0,lte=1"`
}

// Vector returns the weights keyed by factor name
func (w WeightsConfig) Vector() models.WeightVector {
	return models.WeightVector{
		models.FactorSurface:    w.Surface,
		models.FactorForm:       w.Form,
		models.FactorFatigue:    w.Fatigue,
		models.FactorRank:       w.Rank,
		models.FactorRating:     w.Rating,
		models.FactorRecentLoss: w.RecentLoss,
		models.FactorHeadToHead: w.HeadToHead,
		models.FactorMomentum:   w.Momentum,
	}
}

// TierTable holds one value per tournament tier
type TierTable struct {
	GrandSlam  float64 `mapstructure:"grand_slam" json:"grand_slam" validate:"gt=0"`
	Masters    float64 `mapstructure:"masters" json:"masters" validate:"gt=0"`
	ATP500     float64 `mapstructure:"atp500" json:"atp500" validate:"gt=0"`
	ATP250     float64 `mapstructure:"atp250" json:"atp250" validate:"gt=0"`
	Challenger float64 `mapstructure:"challenger" json:"challenger" validate:"gt=0"`
	ITF        float64 `mapstructure:"itf" json:"itf" validate:"gt=0"`
}

// For returns the value for a tier, or the ATP250 value for unknown tiers
func (t TierTable) For(tier models.Tier) float64 {
	switch tier {
	case models.TierGrandSlam:
		return t.GrandSlam
	case models.TierMasters:
		return t.Masters
	case models.TierATP500:
		return t.ATP500
	case models.TierChallenger:
		return t.Challenger
	case models.TierITF:
		return t.ITF
	default:
		return t.ATP250
	}
}

// PriceRankBand maps a market price ceiling to an estimated rank
type PriceRankBand struct {
	MaxPrice float64 `mapstructure:"max_price" json:"max_price" validate:"gt=1"`
	Rank     int     `mapstructure:"rank" json:"rank" validate:"gte=1"`
}

// RatingsConfig holds the shared rank and rating conversions
type RatingsConfig struct {
	EloScale        float64         `mapstructure:"elo_scale" json:"elo_scale" validate:"gt=0"`
	RankBase        float64         `mapstructure:"rank_base" json:"rank_base" validate:"gt=0"`
	RankSlope       float64         `mapstructure:"rank_slope" json:"rank_slope" validate:"gt=0"`
	RankFloor       float64         `mapstructure:"rank_floor" json:"rank_floor" validate:"gt=0"`
	DefaultRating   float64         `mapstructure:"default_rating" json:"default_rating" validate:"gt=0"`
	UnrankedBands   []PriceRankBand `mapstructure:"unranked_bands" json:"unranked_bands" validate:"required,min=1,dive"`
	UnrankedDefault int             `mapstructure:"unranked_default" json:"unranked_default" validate:"gte=1"`
	FactorScale     float64         `mapstructure:"factor_scale" json:"factor_scale" validate:"gt=0"`
}

// StabilityConfig tunes the loss-quality stability term
type StabilityConfig struct {
	MinLosses  int     `mapstructure:"min_losses" json:"min_losses" validate:"gte=1"`
	Scale      float64 `mapstructure:"scale" json:"scale" validate:"gt=0"`
	SigmaScale float64 `mapstructure:"sigma_scale" json:"sigma_scale" validate:"gt=0"`
}

// FormConfig tunes the recent-form factor
type FormConfig struct {
	MinMatches             int       `mapstructure:"min_matches" json:"min_matches" validate:"gte=1"`
	Window                 int       `mapstructure:"window" json:"window" validate:"gte=1,lte=20"`
	PositionDecay          float64   `mapstructure:"position_decay" json:"position_decay" validate:"gt=0,lte=1"`
	AgeScaleDays           float64   `mapstructure:"age_scale_days" json:"age_scale_days" validate:"gt=0"`
	WinBase                float64   `mapstructure:"win_base" json:"win_base" validate:"gte=0"`
	WinScale               float64   `mapstructure:"win_scale" json:"win_scale" validate:"gte=0"`
	LossScale              float64   `mapstructure:"loss_scale" json:"loss_scale" validate:"gte=0"`
	DominanceSlope         float64   `mapstructure:"dominance_slope" json:"dominance_slope" validate:"gte=0"`
	DominanceMin           float64   `mapstructure:"dominance_min" json:"dominance_min" validate:"gt=0"`
	DominanceMax           float64   `mapstructure:"dominance_max" json:"dominance_max" validate:"gtefield=DominanceMin"`
	SurpriseMax            float64   `mapstructure:"surprise_max" json:"surprise_max" validate:"gte=1"`
	BreakthroughSpan       int       `mapstructure:"breakthrough_span" json:"breakthrough_span" validate:"gte=1"`
	BreakthroughBand       float64   `mapstructure:"breakthrough_band" json:"breakthrough_band" validate:"gte=0"`
	BreakthroughMultiplier float64   `mapstructure:"breakthrough_multiplier" json:"breakthrough_multiplier" validate:"gte=1"`
	ValueScale             float64   `mapstructure:"value_scale" json:"value_scale" validate:"gt=0"`
	ScoreDivisor           float64   `mapstructure:"score_divisor" json:"score_divisor" validate:"gt=0"`
	StabilityCap           float64   `mapstructure:"stability_cap" json:"stability_cap" validate:"gte=0"`
	TierMultipliers        TierTable `mapstructure:"tier_multipliers" json:"tier_multipliers"`
}

// SurfaceConfig tunes the surface factor
type SurfaceConfig struct {
	MinMatches         int     `mapstructure:"min_matches" json:"min_matches" validate:"gte=1"`
	CareerWeight       float64 `mapstructure:"career_weight" json:"career_weight" validate:"gte=0,lte=1"`
	RecentWeight       float64 `mapstructure:"recent_weight" json:"recent_weight" validate:"gte=0,lte=1"`
	ReliabilityMatches float64 `mapstructure:"reliability_matches" json:"reliability_matches" validate:"gt=0"`
	StabilityCap       float64 `mapstructure:"stability_cap" json:"stability_cap" validate:"gte=0"`
}

// RatingConfig tunes the rolling performance rating
type RatingConfig struct {
	MinMatches int       `mapstructure:"min_matches" json:"min_matches" validate:"gte=1"`
	KFactors   TierTable `mapstructure:"k_factors" json:"k_factors"`
}

// FatigueConfig tunes the freshness score
type FatigueConfig struct {
	ShortRestDays    float64 `mapstructure:"short_rest_days" json:"short_rest_days" validate:"gte=0"`
	ShortRestPenalty float64 `mapstructure:"short_rest_penalty" json:"short_rest_penalty" validate:"gte=0"`
	LongRestDays     float64 `mapstructure:"long_rest_days" json:"long_rest_days" validate:"gtefield=ShortRestDays"`
	RustDecayDays    float64 `mapstructure:"rust_decay_days" json:"rust_decay_days" validate:"gt=0"`
	RustFloor        float64 `mapstructure:"rust_floor" json:"rust_floor" validate:"gte=0,lte=100"`
	LoadWindowDays   float64 `mapstructure:"load_window_days" json:"load_window_days" validate:"gt=0"`
	LoadScale        float64 `mapstructure:"load_scale" json:"load_scale" validate:"gte=0"`
	LoadCap          float64 `mapstructure:"load_cap" json:"load_cap" validate:"gte=0"`
	ShortWindowDays  float64 `mapstructure:"short_window_days" json:"short_window_days" validate:"gt=0"`
	ShortWindowFree  int     `mapstructure:"short_window_free" json:"short_window_free" validate:"gte=0"`
	ShortWindowCost  float64 `mapstructure:"short_window_cost" json:"short_window_cost" validate:"gte=0"`
	ShortWindowCap   float64 `mapstructure:"short_window_cap" json:"short_window_cap" validate:"gte=0"`
	LongWindowDays   float64 `mapstructure:"long_window_days" json:"long_window_days" validate:"gtefield=ShortWindowDays"`
	LongWindowFree   int     `mapstructure:"long_window_free" json:"long_window_free" validate:"gte=0"`
	LongWindowCost   float64 `mapstructure:"long_window_cost" json:"long_window_cost" validate:"gte=0"`
	LongWindowCap    float64 `mapstructure:"long_window_cap" json:"long_window_cap" validate:"gte=0"`
}

// RecentLossConfig tunes the recent-loss penalty
type RecentLossConfig struct {
	ShortDays       float64 `mapstructure:"short_days" json:"short_days" validate:"gte=0"`
	ShortPenalty    float64 `mapstructure:"short_penalty" json:"short_penalty" validate:"gte=0,lte=1"`
	LongDays        float64 `mapstructure:"long_days" json:"long_days" validate:"gtefield=ShortDays"`
	LongPenalty     float64 `mapstructure:"long_penalty" json:"long_penalty" validate:"gte=0,lte=1"`
	DistancePenalty float64 `mapstructure:"distance_penalty" json:"distance_penalty" validate:"gte=0,lte=1"`
}

// HeadToHeadConfig tunes the head-to-head factor
type HeadToHeadConfig struct {
	MinMeetings        int     `mapstructure:"min_meetings" json:"min_meetings" validate:"gte=1"`
	MinSurfaceMeetings int     `mapstructure:"min_surface_meetings" json:"min_surface_meetings" validate:"gte=1"`
	OverallWeight      float64 `mapstructure:"overall_weight" json:"overall_weight" validate:"gte=0,lte=1"`
	SurfaceWeight      float64 `mapstructure:"surface_weight" json:"surface_weight" validate:"gte=0,lte=1"`
}

// MomentumConfig tunes the same-surface momentum factor
type MomentumConfig struct {
	WindowDays float64 `mapstructure:"window_days" json:"window_days" validate:"gt=0"`
	PerWin     float64 `mapstructure:"per_win" json:"per_win" validate:"gte=0"`
	Cap        float64 `mapstructure:"cap" json:"cap" validate:"gte=0"`
}

// BreakoutConfig tunes the effective-rank override
type BreakoutConfig struct {
	MinRank           int     `mapstructure:"min_rank" json:"min_rank" validate:"gte=1"`
	MinQualityWins    int     `mapstructure:"min_quality_wins" json:"min_quality_wins" validate:"gte=1"`
	WindowDays        float64 `mapstructure:"window_days" json:"window_days" validate:"gt=0"`
	QualityRankRatio  float64 `mapstructure:"quality_rank_ratio" json:"quality_rank_ratio" validate:"gt=0,lte=1"`
	ImpliedMultiplier float64 `mapstructure:"implied_multiplier" json:"implied_multiplier" validate:"gte=1"`
	BaseBlend         float64 `mapstructure:"base_blend" json:"base_blend" validate:"gte=0,lte=1"`
	PerWinBlend       float64 `mapstructure:"per_win_blend" json:"per_win_blend" validate:"gte=0,lte=1"`
	YouthAge          int     `mapstructure:"youth_age" json:"youth_age" validate:"gte=0"`
	YouthBlend        float64 `mapstructure:"youth_blend" json:"youth_blend" validate:"gte=0,lte=1"`
	MaxBlend          float64 `mapstructure:"max_blend" json:"max_blend" validate:"gtefield=BaseBlend,lte=1"`
}

// RankBand maps a rank ceiling to a home competitive level
type RankBand struct {
	MaxRank int `mapstructure:"max_rank" json:"max_rank" validate:"gte=1"`
	Level   int `mapstructure:"level" json:"level" validate:"gte=1,lte=4"`
}

// ContextConfig tunes displacement and weight redistribution
type ContextConfig struct {
	HomeBands         []RankBand `mapstructure:"home_bands" json:"home_bands" validate:"required,min=1,dive"`
	DefaultLevel      int        `mapstructure:"default_level" json:"default_level" validate:"gte=1,lte=4"`
	DiscountPerLevel  float64    `mapstructure:"discount_per_level" json:"discount_per_level" validate:"gte=0,lte=1"`
	MaxDiscount       float64    `mapstructure:"max_discount" json:"max_discount" validate:"gte=0,lte=1"`
	HeavyDisplacement int        `mapstructure:"heavy_displacement" json:"heavy_displacement" validate:"gte=1"`
	LargeGap          float64    `mapstructure:"large_gap" json:"large_gap" validate:"gt=0"`
	RankBoost         float64    `mapstructure:"rank_boost" json:"rank_boost" validate:"gte=0,lte=1"`
	RankWeightCap     float64    `mapstructure:"rank_weight_cap" json:"rank_weight_cap" validate:"gt=0,lte=1"`
	WeightTolerance   float64    `mapstructure:"weight_tolerance" json:"weight_tolerance" validate:"gt=0"`
}

// ProbabilityConfig tunes the combiner, calibration and confidence
type ProbabilityConfig struct {
	Steepness         float64 `mapstructure:"steepness" json:"steepness" validate:"gt=0"`
	AlignedRankBlend  float64 `mapstructure:"aligned_rank_blend" json:"aligned_rank_blend" validate:"gte=0,lte=1"`
	ConflictRankBlend float64 `mapstructure:"conflict_rank_blend" json:"conflict_rank_blend" validate:"gte=0,lte=1"`
	Shrinkage         float64 `mapstructure:"shrinkage" json:"shrinkage" validate:"gte=0,lt=1"`
	ModelWeight       float64 `mapstructure:"model_weight" json:"model_weight" validate:"gte=0,lte=1"`
	CoverageWeight    float64 `mapstructure:"coverage_weight" json:"coverage_weight" validate:"gte=0,lte=1"`
	AgreementWeight   float64 `mapstructure:"agreement_weight" json:"agreement_weight" validate:"gte=0,lte=1"`
	MarginWeight      float64 `mapstructure:"margin_weight" json:"margin_weight" validate:"gte=0,lte=1"`
	MarginCeiling     float64 `mapstructure:"margin_ceiling" json:"margin_ceiling" validate:"gt=0,lte=0.5"`
	MinConfidence     float64 `mapstructure:"min_confidence" json:"min_confidence" validate:"gte=0,lte=1"`
	MaxConfidence     float64 `mapstructure:"max_confidence" json:"max_confidence" validate:"gtefield=MinConfidence,lte=1"`
}

// ServeConfig tunes the serve-alignment edge modifier
type ServeConfig struct {
	MinMatches   int     `mapstructure:"min_matches" json:"min_matches" validate:"gte=1"`
	Threshold    float64 `mapstructure:"threshold" json:"threshold" validate:"gte=0"`
	Slope        float64 `mapstructure:"slope" json:"slope" validate:"gte=0"`
	MaxReduction float64 `mapstructure:"max_reduction" json:"max_reduction" validate:"gte=0,lt=1"`
}

// ActivityConfig tunes the activity edge modifier
type ActivityConfig struct {
	WindowDays   float64 `mapstructure:"window_days" json:"window_days" validate:"gt=0"`
	PerMatch     float64 `mapstructure:"per_match" json:"per_match" validate:"gte=0"`
	FrequencyCap float64 `mapstructure:"frequency_cap" json:"frequency_cap" validate:"gte=0,lte=100"`
	GapScore     float64 `mapstructure:"gap_score" json:"gap_score" validate:"gte=0,lte=100"`
	GapFullDays  float64 `mapstructure:"gap_full_days" json:"gap_full_days" validate:"gte=0"`
	GapZeroDays  float64 `mapstructure:"gap_zero_days" json:"gap_zero_days" validate:"gtfield=GapFullDays"`
	Threshold    float64 `mapstructure:"threshold" json:"threshold" validate:"gt=0,lte=100"`
	MaxReduction float64 `mapstructure:"max_reduction" json:"max_reduction" validate:"gte=0,lt=1"`
}

// EdgeConfig tunes the edge modifier layer
type EdgeConfig struct {
	Serve    ServeConfig    `mapstructure:"serve" json:"serve"`
	Activity ActivityConfig `mapstructure:"activity" json:"activity"`
}

// GateBand is the threshold rule of one gate tag
type GateBand struct {
	MinPrice       float64 `mapstructure:"min_price" json:"min_price" validate:"gt=1"`
	MaxPrice       float64 `mapstructure:"max_price" json:"max_price" validate:"gtfield=MinPrice"`
	MaxInclusive   bool    `mapstructure:"max_inclusive" json:"max_inclusive"`
	MinEdge        float64 `mapstructure:"min_edge" json:"min_edge" validate:"gte=0"`
	MinProbability float64 `mapstructure:"min_probability" json:"min_probability" validate:"gte=0,lte=1"`
	MinSample      int     `mapstructure:"min_sample" json:"min_sample" validate:"gte=0"`
}

// Contains checks if a price falls inside the band
func (b GateBand) Contains(price float64) bool {
	if price < b.MinPrice {
		return false
	}
	if b.MaxInclusive {
		return price <= b.MaxPrice
	}
	return price < b.MaxPrice
}

// ClassifierConfig holds the tag rule thresholds
type ClassifierConfig struct {
	MinPrice          float64  `mapstructure:"min_price" json:"min_price" validate:"gt=1"`
	MinProbability    float64  `mapstructure:"min_probability" json:"min_probability" validate:"gte=0,lte=1"`
	Favorite          GateBand `mapstructure:"favorite" json:"favorite"`
	Middle            GateBand `mapstructure:"middle" json:"middle"`
	Underdog          GateBand `mapstructure:"underdog" json:"underdog"`
	LongshotPrice     float64  `mapstructure:"longshot_price" json:"longshot_price" validate:"gt=1"`
	LongshotEdge      float64  `mapstructure:"longshot_edge" json:"longshot_edge" validate:"gte=0"`
	ThinSample        int      `mapstructure:"thin_sample" json:"thin_sample" validate:"gte=0"`
	MarketAlignedEdge float64  `mapstructure:"market_aligned_edge" json:"market_aligned_edge" validate:"gte=0"`
	FadeMinPrice      float64  `mapstructure:"fade_min_price" json:"fade_min_price" validate:"gt=1"`
	FadeMaxPrice      float64  `mapstructure:"fade_max_price" json:"fade_max_price" validate:"gtefield=FadeMinPrice"`
}

// DisagreementBand maps a probability/implied ratio ceiling to a multiplier
type DisagreementBand struct {
	MaxRatio   float64 `mapstructure:"max_ratio" json:"max_ratio" validate:"gt=0"`
	Multiplier float64 `mapstructure:"multiplier" json:"multiplier" validate:"gt=0,lte=1"`
}

// DataQualityTier raises the required sample for larger stakes
type DataQualityTier struct {
	AboveUnits float64 `mapstructure:"above_units" json:"above_units" validate:"gt=0"`
	MinMatches int     `mapstructure:"min_matches" json:"min_matches" validate:"gte=1"`
}

// DataQualityConfig tunes the data-quality gate
type DataQualityConfig struct {
	BaseMatches        int               `mapstructure:"base_matches" json:"base_matches" validate:"gte=1"`
	Tiers              []DataQualityTier `mapstructure:"tiers" json:"tiers" validate:"dive"`
	FallbackWindowDays float64           `mapstructure:"fallback_window_days" json:"fallback_window_days" validate:"gt=0"`
	PartialMultiplier  float64           `mapstructure:"partial_multiplier" json:"partial_multiplier" validate:"gt=0,lte=1"`
}

// RequiredMatches returns the recent-match count required for a stake size
func (d DataQualityConfig) RequiredMatches(units float64) int {
	required := d.BaseMatches
	for _, tier := range d.Tiers {
		if units > tier.AboveUnits && tier.MinMatches > required {
			required = tier.MinMatches
		}
	}
	return required
}

// ConfidenceReductionConfig tunes the reductions applied to larger stakes
type ConfidenceReductionConfig struct {
	MinUnits           float64 `mapstructure:"min_units" json:"min_units" validate:"gte=0"`
	NoSurface          float64 `mapstructure:"no_surface" json:"no_surface" validate:"gt=0,lte=1"`
	NoHeadToHead       float64 `mapstructure:"no_head_to_head" json:"no_head_to_head" validate:"gt=0,lte=1"`
	ThinForm           float64 `mapstructure:"thin_form" json:"thin_form" validate:"gt=0,lte=1"`
	ThinFormMatches    int     `mapstructure:"thin_form_matches" json:"thin_form_matches" validate:"gte=0"`
	RankDominated      float64 `mapstructure:"rank_dominated" json:"rank_dominated" validate:"gt=0,lte=1"`
	RankDominanceShare float64 `mapstructure:"rank_dominance_share" json:"rank_dominance_share" validate:"gt=0,lte=1"`
	Floor              float64 `mapstructure:"floor" json:"floor" validate:"gt=0,lte=1"`
}

// StakeTierBand labels stakes below a ceiling
type StakeTierBand struct {
	Below float64          `mapstructure:"below" json:"below" validate:"gt=0"`
	Tier  models.StakeTier `mapstructure:"tier" json:"tier" validate:"required"`
}

// StakingConfig tunes the staking engine
type StakingConfig struct {
	MinExpectedValue  float64                   `mapstructure:"min_expected_value" json:"min_expected_value" validate:"gte=0"`
	MinPrice          float64                   `mapstructure:"min_price" json:"min_price" validate:"gt=1"`
	KellyFraction     float64                   `mapstructure:"kelly_fraction" json:"kelly_fraction" validate:"gt=0,lte=1"`
	Disagreement      []DisagreementBand        `mapstructure:"disagreement" json:"disagreement" validate:"required,min=1,dive"`
	DisagreementFloor float64                   `mapstructure:"disagreement_floor" json:"disagreement_floor" validate:"gt=0,lte=1"`
	PremiumMultiplier float64                   `mapstructure:"premium_multiplier" json:"premium_multiplier" validate:"gte=1"`
	UnitSize          float64                   `mapstructure:"unit_size" json:"unit_size" validate:"gt=0,lte=1"`
	DataQuality       DataQualityConfig         `mapstructure:"data_quality" json:"data_quality"`
	Confidence        ConfidenceReductionConfig `mapstructure:"confidence" json:"confidence"`
	MaxUnits          float64                   `mapstructure:"max_units" json:"max_units" validate:"gt=0"`
	MinUnits          float64                   `mapstructure:"min_units" json:"min_units" validate:"gt=0,ltefield=MaxUnits"`
	Granularity       float64                   `mapstructure:"granularity" json:"granularity" validate:"gt=0"`
	Tiers             []StakeTierBand           `mapstructure:"tiers" json:"tiers" validate:"dive"`
}

// DisagreementMultiplier returns the penalty for a probability/implied ratio
func (s StakingConfig) DisagreementMultiplier(ratio float64) float64 {
	for _, band := range s.Disagreement {
		if ratio <= band.MaxRatio {
			return band.Multiplier
		}
	}
	return s.DisagreementFloor
}

// TierFor labels a final stake
func (s StakingConfig) TierFor(units float64) models.StakeTier {
	if units <= 0 {
		return models.StakeTierNone
	}
	for _, band := range s.Tiers {
		if units < band.Below {
			return band.Tier
		}
	}
	return models.StakeTierMax
}

// DefaultProfile returns the reference weight and threshold set
func DefaultProfile() *Profile {
	return &Profile{
		Name:           "default",
		Version:        "1.0.0",
		CommissionRate: 0.05,
		Weights: WeightsConfig{
			Surface:    0.20,
			Form:       0.20,
			Fatigue:    0.10,
			Rank:       0.20,
			Rating:     0.10,
			RecentLoss: 0.05,
			HeadToHead: 0.05,
			Momentum:   0.10,
		},
		Ratings: RatingsConfig{
			EloScale:      400,
			RankBase:      2500,
			RankSlope:     150,
			RankFloor:     1000,
			DefaultRating: 1500,
			UnrankedBands: []PriceRankBand{
				{MaxPrice: 1.20, Rank: 10},
				{MaxPrice: 1.50, Rank: 30},
				{MaxPrice: 2.00, Rank: 60},
				{MaxPrice: 3.00, Rank: 100},
				{MaxPrice: 5.00, Rank: 200},
			},
			UnrankedDefault: 400,
			FactorScale:     400,
		},
		Stability: StabilityConfig{
			MinLosses:  2,
			Scale:      400,
			SigmaScale: 150,
		},
		Form: FormConfig{
			MinMatches:             3,
			Window:                 10,
			PositionDecay:          0.9,
			AgeScaleDays:           60,
			WinBase:                50,
			WinScale:               50,
			LossScale:              60,
			DominanceSlope:         0.15,
			DominanceMin:           0.85,
			DominanceMax:           1.15,
			SurpriseMax:            3,
			BreakthroughSpan:       2,
			BreakthroughBand:       150,
			BreakthroughMultiplier: 2,
			ValueScale:             0.10,
			ScoreDivisor:           25,
			StabilityCap:           0.20,
			TierMultipliers: TierTable{
				GrandSlam:  1.30,
				Masters:    1.20,
				ATP500:     1.10,
				ATP250:     1.00,
				Challenger: 0.85,
				ITF:        0.70,
			},
		},
		Surface: SurfaceConfig{
			MinMatches:         5,
			CareerWeight:       0.4,
			RecentWeight:       0.6,
			ReliabilityMatches: 20,
			StabilityCap:       0.10,
		},
		Rating: RatingConfig{
			MinMatches: 5,
			KFactors: TierTable{
				GrandSlam:  48,
				Masters:    40,
				ATP500:     36,
				ATP250:     32,
				Challenger: 24,
				ITF:        20,
			},
		},
		Fatigue: FatigueConfig{
			ShortRestDays:    3,
			ShortRestPenalty: 15,
			LongRestDays:     7,
			RustDecayDays:    21,
			RustFloor:        25,
			LoadWindowDays:   7,
			LoadScale:        2,
			LoadCap:          20,
			ShortWindowDays:  14,
			ShortWindowFree:  4,
			ShortWindowCost:  5,
			ShortWindowCap:   15,
			LongWindowDays:   30,
			LongWindowFree:   8,
			LongWindowCost:   2.5,
			LongWindowCap:    10,
		},
		RecentLoss: RecentLossConfig{
			ShortDays:       3,
			ShortPenalty:    0.10,
			LongDays:        7,
			LongPenalty:     0.05,
			DistancePenalty: 0.05,
		},
		HeadToHead: HeadToHeadConfig{
			MinMeetings:        2,
			MinSurfaceMeetings: 2,
			OverallWeight:      0.6,
			SurfaceWeight:      0.4,
		},
		Momentum: MomentumConfig{
			WindowDays: 14,
			PerWin:     0.025,
			Cap:        0.10,
		},
		Breakout: BreakoutConfig{
			MinRank:           40,
			MinQualityWins:    2,
			WindowDays:        60,
			QualityRankRatio:  0.5,
			ImpliedMultiplier: 1.5,
			BaseBlend:         0.50,
			PerWinBlend:       0.10,
			YouthAge:          21,
			YouthBlend:        0.10,
			MaxBlend:          0.75,
		},
		Context: ContextConfig{
			HomeBands: []RankBand{
				{MaxRank: 30, Level: 4},
				{MaxRank: 100, Level: 3},
				{MaxRank: 300, Level: 2},
			},
			DefaultLevel:      1,
			DiscountPerLevel:  0.10,
			MaxDiscount:       0.25,
			HeavyDisplacement: 2,
			LargeGap:          250,
			RankBoost:         0.10,
			RankWeightCap:     0.60,
			WeightTolerance:   1e-9,
		},
		Probability: ProbabilityConfig{
			Steepness:         6,
			AlignedRankBlend:  0.30,
			ConflictRankBlend: 0.10,
			Shrinkage:         0.15,
			ModelWeight:       0.75,
			CoverageWeight:    0.4,
			AgreementWeight:   0.3,
			MarginWeight:      0.3,
			MarginCeiling:     0.25,
			MinConfidence:     0.05,
			MaxConfidence:     0.95,
		},
		Edge: EdgeConfig{
			Serve: ServeConfig{
				MinMatches:   5,
				Threshold:    0.30,
				Slope:        0.25,
				MaxReduction: 0.25,
			},
			Activity: ActivityConfig{
				WindowDays:   90,
				PerMatch:     6,
				FrequencyCap: 60,
				GapScore:     40,
				GapFullDays:  21,
				GapZeroDays:  90,
				Threshold:    50,
				MaxReduction: 0.30,
			},
		},
		Classifier: ClassifierConfig{
			MinPrice:       1.30,
			MinProbability: 0.40,
			Favorite: GateBand{
				MinPrice:       1.30,
				MaxPrice:       1.80,
				MinEdge:        0.03,
				MinProbability: 0.58,
			},
			Middle: GateBand{
				MinPrice:       1.80,
				MaxPrice:       2.50,
				MinEdge:        0.05,
				MinProbability: 0.45,
			},
			Underdog: GateBand{
				MinPrice:     2.50,
				MaxPrice:     4.00,
				MaxInclusive: true,
				MinEdge:      0.08,
				MinSample:    10,
			},
			LongshotPrice:     4.00,
			LongshotEdge:      0.10,
			ThinSample:        5,
			MarketAlignedEdge: 0.02,
			FadeMinPrice:      1.25,
			FadeMaxPrice:      1.45,
		},
		Staking: StakingConfig{
			MinExpectedValue: 0.02,
			MinPrice:         1.30,
			KellyFraction:    0.375,
			Disagreement: []DisagreementBand{
				{MaxRatio: 1.20, Multiplier: 1.0},
				{MaxRatio: 1.50, Multiplier: 0.75},
			},
			DisagreementFloor: 0.50,
			PremiumMultiplier: 1.25,
			UnitSize:          0.02,
			DataQuality: DataQualityConfig{
				BaseMatches: 5,
				Tiers: []DataQualityTier{
					{AboveUnits: 1.5, MinMatches: 8},
					{AboveUnits: 2.5, MinMatches: 12},
				},
				FallbackWindowDays: 90,
				PartialMultiplier:  0.5,
			},
			Confidence: ConfidenceReductionConfig{
				MinUnits:           1.0,
				NoSurface:          0.85,
				NoHeadToHead:       0.95,
				ThinForm:           0.90,
				ThinFormMatches:    6,
				RankDominated:      0.85,
				RankDominanceShare: 0.50,
				Floor:              0.50,
			},
			MaxUnits:    3.0,
			MinUnits:    0.5,
			Granularity: 0.25,
			Tiers: []StakeTierBand{
				{Below: 1, Tier: models.StakeTierSmall},
				{Below: 2, Tier: models.StakeTierStandard},
				{Below: 3, Tier: models.StakeTierStrong},
			},
		},
	}
}
