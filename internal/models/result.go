package models

import (
	"time"
)

// Side identifies one of the two players
type Side string

const (
	SideA Side = "A"
	SideB Side = "B"
)

// Opposite returns the other side
func (s Side) Opposite() Side {
	if s == SideA {
		return SideB
	}
	return SideA
}

// EffectiveRank is a breakout override of a player's nominal rank
type EffectiveRank struct {
	Side        Side    `json:"side"`
	Nominal     int     `json:"nominal"`
	Implied     int     `json:"implied"`
	Effective   int     `json:"effective"`
	Blend       float64 `json:"blend"`
	QualityWins int     `json:"quality_wins"`
}

// Displacement records how far below their home level a player is competing
type Displacement struct {
	Side      Side    `json:"side"`
	HomeLevel int     `json:"home_level"`
	Levels    int     `json:"levels"`
	Discount  float64 `json:"discount"`
}

// ProbabilityResult holds the probability for player A at each stage
type ProbabilityResult struct {
	Advantage  float64 `json:"advantage"`
	Raw        float64 `json:"raw"`
	Model      float64 `json:"model"`
	RankBlend  float64 `json:"rank_blend"`
	Calibrated float64 `json:"calibrated"`
	Confidence float64 `json:"confidence"`
}

// ServeAlignment describes how serve dominance relates to the pick
type ServeAlignment string

const (
	ServeUnknown     ServeAlignment = "unknown"
	ServeAligned     ServeAlignment = "aligned"
	ServeNeutral     ServeAlignment = "neutral"
	ServeConflicting ServeAlignment = "conflicting"
)

// Modifier is a labelled multiplicative adjustment
type Modifier struct {
	Label      string  `json:"label"`
	Multiplier float64 `json:"multiplier"`
}

// CounterRecommendation suggests backing the opposite of the original signal
type CounterRecommendation struct {
	Side   Side    `json:"side"`
	Price  float64 `json:"price"`
	Reason string  `json:"reason"`
}

// EdgeAssessment describes the value of the selected side against the market
type EdgeAssessment struct {
	Selection          Side                   `json:"selection"`
	Price              float64                `json:"price"`
	OpponentPrice      float64                `json:"opponent_price"`
	Probability        float64                `json:"probability"`
	ImpliedProbability float64                `json:"implied_probability"`
	RawEdge            float64                `json:"raw_edge"`
	Edge               float64                `json:"edge"`
	ExpectedValue      float64                `json:"expected_value"`
	NetExpectedValue   float64                `json:"net_expected_value"`
	ServeAlignment     ServeAlignment         `json:"serve_alignment"`
	ServeMultiplier    float64                `json:"serve_multiplier"`
	ActivityA          float64                `json:"activity_a"`
	ActivityB          float64                `json:"activity_b"`
	ActivityMultiplier float64                `json:"activity_multiplier"`
	Modifiers          []Modifier             `json:"modifiers"`
	Tags               []string               `json:"tags"`
	Counter            *CounterRecommendation `json:"counter,omitempty"`
}

// HasTag checks if the assessment carries a tag
func (e *EdgeAssessment) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// StakeTier labels the size of a recommendation
type StakeTier string

const (
	StakeTierNone     StakeTier = "none"
	StakeTierSmall    StakeTier = "small"
	StakeTierStandard StakeTier = "standard"
	StakeTierStrong   StakeTier = "strong"
	StakeTierMax      StakeTier = "max"
)

// StakeRecommendation is the sized bet, or a zero stake with a rejection reason
type StakeRecommendation struct {
	Units            float64    `json:"units"`
	PreCapUnits      float64    `json:"pre_cap_units"`
	BankrollFraction float64    `json:"bankroll_fraction"`
	Modifiers        []Modifier `json:"modifiers"`
	Tier             StakeTier  `json:"tier"`
	RejectionReason  string     `json:"rejection_reason,omitempty"`
}

// IsStaked checks if the recommendation carries a non-zero stake
func (s *StakeRecommendation) IsStaked() bool {
	return s.Units > 0
}

// Evaluation is the full output of one engine run
type Evaluation struct {
	ID             string              `json:"evaluation_id,omitempty"`
	MatchID        string              `json:"match_id"`
	ProfileName    string              `json:"profile_name"`
	ProfileVersion string              `json:"profile_version"`
	EvaluatedAt    time.Time           `json:"evaluated_at"`
	BaseFactors    FactorSet           `json:"base_factors"`
	Factors        FactorSet           `json:"factors"`
	Weights        WeightVector        `json:"weights"`
	Breakouts      []EffectiveRank     `json:"breakouts,omitempty"`
	Displacements  []Displacement      `json:"displacements,omitempty"`
	Probability    ProbabilityResult   `json:"probability"`
	Edge           EdgeAssessment      `json:"edge"`
	Stake          StakeRecommendation `json:"stake"`
}
