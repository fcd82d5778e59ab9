package models

import (
	"math"
)

// FactorName identifies one of the directional advantage factors
type FactorName string

const (
	FactorSurface    FactorName = "surface"
	FactorForm       FactorName = "form"
	FactorFatigue    FactorName = "fatigue"
	FactorRank       FactorName = "rank"
	FactorRating     FactorName = "rating"
	FactorRecentLoss FactorName = "recent_loss"
	FactorHeadToHead FactorName = "head_to_head"
	FactorMomentum   FactorName = "momentum"
)

// AllFactors lists every factor in canonical order. Every summation over
// factors iterates in this order so results are bit-for-bit reproducible.
var AllFactors = []FactorName{
	FactorSurface,
	FactorForm,
	FactorFatigue,
	FactorRank,
	FactorRating,
	FactorRecentLoss,
	FactorHeadToHead,
	FactorMomentum,
}

// IsRankDerived reports whether the factor is computed from rank inputs
func (f FactorName) IsRankDerived() bool {
	return f == FactorRank || f == FactorRating
}

// FactorScore is a directional advantage for player A (negative favors B)
type FactorScore struct {
	Name    FactorName `json:"name"`
	Value   float64    `json:"value"`
	HasData bool       `json:"has_data"`
	Weight  float64    `json:"weight"`
	Detail  string     `json:"detail,omitempty"`
}

// NoData returns a zero-valued score flagged as lacking data
func NoData(name FactorName, weight float64, detail string) FactorScore {
	return FactorScore{Name: name, Value: 0, HasData: false, Weight: weight, Detail: detail}
}

// FactorSet holds one score per factor
type FactorSet map[FactorName]FactorScore

// Clone returns an independent copy of the set
func (fs FactorSet) Clone() FactorSet {
	out := make(FactorSet, len(fs))
	for k, v := range fs {
		out[k] = v
	}
	return out
}

// WeightVector maps each factor to its effective weight
type WeightVector map[FactorName]float64

// Sum returns the total weight, summed in canonical order
func (w WeightVector) Sum() float64 {
	total := 0.0
	for _, name := range AllFactors {
		total += w[name]
	}
	return total
}

// Clone returns an independent copy of the vector
func (w WeightVector) Clone() WeightVector {
	out := make(WeightVector, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}

// Normalized returns a copy scaled to sum to 1.0. A zero vector is returned unchanged.
func (w WeightVector) Normalized() WeightVector {
	out := w.Clone()
	total := w.Sum()
	if total <= 0 {
		return out
	}
	for _, name := range AllFactors {
		out[name] = w[name] / total
	}
	return out
}

// SumsToOne checks the vector against 1.0 within tolerance
func (w WeightVector) SumsToOne(tolerance float64) bool {
	return math.Abs(w.Sum()-1.0) <= tolerance
}
