// Package classifier tags an edge assessment with the models that qualify it.
package classifier

import (
	"github.com/yourusername/matchedge/internal/config"
	"github.com/yourusername/matchedge/internal/models"
)

// Tags
const (
	TagFavValue      = "fav_value"
	TagMidValue      = "mid_value"
	TagDogValue      = "dog_value"
	TagLongshotWatch = "longshot_watch"
	TagThinSample    = "thin_sample"
	TagMarketAligned = "market_aligned"
	TagServeConflict = "serve_conflict"
	TagPremium       = "premium"
	TagFade          = "fade"
)

// Kind partitions tags by their staking effect
type Kind string

const (
	KindGate     Kind = "gate"
	KindTracking Kind = "tracking"
	KindPremium  Kind = "premium"
	KindCounter  Kind = "counter"
)

// Input is everything a rule may read
type Input struct {
	Edge *models.EdgeAssessment
	// MinSample is the smaller of the two players' recent-match counts
	MinSample int
}

// Rule is one row of the rule table. Pass 2 rules read the tags found by pass 1
// and by the pass 2 rules ordered before them.
type Rule struct {
	Tag   string
	Kind  Kind
	Pass  int
	Match func(in *Input, tags map[string]bool) bool
}

// Result is the classifier output
type Result struct {
	Tags    []string
	Counter *models.CounterRecommendation
}

// IsGateTag checks if a tag qualifies an opportunity for staking
func IsGateTag(tag string) bool {
	switch tag {
	case TagFavValue, TagMidValue, TagDogValue:
		return true
	default:
		return false
	}
}

// HasGateTag checks if any tag is a gate tag
func HasGateTag(tags []string) bool {
	for _, tag := range tags {
		if IsGateTag(tag) {
			return true
		}
	}
	return false
}

func gate(band config.GateBand) func(in *Input, _ map[string]bool) bool {
	return func(in *Input, _ map[string]bool) bool {
		e := in.Edge
		return band.Contains(e.Price) &&
			e.Edge >= band.MinEdge &&
			e.Probability >= band.MinProbability &&
			in.MinSample >= band.MinSample
	}
}

// Rules returns the ordered rule table for a classifier configuration
func Rules(cfg config.ClassifierConfig) []Rule {
	return []Rule{
		{Tag: TagFavValue, Kind: KindGate, Pass: 1, Match: gate(cfg.Favorite)},
		{Tag: TagMidValue, Kind: KindGate, Pass: 1, Match: gate(cfg.Middle)},
		{Tag: TagDogValue, Kind: KindGate, Pass: 1, Match: gate(cfg.Underdog)},
		{Tag: TagLongshotWatch, Kind: KindTracking, Pass: 1, Match: func(in *Input, _ map[string]bool) bool {
			return in.Edge.Price > cfg.LongshotPrice && in.Edge.Edge >= cfg.LongshotEdge
		}},
		{Tag: TagThinSample, Kind: KindTracking, Pass: 1, Match: func(in *Input, _ map[string]bool) bool {
			return in.MinSample < cfg.ThinSample
		}},
		{Tag: TagMarketAligned, Kind: KindTracking, Pass: 1, Match: func(in *Input, _ map[string]bool) bool {
			return in.Edge.Edge > 0 && in.Edge.Edge < cfg.MarketAlignedEdge
		}},
		{Tag: TagServeConflict, Kind: KindTracking, Pass: 1, Match: func(in *Input, _ map[string]bool) bool {
			return in.Edge.ServeAlignment == models.ServeConflicting
		}},
		{Tag: TagPremium, Kind: KindPremium, Pass: 2, Match: func(in *Input, tags map[string]bool) bool {
			return hasGate(tags) &&
				in.Edge.ServeAlignment == models.ServeAligned &&
				in.Edge.ActivityMultiplier == 1
		}},
		{Tag: TagFade, Kind: KindCounter, Pass: 2, Match: func(in *Input, tags map[string]bool) bool {
			return tags[TagDogValue] && !tags[TagPremium] &&
				in.Edge.OpponentPrice >= cfg.FadeMinPrice && in.Edge.OpponentPrice <= cfg.FadeMaxPrice
		}},
	}
}

func hasGate(tags map[string]bool) bool {
	for tag, ok := range tags {
		if ok && IsGateTag(tag) {
			return true
		}
	}
	return false
}

// Classify evaluates the rule table. Opportunities below the global price or
// probability floor get no tags at all.
func Classify(in *Input, cfg config.ClassifierConfig) Result {
	result := Result{Tags: []string{}}
	if in.Edge.Price < cfg.MinPrice || in.Edge.Probability < cfg.MinProbability {
		return result
	}

	rules := Rules(cfg)
	found := make(map[string]bool)
	for pass := 1; pass <= 2; pass++ {
		for _, rule := range rules {
			if rule.Pass == pass && rule.Match(in, found) {
				found[rule.Tag] = true
			}
		}
	}

	for _, rule := range rules {
		if !found[rule.Tag] {
			continue
		}
		result.Tags = append(result.Tags, rule.Tag)
		if rule.Kind == KindCounter {
			result.Counter = &models.CounterRecommendation{
				Side:   in.Edge.Selection.Opposite(),
				Price:  in.Edge.OpponentPrice,
				Reason: rule.Tag,
			}
		}
	}
	return result
}
