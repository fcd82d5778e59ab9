package service

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/matchedge/internal/config"
	"github.com/yourusername/matchedge/internal/metrics"
	"github.com/yourusername/matchedge/internal/models"
)

// MemoKey identifies an evaluation by its input and the profile it ran under
type MemoKey struct {
	InputHash      uint64
	ProfileName    string
	ProfileVersion string
}

// String returns string representation of memo key
func (k MemoKey) String() string {
	return fmt.Sprintf("%016x:%s:%s", k.InputHash, k.ProfileName, k.ProfileVersion)
}

// NewMemoKey hashes the canonical JSON encoding of the input
func NewMemoKey(in *models.MatchInput, profile *config.Profile) (MemoKey, error) {
	data, err := json.Marshal(in)
	if err != nil {
		return MemoKey{}, fmt.Errorf("encode input for memo key: %w", err)
	}
	return MemoKey{
		InputHash:      xxhash.Sum64(data),
		ProfileName:    profile.Name,
		ProfileVersion: profile.Version,
	}, nil
}

// EvaluationMemo caches engine results. Evaluations are deterministic for a
// given input and profile version, so a hit is exact.
type EvaluationMemo struct {
	cache     *cache.Cache
	ttl       time.Duration
	maxSize   int
	mu        sync.RWMutex
	hitCount  uint64
	missCount uint64
}

// NewEvaluationMemo creates a new evaluation memo
func NewEvaluationMemo(ttl time.Duration, maxSize int) *EvaluationMemo {
	return &EvaluationMemo{
		cache:   cache.New(ttl, ttl*2),
		ttl:     ttl,
		maxSize: maxSize,
	}
}

// Get retrieves a memoized evaluation
func (m *EvaluationMemo) Get(key MemoKey) (*models.Evaluation, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if result, found := m.cache.Get(key.String()); found {
		if eval, ok := result.(*models.Evaluation); ok {
			m.hitCount++
			metrics.UpdateMemoHitRatio(m.ratio())
			return eval, true
		}
	}

	m.missCount++
	metrics.UpdateMemoHitRatio(m.ratio())
	return nil, false
}

// Set stores an evaluation. When the memo is full, expired entries are
// dropped first and the new entry is skipped if that frees nothing.
func (m *EvaluationMemo) Set(key MemoKey, eval *models.Evaluation) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cache.ItemCount() >= m.maxSize {
		m.cache.DeleteExpired()
		if m.cache.ItemCount() >= m.maxSize {
			return
		}
	}

	m.cache.Set(key.String(), eval, m.ttl)
}

// InvalidateProfile removes every entry computed under a profile name
func (m *EvaluationMemo) InvalidateProfile(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for k := range m.cache.Items() {
		if profileFromKey(k) == name {
			m.cache.Delete(k)
		}
	}
}

// profileFromKey extracts the profile name from hash:name:version.
// Profile versions never contain a colon, names may.
func profileFromKey(key string) string {
	first := -1
	last := -1
	for i := 0; i < len(key); i++ {
		if key[i] == ':' {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 || last == first {
		return ""
	}
	return key[first+1 : last]
}

// Clear flushes the memo and resets its statistics
func (m *EvaluationMemo) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cache.Flush()
	m.hitCount = 0
	m.missCount = 0
}

// Stats returns memo statistics
func (m *EvaluationMemo) Stats() (hits, misses uint64, ratio float64) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.hitCount, m.missCount, m.ratio()
}

func (m *EvaluationMemo) ratio() float64 {
	total := m.hitCount + m.missCount
	if total == 0 {
		return 0
	}
	return float64(m.hitCount) / float64(total)
}

// ItemCount returns the number of memoized evaluations
func (m *EvaluationMemo) ItemCount() int {
	return m.cache.ItemCount()
}
