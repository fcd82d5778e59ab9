package engine

import (
	"errors"
	"sync/atomic"

	"github.com/yourusername/matchedge/internal/config"
)

// ErrNoProfile is returned when a nil profile is stored
var ErrNoProfile = errors.New("no profile")

// ProfileStore holds the active profile. Profiles are replaced whole, so an
// evaluation that loaded the pointer keeps a consistent profile to the end.
type ProfileStore struct {
	current atomic.Pointer[config.Profile]
}

// NewProfileStore creates a store holding the given profile
func NewProfileStore(initial *config.Profile) (*ProfileStore, error) {
	if initial == nil {
		return nil, ErrNoProfile
	}
	s := &ProfileStore{}
	s.current.Store(initial)
	return s, nil
}

// Load returns the active profile
func (s *ProfileStore) Load() *config.Profile {
	return s.current.Load()
}

// Swap installs a new profile and returns the previous one
func (s *ProfileStore) Swap(next *config.Profile) (*config.Profile, error) {
	if next == nil {
		return nil, ErrNoProfile
	}
	return s.current.Swap(next), nil
}
