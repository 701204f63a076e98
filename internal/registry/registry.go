// Package registry manages registered sport profiles.
package registry

import (
	"fmt"
	"sync"

	"github.com/mkrebs/gridline/pkg/contracts"
	"github.com/mkrebs/gridline/pkg/models"
	"github.com/mkrebs/gridline/sports/football_ncaa"
	"github.com/mkrebs/gridline/sports/football_nfl"
)

// ProfileRegistry maps sport keys to their profiles.
type ProfileRegistry struct {
	profiles map[models.Sport]contracts.SportProfile
	mu       sync.RWMutex
}

// NewProfileRegistry creates an empty registry.
func NewProfileRegistry() *ProfileRegistry {
	return &ProfileRegistry{
		profiles: make(map[models.Sport]contracts.SportProfile),
	}
}

// Default returns a registry with every supported sport registered.
func Default() *ProfileRegistry {
	r := NewProfileRegistry()
	_ = r.Register(football_nfl.NewProfile())
	_ = r.Register(football_ncaa.NewProfile())
	return r
}

// Register adds a sport profile to the registry.
func (r *ProfileRegistry) Register(profile contracts.SportProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := profile.Key()
	if _, exists := r.profiles[key]; exists {
		return fmt.Errorf("profile for sport %s is already registered", key)
	}

	r.profiles[key] = profile
	return nil
}

// Get retrieves a profile by sport key.
func (r *ProfileRegistry) Get(sport models.Sport) (contracts.SportProfile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, exists := r.profiles[sport]
	return profile, exists
}

// Count returns the number of registered profiles.
func (r *ProfileRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.profiles)
}
