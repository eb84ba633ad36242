// Package directory holds the process-wide in-memory building collection
// and each signed-in user's favorite subset.
package directory

import (
	"sync"

	"github.com/kenchiku-cloud/archmap/internal/domain/building"
)

// Store is the authoritative in-memory directory state. The building list is
// process-wide; favorites are keyed by user id so concurrent sessions never
// observe each other's sets. All mutation goes through its methods; reads
// are safe from any goroutine. None of the operations fail: they are pure
// structural mutations.
type Store struct {
	mu        sync.RWMutex
	all       []building.Building
	loaded    bool
	favorites map[string]map[string]building.Building
	order     map[string][]string
	version   uint64
}

// NewStore creates an empty directory store.
func NewStore() *Store {
	return &Store{
		favorites: make(map[string]map[string]building.Building),
		order:     make(map[string][]string),
	}
}

// Load replaces the directory contents wholesale, preserving decode order.
// Favorites are untouched. Bumps the version so facet consumers recompute
// lazily on their next query.
func (s *Store) Load(records []building.Building) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.all = append([]building.Building(nil), records...)
	s.loaded = true
	s.version++
}

// Clear empties the directory after a failed load. The version still bumps
// so facet caches refresh, but the store no longer counts as loaded.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.all = nil
	s.loaded = false
	s.version++
}

// Loaded reports whether the directory holds a successfully loaded dataset.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// All returns the directory contents in decode order.
func (s *Store) All() []building.Building {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]building.Building(nil), s.all...)
}

// Version is a monotonic counter bumped on every Load or Clear.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// SetFavorites replaces one user's favorite set wholesale, deduplicating by
// identity key. Used once per session to hydrate from the remote store.
func (s *Store) SetFavorites(userID string, records []building.Building) {
	s.mu.Lock()
	defer s.mu.Unlock()
	favs := make(map[string]building.Building, len(records))
	order := make([]string, 0, len(records))
	for _, b := range records {
		if _, ok := favs[b.Key()]; ok {
			continue
		}
		favs[b.Key()] = b
		order = append(order, b.Key())
	}
	s.favorites[userID] = favs
	s.order[userID] = order
}

// AddFavorite inserts into one user's set iff not already present (idempotent).
func (s *Store) AddFavorite(userID string, b building.Building) {
	s.mu.Lock()
	defer s.mu.Unlock()
	favs := s.favorites[userID]
	if favs == nil {
		favs = make(map[string]building.Building)
		s.favorites[userID] = favs
	}
	if _, ok := favs[b.Key()]; ok {
		return
	}
	favs[b.Key()] = b
	s.order[userID] = append(s.order[userID], b.Key())
}

// RemoveFavorite removes any entry matching the identity key from one
// user's set (idempotent).
func (s *Store) RemoveFavorite(userID string, b building.Building) {
	s.mu.Lock()
	defer s.mu.Unlock()
	favs := s.favorites[userID]
	if _, ok := favs[b.Key()]; !ok {
		return
	}
	delete(favs, b.Key())
	order := s.order[userID]
	for i, k := range order {
		if k == b.Key() {
			s.order[userID] = append(order[:i], order[i+1:]...)
			break
		}
	}
}

// IsFavorite reports identity-key membership in one user's set.
func (s *Store) IsFavorite(userID string, b building.Building) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.favorites[userID][b.Key()]
	return ok
}

// Favorites returns one user's favorite buildings in insertion order.
func (s *Store) Favorites(userID string) []building.Building {
	s.mu.RLock()
	defer s.mu.RUnlock()
	favs := s.favorites[userID]
	out := make([]building.Building, 0, len(s.order[userID]))
	for _, k := range s.order[userID] {
		out = append(out, favs[k])
	}
	return out
}

// FindByName looks a building up in the directory by identity key.
func (s *Store) FindByName(name string) (building.Building, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.all {
		if b.Key() == name {
			return b, true
		}
	}
	return building.Building{}, false
}
