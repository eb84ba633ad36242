// Package favorites implements the favorite sync protocol: write-through
// toggles against the remote store with single-flight per (user, building).
package favorites

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kenchiku-cloud/archmap/internal/auth"
	"github.com/kenchiku-cloud/archmap/internal/domain"
	"github.com/kenchiku-cloud/archmap/internal/domain/building"
)

// State is the lifecycle of a single toggle action.
type State string

const (
	// StatePending marks a toggle whose remote call has not resolved.
	StatePending State = "pending"
	// StateCommitted marks a toggle confirmed by the remote store.
	StateCommitted State = "committed"
	// StateFailed marks a toggle rejected or failed; local state untouched.
	StateFailed State = "failed"
)

// Service reconciles local favorite intents with the remote store.
//
// Local state mutates only after remote confirmation (write-through), so the
// in-memory set never diverges from the remote set on the success path. The
// cost is a latency window where reads still show pre-toggle state. All
// state here is keyed by user id; sessions never see each other's sets.
type Service struct {
	remote  Remote
	local   Local
	timeout time.Duration
	logger  *zap.Logger

	mu       sync.Mutex
	inflight map[string]struct{}
	hydrated map[string]bool
}

// New creates a favorites service. Every remote call is bounded by timeout;
// a timeout is a failed toggle like any other remote error.
func New(remote Remote, local Local, timeout time.Duration, logger *zap.Logger) *Service {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Service{
		remote:   remote,
		local:    local,
		timeout:  timeout,
		logger:   logger,
		inflight: make(map[string]struct{}),
		hydrated: make(map[string]bool),
	}
}

// Toggle flips the favorite state of the named building for the signed-in
// user. Returns the terminal state, and whether the building is a favorite
// afterwards. Remote failure leaves local state untouched; there is no
// automatic retry. A concurrent toggle by the same user for the same
// building is rejected with domain.ErrToggleInFlight rather than racing;
// other users' toggles are independent.
func (s *Service) Toggle(ctx context.Context, name string) (State, bool, error) {
	sess, ok := auth.SessionFromContext(ctx)
	if !ok {
		return StateFailed, false, domain.ErrUnauthenticated
	}

	if err := s.ensureHydrated(ctx, sess.UserID); err != nil {
		return StateFailed, false, err
	}

	b, found := s.local.FindByName(name)
	if !found {
		return StateFailed, false, fmt.Errorf("%w: %q", domain.ErrBuildingNotFound, name)
	}

	flight := flightKey(sess.UserID, b.Key())
	if !s.acquire(flight) {
		return StateFailed, s.local.IsFavorite(sess.UserID, b), domain.ErrToggleInFlight
	}
	defer s.release(flight)

	rctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if s.local.IsFavorite(sess.UserID, b) {
		if err := s.remote.Delete(rctx, sess.UserID, b.Name()); err != nil {
			s.logger.Warn("Favorite delete failed",
				zap.String("building", b.Name()), zap.Error(err))
			return StateFailed, true, fmt.Errorf("remove favorite %q: %w", b.Name(), err)
		}
		s.local.RemoveFavorite(sess.UserID, b)
		return StateCommitted, false, nil
	}

	if err := s.remote.Insert(rctx, sess.UserID, b); err != nil {
		s.logger.Warn("Favorite insert failed",
			zap.String("building", b.Name()), zap.Error(err))
		return StateFailed, false, fmt.Errorf("add favorite %q: %w", b.Name(), err)
	}
	s.local.AddFavorite(sess.UserID, b)
	return StateCommitted, true, nil
}

// Hydrate replaces the user's local favorite set from the remote store. Run
// once when a session becomes active. On a failed read the session proceeds
// with an empty set and the error is surfaced, not swallowed; there is no
// automatic retry either way. The hydration is recorded only after the
// attempt has resolved.
func (s *Service) Hydrate(ctx context.Context) error {
	sess, ok := auth.SessionFromContext(ctx)
	if !ok {
		return domain.ErrUnauthenticated
	}

	rctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	records, err := s.remote.ListByUser(rctx, sess.UserID)

	s.mu.Lock()
	s.hydrated[sess.UserID] = true
	s.mu.Unlock()

	if err != nil {
		s.local.SetFavorites(sess.UserID, nil)
		return fmt.Errorf("hydrate favorites: %w", err)
	}

	s.local.SetFavorites(sess.UserID, records)
	return nil
}

// ensureHydrated hydrates the user's set the first time their session
// touches favorites. A failed hydration still counts as attempted: the
// session continues on the empty set rather than retrying on every call.
func (s *Service) ensureHydrated(ctx context.Context, userID string) error {
	s.mu.Lock()
	done := s.hydrated[userID]
	s.mu.Unlock()
	if done {
		return nil
	}
	return s.Hydrate(ctx)
}

// List returns the user's favorite set in insertion order, hydrating from
// the remote store on the session's first read.
func (s *Service) List(ctx context.Context) ([]building.Building, error) {
	sess, ok := auth.SessionFromContext(ctx)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	if err := s.ensureHydrated(ctx, sess.UserID); err != nil {
		return nil, err
	}
	return s.local.Favorites(sess.UserID), nil
}

// IsFavorite reports whether the signed-in user has favorited the named
// building. Anonymous callers and unknown buildings report false. A
// hydration failure here degrades to the empty set; the error surfaces on
// the favorites endpoints, not on listings.
func (s *Service) IsFavorite(ctx context.Context, name string) bool {
	sess, ok := auth.SessionFromContext(ctx)
	if !ok {
		return false
	}
	_ = s.ensureHydrated(ctx, sess.UserID)
	b, found := s.local.FindByName(name)
	if !found {
		return false
	}
	return s.local.IsFavorite(sess.UserID, b)
}

func flightKey(userID, buildingKey string) string {
	return userID + "\x00" + buildingKey
}

func (s *Service) acquire(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[key]; busy {
		return false
	}
	s.inflight[key] = struct{}{}
	return true
}

func (s *Service) release(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, key)
}
