// Package favorites persists per-user favorite buildings in the remote store.
package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/kenchiku-cloud/archmap/internal/domain"
	"github.com/kenchiku-cloud/archmap/internal/domain/building"
)

// store is the consumer interface for favorites (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HDel(ctx context.Context, key string, fields ...string) error
}

// Repo implements usecase/favorites.Remote. One hash per user, keyed by the
// building name, each field holding the full denormalized record.
type Repo struct {
	store store
}

// New creates a favorites repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Insert stores a favorite keyed by (userID, building name).
func (r *Repo) Insert(ctx context.Context, userID string, b building.Building) error {
	data, err := json.Marshal(toRecord(userID, b))
	if err != nil {
		return fmt.Errorf("marshal favorite: %w", err)
	}

	key := favoritesKey(userID)
	if err := r.store.HSet(ctx, key, map[string]string{b.Name(): string(data)}); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	return nil
}

// Delete removes the favorite keyed by (userID, name). Deleting an absent
// favorite is not an error.
func (r *Repo) Delete(ctx context.Context, userID, name string) error {
	key := favoritesKey(userID)
	if err := r.store.HDel(ctx, key, name); err != nil {
		return fmt.Errorf("hdel %s: %w", key, err)
	}
	return nil
}

// ListByUser returns all favorites for a user, sorted by name for stable
// hydration order. Records that fail to decode are skipped.
func (r *Repo) ListByUser(ctx context.Context, userID string) ([]building.Building, error) {
	key := favoritesKey(userID)
	fields, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("hgetall %s: %w", key, err)
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]building.Building, 0, len(names))
	for _, name := range names {
		var rec record
		if err := json.Unmarshal([]byte(fields[name]), &rec); err != nil {
			continue
		}
		out = append(out, rec.toBuilding())
	}
	return out, nil
}

func favoritesKey(userID string) string {
	return fmt.Sprintf("%sfavorites:%s", domain.KeyPrefix, userID)
}
