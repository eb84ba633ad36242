package favorites

import (
	"context"

	"github.com/kenchiku-cloud/archmap/internal/domain/building"
)

// Remote is the per-user persisted favorites store.
type Remote interface {
	Insert(ctx context.Context, userID string, b building.Building) error
	Delete(ctx context.Context, userID, name string) error
	ListByUser(ctx context.Context, userID string) ([]building.Building, error)
}

// Local is the in-memory favorites side of the directory store, keyed by
// user id.
type Local interface {
	SetFavorites(userID string, records []building.Building)
	AddFavorite(userID string, b building.Building)
	RemoveFavorite(userID string, b building.Building)
	IsFavorite(userID string, b building.Building) bool
	Favorites(userID string) []building.Building
	FindByName(name string) (building.Building, bool)
}
