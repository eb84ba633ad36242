package directory

import (
	"context"

	"github.com/kenchiku-cloud/archmap/internal/domain/building"
)

// Source fetches and decodes the building dataset.
type Source interface {
	Load(ctx context.Context, source string) (records []building.Building, dropped int, err error)
}

// Store is the in-memory directory the service reads and reloads.
type Store interface {
	Load(records []building.Building)
	Clear()
	All() []building.Building
	Version() uint64
	FindByName(name string) (building.Building, bool)
}
