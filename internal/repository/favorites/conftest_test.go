package favorites

import (
	"context"

	"github.com/kenchiku-cloud/archmap/internal/domain/building"
)

// mockStore implements the store interface with overridable functions.
type mockStore struct {
	hsetFn    func(ctx context.Context, key string, fields map[string]string) error
	hgetAllFn func(ctx context.Context, key string) (map[string]string, error)
	hdelFn    func(ctx context.Context, key string, fields ...string) error
}

func (m *mockStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if m.hsetFn != nil {
		return m.hsetFn(ctx, key, fields)
	}
	return nil
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hgetAllFn != nil {
		return m.hgetAllFn(ctx, key)
	}
	return nil, nil
}

func (m *mockStore) HDel(ctx context.Context, key string, fields ...string) error {
	if m.hdelFn != nil {
		return m.hdelFn(ctx, key, fields...)
	}
	return nil
}

func testBuilding(id, name string) building.Building {
	return building.Reconstruct(id, name, "丹下健三", 1964, "体育館", "https://example.com/a.jpg",
		"東京都渋谷区神南2-1-1", 35.667, 139.699)
}
