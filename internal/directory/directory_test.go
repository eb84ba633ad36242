package directory

import (
	"reflect"
	"testing"

	"github.com/kenchiku-cloud/archmap/internal/domain/building"
)

func sample(id, name string) building.Building {
	return building.Reconstruct(id, name, "丹下健三", 1964, "", "", "東京都渋谷区神南2-1-1", 35.667, 139.699)
}

func TestLoad_ReplacesAndBumpsVersion(t *testing.T) {
	s := NewStore()
	if s.Version() != 0 {
		t.Fatalf("fresh store version = %d, want 0", s.Version())
	}
	if s.Loaded() {
		t.Fatal("fresh store must not count as loaded")
	}

	s.Load([]building.Building{sample("1", "A"), sample("2", "B")})
	if got := s.Version(); got != 1 {
		t.Errorf("version after first load = %d, want 1", got)
	}
	if !s.Loaded() {
		t.Error("store must count as loaded after Load")
	}
	if got := len(s.All()); got != 2 {
		t.Errorf("len(All) = %d, want 2", got)
	}

	s.Load([]building.Building{sample("3", "C")})
	if got := s.Version(); got != 2 {
		t.Errorf("version after reload = %d, want 2", got)
	}
	all := s.All()
	if len(all) != 1 || all[0].Name() != "C" {
		t.Errorf("reload must replace contents wholesale, got %v", all)
	}
}

func TestClear(t *testing.T) {
	s := NewStore()
	s.Load([]building.Building{sample("1", "A")})
	s.Clear()

	if s.Loaded() {
		t.Error("cleared store must not count as loaded")
	}
	if len(s.All()) != 0 {
		t.Error("cleared store must be empty")
	}
	if got := s.Version(); got != 2 {
		t.Errorf("version after clear = %d, want 2 (facet caches must refresh)", got)
	}
}

func TestLoad_KeepsFavorites(t *testing.T) {
	s := NewStore()
	fav := sample("1", "A")
	s.AddFavorite("u1", fav)
	s.Load([]building.Building{sample("2", "B")})
	if !s.IsFavorite("u1", fav) {
		t.Error("reloading the directory must not clear favorites")
	}
}

func TestAddFavorite_Idempotent(t *testing.T) {
	s := NewStore()
	b := sample("1", "A")
	s.AddFavorite("u1", b)
	s.AddFavorite("u1", b)
	if got := len(s.Favorites("u1")); got != 1 {
		t.Errorf("duplicate add produced %d entries, want 1", got)
	}
}

func TestRemoveFavorite_Idempotent(t *testing.T) {
	s := NewStore()
	b := sample("1", "A")
	s.RemoveFavorite("u1", b)
	s.AddFavorite("u1", b)
	s.RemoveFavorite("u1", b)
	s.RemoveFavorite("u1", b)
	if s.IsFavorite("u1", b) {
		t.Error("building still favorite after removal")
	}
	if got := len(s.Favorites("u1")); got != 0 {
		t.Errorf("favorites not empty after removal, got %d", got)
	}
}

func TestFavorites_InsertionOrder(t *testing.T) {
	s := NewStore()
	s.AddFavorite("u1", sample("1", "C"))
	s.AddFavorite("u1", sample("2", "A"))
	s.AddFavorite("u1", sample("3", "B"))
	s.RemoveFavorite("u1", sample("2", "A"))
	s.AddFavorite("u1", sample("4", "A"))

	var got []string
	for _, b := range s.Favorites("u1") {
		got = append(got, b.Name())
	}
	want := []string{"C", "B", "A"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("favorites order = %v, want %v", got, want)
	}
}

func TestSetFavorites_Deduplicates(t *testing.T) {
	s := NewStore()
	s.AddFavorite("u1", sample("9", "old"))
	s.SetFavorites("u1", []building.Building{sample("1", "A"), sample("2", "A"), sample("3", "B")})

	favs := s.Favorites("u1")
	if len(favs) != 2 {
		t.Fatalf("len(favorites) = %d, want 2", len(favs))
	}
	if favs[0].Name() != "A" || favs[1].Name() != "B" {
		t.Errorf("unexpected favorites %v", favs)
	}
	if s.IsFavorite("u1", sample("9", "old")) {
		t.Error("hydration must replace the previous favorite set")
	}
}

func TestFavorites_PerUserIsolation(t *testing.T) {
	s := NewStore()
	s.AddFavorite("alice", sample("1", "A"))
	s.SetFavorites("bob", []building.Building{sample("2", "B")})

	if s.IsFavorite("alice", sample("2", "B")) {
		t.Error("bob's favorite visible to alice")
	}
	if s.IsFavorite("bob", sample("1", "A")) {
		t.Error("alice's favorite visible to bob")
	}

	// One user's hydration must not disturb the other's set.
	s.SetFavorites("bob", nil)
	if !s.IsFavorite("alice", sample("1", "A")) {
		t.Error("clearing bob's set removed alice's favorite")
	}
	if got := len(s.Favorites("")); got != 0 {
		t.Errorf("unknown user has %d favorites, want 0", got)
	}
}

func TestFindByName(t *testing.T) {
	s := NewStore()
	s.Load([]building.Building{sample("1", "A"), sample("2", "B")})

	b, ok := s.FindByName("B")
	if !ok || b.ID() != "2" {
		t.Errorf("FindByName(B) = (%v, %v)", b, ok)
	}
	if _, ok := s.FindByName("missing"); ok {
		t.Error("expected miss for unknown name")
	}
}
