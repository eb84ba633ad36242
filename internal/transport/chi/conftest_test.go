package chi

import (
	"context"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kenchiku-cloud/archmap/internal/auth"
	"github.com/kenchiku-cloud/archmap/internal/directory"
	"github.com/kenchiku-cloud/archmap/internal/domain"
	"github.com/kenchiku-cloud/archmap/internal/domain/building"
	"github.com/kenchiku-cloud/archmap/internal/domain/filter"
	"github.com/kenchiku-cloud/archmap/internal/repository/user"
	accountuc "github.com/kenchiku-cloud/archmap/internal/usecase/account"
	directoryuc "github.com/kenchiku-cloud/archmap/internal/usecase/directory"
	favoritesuc "github.com/kenchiku-cloud/archmap/internal/usecase/favorites"
	healthuc "github.com/kenchiku-cloud/archmap/internal/usecase/health"
)

// stubSource serves a fixed dataset.
type stubSource struct {
	records []building.Building
}

func (s *stubSource) Load(context.Context, string) ([]building.Building, int, error) {
	return s.records, 0, nil
}

// memRemote is an in-memory favorites remote.
type memRemote struct {
	mu   sync.Mutex
	data map[string]map[string]building.Building

	insertErr error
}

func newMemRemote() *memRemote {
	return &memRemote{data: make(map[string]map[string]building.Building)}
}

func (m *memRemote) Insert(_ context.Context, userID string, b building.Building) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data[userID] == nil {
		m.data[userID] = make(map[string]building.Building)
	}
	m.data[userID][b.Name()] = b
	return nil
}

func (m *memRemote) Delete(_ context.Context, userID, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data[userID], name)
	return nil
}

func (m *memRemote) ListByUser(_ context.Context, userID string) ([]building.Building, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]building.Building, 0, len(m.data[userID]))
	for _, b := range m.data[userID] {
		out = append(out, b)
	}
	return out, nil
}

// memUserRepo is an in-memory account store.
type memUserRepo struct {
	mu       sync.Mutex
	accounts map[string]user.Account
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{accounts: make(map[string]user.Account)}
}

func (m *memUserRepo) Create(_ context.Context, acc user.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[acc.Email]; ok {
		return domain.ErrAccountExists
	}
	m.accounts[acc.Email] = acc
	return nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (user.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[email]
	if !ok {
		return user.Account{}, domain.ErrInvalidCredentials
	}
	return acc, nil
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func testDataset() []building.Building {
	return []building.Building{
		building.Reconstruct("1", "国立代々木競技場", "丹下健三", 1964, "五輪会場", "https://example.com/a.jpg",
			"東京都渋谷区神南2-1-1", 35.667, 139.699),
		building.Reconstruct("2", "東京都庁舎", "丹下健三", 1991, "", "https://example.com/b.jpg",
			"東京都新宿区西新宿2-8-1", 35.689, 139.692),
		building.Reconstruct("3", "根津美術館", "隈研吾", 2009, "", "https://example.com/c.jpg",
			"東京都港区南青山6-5-1", 35.662, 139.717),
	}
}

type testEnv struct {
	srv    *httptest.Server
	remote *memRemote
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := zap.NewNop()
	store := directory.NewStore()
	source := &stubSource{records: testDataset()}
	dirSvc := directoryuc.New(store, source, "test.csv", filter.YearRange{Min: 1900, Max: 2024}, logger)
	if err := dirSvc.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	remote := newMemRemote()
	favSvc := favoritesuc.New(remote, store, time.Second, logger)

	tokens := auth.NewTokenService([]byte("test-secret"), time.Hour)
	ids := 0
	accSvc := accountuc.New(newMemUserRepo(), tokens, 8, func() string {
		ids++
		return "user-" + strconv.Itoa(ids)
	}, logger)

	healthSvc := healthuc.New(okPinger{}, store)

	server := NewServer(dirSvc, favSvc, accSvc, healthSvc, logger)
	r := chi.NewRouter()
	server.Register(r, tokens)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testEnv{srv: srv, remote: remote}
}
