package dataset

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/kenchiku-cloud/archmap/internal/domain/building"
)

// Loader fetches and decodes the dataset from a local path or an http(s) URL.
type Loader struct {
	client  *http.Client
	timeout time.Duration
}

// NewLoader creates a Loader with the given fetch timeout.
func NewLoader(timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Loader{
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// Load fetches the resource at source and decodes it. A fetch or header
// failure is fatal for the load; per-row failures only bump the dropped count.
func (l *Loader) Load(ctx context.Context, source string) ([]building.Building, int, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return l.loadHTTP(ctx, source)
	}
	return l.loadFile(source)
}

func (l *Loader) loadHTTP(ctx context.Context, url string) ([]building.Building, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build dataset request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch dataset %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("fetch dataset %s: unexpected status %d", url, resp.StatusCode)
	}

	return Decode(resp.Body)
}

func (l *Loader) loadFile(path string) ([]building.Building, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open dataset %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}
