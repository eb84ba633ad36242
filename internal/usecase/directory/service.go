package directory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/kenchiku-cloud/archmap/internal/domain/building"
	"github.com/kenchiku-cloud/archmap/internal/domain/filter"
	"github.com/kenchiku-cloud/archmap/internal/domain/geo"
)

// Service loads the directory and answers facet and filter queries.
type Service struct {
	store    Store
	source   Source
	location string
	fallback filter.YearRange
	logger   *zap.Logger

	// Facets are recomputed lazily: cached against the store version,
	// refreshed on the first query after a reload.
	facetMu      sync.Mutex
	facets       filter.Facets
	facetVersion uint64
	facetValid   bool
}

// New creates a directory service reading the dataset from location.
func New(store Store, source Source, location string, fallback filter.YearRange, logger *zap.Logger) *Service {
	return &Service{
		store:    store,
		source:   source,
		location: location,
		fallback: fallback,
		logger:   logger,
	}
}

// Load fetches the dataset and replaces the directory wholesale. A failed
// load leaves the directory empty rather than blocking startup; the caller
// decides whether to surface or tolerate the error.
func (s *Service) Load(ctx context.Context) error {
	records, dropped, err := s.source.Load(ctx, s.location)
	if err != nil {
		s.store.Clear()
		return fmt.Errorf("load dataset: %w", err)
	}

	s.store.Load(records)
	s.logger.Info("Dataset loaded",
		zap.String("source", s.location),
		zap.Int("buildings", len(records)),
		zap.Int("dropped_rows", dropped),
	)
	return nil
}

// All returns the full directory in decode order.
func (s *Service) All() []building.Building {
	return s.store.All()
}

// Get returns a single building by identity key.
func (s *Service) Get(name string) (building.Building, bool) {
	return s.store.FindByName(name)
}

// Facets returns the selectable filter values, recomputing only when the
// directory has been reloaded since the last query.
func (s *Service) Facets() filter.Facets {
	s.facetMu.Lock()
	defer s.facetMu.Unlock()

	v := s.store.Version()
	if !s.facetValid || v != s.facetVersion {
		s.facets = filter.Derive(s.store.All(), s.fallback)
		s.facetVersion = v
		s.facetValid = true
	}
	return s.facets
}

// Filter returns the buildings matching the criteria, preserving decode order.
func (s *Service) Filter(c filter.Criteria) []building.Building {
	return filter.Apply(s.store.All(), c)
}

// Near returns buildings within radiusMeters of the given point, closest
// first. Serves the map surface.
func (s *Service) Near(lat, lon, radiusMeters float64) ([]building.Building, error) {
	if !geo.ValidateCoordinates(lat, lon) {
		return nil, fmt.Errorf("invalid coordinates: lat=%f lon=%f", lat, lon)
	}
	if radiusMeters <= 0 {
		return nil, fmt.Errorf("radius must be positive, got %f", radiusMeters)
	}

	type hit struct {
		b building.Building
		d float64
	}
	var hits []hit
	for _, b := range s.store.All() {
		d := geo.Haversine(lat, lon, b.Latitude(), b.Longitude())
		if d <= radiusMeters {
			hits = append(hits, hit{b: b, d: d})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].d < hits[j].d })

	out := make([]building.Building, len(hits))
	for i, h := range hits {
		out[i] = h.b
	}
	return out, nil
}
