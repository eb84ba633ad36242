package building

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Building is a single directory entry (immutable value object).
//
// The building name is the identity key for favoriting and deduplication.
// Two distinct buildings sharing a name collide; this is a known limitation
// of the source data, not something the directory tries to resolve. The id
// is a synthetic marker key for presentation and carries no identity weight.
type Building struct {
	id        string
	name      string
	architect string
	year      int
	desc      string
	imageURL  string
	address   string
	district  string
	lat       float64
	lon       float64
}

// New validates and creates a Building. Name must be non-empty and both
// coordinates finite; the district is derived from the address once, here.
func New(name, architect string, year int, desc, imageURL, address string, lat, lon float64) (Building, error) {
	if name == "" {
		return Building{}, fmt.Errorf("building name is required")
	}
	if !isFinite(lat) || !isFinite(lon) {
		return Building{}, fmt.Errorf("building %q has non-finite coordinates", name)
	}

	return Building{
		id:        uuid.NewString(),
		name:      name,
		architect: architect,
		year:      year,
		desc:      desc,
		imageURL:  imageURL,
		address:   address,
		district:  ExtractDistrict(address),
		lat:       lat,
		lon:       lon,
	}, nil
}

// Reconstruct creates a Building without validation (storage hydration).
func Reconstruct(id, name, architect string, year int, desc, imageURL, address string, lat, lon float64) Building {
	return Building{
		id:        id,
		name:      name,
		architect: architect,
		year:      year,
		desc:      desc,
		imageURL:  imageURL,
		address:   address,
		district:  ExtractDistrict(address),
		lat:       lat,
		lon:       lon,
	}
}

// ID returns the synthetic marker identifier.
func (b Building) ID() string { return b.id }

// Name returns the building name (identity key).
func (b Building) Name() string { return b.name }

// Key returns the identity key used for favoriting and deduplication.
func (b Building) Key() string { return b.name }

// Architect returns the architect name.
func (b Building) Architect() string { return b.architect }

// Year returns the completion year. Zero means the year is unknown; such
// buildings pass year filters vacuously and stay out of the facet range.
func (b Building) Year() int { return b.year }

// Description returns the free-text description.
func (b Building) Description() string { return b.desc }

// ImageURL returns the photo URL.
func (b Building) ImageURL() string { return b.imageURL }

// Address returns the free-text address.
func (b Building) Address() string { return b.address }

// District returns the administrative ward derived from the address,
// or "" when the address carries no recognizable ward.
func (b Building) District() string { return b.district }

// Latitude returns the latitude in degrees.
func (b Building) Latitude() float64 { return b.lat }

// Longitude returns the longitude in degrees.
func (b Building) Longitude() float64 { return b.lon }

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
