package favorites

import "github.com/kenchiku-cloud/archmap/internal/domain/building"

// record is the denormalized wire shape stored per favorite. It carries the
// full building plus the owning user id, so the favorites view renders
// without touching the directory.
type record struct {
	UserID      string  `json:"user_id"`
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Architect   string  `json:"architect"`
	Year        int     `json:"year"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	Address     string  `json:"address"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

func toRecord(userID string, b building.Building) record {
	return record{
		UserID:      userID,
		ID:          b.ID(),
		Name:        b.Name(),
		Architect:   b.Architect(),
		Year:        b.Year(),
		Description: b.Description(),
		ImageURL:    b.ImageURL(),
		Address:     b.Address(),
		Latitude:    b.Latitude(),
		Longitude:   b.Longitude(),
	}
}

func (r record) toBuilding() building.Building {
	return building.Reconstruct(
		r.ID, r.Name, r.Architect, r.Year,
		r.Description, r.ImageURL, r.Address,
		r.Latitude, r.Longitude,
	)
}
