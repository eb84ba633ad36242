package archmap

import "time"

// Building is a directory entry as returned by the API.
type Building struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Architect   string  `json:"architect"`
	Year        int     `json:"year"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	Address     string  `json:"address"`
	District    string  `json:"district,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Favorite    *bool   `json:"favorite,omitempty"`
}

// BuildingList is a directory query result.
type BuildingList struct {
	Items []Building `json:"items"`
	Total int        `json:"total"`
}

// Facets are the selectable filter values.
type Facets struct {
	Architects []string `json:"architects"`
	Districts  []string `json:"districts"`
	Years      struct {
		Min int `json:"min"`
		Max int `json:"max"`
	} `json:"years"`
}

// Filter narrows a Buildings query. Zero values mean "no constraint".
type Filter struct {
	Architects []string
	Districts  []string
	YearFrom   *int
	YearTo     *int
}

// Session is an authenticated API session.
type Session struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Toggle is the outcome of a favorite toggle.
type Toggle struct {
	Name     string `json:"name"`
	Favorite bool   `json:"favorite"`
	State    string `json:"state"`
}
