package chi

import (
	"time"

	"github.com/kenchiku-cloud/archmap/internal/domain/building"
	"github.com/kenchiku-cloud/archmap/internal/domain/filter"
	"github.com/kenchiku-cloud/archmap/internal/usecase/account"
)

// Error codes surfaced to clients.
const (
	codeBadRequest         = "bad_request"
	codeUnauthenticated    = "unauthenticated"
	codeInvalidCredentials = "invalid_credentials"
	codeAccountExists      = "account_exists"
	codeBuildingNotFound   = "building_not_found"
	codeToggleInFlight     = "toggle_in_flight"
	codeRemoteUnavailable  = "remote_unavailable"
	codeInternalError      = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func sessionToResponse(s account.Session) sessionResponse {
	return sessionResponse{
		UserID:    s.UserID,
		Email:     s.Email,
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
	}
}

type buildingResponse struct {
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

func buildingToResponse(b building.Building) buildingResponse {
	return buildingResponse{
		ID:          b.ID(),
		Name:        b.Name(),
		Architect:   b.Architect(),
		Year:        b.Year(),
		Description: b.Description(),
		ImageURL:    b.ImageURL(),
		Address:     b.Address(),
		District:    b.District(),
		Latitude:    b.Latitude(),
		Longitude:   b.Longitude(),
	}
}

func buildingsToResponse(bs []building.Building) []buildingResponse {
	items := make([]buildingResponse, len(bs))
	for i, b := range bs {
		items[i] = buildingToResponse(b)
	}
	return items
}

type buildingListResponse struct {
	Items []buildingResponse `json:"items"`
	Total int                `json:"total"`
}

type facetsResponse struct {
	Architects []string      `json:"architects"`
	Districts  []string      `json:"districts"`
	Years      yearsResponse `json:"years"`
}

type yearsResponse struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func facetsToResponse(f filter.Facets) facetsResponse {
	architects := f.Architects
	if architects == nil {
		architects = []string{}
	}
	districts := f.Districts
	if districts == nil {
		districts = []string{}
	}
	return facetsResponse{
		Architects: architects,
		Districts:  districts,
		Years:      yearsResponse{Min: f.Years.Min, Max: f.Years.Max},
	}
}

type toggleRequest struct {
	Name string `json:"name"`
}

type toggleResponse struct {
	Name     string `json:"name"`
	Favorite bool   `json:"favorite"`
	State    string `json:"state"`
}
