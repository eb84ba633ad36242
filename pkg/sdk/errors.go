package archmap

import (
	"errors"
	"fmt"
)

// Sentinel errors mapped from API error codes. Use errors.Is() to check.
var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountExists      = errors.New("account already exists")
	ErrBuildingNotFound   = errors.New("building not found")
	ErrToggleInFlight     = errors.New("toggle already in flight")
)

// APIError carries the server's error code and message.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("archmap: %s (%s, HTTP %d)", e.Message, e.Code, e.Status)
}

// Unwrap maps well-known codes to sentinel errors.
func (e *APIError) Unwrap() error {
	switch e.Code {
	case "unauthenticated":
		return ErrUnauthenticated
	case "invalid_credentials":
		return ErrInvalidCredentials
	case "account_exists":
		return ErrAccountExists
	case "building_not_found":
		return ErrBuildingNotFound
	case "toggle_in_flight":
		return ErrToggleInFlight
	default:
		return nil
	}
}
