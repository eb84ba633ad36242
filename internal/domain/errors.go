package domain

import "errors"

var (
	// ErrUnauthenticated signals an action that requires a signed-in user.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrInvalidCredentials signals a rejected email/password combination.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrAccountExists signals a sign-up attempt for an already-registered email.
	ErrAccountExists = errors.New("account already exists")
	// ErrBuildingNotFound signals a reference to an unknown building.
	ErrBuildingNotFound = errors.New("building not found")
	// ErrToggleInFlight signals a favorite toggle rejected because an earlier
	// toggle for the same building has not resolved yet.
	ErrToggleInFlight = errors.New("favorite toggle already in flight for this building")
)
