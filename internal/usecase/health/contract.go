package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// DirectoryChecker reports whether the building dataset has been loaded.
type DirectoryChecker interface {
	Loaded() bool
}
