package account

import (
	"context"
	"time"

	"github.com/kenchiku-cloud/archmap/internal/repository/user"
)

// Repository defines the storage contract for accounts.
type Repository interface {
	Create(ctx context.Context, acc user.Account) error
	GetByEmail(ctx context.Context, email string) (user.Account, error)
}

// Tokens issues session tokens for authenticated users.
type Tokens interface {
	Issue(userID, email string) (token string, expiresAt time.Time, err error)
}
