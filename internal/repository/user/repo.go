// Package user persists account records in the remote store.
package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kenchiku-cloud/archmap/internal/db"
	"github.com/kenchiku-cloud/archmap/internal/domain"
)

// Account is a stored user account.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// store is the consumer interface for accounts (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetNX(ctx context.Context, key string, value []byte) (bool, error)
}

// Repo implements usecase/account.Repository.
type Repo struct {
	store store
}

// New creates a user repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Create stores a new account. Fails with domain.ErrAccountExists when the
// email is already registered.
func (r *Repo) Create(ctx context.Context, acc Account) error {
	data, err := json.Marshal(acc)
	if err != nil {
		return fmt.Errorf("marshal account: %w", err)
	}

	key := accountKey(acc.Email)
	created, err := r.store.SetNX(ctx, key, data)
	if err != nil {
		return fmt.Errorf("setnx %s: %w", key, err)
	}
	if !created {
		return domain.ErrAccountExists
	}
	return nil
}

// GetByEmail returns the account for an email, or domain.ErrInvalidCredentials
// when no such account exists. The caller cannot distinguish an unknown email
// from a wrong password.
func (r *Repo) GetByEmail(ctx context.Context, email string) (Account, error) {
	key := accountKey(email)
	data, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return Account{}, domain.ErrInvalidCredentials
		}
		return Account{}, fmt.Errorf("get %s: %w", key, err)
	}

	var acc Account
	if err := json.Unmarshal(data, &acc); err != nil {
		return Account{}, fmt.Errorf("unmarshal account: %w", err)
	}
	return acc, nil
}

func accountKey(email string) string {
	return fmt.Sprintf("%susers:%s", domain.KeyPrefix, strings.ToLower(email))
}
