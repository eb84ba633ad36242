// Package account handles sign-up and sign-in, issuing session tokens.
package account

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/kenchiku-cloud/archmap/internal/auth"
	"github.com/kenchiku-cloud/archmap/internal/domain"
	"github.com/kenchiku-cloud/archmap/internal/repository/user"
)

// Session is the outcome of a successful sign-up or sign-in.
type Session struct {
	UserID    string
	Email     string
	Token     string
	ExpiresAt time.Time
}

// Service handles credential submission for both sign-in and sign-up flows.
type Service struct {
	repo        Repository
	tokens      Tokens
	minPassword int
	newID       func() string
	logger      *zap.Logger
}

// New creates an account service. newID generates user ids (uuid in prod,
// injectable for tests).
func New(repo Repository, tokens Tokens, minPassword int, newID func() string, logger *zap.Logger) *Service {
	if minPassword <= 0 {
		minPassword = 8
	}
	return &Service{
		repo:        repo,
		tokens:      tokens,
		minPassword: minPassword,
		newID:       newID,
		logger:      logger,
	}
}

// SignUp registers a new account and signs it in.
func (s *Service) SignUp(ctx context.Context, email, password string) (Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if err := s.validate(email, password); err != nil {
		return Session{}, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	acc := user.Account{
		ID:           s.newID(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, acc); err != nil {
		return Session{}, fmt.Errorf("create account: %w", err)
	}

	s.logger.Info("Account created", zap.String("user_id", acc.ID))
	return s.issue(acc)
}

// SignIn verifies credentials and issues a session token.
func (s *Service) SignIn(ctx context.Context, email, password string) (Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	acc, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return Session{}, fmt.Errorf("look up account: %w", err)
	}

	ok, err := auth.VerifyPassword(password, acc.PasswordHash)
	if err != nil {
		return Session{}, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return Session{}, domain.ErrInvalidCredentials
	}

	return s.issue(acc)
}

func (s *Service) issue(acc user.Account) (Session, error) {
	token, expiresAt, err := s.tokens.Issue(acc.ID, acc.Email)
	if err != nil {
		return Session{}, fmt.Errorf("issue token: %w", err)
	}
	return Session{
		UserID:    acc.ID,
		Email:     acc.Email,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *Service) validate(email, password string) error {
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("a valid email address is required: %w", domain.ErrInvalidCredentials)
	}
	if utf8.RuneCountInString(password) < s.minPassword {
		return fmt.Errorf("password must be at least %d characters: %w", s.minPassword, domain.ErrInvalidCredentials)
	}
	return nil
}
