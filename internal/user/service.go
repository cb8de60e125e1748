package user

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/nekogravitycat/resort-booking-backend/internal/auth"
)

// Service defines business logic related to accounts.
type Service interface {
	Register(ctx context.Context, username, password string) (*User, error)
	Login(ctx context.Context, username, password string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	// EnsureStaff creates the staff account, or resets its password and
	// staff flag when it already exists.
	EnsureStaff(ctx context.Context, username, password string) (*User, error)
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher

	minPasswordLength int
}

// NewService creates a new user Service.
func NewService(repo Repository, hasher auth.PasswordHasher) Service {
	return &service{
		repo:              repo,
		hasher:            hasher,
		minPasswordLength: 8,
	}
}

func (s *service) Register(ctx context.Context, username, password string) (*User, error) {
	name, err := s.validate(username, password)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &User{
		ID:           uuid.NewString(),
		Username:     name,
		PasswordHash: hash,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, errDuplicateUsername) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return u, nil
}

func (s *service) Login(ctx context.Context, username, password string) (*User, error) {
	name := normalizeUsername(username)
	if name == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.repo.GetByUsername(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Best effort; a failed bookkeeping write must not fail the login.
	now := time.Now().UTC()
	if err := s.repo.UpdateLastLogin(ctx, u.ID, now); err != nil {
		log.Printf("warning: failed to record login for %s: %v", u.Username, err)
	} else {
		u.LastLoginAt = &now
	}

	return u, nil
}

func (s *service) GetByUsername(ctx context.Context, username string) (*User, error) {
	return s.repo.GetByUsername(ctx, normalizeUsername(username))
}

func (s *service) EnsureStaff(ctx context.Context, username, password string) (*User, error) {
	name, err := s.validate(username, password)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	existing, err := s.repo.GetByUsername(ctx, name)
	switch {
	case err == nil:
		existing.PasswordHash = hash
		existing.IsStaff = true
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update staff account: %w", err)
		}
		return existing, nil
	case errors.Is(err, ErrNotFound):
	default:
		return nil, fmt.Errorf("failed to fetch staff account: %w", err)
	}

	u := &User{
		ID:           uuid.NewString(),
		Username:     name,
		PasswordHash: hash,
		IsStaff:      true,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to create staff account: %w", err)
	}
	return u, nil
}

func (s *service) validate(username, password string) (string, error) {
	name := normalizeUsername(username)
	if n := utf8.RuneCountInString(name); n < 3 || n > 64 {
		return "", ErrInvalidUsername
	}
	if len(password) < s.minPasswordLength {
		return "", ErrPasswordTooShort
	}
	return name, nil
}

// normalizeUsername trims surrounding spaces. Case is kept because the
// username doubles as the guest name printed on bookings.
func normalizeUsername(username string) string {
	return strings.TrimSpace(username)
}
