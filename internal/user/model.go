package user

import (
	"errors"
	"net/http"
	"time"

	"github.com/nekogravitycat/resort-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "user not found")
	ErrUsernameTaken      = apperror.New(http.StatusConflict, "username already taken")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid username or password")
	ErrInvalidUsername    = apperror.New(http.StatusBadRequest, "username must be 3 to 64 characters")
	ErrPasswordTooShort   = apperror.New(http.StatusBadRequest, "password is too short")
)

var errDuplicateUsername = errors.New("duplicate username")

// User is an account that can sign in. Guests book under their username;
// staff accounts may act on any booking.
type User struct {
	ID           string // UUID
	Username     string
	PasswordHash string
	IsStaff      bool
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}
