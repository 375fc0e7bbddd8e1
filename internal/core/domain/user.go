package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrMissingFields is returned when a registration form lacks a required field.
	ErrMissingFields = errors.New("email and password are required")
	// ErrPasswordMismatch is returned when the password confirmation does not match.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrEmailTaken is returned when the normalized email already belongs to a user.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password, so a
	// failed login never reveals which part was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is an internal lookup miss; the session gate and handlers
	// translate it before it reaches a client.
	ErrUserNotFound = errors.New("user not found")
)

// User models a registered account. Only the bcrypt hash of the password is
// ever stored.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// NormalizeEmail canonicalizes an email for storage and lookup: surrounding
// whitespace removed, lower-cased. Uniqueness is enforced on this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
