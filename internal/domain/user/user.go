// Package user contains the user account domain model.
package user

import (
	"strings"
	"time"

	"github.com/culinamind/backend/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// User is a registered account. OAuth-only accounts carry an empty
// password hash and a provider ID instead.
type User struct {
	ID           uint
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	GoogleID     string
	FacebookID   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// New creates a user with a bcrypt-hashed password.
func New(firstName, lastName, email, password string) (*User, error) {
	u := &User{
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Email:     strings.ToLower(strings.TrimSpace(email)),
	}
	if u.FirstName == "" || u.LastName == "" {
		return nil, errors.NewValidationError("first name and last name are required")
	}
	if u.Email == "" {
		return nil, errors.NewValidationError("email is required")
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// NewFromGoogle creates a user from a verified Google identity.
func NewFromGoogle(firstName, lastName, email, googleID string) *User {
	return &User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     strings.ToLower(strings.TrimSpace(email)),
		GoogleID:  googleID,
	}
}

// SetPassword hashes and stores the password.
func (u *User) SetPassword(password string) error {
	if len(password) < 8 {
		return errors.NewValidationError("password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errors.NewInternalError("failed to hash password").WithCause(err)
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a candidate password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// FullName returns the display name.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
