package domain

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Password length bounds accepted on register or change. bcrypt only hashes
// the first 72 bytes and rejects anything longer.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 72
)

// User models an account that can own movies.
// A user authenticates with a password, a Google account, or both.
type User struct {
	ID           string    `json:"_id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	GoogleID     string    `json:"googleId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// HasPassword reports whether password login is possible for the user.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// SetPassword hashes plain and stores the hash. It must be called before the
// user is persisted whenever the password changes.
func (u *User) SetPassword(plain string) error {
	if len(plain) < MinPasswordLength {
		return NewValidationError("password", "must be at least 6 characters")
	}
	if len(plain) > MaxPasswordLength {
		return NewValidationError("password", "must be at most 72 bytes")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether plain matches the stored hash.
// Users without a password never match.
func (u *User) CheckPassword(plain string) bool {
	if !u.HasPassword() {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}

// Validate checks the invariants that hold for every stored user.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Email) == "" {
		return NewValidationError("email", "is required")
	}
	if u.PasswordHash == "" && u.GoogleID == "" {
		return NewValidationError("", "user must have a password or a linked google account")
	}
	return nil
}

// NormalizeEmail lower-cases and trims an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ExternalIdentity is what an identity provider vouches for after verifying a credential.
type ExternalIdentity struct {
	Subject string
	Email   string
	Name    string
}
