package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const (
	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 12
	// bcrypt silently truncates input past 72 bytes, so longer
	// passwords are rejected instead.
	maxPasswordBytes = 72

	tokenRandomBytes = 32
)

var (
	ErrInvalidPassword  = errors.New("invalid password")
	ErrPasswordTooShort = errors.New("password must be at least 12 characters")
	ErrPasswordTooLong  = errors.New("password exceeds maximum length of 72 bytes")
)

// ValidatePassword checks the password policy without hashing.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > maxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}

// HashPassword validates the password against the policy and returns its
// bcrypt hash at the given cost.
func HashPassword(password string, cost int) (string, error) {
	if err := ValidatePassword(password); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a password with its hash.
func CheckPassword(password, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrInvalidPassword
	}
	return err
}

// APIToken pairs the plaintext shown to the caller exactly once with the
// hash kept in the users table.
type APIToken struct {
	Plaintext string
	Hash      string
}

// NewAPIToken creates a random API token. The plaintext is
// base64url-encoded so it travels cleanly in Authorization headers.
func NewAPIToken() (APIToken, error) {
	raw := make([]byte, tokenRandomBytes)
	if _, err := rand.Read(raw); err != nil {
		return APIToken{}, err
	}
	plaintext := base64.RawURLEncoding.EncodeToString(raw)
	return APIToken{Plaintext: plaintext, Hash: HashToken(plaintext)}, nil
}

// HashToken returns the SHA-256 hash under which a token is stored. Tokens
// are looked up by hash so a database leak does not expose usable tokens.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
