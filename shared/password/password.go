package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

const (
	// Cost parameters match the scrypt defaults used by Node's crypto.scrypt.
	CostN   = 16384
	CostR   = 8
	CostP   = 1
	KeyLen  = 64
	SaltLen = 16

	separator = "."
)

var (
	ErrInvalidPassword   = errors.New("invalid password")
	ErrEmptyPassword     = errors.New("password cannot be empty")
	ErrHashingPassword   = errors.New("error hashing password")
	ErrVerifyingPassword = errors.New("error verifying password")
)

// Hash derives a scrypt key from the password and a random salt.
// The result is stored as "<hex key>.<hex salt>".
func Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	salt := make([]byte, SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("%w: %w", ErrHashingPassword, err)
	}

	saltHex := hex.EncodeToString(salt)

	key, err := derive(password, saltHex)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(key) + separator + saltHex, nil
}

// Verify checks if the provided password matches the stored hash
func Verify(password, hash string) error {
	if password == "" || hash == "" {
		return ErrInvalidPassword
	}

	keyHex, salt, found := strings.Cut(hash, separator)
	if !found || salt == "" {
		return ErrVerifyingPassword
	}

	stored, err := hex.DecodeString(keyHex)
	if err != nil || len(stored) != KeyLen {
		return ErrVerifyingPassword
	}

	supplied, err := derive(password, salt)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrVerifyingPassword, err)
	}

	if subtle.ConstantTimeCompare(stored, supplied) != 1 {
		return ErrInvalidPassword
	}

	return nil
}

// the salt is used in its hex form, the same bytes the stored value carries
func derive(password, salt string) ([]byte, error) {
	key, err := scrypt.Key([]byte(password), []byte(salt), CostN, CostR, CostP, KeyLen)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHashingPassword, err)
	}

	return key, nil
}
