package password_test

import (
	"errors"
	"strings"
	"testing"

	"villa/shared/password"
)

func TestErrors(t *testing.T) {
	if password.ErrInvalidPassword.Error() != "invalid password" {
		t.Errorf("expected ErrInvalidPassword message to be 'invalid password', got %s", password.ErrInvalidPassword.Error())
	}
	if password.ErrEmptyPassword.Error() != "password cannot be empty" {
		t.Errorf("expected ErrEmptyPassword message to be 'password cannot be empty', got %s", password.ErrEmptyPassword.Error())
	}
	if password.ErrVerifyingPassword.Error() != "error verifying password" {
		t.Errorf("expected ErrVerifyingPassword message to be 'error verifying password', got %s", password.ErrVerifyingPassword.Error())
	}
}

func TestHash(t *testing.T) {
	tests := []struct {
		name          string
		password      string
		expectError   bool
		expectedError error
	}{
		{
			name:     "valid password",
			password: "validPassword123",
		},
		{
			name:          "empty password",
			password:      "",
			expectError:   true,
			expectedError: password.ErrEmptyPassword,
		},
		{
			name:     "long password",
			password: strings.Repeat("a", 200),
		},
		{
			name:     "unicode password",
			password: "пароль123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := password.Hash(tt.password)

			if tt.expectError {
				if !errors.Is(err, tt.expectedError) {
					t.Errorf("expected error %v, got %v", tt.expectedError, err)
				}
				if hash != "" {
					t.Errorf("expected empty hash when error occurs, got %s", hash)
				}

				return
			}

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			key, salt, found := strings.Cut(hash, ".")
			if !found {
				t.Fatalf("expected hash.salt format, got %s", hash)
			}
			if len(key) != password.KeyLen*2 {
				t.Errorf("expected %d hex chars of key, got %d", password.KeyLen*2, len(key))
			}
			if len(salt) != password.SaltLen*2 {
				t.Errorf("expected %d hex chars of salt, got %d", password.SaltLen*2, len(salt))
			}
		})
	}
}

func TestVerify(t *testing.T) {
	testPassword := "correctPassword"

	validHash, err := password.Hash(testPassword)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	tests := []struct {
		name          string
		password      string
		hash          string
		expectedError error
	}{
		{name: "correct password", password: testPassword, hash: validHash},
		{name: "wrong password", password: "wrongPassword", hash: validHash, expectedError: password.ErrInvalidPassword},
		{name: "empty password", password: "", hash: validHash, expectedError: password.ErrInvalidPassword},
		{name: "empty hash", password: testPassword, hash: "", expectedError: password.ErrInvalidPassword},
		{name: "missing salt", password: testPassword, hash: strings.Repeat("ab", 64), expectedError: password.ErrVerifyingPassword},
		{name: "not hex", password: testPassword, hash: "zz.salt", expectedError: password.ErrVerifyingPassword},
		{name: "truncated key", password: testPassword, hash: validHash[:10] + ".abcd", expectedError: password.ErrVerifyingPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.password, tt.hash)

			if tt.expectedError == nil {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}

				return
			}

			if !errors.Is(err, tt.expectedError) {
				t.Errorf("expected error %v, got %v", tt.expectedError, err)
			}
		})
	}
}

func TestHashConsistency(t *testing.T) {
	pwd := "testPassword"

	first, err := password.Hash(pwd)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	second, err := password.Hash(pwd)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	// random salt
	if first == second {
		t.Errorf("expected different hashes, got identical: %s", first)
	}

	for _, hash := range []string{first, second} {
		if err := password.Verify(pwd, hash); err != nil {
			t.Errorf("failed to verify password with hash %s: %v", hash, err)
		}
	}
}
