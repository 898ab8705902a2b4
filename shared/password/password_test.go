package password_test

import (
	"errors"
	"strings"
	"testing"

	"donmario/shared/password"

	"golang.org/x/crypto/bcrypt"
)

func TestConstants(t *testing.T) {
	if password.DefaultCost != bcrypt.DefaultCost {
		t.Errorf("expected DefaultCost to be %d, got %d", bcrypt.DefaultCost, password.DefaultCost)
	}
}

func TestHash(t *testing.T) {
	tests := []struct {
		name        string
		password    string
		expectError bool
	}{
		{name: "valid password", password: "adminpass", expectError: false},
		{name: "empty password", password: "", expectError: true},
		{name: "long password", password: strings.Repeat("a", 70), expectError: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := password.Hash(tt.password)

			if tt.expectError {
				if err == nil {
					t.Error("expected error, got nil")
				}

				return
			}

			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if hash == "" || hash == tt.password {
				t.Error("expected a non-empty hash distinct from the password")
			}
		})
	}
}

func TestVerify(t *testing.T) {
	hash, err := password.Hash("adminpass")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	if err := password.Verify("adminpass", hash); err != nil {
		t.Errorf("expected matching password to verify, got %v", err)
	}

	if err := password.Verify("wrongpass", hash); !errors.Is(err, password.ErrInvalidPassword) {
		t.Errorf("expected ErrInvalidPassword, got %v", err)
	}

	if err := password.Verify("", hash); !errors.Is(err, password.ErrInvalidPassword) {
		t.Errorf("expected ErrInvalidPassword for empty password, got %v", err)
	}

	if err := password.Verify("adminpass", ""); !errors.Is(err, password.ErrInvalidPassword) {
		t.Errorf("expected ErrInvalidPassword for empty hash, got %v", err)
	}
}
