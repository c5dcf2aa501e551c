package services

import (
	"strings"
	"testing"
)

func TestLoginRequest_DefaultsToLocalAuth(t *testing.T) {
	req := LoginRequest{
		Username: "annotator1",
		Password: "secret",
	}

	if req.AuthType != "" {
		t.Errorf("AuthType should be empty before Login applies the default, got %q", req.AuthType)
	}
	if authTypeLocal != "local" {
		t.Errorf("authTypeLocal = %q, expected %q", authTypeLocal, "local")
	}
	if authTypeLDAP != "ldap" {
		t.Errorf("authTypeLDAP = %q, expected %q", authTypeLDAP, "ldap")
	}
}

func TestAuthErrors_Distinct(t *testing.T) {
	errs := []error{
		ErrInvalidCredentials,
		ErrAccountDisabled,
		ErrRefreshTokenInvalid,
		ErrRefreshTokenExpired,
		ErrRefreshTokenRevoked,
	}

	seen := make(map[string]bool)
	for _, err := range errs {
		if err.Error() == "" {
			t.Error("auth error should carry a message")
		}
		if seen[err.Error()] {
			t.Errorf("duplicate auth error message: %q", err.Error())
		}
		seen[err.Error()] = true
	}
}

func TestAuthErrors_DoNotLeakUsernameExistence(t *testing.T) {
	// A wrong password and an unknown username must be indistinguishable.
	if strings.Contains(ErrInvalidCredentials.Error(), "not found") {
		t.Errorf("credentials error leaks existence: %q", ErrInvalidCredentials.Error())
	}
}

func TestRefreshTokenDigest_Deterministic(t *testing.T) {
	token := "0123456789abcdef0123456789abcdef"

	first := refreshTokenDigest(token)
	second := refreshTokenDigest(token)

	if first != second {
		t.Errorf("digest not deterministic: %q vs %q", first, second)
	}
	if len(first) != 64 {
		t.Errorf("digest length = %d, expected 64 hex chars", len(first))
	}
	if first == token {
		t.Error("digest should not equal the raw token")
	}
}

func TestRefreshTokenDigest_DistinguishesTokens(t *testing.T) {
	a := refreshTokenDigest("token-a")
	b := refreshTokenDigest("token-b")

	if a == b {
		t.Error("different tokens should produce different digests")
	}
}

func TestChangePasswordRequest_Structure(t *testing.T) {
	req := ChangePasswordRequest{
		OldPassword: "admin",
		NewPassword: "stronger-pass",
	}

	if req.OldPassword != "admin" {
		t.Errorf("OldPassword = %q, expected %q", req.OldPassword, "admin")
	}
	if req.NewPassword != "stronger-pass" {
		t.Errorf("NewPassword = %q, expected %q", req.NewPassword, "stronger-pass")
	}
}
