package utils

import (
	"testing"
	"time"
)

func init() {
	SetJWTSecret("test-secret-key-for-testing")
}

func TestGenerateToken_RoundTripForEachRole(t *testing.T) {
	tests := []struct {
		userID   uint
		username string
		role     string
	}{
		{1, "admin", "admin"},
		{2, "lead", "manager"},
		{3, "analyst", "researcher"},
		{4, "annotator1", "annotator"},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			token, err := GenerateToken(tt.userID, tt.username, tt.role, 24)
			if err != nil {
				t.Fatalf("GenerateToken() error = %v", err)
			}
			if len(token) < 50 {
				t.Errorf("token seems too short: %d chars", len(token))
			}

			claims, err := ParseToken(token)
			if err != nil {
				t.Fatalf("ParseToken() error = %v", err)
			}
			if claims.UserID != tt.userID {
				t.Errorf("UserID = %d, expected %d", claims.UserID, tt.userID)
			}
			if claims.Username != tt.username {
				t.Errorf("Username = %q, expected %q", claims.Username, tt.username)
			}
			if claims.Role != tt.role {
				t.Errorf("Role = %q, expected %q", claims.Role, tt.role)
			}
		})
	}
}

func TestGenerateToken_DifferentUsersDifferentTokens(t *testing.T) {
	token1, _ := GenerateToken(1, "annotator1", "annotator", 24)
	token2, _ := GenerateToken(2, "annotator2", "annotator", 24)

	if token1 == token2 {
		t.Error("different users should produce different tokens")
	}
}

func TestParseToken_InvalidToken(t *testing.T) {
	invalidTokens := []string{
		"",
		"invalid",
		"not.a.token",
		"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.invalid.signature",
	}

	for _, token := range invalidTokens {
		_, err := ParseToken(token)
		if err == nil {
			t.Errorf("ParseToken(%q) should return error", token)
		}
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	SetJWTSecret("original-secret")
	token, _ := GenerateToken(1, "annotator1", "annotator", 24)

	SetJWTSecret("different-secret")
	_, err := ParseToken(token)

	SetJWTSecret("test-secret-key-for-testing")

	if err == nil {
		t.Error("ParseToken should fail with wrong secret")
	}
}

func TestGenerateToken_Expiration(t *testing.T) {
	token, _ := GenerateToken(1, "reviewer", "researcher", 1)
	claims, _ := ParseToken(token)

	expiresAt := claims.ExpiresAt.Time
	now := time.Now()

	if expiresAt.Before(now) {
		t.Error("token should not be expired immediately")
	}

	expectedExpiry := now.Add(1 * time.Hour)
	diff := expiresAt.Sub(expectedExpiry)
	if diff < -time.Minute || diff > time.Minute {
		t.Errorf("expiration time is off by more than 1 minute: %v", diff)
	}
}

func TestSetJWTSecret_RotationInvalidatesOldTokens(t *testing.T) {
	SetJWTSecret("before-rotation")
	token, _ := GenerateToken(1, "admin", "admin", 24)

	SetJWTSecret("after-rotation")
	_, err := ParseToken(token)

	SetJWTSecret("test-secret-key-for-testing")

	if err == nil {
		t.Error("token signed before rotation should no longer parse")
	}
}
