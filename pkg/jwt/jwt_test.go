package jwt

import (
	"testing"
	"time"
)

func TestGenerateAndParseToken(t *testing.T) {
	m := NewManager("test-secret-key-for-unit-testing", 24*time.Hour)

	token, expires, err := m.GenerateToken(7, "Marie", "marie@example.com")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}

	if claims.UserID != 7 {
		t.Errorf("Expected UserID 7, got %d", claims.UserID)
	}
	if claims.Name != "Marie" || claims.Email != "marie@example.com" {
		t.Errorf("Unexpected identity: %s <%s>", claims.Name, claims.Email)
	}
	if claims.ID == "" {
		t.Error("Expected a non-empty jti")
	}
	if !claims.ExpiresAt.Time.Equal(expires.Truncate(time.Second)) {
		t.Errorf("Expected expiry %v, got %v", expires, claims.ExpiresAt.Time)
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 23*time.Hour || ttl > 25*time.Hour {
		t.Errorf("Expected TTL of about 24h, got %v", ttl)
	}
}

func TestGenerateToken_UniqueIDs(t *testing.T) {
	m := NewManager("secret", time.Hour)

	a, _, _ := m.GenerateToken(1, "a", "a@example.com")
	b, _, _ := m.GenerateToken(1, "a", "a@example.com")
	if a == b {
		t.Error("Expected distinct tokens for repeated logins")
	}
}

func TestParseToken_InvalidToken(t *testing.T) {
	m := NewManager("secret", time.Hour)

	if _, err := m.ParseToken("invalid.token.string"); err != ErrTokenInvalid {
		t.Errorf("Expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	m1 := NewManager("secret-one", time.Hour)
	m2 := NewManager("secret-two", time.Hour)

	token, _, _ := m1.GenerateToken(1, "a", "a@example.com")
	if _, err := m2.ParseToken(token); err != ErrTokenInvalid {
		t.Errorf("Expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseToken_ExpiredToken(t *testing.T) {
	m := NewManager("secret", time.Hour)
	issued := time.Now().Add(-2 * time.Hour)
	m.now = func() time.Time { return issued }

	token, _, err := m.GenerateToken(1, "a", "a@example.com")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	m.now = time.Now
	if _, err := m.ParseToken(token); err != ErrTokenExpired {
		t.Errorf("Expected ErrTokenExpired, got %v", err)
	}
}
