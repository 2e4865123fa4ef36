package auth

import (
	"net/http"
	"testing"
	"time"
)

func TestGenerateAndVerify(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, err := m.Generate("+15550001111", "alice")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if claims.Subject != "+15550001111" {
		t.Errorf("subject = %q, want phone", claims.Subject)
	}
	if claims.Name != "alice" {
		t.Errorf("name = %q, want alice", claims.Name)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	other := NewJWTManager("other-secret", time.Hour)

	token, _ := m.Generate("+15550001111", "alice")

	if _, err := other.Verify(token); err == nil {
		t.Error("token verified with wrong secret")
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute)

	token, _ := m.Generate("+15550001111", "alice")

	if _, err := m.Verify(token); err == nil {
		t.Error("expired token verified")
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc123")

	token, err := ExtractTokenFromHeader(req)
	if err != nil {
		t.Fatalf("ExtractTokenFromHeader failed: %v", err)
	}
	if token != "abc123" {
		t.Errorf("token = %q, want abc123", token)
	}

	req.Header.Set("Authorization", "abc123")
	if _, err := ExtractTokenFromHeader(req); err == nil {
		t.Error("malformed header accepted")
	}
}
