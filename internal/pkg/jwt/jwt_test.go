package jwt

import (
	"testing"
	"time"
)

func TestGenerateAndValidateAccessToken(t *testing.T) {
	token, exp, err := GenerateAccessToken(1, "admin@autopro.ru", "Admin", "admin", "test-secret", 24)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}
	if exp.Before(time.Now().Add(23 * time.Hour)) {
		t.Fatalf("expected ~24h validity window, got %v", exp)
	}

	claims, err := ValidateAccessToken(token, "test-secret")
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if claims.UserID != 1 || claims.Email != "admin@autopro.ru" || claims.Role != "admin" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, _, err := GenerateAccessToken(1, "admin@autopro.ru", "Admin", "admin", "secret-a", 24)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, err := ValidateAccessToken(token, "secret-b"); err == nil {
		t.Fatalf("expected validation failure with wrong secret")
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	if _, err := ValidateAccessToken("not-a-token", "secret"); err == nil {
		t.Fatalf("expected validation failure")
	}
}
