package jwt

import (
	"testing"
	"time"

	"locallens-server/config"
)

func testConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:     "test-secret",
		ExpireTime: time.Hour,
		Issuer:     "locallens",
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewJWTService(testConfig())

	token, err := svc.GenerateToken("42", map[string]interface{}{"username": "dana"})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.Subject != "42" {
		t.Errorf("subject = %q, want 42", claims.Subject)
	}
	if claims.Data["username"] != "dana" {
		t.Errorf("data.username = %v, want dana", claims.Data["username"])
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := NewJWTService(testConfig())
	token, err := svc.GenerateToken("42", nil)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	other := NewJWTService(config.JWTConfig{
		Secret:     "different-secret",
		ExpireTime: time.Hour,
		Issuer:     "locallens",
	})
	if _, err := other.ValidateToken(token); err == nil {
		t.Error("token signed with another secret should not validate")
	}
}

func TestValidateExpiredToken(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:     "test-secret",
		ExpireTime: -time.Minute,
		Issuer:     "locallens",
	})
	token, err := svc.GenerateToken("42", nil)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if _, err := svc.ValidateToken(token); err == nil {
		t.Error("expired token should not validate")
	}
}

func TestGenerateTokenRequiresUserID(t *testing.T) {
	svc := NewJWTService(testConfig())
	if _, err := svc.GenerateToken("", nil); err == nil {
		t.Error("empty userID should be rejected")
	}
}
