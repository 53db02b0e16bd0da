package utils

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	const secret = "test-secret"

	token, err := GenerateToken("64f1c0ffee", "admin", "access", secret, time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ParseToken(token, secret)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != "64f1c0ffee" || claims.Role != "admin" || claims.Kind != "access" {
		t.Errorf("unexpected claims: %+v", claims)
	}

	t.Run("wrong secret rejected", func(t *testing.T) {
		if _, err := ParseToken(token, "other-secret"); err == nil {
			t.Error("expected signature error")
		}
	})

	t.Run("expired token rejected", func(t *testing.T) {
		expired, err := GenerateToken("u", "host", "access", secret, -time.Minute)
		if err != nil {
			t.Fatalf("GenerateToken: %v", err)
		}
		if _, err := ParseToken(expired, secret); err == nil {
			t.Error("expected expiry error")
		}
	})
}
