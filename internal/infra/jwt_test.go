// README: HS256 verifier tests with locally signed tokens.
package infra

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const testSecret = "unit-test-secret"

func signToken(t *testing.T, secret string, claims jwt.Claims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return raw
}

func TestVerifyTokenValid(t *testing.T) {
	v := NewJWTVerifier(testSecret)
	raw := signToken(t, testSecret, bistroClaims{
		Role: "cook",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "k1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	token, err := v.VerifyToken(context.Background(), raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if token.Subject != "k1" || token.Role != "cook" {
		t.Errorf("token = %+v, want subject k1 role cook", token)
	}
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	v := NewJWTVerifier(testSecret)
	raw := signToken(t, "another-secret", bistroClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "k1"},
	})
	if _, err := v.VerifyToken(context.Background(), raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyTokenExpired(t *testing.T) {
	v := NewJWTVerifier(testSecret)
	raw := signToken(t, testSecret, bistroClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "k1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	if _, err := v.VerifyToken(context.Background(), raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyTokenMissingSubject(t *testing.T) {
	v := NewJWTVerifier(testSecret)
	raw := signToken(t, testSecret, bistroClaims{Role: "cook"})
	if _, err := v.VerifyToken(context.Background(), raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyTokenGarbage(t *testing.T) {
	v := NewJWTVerifier(testSecret)
	if _, err := v.VerifyToken(context.Background(), "not.a.jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
