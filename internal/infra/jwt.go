// README: JWT verification; the identity provider issues tokens, we only verify.
package infra

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"
)

// AuthToken holds the verified token data used by downstream middleware.
type AuthToken struct {
	Subject string
	Role    string
}

// TokenVerifier verifies a raw bearer token string and returns token data.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, raw string) (*AuthToken, error)
}

var ErrInvalidToken = errors.New("invalid token")

type bistroClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// jwtVerifier checks HS256 tokens signed with the shared platform secret.
type jwtVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) TokenVerifier {
	return &jwtVerifier{secret: []byte(secret)}
}

func (v *jwtVerifier) VerifyToken(_ context.Context, raw string) (*AuthToken, error) {
	claims := &bistroClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &AuthToken{Subject: claims.Subject, Role: claims.Role}, nil
}
