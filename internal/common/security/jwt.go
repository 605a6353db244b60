package security

import (
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrMissingSigningKey = errors.New("jwt signing key is empty")
	ErrMissingSubject    = errors.New("sub claim is missing or not a string")
)

// TokenManager issues and verifies HS256 access tokens whose subject is the
// username. Tokens are not stored anywhere; a token stays valid until it
// expires.
type TokenManager struct {
	auth *jwtauth.JWTAuth
	ttl  time.Duration
}

func NewTokenManager(key []byte, ttl time.Duration) (*TokenManager, error) {
	if len(key) == 0 {
		return nil, ErrMissingSigningKey
	}
	return &TokenManager{
		auth: jwtauth.New("HS256", key, nil),
		ttl:  ttl,
	}, nil
}

// JWTAuth exposes the underlying verifier for jwtauth.Verifier.
func (m *TokenManager) JWTAuth() *jwtauth.JWTAuth {
	return m.auth
}

func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

func (m *TokenManager) Issue(username string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": username,
		"jti": uuid.NewString(),
		"exp": now.Add(m.ttl).Unix(),
		"iat": now.Unix(),
	}
	_, tokenString, err := m.auth.Encode(claims)
	return tokenString, err
}

// Verify checks signature and expiry and returns the username the token was
// issued for.
func (m *TokenManager) Verify(tokenString string) (string, error) {
	token, err := jwtauth.VerifyToken(m.auth, tokenString)
	if err != nil {
		return "", err
	}
	if token.Subject() == "" {
		return "", ErrMissingSubject
	}
	return token.Subject(), nil
}

func GetUsernameFromClaims(claims jwt.MapClaims) (string, error) {
	username, ok := claims["sub"].(string)
	if !ok || username == "" {
		return "", ErrMissingSubject
	}
	return username, nil
}
