package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the bearer token payload. Field names and the integer exp match
// the tokens the previous backend issued, so sessions survive the migration.
type Claims struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies HS256 bearer tokens. Secret and TTL are
// injected at construction so tests can run with their own.
type TokenCodec struct {
	Secret []byte
	TTL    time.Duration
}

func (t *TokenCodec) Encode(id int64, email, role string) (string, error) {
	claims := Claims{
		ID:    id,
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(t.TTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.Secret)
}

// Decode verifies the signature and expiry and returns the claims. Every
// failure resolves to exactly one of ErrTokenMalformed, ErrBadSignature or
// ErrTokenExpired; no input panics. The expiry boundary is exclusive: a token
// whose exp equals the current second is already rejected. No leeway.
func (t *TokenCodec) Decode(token string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(tok *jwt.Token) (any, error) {
		if tok.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return t.Secret, nil
	}, jwt.WithExpirationRequired())
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, ErrBadSignature
	default:
		return nil, ErrTokenMalformed
	}
	if claims.ID == 0 || claims.Email == "" || claims.Role == "" {
		return nil, ErrTokenMalformed
	}
	return &claims, nil
}
