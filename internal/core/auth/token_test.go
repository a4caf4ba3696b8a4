package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func testCodec() *TokenCodec {
	return &TokenCodec{Secret: []byte("test-secret"), TTL: 24 * time.Hour}
}

// signRaw mints a token with arbitrary claims, bypassing Encode, so tests can
// control exp directly.
func signRaw(t *testing.T, secret []byte, claims jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return s
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	c := testCodec()

	token, err := c.Encode(1, "a@b.com", "admin")
	require.NoError(t, err)

	claims, err := c.Decode(token)
	require.NoError(t, err)
	require.Equal(t, int64(1), claims.ID)
	require.Equal(t, "a@b.com", claims.Email)
	require.Equal(t, "admin", claims.Role)
	require.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestDecodeSegmentCount(t *testing.T) {
	c := testCodec()
	for _, tok := range []string{"", "a", "a.b", "a.b.c.d"} {
		_, err := c.Decode(tok)
		require.ErrorIs(t, err, ErrTokenMalformed, "token %q", tok)
	}
}

func TestDecodeTamperedToken(t *testing.T) {
	c := testCodec()
	token, err := c.Encode(1, "a@b.com", "admin")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	for seg := range parts {
		mutated := make([]string, 3)
		copy(mutated, parts)
		b := []byte(mutated[seg])
		if b[0] == 'A' {
			b[0] = 'B'
		} else {
			b[0] = 'A'
		}
		mutated[seg] = string(b)

		_, err := c.Decode(strings.Join(mutated, "."))
		require.Error(t, err, "segment %d", seg)
		require.True(t,
			err == ErrTokenMalformed || err == ErrBadSignature,
			"segment %d: got %v", seg, err)
	}
}

func TestDecodeWrongSecret(t *testing.T) {
	c := testCodec()
	token, err := c.Encode(1, "a@b.com", "admin")
	require.NoError(t, err)

	other := &TokenCodec{Secret: []byte("other-secret"), TTL: time.Hour}
	_, err = other.Decode(token)
	require.ErrorIs(t, err, ErrBadSignature)
}

func TestDecodeWrongAlgorithm(t *testing.T) {
	c := testCodec()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		ID: 1, Email: "a@b.com", Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(c.Secret)
	require.NoError(t, err)

	_, err = c.Decode(s)
	require.ErrorIs(t, err, ErrBadSignature)
}

func TestDecodeExpired(t *testing.T) {
	c := testCodec()

	// Re-signed with the right secret but a past exp: the signature is fine,
	// only the expiry fails.
	tok := signRaw(t, c.Secret, Claims{
		ID: 1, Email: "a@b.com", Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	_, err := c.Decode(tok)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestDecodeExpiryBoundary(t *testing.T) {
	c := testCodec()

	// exp == now is already rejected; the boundary is exclusive.
	atNow := signRaw(t, c.Secret, Claims{
		ID: 1, Email: "a@b.com", Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now()),
		},
	})
	_, err := c.Decode(atNow)
	require.ErrorIs(t, err, ErrTokenExpired)

	justAhead := signRaw(t, c.Secret, Claims{
		ID: 1, Email: "a@b.com", Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(2 * time.Second)),
		},
	})
	_, err = c.Decode(justAhead)
	require.NoError(t, err)
}

func TestDecodeMissingClaims(t *testing.T) {
	c := testCodec()
	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))

	cases := map[string]jwt.Claims{
		"no id":    jwt.MapClaims{"email": "a@b.com", "role": "admin", "exp": exp.Unix()},
		"no email": jwt.MapClaims{"id": 1, "role": "admin", "exp": exp.Unix()},
		"no role":  jwt.MapClaims{"id": 1, "email": "a@b.com", "exp": exp.Unix()},
		"no exp":   jwt.MapClaims{"id": 1, "email": "a@b.com", "role": "admin"},
	}
	for name, claims := range cases {
		_, err := c.Decode(signRaw(t, c.Secret, claims))
		require.ErrorIs(t, err, ErrTokenMalformed, name)
	}
}

func TestDecodeGarbageNeverPanics(t *testing.T) {
	c := testCodec()
	for _, tok := range []string{
		"....",
		"!!!.???.###",
		strings.Repeat(".", 100),
		"eyJh.eyJh.sig",
	} {
		_, err := c.Decode(tok)
		require.Error(t, err, "token %q", tok)
	}
}
