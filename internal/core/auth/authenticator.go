package auth

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"luxury-yachts-api/internal/domain"
	"luxury-yachts-api/pkg/utils"
)

// Authenticator bridges credential verification, token issuance and
// per-request identity resolution.
type Authenticator struct {
	codec *TokenCodec
	users domain.UserRepository
	log   *zap.Logger
}

func NewAuthenticator(codec *TokenCodec, users domain.UserRepository, log *zap.Logger) *Authenticator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Authenticator{codec: codec, users: users, log: log}
}

// VerifyCredentials checks an email/password pair against the stored bcrypt
// hash. Unknown email and wrong password fail identically so callers cannot
// probe which addresses are registered. Lookup is exact (case-sensitive),
// as the previous backend behaved.
func (a *Authenticator) VerifyCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (a *Authenticator) IssueToken(u *domain.User) (string, error) {
	return a.codec.Encode(u.ID, u.Email, u.Role)
}

// ResolveIdentity derives the caller's identity from an Authorization header.
// It returns (nil, nil) — anonymous — for a missing or non-bearer header and
// for every token-level failure; only storage errors surface. On success the
// user record is re-read from storage, so a role change made after the token
// was issued takes effect on the very next request: the role claim inside the
// token is never used for authorization, only to locate the identity.
func (a *Authenticator) ResolveIdentity(ctx context.Context, header string) (*domain.User, error) {
	token, ok := bearerToken(header)
	if !ok {
		return nil, nil
	}
	claims, err := a.codec.Decode(token)
	if err != nil {
		a.log.Debug("token rejected", zap.Error(err))
		return nil, nil
	}
	u, err := a.users.FindByID(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		a.log.Debug("token for missing user", zap.Error(ErrNoSuchUser), zap.Int64("user_id", claims.ID))
		return nil, nil
	}
	return u, nil
}

// bearerToken extracts the credential from "Bearer <token>". The scheme
// keyword is case-insensitive and any run of whitespace may separate it from
// the token, matching the header forms the previous backend accepted.
func bearerToken(header string) (string, bool) {
	fields := strings.Fields(header)
	if len(fields) != 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", false
	}
	return fields[1], true
}
