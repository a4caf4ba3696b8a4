package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"luxury-yachts-api/internal/core/auth"
	"luxury-yachts-api/internal/domain"
	mdw "luxury-yachts-api/internal/transport/http/middleware"
	"luxury-yachts-api/pkg/utils"
)

type memUsers struct {
	seq   int64
	users map[int64]*domain.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[int64]*domain.User{}}
}

func (m *memUsers) Create(_ context.Context, u *domain.User) error {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return errors.New("Error 1062 (23000): Duplicate entry")
		}
	}
	m.seq++
	u.ID = m.seq
	m.users[u.ID] = u
	return nil
}

func (m *memUsers) FindByID(_ context.Context, id int64) (*domain.User, error) {
	return m.users[id], nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func authTestRouter(t *testing.T) (*gin.Engine, *memUsers, *auth.Authenticator) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := newMemUsers()
	codec := &auth.TokenCodec{Secret: []byte("test-secret"), TTL: time.Hour}
	authn := auth.NewAuthenticator(codec, users, nil)

	r := gin.New()
	api := r.Group("/api")
	api.Use(mdw.Authenticate(authn))
	MountAuthActions(api, nil, authn, users, nil)
	return r, users, authn
}

type authEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		User  *domain.User `json:"user"`
		Token string       `json:"token"`
	} `json:"data"`
}

func postAuth(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginMissingFields(t *testing.T) {
	r, _, _ := authTestRouter(t)

	w := postAuth(r, "/api/auth", `{"email":"","password":""}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Email and password are required")
}

func TestLoginUniformFailure(t *testing.T) {
	r, users, _ := authTestRouter(t)
	require.NoError(t, users.Create(context.Background(), &domain.User{
		Email:        "a@b.com",
		PasswordHash: utils.HashPassword("right"),
		Role:         domain.RoleUser,
	}))

	unknown := postAuth(r, "/api/auth?action=login", `{"email":"nobody@b.com","password":"right"}`)
	wrongPw := postAuth(r, "/api/auth?action=login", `{"email":"a@b.com","password":"wrong"}`)

	require.Equal(t, http.StatusUnauthorized, unknown.Code)
	require.Equal(t, http.StatusUnauthorized, wrongPw.Code)
	require.Equal(t, unknown.Body.String(), wrongPw.Body.String())
	require.Contains(t, unknown.Body.String(), "Invalid credentials")
}

func TestLoginSuccess(t *testing.T) {
	r, users, authn := authTestRouter(t)
	require.NoError(t, users.Create(context.Background(), &domain.User{
		Email:        "a@b.com",
		PasswordHash: utils.HashPassword("right"),
		Name:         "A",
		Role:         domain.RoleAdmin,
	}))

	// action defaults to login when absent.
	w := postAuth(r, "/api/auth", `{"email":"a@b.com","password":"right"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var env authEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.True(t, env.Success)
	require.Equal(t, "Login successful", env.Message)
	require.NotNil(t, env.Data.User)
	require.Equal(t, "a@b.com", env.Data.User.Email)

	u, err := authn.ResolveIdentity(context.Background(), "Bearer "+env.Data.Token)
	require.NoError(t, err)
	require.NotNil(t, u)
	require.Equal(t, domain.RoleAdmin, u.Role)
}

func TestRegister(t *testing.T) {
	r, users, _ := authTestRouter(t)

	w := postAuth(r, "/api/auth?action=register", `{"email":"new@b.com","password":"pw"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var env authEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Equal(t, "Registration successful", env.Message)
	require.Equal(t, domain.RoleUser, env.Data.User.Role)
	// Name defaults to the email local part.
	require.Equal(t, "new", env.Data.User.Name)
	require.NotEmpty(t, env.Data.Token)

	// Same email again: rejected without leaking the stored record.
	dup := postAuth(r, "/api/auth?action=register", `{"email":"new@b.com","password":"pw2"}`)
	require.Equal(t, http.StatusBadRequest, dup.Code)
	require.Contains(t, dup.Body.String(), "Email already registered")
	require.Len(t, users.users, 1)
}

func TestMeEndpoint(t *testing.T) {
	r, users, authn := authTestRouter(t)
	u := &domain.User{Email: "a@b.com", PasswordHash: utils.HashPassword("pw"), Role: domain.RoleUser}
	require.NoError(t, users.Create(context.Background(), u))
	token, err := authn.IssueToken(u)
	require.NoError(t, err)

	// Missing the me flag entirely.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth", nil))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Invalid endpoint")

	// Anonymous.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth?me", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Authenticated.
	req := httptest.NewRequest(http.MethodGet, "/api/auth?me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "a@b.com")
	// The hash never serializes.
	require.NotContains(t, w.Body.String(), "password")
}
