package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"luxury-yachts-api/internal/core/auth"
	"luxury-yachts-api/internal/domain"
	"luxury-yachts-api/internal/transport/http/ez"
	mdw "luxury-yachts-api/internal/transport/http/middleware"
	"luxury-yachts-api/pkg/utils"
)

// MountAuthActions wires POST /auth?action=login|register and GET /auth?me.
// The query-parameter dispatch is the wire contract the storefront client
// already speaks.
func MountAuthActions(g *gin.RouterGroup, db *gorm.DB, authn *auth.Authenticator, users domain.UserRepository, l *zap.Logger) {
	e := ez.New(g, db, l)

	type credsIn struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}

	ez.RegisterAction(e, ez.Action[credsIn, authResult]{
		Method: http.MethodPost,
		Path:   "/auth",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, _ *gorm.DB, in *credsIn) (authResult, error) {
			switch c.DefaultQuery("action", "login") {
			case "login":
				return login(c, authn, in.Email, in.Password)
			case "register":
				return register(c, authn, users, in.Email, in.Password, in.Name)
			default:
				return authResult{}, ez.BadRequest("Invalid action")
			}
		},
	})

	type meOut struct {
		User *domain.User `json:"user"`
	}

	ez.RegisterAction(e, ez.Action[struct{}, meOut]{
		Method: http.MethodGet,
		Path:   "/auth",
		Binder: ez.BindNone,
		OKMsg:  "User data retrieved",
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (meOut, error) {
			if _, wantMe := c.GetQuery("me"); !wantMe {
				return meOut{}, ez.BadRequest("Invalid endpoint")
			}
			u, ok := mdw.CurrentUser(c)
			if !ok {
				return meOut{}, ez.Unauthorized("Authentication required")
			}
			return meOut{User: u}, nil
		},
	})
}

// authResult is what both login and register answer with.
type authResult struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

func login(c *gin.Context, authn *auth.Authenticator, email, password string) (authResult, error) {
	if email == "" || password == "" {
		return authResult{}, ez.BadRequest("Email and password are required")
	}
	u, err := authn.VerifyCredentials(c.Request.Context(), email, password)
	if err == auth.ErrInvalidCredentials {
		// Unknown email and wrong password answer identically.
		return authResult{}, ez.Unauthorized("Invalid credentials")
	}
	if err != nil {
		return authResult{}, ez.Internal("Login failed", err)
	}
	tok, err := authn.IssueToken(u)
	if err != nil {
		return authResult{}, ez.Internal("Login failed", err)
	}
	ez.SetMessage(c, "Login successful")
	return authResult{User: u, Token: tok}, nil
}

func register(c *gin.Context, authn *auth.Authenticator, users domain.UserRepository, email, password, name string) (authResult, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	if email == "" || password == "" {
		return authResult{}, ez.BadRequest("Email and password are required")
	}
	if name == "" {
		if at := strings.IndexByte(email, '@'); at > 0 {
			name = email[:at]
		} else {
			name = "user"
		}
	}
	u := &domain.User{
		Email:        email,
		PasswordHash: utils.HashPassword(password),
		Name:         name,
		Role:         domain.RoleUser,
	}
	if err := users.Create(c.Request.Context(), u); err != nil {
		if isDupKey(err) {
			return authResult{}, ez.BadRequest("Email already registered")
		}
		return authResult{}, ez.Internal("Registration failed", err)
	}
	tok, err := authn.IssueToken(u)
	if err != nil {
		return authResult{}, ez.Internal("Registration failed", err)
	}
	ez.SetMessage(c, "Registration successful")
	return authResult{User: u, Token: tok}, nil
}
