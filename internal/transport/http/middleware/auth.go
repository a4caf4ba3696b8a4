package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"luxury-yachts-api/internal/core/auth"
	"luxury-yachts-api/internal/domain"
	resp "luxury-yachts-api/internal/transport/http/response"
)

const ctxUserKey = "authUser"

// Authenticate resolves the request identity once and stashes it for the
// gates below. It never rejects on its own: an invalid, expired or forged
// token leaves the request anonymous, exactly like no token at all. Only a
// storage failure during the user re-fetch aborts.
func Authenticate(a *auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := a.ResolveIdentity(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			resp.Error(c, http.StatusInternalServerError, "Internal server error")
			c.Abort()
			return
		}
		if u != nil {
			c.Set(ctxUserKey, u)
		}
		c.Next()
	}
}

// CurrentUser returns the freshly loaded user record for this request, if
// the caller presented a valid token.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*domain.User)
	return u, ok
}

func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			resp.Error(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole demands an authenticated user holding the given role: 401 when
// anonymous, 403 otherwise. The check runs against the stored role loaded by
// Authenticate, never against the token payload.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			resp.Error(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}
		if u.Role != role {
			resp.Error(c, http.StatusForbidden, "Admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}
