package ez

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var e envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	return e
}

func testEngine(register func(e EZ)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	register(New(r.Group("/"), nil, nil))
	return r
}

func TestActionSuccessEnvelope(t *testing.T) {
	r := testEngine(func(e EZ) {
		RegisterAction(e, Action[struct{}, gin.H]{
			Method: http.MethodGet,
			Path:   "/ping",
			Binder: BindNone,
			OKMsg:  "Pong",
			Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (gin.H, error) {
				return gin.H{"n": 1}, nil
			},
		})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	require.True(t, env.Success)
	require.Equal(t, "Pong", env.Message)
	require.JSONEq(t, `{"n":1}`, string(env.Data))
}

func TestActionCreatedStatus(t *testing.T) {
	r := testEngine(func(e EZ) {
		RegisterAction(e, Action[struct{}, gin.H]{
			Method:  http.MethodPost,
			Path:    "/things",
			Binder:  BindNone,
			OKMsg:   "Created",
			Created: true,
			Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (gin.H, error) {
				return gin.H{"id": 1}, nil
			},
		})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/things", nil))
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestActionErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"bad request", BadRequest("Missing required fields"), http.StatusBadRequest, "Missing required fields"},
		{"unauthorized", Unauthorized("Authentication required"), http.StatusUnauthorized, "Authentication required"},
		{"forbidden", Forbidden("Admin access required"), http.StatusForbidden, "Admin access required"},
		{"not found", NotFound("Yacht not found"), http.StatusNotFound, "Yacht not found"},
		{"internal hides cause", Internal("Failed to load yacht", errors.New("dial tcp: refused")), http.StatusInternalServerError, "Failed to load yacht"},
		{"plain error becomes generic 500", errors.New("dial tcp: refused"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := testEngine(func(e EZ) {
				RegisterAction(e, Action[struct{}, gin.H]{
					Method: http.MethodGet,
					Path:   "/fail",
					Binder: BindNone,
					Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (gin.H, error) {
						return nil, tc.err
					},
				})
			})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

			require.Equal(t, tc.status, w.Code)
			env := decodeEnvelope(t, w)
			require.False(t, env.Success)
			require.Equal(t, tc.msg, env.Message)
			// The underlying cause never reaches the client.
			require.NotContains(t, w.Body.String(), "dial tcp")
		})
	}
}

func TestActionBindError(t *testing.T) {
	type in struct {
		Name string `json:"name"`
	}
	r := testEngine(func(e EZ) {
		RegisterAction(e, Action[in, gin.H]{
			Method: http.MethodPost,
			Path:   "/things",
			Binder: BindJSON,
			Handler: func(c *gin.Context, tx *gorm.DB, _ *in) (gin.H, error) {
				return gin.H{}, nil
			},
		})
	})

	req := httptest.NewRequest(http.MethodPost, "/things", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.False(t, decodeEnvelope(t, w).Success)
}

func TestSetMessageOverridesOKMsg(t *testing.T) {
	r := testEngine(func(e EZ) {
		RegisterAction(e, Action[struct{}, gin.H]{
			Method: http.MethodPost,
			Path:   "/auth",
			Binder: BindNone,
			OKMsg:  "Success",
			Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (gin.H, error) {
				SetMessage(c, "Login successful")
				return gin.H{}, nil
			},
		})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth", nil))

	require.Equal(t, "Login successful", decodeEnvelope(t, w).Message)
}

func TestActionNilDB(t *testing.T) {
	// With no database wired the handler still runs and receives a nil tx.
	r := testEngine(func(e EZ) {
		RegisterAction(e, Action[struct{}, gin.H]{
			Method: http.MethodGet,
			Path:   "/nodb",
			Binder: BindNone,
			Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (gin.H, error) {
				require.Nil(t, tx)
				return gin.H{"ok": true}, nil
			},
		})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nodb", nil))
	require.Equal(t, http.StatusOK, w.Code)
}
