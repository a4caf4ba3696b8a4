package ez

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	resp "luxury-yachts-api/internal/transport/http/response"
)

// Binder selects how the request is bound into the action input.
type Binder string

const (
	BindJSON  Binder = "json"
	BindQuery Binder = "query"
	BindNone  Binder = "none"
)

// AErr is an error carrying an HTTP status. Anything that is not an AErr maps
// to a generic 500 so storage errors never leak into responses.
type AErr struct {
	Status int
	Msg    string
	Err    error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &AErr{Status: http.StatusBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Status: http.StatusUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Status: http.StatusForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Status: http.StatusNotFound, Msg: msg} }

// Internal keeps the underlying error for the log while the response only
// shows msg.
func Internal(msg string, err error) error {
	return &AErr{Status: http.StatusInternalServerError, Msg: msg, Err: err}
}

type EZ struct {
	g   *gin.RouterGroup
	db  *gorm.DB
	log *zap.Logger
}

func New(g *gin.RouterGroup, db *gorm.DB, log *zap.Logger) EZ {
	if log == nil {
		log = zap.NewNop()
	}
	return EZ{g: g, db: db, log: log}
}

const msgKey = "ez.message"

// SetMessage overrides the action's success message for this request, for
// endpoints whose message depends on what they did.
func SetMessage(c *gin.Context, msg string) { c.Set(msgKey, msg) }

// Action is one endpoint: I is the bound input, O the data payload.
type Action[I any, O any] struct {
	Method  string
	Path    string
	Binder  Binder
	OKMsg   string // success message, "Success" when empty
	Created bool   // answer 201 instead of 200
	UseTx   bool   // wrap the handler in a transaction
	Handler func(c *gin.Context, tx *gorm.DB, in *I) (O, error)
}

func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		}
		if bindErr != nil {
			resp.Error(c, http.StatusBadRequest, bindErr.Error())
			return
		}

		var out O
		var err error
		if a.UseTx && e.db != nil {
			err = e.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
				o, e2 := a.Handler(c, tx, &in)
				out = o
				return e2
			})
		} else {
			tx := e.db
			if tx != nil {
				tx = tx.WithContext(c.Request.Context())
			}
			out, err = a.Handler(c, tx, &in)
		}

		if err != nil {
			var ae *AErr
			if errors.As(err, &ae) {
				if ae.Status == http.StatusInternalServerError {
					e.log.Error("action failed",
						zap.String("method", a.Method),
						zap.String("path", a.Path),
						zap.Error(err),
					)
				}
				resp.Error(c, ae.Status, ae.Error())
				return
			}
			e.log.Error("action failed",
				zap.String("method", a.Method),
				zap.String("path", a.Path),
				zap.Error(err),
			)
			resp.Error(c, http.StatusInternalServerError, "Internal server error")
			return
		}

		msg := a.OKMsg
		if m := c.GetString(msgKey); m != "" {
			msg = m
		}
		if msg == "" {
			msg = "Success"
		}
		status := http.StatusOK
		if a.Created {
			status = http.StatusCreated
		}
		resp.Success(c, status, msg, out)
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default:
		e.g.POST(a.Path, h)
	}
}
