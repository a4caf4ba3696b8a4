package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"luxury-yachts-api/internal/core/auth"
	"luxury-yachts-api/internal/core/cache"
	"luxury-yachts-api/internal/core/config"
	"luxury-yachts-api/internal/domain"
	mdw "luxury-yachts-api/internal/transport/http/middleware"
	resp "luxury-yachts-api/internal/transport/http/response"
)

// Deps carries everything the engine needs; resources are mounted explicitly
// so each mount gets exactly the dependencies it uses.
type Deps struct {
	Log   *zap.Logger
	DB    *gorm.DB
	Auth  *auth.Authenticator
	Users domain.UserRepository
	Cache *cache.Cache // nil disables the catalog cache
	Cfg   *config.Config
}

func NewEngine(d Deps) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(d.Log, true),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
		cors.New(corsConfig(d.Cfg.CORS.AllowedOrigins)),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(mdw.Authenticate(d.Auth))

	api.GET("", func(c *gin.Context) {
		resp.Success(c, http.StatusOK, d.Cfg.App.Name, gin.H{"version": d.Cfg.App.Version})
	})

	cacheTTL := time.Duration(d.Cfg.Cache.TTLSec) * time.Second

	MountAuthActions(api, d.DB, d.Auth, d.Users, d.Log)
	MountCatalogActions(api, d.DB, d.Cache, cacheTTL, d.Log)
	MountBookingActions(api, d.DB, d.Log)

	admin := api.Group("/admin")
	admin.Use(mdw.RequireRole(domain.RoleAdmin))
	MountAdminYachts(admin, d.DB, d.Cache, d.Log)
	MountAdminDestinations(admin, d.DB, d.Cache, d.Log)
	MountAdminBookings(admin, d.DB, d.Log)
	MountAdminStats(admin, d.DB, d.Log)

	return r
}

// corsConfig mirrors the allowlist the storefront was shipped with:
// credentialed requests from known origins, one-hour preflight cache.
func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Content-Type", "Authorization", "X-Requested-With"}
	cfg.MaxAge = time.Hour
	return cfg
}
