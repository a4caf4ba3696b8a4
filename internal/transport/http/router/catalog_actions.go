package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"luxury-yachts-api/internal/core/cache"
	"luxury-yachts-api/internal/domain"
	"luxury-yachts-api/internal/transport/http/ez"
)

var yachtSortColumns = map[string]string{
	"id": "id", "name": "name", "price": "price",
	"capacity": "capacity", "length": "length",
}

// MountCatalogActions wires the public, unauthenticated yacht and destination
// reads. Detail reads go through the redis cache when one is configured.
func MountCatalogActions(g *gin.RouterGroup, db *gorm.DB, cc *cache.Cache, cacheTTL time.Duration, l *zap.Logger) {
	e := ez.New(g, db, l)

	type yachtListQ struct {
		Category string `form:"category"`
		Search   string `form:"search"`
		Sort     string `form:"sort,default=id"`
		Order    string `form:"order,default=ASC"`
	}

	ez.RegisterAction(e, ez.Action[yachtListQ, []domain.Yacht]{
		Method: http.MethodGet,
		Path:   "/yachts",
		Binder: ez.BindQuery,
		OKMsg:  "Yachts retrieved",
		Handler: func(c *gin.Context, tx *gorm.DB, in *yachtListQ) ([]domain.Yacht, error) {
			q := tx.Model(&domain.Yacht{})
			if in.Category != "" && in.Category != "all" {
				q = q.Where("category = ?", in.Category)
			}
			if s := strings.TrimSpace(in.Search); s != "" {
				like := "%" + s + "%"
				q = q.Where("name LIKE ? OR description LIKE ?", like, like)
			}
			sort, ok := yachtSortColumns[in.Sort]
			if !ok {
				sort = "id"
			}
			order := "ASC"
			if strings.EqualFold(in.Order, "DESC") {
				order = "DESC"
			}
			var yachts []domain.Yacht
			if err := q.Order(sort + " " + order).Find(&yachts).Error; err != nil {
				return nil, ez.Internal("Failed to list yachts", err)
			}
			return yachts, nil
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, *domain.Yacht]{
		Method: http.MethodGet,
		Path:   "/yachts/:id",
		Binder: ez.BindNone,
		OKMsg:  "Yacht retrieved",
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (*domain.Yacht, error) {
			id, err := pathID(c)
			if err != nil {
				return nil, err
			}
			return cachedYacht(c, tx, cc, cacheTTL, id)
		},
	})

	type destListQ struct {
		Search string `form:"search"`
	}

	ez.RegisterAction(e, ez.Action[destListQ, []domain.Destination]{
		Method: http.MethodGet,
		Path:   "/destinations",
		Binder: ez.BindQuery,
		OKMsg:  "Destinations retrieved",
		Handler: func(c *gin.Context, tx *gorm.DB, in *destListQ) ([]domain.Destination, error) {
			q := tx.Model(&domain.Destination{})
			if s := strings.TrimSpace(in.Search); s != "" {
				like := "%" + s + "%"
				q = q.Where("name LIKE ? OR description LIKE ?", like, like)
			}
			var dests []domain.Destination
			if err := q.Order("name ASC").Find(&dests).Error; err != nil {
				return nil, ez.Internal("Failed to list destinations", err)
			}
			return dests, nil
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, *domain.Destination]{
		Method: http.MethodGet,
		Path:   "/destinations/:id",
		Binder: ez.BindNone,
		OKMsg:  "Destination retrieved",
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (*domain.Destination, error) {
			id, err := pathID(c)
			if err != nil {
				return nil, err
			}
			return cachedDestination(c, tx, cc, cacheTTL, id)
		},
	})
}

func yachtCacheKey(id int64) string       { return fmt.Sprintf("yacht:%d", id) }
func destinationCacheKey(id int64) string { return fmt.Sprintf("destination:%d", id) }

func cachedYacht(c *gin.Context, tx *gorm.DB, cc *cache.Cache, ttl time.Duration, id int64) (*domain.Yacht, error) {
	load := func(ctx context.Context) (*domain.Yacht, error) {
		var y domain.Yacht
		err := tx.WithContext(ctx).First(&y, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ez.NotFound("Yacht not found")
		}
		if err != nil {
			return nil, ez.Internal("Failed to load yacht", err)
		}
		return &y, nil
	}
	if cc == nil {
		return load(c.Request.Context())
	}
	return cache.GetOrLoadJSON(cc, c.Request.Context(), yachtCacheKey(id), ttl, load)
}

func cachedDestination(c *gin.Context, tx *gorm.DB, cc *cache.Cache, ttl time.Duration, id int64) (*domain.Destination, error) {
	load := func(ctx context.Context) (*domain.Destination, error) {
		var d domain.Destination
		err := tx.WithContext(ctx).First(&d, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ez.NotFound("Destination not found")
		}
		if err != nil {
			return nil, ez.Internal("Failed to load destination", err)
		}
		return &d, nil
	}
	if cc == nil {
		return load(c.Request.Context())
	}
	return cache.GetOrLoadJSON(cc, c.Request.Context(), destinationCacheKey(id), ttl, load)
}
