package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"luxury-yachts-api/internal/core/cache"
	"luxury-yachts-api/internal/domain"
	"luxury-yachts-api/internal/transport/http/ez"
)

// MountAdminDestinations wires destination CRUD for the back office.
func MountAdminDestinations(g *gin.RouterGroup, db *gorm.DB, cc *cache.Cache, l *zap.Logger) {
	e := ez.New(g, db, l)

	ez.RegisterAction(e, ez.Action[struct{}, []domain.Destination]{
		Method: http.MethodGet,
		Path:   "/destinations",
		Binder: ez.BindNone,
		OKMsg:  "Destinations retrieved",
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) ([]domain.Destination, error) {
			var dests []domain.Destination
			if err := tx.Order("created_at DESC").Find(&dests).Error; err != nil {
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
			return findDestination(tx, id)
		},
	})

	type destCreate struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Duration    string `json:"duration"`
		Image       string `json:"image"`
	}

	ez.RegisterAction(e, ez.Action[destCreate, *domain.Destination]{
		Method:  http.MethodPost,
		Path:    "/destinations",
		Binder:  ez.BindJSON,
		OKMsg:   "Destination created successfully",
		Created: true,
		Handler: func(c *gin.Context, tx *gorm.DB, in *destCreate) (*domain.Destination, error) {
			if in.Name == "" || in.Description == "" || in.Duration == "" {
				return nil, ez.BadRequest("Missing required fields")
			}
			d := domain.Destination{
				Name:        in.Name,
				Description: in.Description,
				Duration:    in.Duration,
				Image:       in.Image,
			}
			if err := tx.Create(&d).Error; err != nil {
				return nil, ez.Internal("Failed to create destination", err)
			}
			return &d, nil
		},
	})

	type destUpdate struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Duration    *string `json:"duration"`
		Image       *string `json:"image"`
	}

	ez.RegisterAction(e, ez.Action[destUpdate, *domain.Destination]{
		Method: http.MethodPut,
		Path:   "/destinations/:id",
		Binder: ez.BindJSON,
		OKMsg:  "Destination updated successfully",
		Handler: func(c *gin.Context, tx *gorm.DB, in *destUpdate) (*domain.Destination, error) {
			id, err := pathID(c)
			if err != nil {
				return nil, err
			}
			updates := map[string]any{}
			if in.Name != nil {
				updates["name"] = *in.Name
			}
			if in.Description != nil {
				updates["description"] = *in.Description
			}
			if in.Duration != nil {
				updates["duration"] = *in.Duration
			}
			if in.Image != nil {
				updates["image"] = *in.Image
			}
			if len(updates) == 0 {
				return nil, ez.BadRequest("No fields to update")
			}
			if err := tx.Model(&domain.Destination{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return nil, ez.Internal("Failed to update destination", err)
			}
			if cc != nil {
				cc.Del(c.Request.Context(), destinationCacheKey(id))
			}
			return findDestination(tx, id)
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/destinations/:id",
		Binder: ez.BindNone,
		OKMsg:  "Destination deleted successfully",
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (gin.H, error) {
			id, err := pathID(c)
			if err != nil {
				return nil, err
			}
			res := tx.Where("id = ?", id).Delete(&domain.Destination{})
			if res.Error != nil {
				return nil, ez.Internal("Failed to delete destination", res.Error)
			}
			if res.RowsAffected == 0 {
				return nil, ez.NotFound("Destination not found")
			}
			if cc != nil {
				cc.Del(c.Request.Context(), destinationCacheKey(id))
			}
			return gin.H{"id": id}, nil
		},
	})
}

func findDestination(tx *gorm.DB, id int64) (*domain.Destination, error) {
	var d domain.Destination
	err := tx.First(&d, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ez.NotFound("Destination not found")
	}
	if err != nil {
		return nil, ez.Internal("Failed to load destination", err)
	}
	return &d, nil
}
