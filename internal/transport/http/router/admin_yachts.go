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

// MountAdminYachts wires yacht CRUD for the back office. The group is already
// behind RequireRole(admin). Writes invalidate the public catalog cache.
func MountAdminYachts(g *gin.RouterGroup, db *gorm.DB, cc *cache.Cache, l *zap.Logger) {
	e := ez.New(g, db, l)

	ez.RegisterAction(e, ez.Action[struct{}, []domain.Yacht]{
		Method: http.MethodGet,
		Path:   "/yachts",
		Binder: ez.BindNone,
		OKMsg:  "Yachts retrieved",
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) ([]domain.Yacht, error) {
			var yachts []domain.Yacht
			if err := tx.Order("created_at DESC").Find(&yachts).Error; err != nil {
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
			return findYacht(tx, id)
		},
	})

	type yachtCreate struct {
		Name        string            `json:"name"`
		Description string            `json:"description"`
		Price       float64           `json:"price"`
		Capacity    int               `json:"capacity"`
		Length      float64           `json:"length"`
		Category    string            `json:"category"`
		Features    domain.StringList `json:"features"`
		Image       string            `json:"image"`
	}

	ez.RegisterAction(e, ez.Action[yachtCreate, *domain.Yacht]{
		Method:  http.MethodPost,
		Path:    "/yachts",
		Binder:  ez.BindJSON,
		OKMsg:   "Yacht created successfully",
		Created: true,
		Handler: func(c *gin.Context, tx *gorm.DB, in *yachtCreate) (*domain.Yacht, error) {
			if in.Name == "" || in.Description == "" || in.Price == 0 || in.Capacity == 0 || in.Length == 0 {
				return nil, ez.BadRequest("Missing required fields")
			}
			if in.Category == "" {
				in.Category = "luxury"
			}
			if !domain.ValidYachtCategory(in.Category) {
				return nil, ez.BadRequest("Invalid category")
			}
			if in.Features == nil {
				in.Features = domain.StringList{}
			}
			y := domain.Yacht{
				Name:        in.Name,
				Description: in.Description,
				Price:       in.Price,
				Capacity:    in.Capacity,
				Length:      in.Length,
				Category:    in.Category,
				Features:    in.Features,
				Image:       in.Image,
			}
			if err := tx.Create(&y).Error; err != nil {
				return nil, ez.Internal("Failed to create yacht", err)
			}
			return &y, nil
		},
	})

	type yachtUpdate struct {
		Name        *string            `json:"name"`
		Description *string            `json:"description"`
		Price       *float64           `json:"price"`
		Capacity    *int               `json:"capacity"`
		Length      *float64           `json:"length"`
		Category    *string            `json:"category"`
		Features    *domain.StringList `json:"features"`
		Image       *string            `json:"image"`
	}

	ez.RegisterAction(e, ez.Action[yachtUpdate, *domain.Yacht]{
		Method: http.MethodPut,
		Path:   "/yachts/:id",
		Binder: ez.BindJSON,
		OKMsg:  "Yacht updated successfully",
		Handler: func(c *gin.Context, tx *gorm.DB, in *yachtUpdate) (*domain.Yacht, error) {
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
			if in.Price != nil {
				updates["price"] = *in.Price
			}
			if in.Capacity != nil {
				updates["capacity"] = *in.Capacity
			}
			if in.Length != nil {
				updates["length"] = *in.Length
			}
			// An unknown category is skipped rather than rejected,
			// as the reference API behaved on update.
			if in.Category != nil && domain.ValidYachtCategory(*in.Category) {
				updates["category"] = *in.Category
			}
			if in.Features != nil {
				updates["features"] = *in.Features
			}
			if in.Image != nil {
				updates["image"] = *in.Image
			}
			if len(updates) == 0 {
				return nil, ez.BadRequest("No fields to update")
			}
			if err := tx.Model(&domain.Yacht{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return nil, ez.Internal("Failed to update yacht", err)
			}
			if cc != nil {
				cc.Del(c.Request.Context(), yachtCacheKey(id))
			}
			return findYacht(tx, id)
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/yachts/:id",
		Binder: ez.BindNone,
		OKMsg:  "Yacht deleted successfully",
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (gin.H, error) {
			id, err := pathID(c)
			if err != nil {
				return nil, err
			}
			res := tx.Where("id = ?", id).Delete(&domain.Yacht{})
			if res.Error != nil {
				return nil, ez.Internal("Failed to delete yacht", res.Error)
			}
			if res.RowsAffected == 0 {
				return nil, ez.NotFound("Yacht not found")
			}
			if cc != nil {
				cc.Del(c.Request.Context(), yachtCacheKey(id))
			}
			return gin.H{"id": id}, nil
		},
	})
}

func findYacht(tx *gorm.DB, id int64) (*domain.Yacht, error) {
	var y domain.Yacht
	err := tx.First(&y, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ez.NotFound("Yacht not found")
	}
	if err != nil {
		return nil, ez.Internal("Failed to load yacht", err)
	}
	return &y, nil
}
