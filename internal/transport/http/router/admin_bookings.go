package router

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"luxury-yachts-api/internal/domain"
	"luxury-yachts-api/internal/transport/http/ez"
)

// MountAdminBookings wires booking management for the back office: filtered
// listing, detail, partial update, status transitions and deletion.
func MountAdminBookings(g *gin.RouterGroup, db *gorm.DB, l *zap.Logger) {
	e := ez.New(g, db, l)

	type listQ struct {
		Status string `form:"status"`
		Search string `form:"search"`
	}

	ez.RegisterAction(e, ez.Action[listQ, []domain.Booking]{
		Method: http.MethodGet,
		Path:   "/bookings",
		Binder: ez.BindQuery,
		OKMsg:  "Bookings retrieved",
		Handler: func(c *gin.Context, tx *gorm.DB, in *listQ) ([]domain.Booking, error) {
			q := bookingJoin(tx, false)
			if in.Status != "" && in.Status != "all" {
				q = q.Where("bookings.status = ?", in.Status)
			}
			if s := strings.TrimSpace(in.Search); s != "" {
				like := "%" + s + "%"
				q = q.Where(
					"bookings.customer_name LIKE ? OR bookings.customer_email LIKE ? OR yachts.name LIKE ?",
					like, like, like,
				)
			}
			var bookings []domain.Booking
			if err := q.Order("bookings.created_at DESC").Find(&bookings).Error; err != nil {
				return nil, ez.Internal("Failed to list bookings", err)
			}
			return bookings, nil
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, *domain.Booking]{
		Method: http.MethodGet,
		Path:   "/bookings/:id",
		Binder: ez.BindNone,
		OKMsg:  "Booking retrieved",
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (*domain.Booking, error) {
			id, err := pathID(c)
			if err != nil {
				return nil, err
			}
			var b domain.Booking
			err = bookingJoin(tx, true).Where("bookings.id = ?", id).Take(&b).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ez.NotFound("Booking not found")
			}
			if err != nil {
				return nil, ez.Internal("Failed to load booking", err)
			}
			return &b, nil
		},
	})

	type statusIn struct {
		Status string `json:"status"`
	}

	ez.RegisterAction(e, ez.Action[statusIn, *domain.Booking]{
		Method: http.MethodPut,
		Path:   "/bookings/:id/status",
		Binder: ez.BindJSON,
		OKMsg:  "Booking status updated successfully",
		Handler: func(c *gin.Context, tx *gorm.DB, in *statusIn) (*domain.Booking, error) {
			id, err := pathID(c)
			if err != nil {
				return nil, err
			}
			if !domain.ValidBookingStatus(in.Status) {
				return nil, ez.BadRequest("Invalid status")
			}
			res := tx.Model(&domain.Booking{}).Where("id = ?", id).Update("status", in.Status)
			if res.Error != nil {
				return nil, ez.Internal("Failed to update booking status", res.Error)
			}
			return bookingWithNames(tx, id)
		},
	})

	type bookingUpdate struct {
		CustomerName  *string `json:"customer_name"`
		CustomerEmail *string `json:"customer_email"`
		CustomerPhone *string `json:"customer_phone"`
		Date          *string `json:"date"`
		Hours         *int    `json:"hours"`
		Notes         *string `json:"notes"`
	}

	ez.RegisterAction(e, ez.Action[bookingUpdate, *domain.Booking]{
		Method: http.MethodPut,
		Path:   "/bookings/:id",
		Binder: ez.BindJSON,
		OKMsg:  "Booking updated successfully",
		Handler: func(c *gin.Context, tx *gorm.DB, in *bookingUpdate) (*domain.Booking, error) {
			id, err := pathID(c)
			if err != nil {
				return nil, err
			}
			updates := map[string]any{}
			if in.CustomerName != nil {
				updates["customer_name"] = *in.CustomerName
			}
			if in.CustomerEmail != nil {
				updates["customer_email"] = *in.CustomerEmail
			}
			if in.CustomerPhone != nil {
				updates["customer_phone"] = *in.CustomerPhone
			}
			if in.Date != nil {
				updates["date"] = *in.Date
			}
			if in.Hours != nil {
				updates["hours"] = *in.Hours
			}
			if in.Notes != nil {
				updates["notes"] = *in.Notes
			}
			if len(updates) == 0 {
				return nil, ez.BadRequest("No fields to update")
			}
			if err := tx.Model(&domain.Booking{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return nil, ez.Internal("Failed to update booking", err)
			}
			return bookingWithNames(tx, id)
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/bookings/:id",
		Binder: ez.BindNone,
		OKMsg:  "Booking deleted successfully",
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (gin.H, error) {
			id, err := pathID(c)
			if err != nil {
				return nil, err
			}
			res := tx.Where("id = ?", id).Delete(&domain.Booking{})
			if res.Error != nil {
				return nil, ez.Internal("Failed to delete booking", res.Error)
			}
			if res.RowsAffected == 0 {
				return nil, ez.NotFound("Booking not found")
			}
			return gin.H{"id": id}, nil
		},
	})
}
