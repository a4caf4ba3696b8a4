package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"luxury-yachts-api/internal/domain"
	"luxury-yachts-api/internal/transport/http/ez"
)

type categoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type statsOut struct {
	TotalYachts       int64            `json:"total_yachts"`
	ActiveBookings    int64            `json:"active_bookings"`
	MonthlyRevenue    float64          `json:"monthly_revenue"`
	TotalDestinations int64            `json:"total_destinations"`
	Categories        []categoryCount  `json:"categories"`
	RecentBookings    []domain.Booking `json:"recent_bookings"`
}

// MountAdminStats wires the dashboard aggregate endpoint.
func MountAdminStats(g *gin.RouterGroup, db *gorm.DB, l *zap.Logger) {
	e := ez.New(g, db, l)

	ez.RegisterAction(e, ez.Action[struct{}, *statsOut]{
		Method: http.MethodGet,
		Path:   "/stats",
		Binder: ez.BindNone,
		OKMsg:  "Statistics retrieved",
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (*statsOut, error) {
			var out statsOut

			if err := tx.Model(&domain.Yacht{}).Count(&out.TotalYachts).Error; err != nil {
				return nil, ez.Internal("Failed to load statistics", err)
			}
			if err := tx.Model(&domain.Destination{}).Count(&out.TotalDestinations).Error; err != nil {
				return nil, ez.Internal("Failed to load statistics", err)
			}
			if err := tx.Model(&domain.Booking{}).
				Where("status IN ?", []string{domain.BookingPending, domain.BookingConfirmed}).
				Count(&out.ActiveBookings).Error; err != nil {
				return nil, ez.Internal("Failed to load statistics", err)
			}

			now := time.Now()
			monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
			if err := tx.Model(&domain.Booking{}).
				Select("COALESCE(SUM(total_price), 0)").
				Where("status IN ?", []string{domain.BookingConfirmed, domain.BookingCompleted}).
				Where("created_at >= ?", monthStart).
				Scan(&out.MonthlyRevenue).Error; err != nil {
				return nil, ez.Internal("Failed to load statistics", err)
			}

			if err := tx.Model(&domain.Yacht{}).
				Select("category, COUNT(*) AS count").
				Group("category").
				Scan(&out.Categories).Error; err != nil {
				return nil, ez.Internal("Failed to load statistics", err)
			}
			if out.Categories == nil {
				out.Categories = []categoryCount{}
			}

			if err := bookingJoin(tx, false).
				Order("bookings.created_at DESC").
				Limit(5).
				Find(&out.RecentBookings).Error; err != nil {
				return nil, ez.Internal("Failed to load statistics", err)
			}
			if out.RecentBookings == nil {
				out.RecentBookings = []domain.Booking{}
			}

			return &out, nil
		},
	})
}
