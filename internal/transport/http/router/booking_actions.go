package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"luxury-yachts-api/internal/domain"
	"luxury-yachts-api/internal/transport/http/ez"
)

// MountBookingActions wires the public booking submission.
func MountBookingActions(g *gin.RouterGroup, db *gorm.DB, l *zap.Logger) {
	e := ez.New(g, db, l)

	type bookingIn struct {
		YachtID       int64   `json:"yacht_id"`
		DestinationID *int64  `json:"destination_id"`
		CustomerName  string  `json:"customer_name"`
		CustomerEmail string  `json:"customer_email"`
		CustomerPhone string  `json:"customer_phone"`
		Date          string  `json:"date"`
		Hours         int     `json:"hours"`
		Notes         *string `json:"notes"`
	}

	ez.RegisterAction(e, ez.Action[bookingIn, *domain.Booking]{
		Method:  http.MethodPost,
		Path:    "/bookings",
		Binder:  ez.BindJSON,
		OKMsg:   "Booking created successfully",
		Created: true,
		UseTx:   true,
		Handler: func(c *gin.Context, tx *gorm.DB, in *bookingIn) (*domain.Booking, error) {
			if in.YachtID == 0 || in.CustomerName == "" || in.CustomerEmail == "" ||
				in.CustomerPhone == "" || in.Date == "" || in.Hours == 0 {
				return nil, ez.BadRequest("Missing required fields")
			}

			var yacht domain.Yacht
			err := tx.First(&yacht, "id = ?", in.YachtID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ez.NotFound("Yacht not found")
			}
			if err != nil {
				return nil, ez.Internal("Failed to create booking", err)
			}

			b := domain.Booking{
				YachtID:       in.YachtID,
				DestinationID: in.DestinationID,
				CustomerName:  in.CustomerName,
				CustomerEmail: in.CustomerEmail,
				CustomerPhone: in.CustomerPhone,
				Date:          in.Date,
				Hours:         in.Hours,
				TotalPrice:    yacht.Price * float64(in.Hours),
				Notes:         in.Notes,
				Status:        domain.BookingPending,
			}
			if err := tx.Create(&b).Error; err != nil {
				return nil, ez.Internal("Failed to create booking", err)
			}
			return bookingWithNames(tx, b.ID)
		},
	})
}

// bookingWithNames loads one booking with the joined yacht and destination
// names the clients display.
func bookingWithNames(tx *gorm.DB, id int64) (*domain.Booking, error) {
	var b domain.Booking
	err := bookingJoin(tx, false).Where("bookings.id = ?", id).Take(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ez.NotFound("Booking not found")
	}
	if err != nil {
		return nil, ez.Internal("Failed to load booking", err)
	}
	return &b, nil
}

// bookingJoin builds the LEFT JOIN select shared by every joined booking
// read; withImage additionally pulls the yacht image for detail views.
func bookingJoin(tx *gorm.DB, withImage bool) *gorm.DB {
	sel := "bookings.*, yachts.name AS yacht_name, destinations.name AS destination_name"
	if withImage {
		sel = "bookings.*, yachts.name AS yacht_name, yachts.image AS yacht_image, destinations.name AS destination_name"
	}
	return tx.Table("bookings").
		Select(sel).
		Joins("LEFT JOIN yachts ON yachts.id = bookings.yacht_id").
		Joins("LEFT JOIN destinations ON destinations.id = bookings.destination_id")
}
