package domain

import "time"

const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

func ValidBookingStatus(s string) bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// Booking is a charter request submitted from the storefront. TotalPrice is
// computed server-side at creation: yacht hourly price times hours.
type Booking struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	YachtID       int64     `gorm:"not null;index" json:"yacht_id"`
	DestinationID *int64    `gorm:"index" json:"destination_id"`
	CustomerName  string    `gorm:"size:191;not null" json:"customer_name"`
	CustomerEmail string    `gorm:"size:191;not null" json:"customer_email"`
	CustomerPhone string    `gorm:"size:64;not null" json:"customer_phone"`
	Date          string    `gorm:"type:date;not null" json:"date"`
	Hours         int       `gorm:"not null" json:"hours"`
	TotalPrice    float64   `gorm:"not null" json:"total_price"`
	Notes         *string   `gorm:"type:text" json:"notes"`
	Status        string    `gorm:"size:16;not null;default:pending" json:"status"`
	CreatedAt     time.Time `json:"created_at"`

	// Filled by joined reads only.
	YachtName       string `gorm:"->;-:migration" json:"yacht_name,omitempty"`
	YachtImage      string `gorm:"->;-:migration" json:"yacht_image,omitempty"`
	DestinationName string `gorm:"->;-:migration" json:"destination_name,omitempty"`
}

func (Booking) TableName() string { return "bookings" }
