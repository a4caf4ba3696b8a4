package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

var yachtCategories = map[string]struct{}{
	"premium":      {},
	"luxury":       {},
	"ultra-luxury": {},
}

func ValidYachtCategory(c string) bool {
	_, ok := yachtCategories[c]
	return ok
}

// StringList is stored as a JSON array in a text column, the shape the
// storefront expects for yacht features.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *StringList) Scan(v any) error {
	switch b := v.(type) {
	case nil:
		*l = StringList{}
		return nil
	case []byte:
		if len(b) == 0 {
			*l = StringList{}
			return nil
		}
		return json.Unmarshal(b, l)
	case string:
		if b == "" {
			*l = StringList{}
			return nil
		}
		return json.Unmarshal([]byte(b), l)
	default:
		return fmt.Errorf("cannot scan %T into StringList", v)
	}
}

type Yacht struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string     `gorm:"size:191;not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Price       float64    `gorm:"not null" json:"price"` // per hour
	Capacity    int        `gorm:"not null" json:"capacity"`
	Length      float64    `gorm:"not null" json:"length"`
	Category    string     `gorm:"size:32;not null;default:luxury" json:"category"`
	Features    StringList `gorm:"type:text" json:"features"`
	Image       string     `gorm:"size:512" json:"image"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Yacht) TableName() string { return "yachts" }
