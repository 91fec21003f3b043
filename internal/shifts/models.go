package shifts

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Shift is a bookable time window, e.g. Morning 06:00-12:00. Start and end
// are wall-clock times stored as "HH:MM".
type Shift struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:50;not null;uniqueIndex" json:"name"`
	StartTime   string    `gorm:"size:5;not null" json:"start_time"`
	EndTime     string    `gorm:"size:5;not null" json:"end_time"`
	BasePrice   float64   `gorm:"not null" json:"base_price"`
	Description string    `gorm:"size:255" json:"description"`
	Active      bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (s *Shift) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
