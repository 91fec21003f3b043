package seats

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seat is a bookable physical unit in the study hall: a chair at a table, a
// staff seat, or a locker. All unit types share one status lifecycle and one
// booking flow. Status reflects current occupancy as known by the registry;
// the booking ledger is the source of truth for who holds it.
type Seat struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	SeatNumber string     `gorm:"size:20;not null;uniqueIndex" json:"seat_number"`
	Section    string     `gorm:"size:10;not null;index" json:"section"`
	RowNumber  int        `gorm:"not null" json:"row_number"`
	ColNumber  int        `gorm:"not null" json:"col_number"`
	SeatType   string     `gorm:"size:20;not null;default:'STANDARD'" json:"seat_type"`
	Status     SeatStatus `gorm:"size:20;not null;default:'AVAILABLE';index" json:"status"`
	Active     bool       `gorm:"not null;default:true" json:"active"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

const (
	SeatTypeStandard = "STANDARD"
	SeatTypeStaff    = "STAFF"
	SeatTypeLocker   = "LOCKER"
)

func (s *Seat) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
