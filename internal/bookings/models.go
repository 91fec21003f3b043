package bookings

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking is the authoritative reservation record. The registry's seat
// status mirrors this table; on disagreement the ledger wins.
type Booking struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	SeatID       uuid.UUID     `gorm:"type:uuid;not null" json:"seat_id"`
	ShiftID      uuid.UUID     `gorm:"type:uuid;not null" json:"shift_id"`
	UserID       string        `gorm:"size:64;not null" json:"user_id"`
	StartDate    time.Time     `gorm:"not null" json:"start_date"`
	EndDate      time.Time     `gorm:"not null" json:"end_date"`
	Amount       float64       `gorm:"not null" json:"amount"`
	Status       BookingStatus `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	PaymentRef   string        `gorm:"size:255" json:"payment_ref,omitempty"`
	RejectReason string        `gorm:"size:500" json:"reject_reason,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
	CancelledAt  *time.Time    `json:"cancelled_at,omitempty"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
