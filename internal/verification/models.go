package verification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ActionApprove = "APPROVE"
	ActionReject  = "REJECT"
)

// VerificationAudit records every staff payment decision. The audit row is a
// required side effect of a decision, not an optional log line.
type VerificationAudit struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID uuid.UUID `gorm:"type:uuid;not null;index" json:"booking_id"`
	StaffID   string    `gorm:"size:64;not null" json:"staff_id"`
	Action    string    `gorm:"size:20;not null" json:"action"`
	Reason    string    `gorm:"size:500" json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (a *VerificationAudit) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
