package bookings

import (
	"time"

	"github.com/google/uuid"
)

// CreateBookingRequest opens a reservation. InitialStatus lets a caller who
// already paid skip the PENDING step; it defaults to PENDING.
type CreateBookingRequest struct {
	SeatID        uuid.UUID `json:"seat_id" binding:"required"`
	ShiftID       uuid.UUID `json:"shift_id" binding:"required"`
	StartDate     time.Time `json:"start_date" binding:"required"`
	EndDate       time.Time `json:"end_date" binding:"required"`
	Amount        float64   `json:"amount" binding:"required,gt=0"`
	InitialStatus string    `json:"initial_status" binding:"omitempty,oneof=PENDING PAYMENT_SUBMITTED"`
	PaymentRef    string    `json:"payment_ref" binding:"omitempty,max=255"`
}

type SubmitPaymentRequest struct {
	PaymentRef string `json:"payment_ref" binding:"required,max=255"`
}

type RejectPaymentRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING PAYMENT_SUBMITTED CONFIRMED CANCELLED EXPIRED"`
}
