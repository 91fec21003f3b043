package notifications

import "time"

const (
	EventBookingCreated   = "booking.created"
	EventPaymentSubmitted = "booking.payment_submitted"
	EventBookingConfirmed = "booking.confirmed"
	EventPaymentRejected  = "booking.payment_rejected"
	EventBookingCancelled = "booking.cancelled"
	EventBookingExpired   = "booking.expired"
)

// BookingEvent is published to Kafka on every booking lifecycle change so
// downstream consumers (mailers, dashboards) can react without polling.
type BookingEvent struct {
	EventType  string    `json:"event_type"`
	BookingID  string    `json:"booking_id"`
	UserID     string    `json:"user_id"`
	SeatID     string    `json:"seat_id"`
	ShiftID    string    `json:"shift_id"`
	Status     string    `json:"status"`
	Amount     float64   `json:"amount"`
	OccurredAt time.Time `json:"occurred_at"`
}
