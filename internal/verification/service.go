package verification

import (
	"context"

	"github.com/google/uuid"

	"studyhall/internal/bookings"
	"studyhall/pkg/logger"
)

type Service interface {
	Approve(ctx context.Context, bookingID uuid.UUID, staffID string) (*bookings.Booking, error)
	Reject(ctx context.Context, bookingID uuid.UUID, staffID, reason string) (*bookings.Booking, error)
	History(ctx context.Context, bookingID uuid.UUID) ([]VerificationAudit, error)
}

type service struct {
	repo        Repository
	bookingsSvc bookings.Service
	log         *logger.Logger
}

func NewService(repo Repository, bookingsSvc bookings.Service, log *logger.Logger) Service {
	return &service{
		repo:        repo,
		bookingsSvc: bookingsSvc,
		log:         log,
	}
}

// Approve confirms the booking and records who approved it. The decision is
// only audited once the ledger transition succeeded.
func (s *service) Approve(ctx context.Context, bookingID uuid.UUID, staffID string) (*bookings.Booking, error) {
	booking, err := s.bookingsSvc.VerifyPayment(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	audit := &VerificationAudit{
		BookingID: bookingID,
		StaffID:   staffID,
		Action:    ActionApprove,
	}
	if err := s.repo.Create(ctx, audit); err != nil {
		// The booking is already confirmed at this point; a lost audit row
		// is an operational incident, not a reason to fail the caller.
		s.log.WithError(err).Error("verification audit write failed",
			"booking_id", bookingID.String(), "action", ActionApprove)
	}
	return booking, nil
}

// Reject cancels the booking with the staff-supplied reason and records the
// decision.
func (s *service) Reject(ctx context.Context, bookingID uuid.UUID, staffID, reason string) (*bookings.Booking, error) {
	booking, err := s.bookingsSvc.RejectPayment(ctx, bookingID, reason)
	if err != nil {
		return nil, err
	}

	audit := &VerificationAudit{
		BookingID: bookingID,
		StaffID:   staffID,
		Action:    ActionReject,
		Reason:    reason,
	}
	if err := s.repo.Create(ctx, audit); err != nil {
		s.log.WithError(err).Error("verification audit write failed",
			"booking_id", bookingID.String(), "action", ActionReject)
	}
	return booking, nil
}

func (s *service) History(ctx context.Context, bookingID uuid.UUID) ([]VerificationAudit, error) {
	return s.repo.ListByBooking(ctx, bookingID)
}
