package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"studyhall/internal/coordinator"
	"studyhall/internal/notifications"
	"studyhall/pkg/apperrors"
	"studyhall/pkg/logger"
)

// StatusCoordinator is the slice of the consistency coordinator the booking
// service needs: enqueue a seat status task inside the booking transaction,
// dispatch it after commit.
type StatusCoordinator interface {
	EnqueueTx(tx *gorm.DB, bookingID, seatID uuid.UUID, desiredStatus string) (*coordinator.ReconciliationTask, error)
	Dispatch(ctx context.Context, task *coordinator.ReconciliationTask)
}

type Service interface {
	CreateBooking(ctx context.Context, userID string, req CreateBookingRequest) (*Booking, error)
	GetBooking(ctx context.Context, id uuid.UUID) (*Booking, error)
	ListUserBookings(ctx context.Context, userID string) ([]Booking, error)
	ListByStatus(ctx context.Context, status BookingStatus) ([]Booking, error)
	SubmitPayment(ctx context.Context, id uuid.UUID, userID string, req SubmitPaymentRequest) (*Booking, error)
	VerifyPayment(ctx context.Context, id uuid.UUID) (*Booking, error)
	RejectPayment(ctx context.Context, id uuid.UUID, reason string) (*Booking, error)
	CancelBooking(ctx context.Context, id uuid.UUID, userID string, isAdmin bool) (*Booking, error)
	UpdateBookingStatus(ctx context.Context, id uuid.UUID, status BookingStatus) (*Booking, error)
	DeleteBooking(ctx context.Context, id uuid.UUID) error
	Revenue(ctx context.Context) (*RevenueResponse, error)
}

type service struct {
	repo     Repository
	coord    StatusCoordinator
	producer notifications.Producer
	log      *logger.Logger
}

// NewService builds the booking service. producer may be nil when Kafka is
// disabled.
func NewService(repo Repository, coord StatusCoordinator, producer notifications.Producer, log *logger.Logger) Service {
	return &service{
		repo:     repo,
		coord:    coord,
		producer: producer,
		log:      log,
	}
}

func (s *service) CreateBooking(ctx context.Context, userID string, req CreateBookingRequest) (*Booking, error) {
	initial := StatusPending
	if req.InitialStatus != "" {
		initial = BookingStatus(req.InitialStatus)
	}
	if initial != StatusPending && initial != StatusPaymentSubmitted {
		return nil, apperrors.Validation("initial status must be PENDING or PAYMENT_SUBMITTED")
	}
	if initial == StatusPaymentSubmitted && req.PaymentRef == "" {
		return nil, apperrors.Validation("payment_ref is required when submitting payment upfront")
	}
	if !req.EndDate.After(req.StartDate) {
		return nil, apperrors.Validation("end date must be after start date")
	}

	booking := &Booking{
		SeatID:     req.SeatID,
		ShiftID:    req.ShiftID,
		UserID:     userID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Amount:     req.Amount,
		Status:     initial,
		PaymentRef: req.PaymentRef,
	}

	var task *coordinator.ReconciliationTask
	err := s.repo.CreateWithClaim(ctx, booking, func(tx *gorm.DB) error {
		var err error
		task, err = s.coord.EnqueueTx(tx, booking.ID, booking.SeatID, coordinator.SeatStatusClaimed)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.dispatch(task)
	s.log.LogBookingCreated(ctx, booking.ID.String(), booking.SeatID.String(),
		booking.ShiftID.String(), userID)
	s.publish(notifications.EventBookingCreated, booking)

	return booking, nil
}

func (s *service) GetBooking(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListUserBookings(ctx context.Context, userID string) ([]Booking, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) ListByStatus(ctx context.Context, status BookingStatus) ([]Booking, error) {
	if !status.IsValid() {
		return nil, apperrors.Validation("unknown booking status")
	}
	return s.repo.ListByStatus(ctx, status)
}

// SubmitPayment records the payment proof reference and moves the booking to
// PAYMENT_SUBMITTED. Only the booking owner may submit.
func (s *service) SubmitPayment(ctx context.Context, id uuid.UUID, userID string, req SubmitPaymentRequest) (*Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, apperrors.NotFoundWithID("booking", id.String())
	}

	rows, err := s.repo.Transition(ctx, id,
		transitionSourcesOf(StatusPaymentSubmitted),
		map[string]interface{}{
			"status":      StatusPaymentSubmitted,
			"payment_ref": req.PaymentRef,
		}, nil)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, apperrors.InvalidState("payment can only be submitted for a pending booking")
	}

	s.log.LogBookingTransition(ctx, id.String(), string(booking.Status), string(StatusPaymentSubmitted))
	booking.Status = StatusPaymentSubmitted
	booking.PaymentRef = req.PaymentRef
	s.publish(notifications.EventPaymentSubmitted, booking)
	return booking, nil
}

// VerifyPayment confirms the booking and re-asserts the seat claim on the
// registry. Confirming an already confirmed or terminal booking is rejected.
func (s *service) VerifyPayment(ctx context.Context, id uuid.UUID) (*Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var task *coordinator.ReconciliationTask
	rows, err := s.repo.Transition(ctx, id,
		transitionSourcesOf(StatusConfirmed),
		map[string]interface{}{"status": StatusConfirmed},
		func(tx *gorm.DB) error {
			var err error
			task, err = s.coord.EnqueueTx(tx, id, booking.SeatID, coordinator.SeatStatusClaimed)
			return err
		})
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, apperrors.InvalidState("only a booking with submitted payment can be confirmed")
	}

	s.dispatch(task)
	s.log.LogBookingTransition(ctx, id.String(), string(booking.Status), string(StatusConfirmed))
	booking.Status = StatusConfirmed
	s.publish(notifications.EventBookingConfirmed, booking)
	return booking, nil
}

// RejectPayment cancels the booking with the given reason and releases the
// seat.
func (s *service) RejectPayment(ctx context.Context, id uuid.UUID, reason string) (*Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var task *coordinator.ReconciliationTask
	// Rejection is a verification decision, so it is limited to the statuses
	// that could be confirmed, not every status that may cancel.
	rows, err := s.repo.Transition(ctx, id,
		transitionSourcesOf(StatusConfirmed),
		map[string]interface{}{
			"status":        StatusCancelled,
			"reject_reason": reason,
			"cancelled_at":  &now,
		},
		func(tx *gorm.DB) error {
			var err error
			task, err = s.coord.EnqueueTx(tx, id, booking.SeatID, coordinator.SeatStatusAvailable)
			return err
		})
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, apperrors.InvalidState("only a booking with submitted payment can be rejected")
	}

	s.dispatch(task)
	s.log.LogBookingTransition(ctx, id.String(), string(booking.Status), string(StatusCancelled))
	booking.Status = StatusCancelled
	booking.RejectReason = reason
	booking.CancelledAt = &now
	s.publish(notifications.EventPaymentRejected, booking)
	return booking, nil
}

// CancelBooking moves any non-terminal booking to CANCELLED and releases the
// seat. Owners can cancel their own bookings; admins can cancel any.
func (s *service) CancelBooking(ctx context.Context, id uuid.UUID, userID string, isAdmin bool) (*Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && booking.UserID != userID {
		return nil, apperrors.NotFoundWithID("booking", id.String())
	}

	now := time.Now()
	var task *coordinator.ReconciliationTask
	rows, err := s.repo.Transition(ctx, id,
		transitionSourcesOf(StatusCancelled),
		map[string]interface{}{
			"status":       StatusCancelled,
			"cancelled_at": &now,
		},
		func(tx *gorm.DB) error {
			var err error
			task, err = s.coord.EnqueueTx(tx, id, booking.SeatID, coordinator.SeatStatusAvailable)
			return err
		})
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, apperrors.InvalidState("booking is already in a terminal status")
	}

	s.dispatch(task)
	s.log.LogBookingTransition(ctx, id.String(), string(booking.Status), string(StatusCancelled))
	booking.Status = StatusCancelled
	booking.CancelledAt = &now
	s.publish(notifications.EventBookingCancelled, booking)
	return booking, nil
}

// UpdateBookingStatus is the admin override: any status, no transition guard
// and no registry call. Operators use it to repair records; they reconcile
// the registry separately if needed.
func (s *service) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status BookingStatus) (*Booking, error) {
	if !status.IsValid() {
		return nil, apperrors.Validation("unknown booking status")
	}

	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.SetStatusUnconditional(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// Deleted between the read and the write.
		return nil, apperrors.NotFoundWithID("booking", id.String())
	}

	s.log.LogBookingTransition(ctx, id.String(), string(booking.Status), string(status))
	booking.Status = status
	if status == StatusExpired {
		s.publish(notifications.EventBookingExpired, booking)
	}
	return booking, nil
}

// DeleteBooking hard-deletes the record and unconditionally releases the
// seat. Admin only.
func (s *service) DeleteBooking(ctx context.Context, id uuid.UUID) error {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	var task *coordinator.ReconciliationTask
	err = s.repo.DeleteWithRelease(ctx, id, func(tx *gorm.DB) error {
		var err error
		task, err = s.coord.EnqueueTx(tx, id, booking.SeatID, coordinator.SeatStatusAvailable)
		return err
	})
	if err != nil {
		return err
	}

	s.dispatch(task)
	return nil
}

func (s *service) Revenue(ctx context.Context) (*RevenueResponse, error) {
	total, err := s.repo.SumAmountByStatus(ctx, StatusConfirmed)
	if err != nil {
		return nil, err
	}
	count, err := s.repo.CountByStatus(ctx, StatusConfirmed)
	if err != nil {
		return nil, err
	}
	return &RevenueResponse{
		TotalRevenue:      total,
		ConfirmedBookings: int(count),
	}, nil
}

// dispatch pushes the seat status to the registry off the request path.
func (s *service) dispatch(task *coordinator.ReconciliationTask) {
	if task == nil {
		return
	}
	go s.coord.Dispatch(context.Background(), task)
}

func (s *service) publish(eventType string, booking *Booking) {
	if s.producer == nil {
		return
	}
	event := notifications.BookingEvent{
		EventType:  eventType,
		BookingID:  booking.ID.String(),
		UserID:     booking.UserID,
		SeatID:     booking.SeatID.String(),
		ShiftID:    booking.ShiftID.String(),
		Status:     string(booking.Status),
		Amount:     booking.Amount,
		OccurredAt: time.Now(),
	}
	if err := s.producer.PublishBookingEvent(event); err != nil {
		s.log.WithError(err).Warn("failed to publish booking event",
			"event_type", eventType, "booking_id", booking.ID.String())
	}
}
