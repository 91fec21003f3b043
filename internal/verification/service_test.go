package verification

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"studyhall/internal/bookings"
	"studyhall/pkg/apperrors"
	"studyhall/pkg/logger"
)

// mockBookingService tracks verification calls without a real ledger.
type mockBookingService struct {
	bookings.Service
	verifyErr   error
	rejectErr   error
	lastReason  string
	verifyCalls int
	rejectCalls int
}

func (m *mockBookingService) VerifyPayment(ctx context.Context, id uuid.UUID) (*bookings.Booking, error) {
	m.verifyCalls++
	if m.verifyErr != nil {
		return nil, m.verifyErr
	}
	return &bookings.Booking{ID: id, Status: bookings.StatusConfirmed}, nil
}

func (m *mockBookingService) RejectPayment(ctx context.Context, id uuid.UUID, reason string) (*bookings.Booking, error) {
	m.rejectCalls++
	m.lastReason = reason
	if m.rejectErr != nil {
		return nil, m.rejectErr
	}
	return &bookings.Booking{ID: id, Status: bookings.StatusCancelled, RejectReason: reason}, nil
}

type mockAuditRepository struct {
	audits []VerificationAudit
}

func (m *mockAuditRepository) Create(ctx context.Context, audit *VerificationAudit) error {
	m.audits = append(m.audits, *audit)
	return nil
}

func (m *mockAuditRepository) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]VerificationAudit, error) {
	var result []VerificationAudit
	for _, a := range m.audits {
		if a.BookingID == bookingID {
			result = append(result, a)
		}
	}
	return result, nil
}

func TestApproveWritesAudit(t *testing.T) {
	ledger := &mockBookingService{}
	repo := &mockAuditRepository{}
	svc := NewService(repo, ledger, logger.New())

	bookingID := uuid.New()
	booking, err := svc.Approve(context.Background(), bookingID, "staff-7")
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if booking.Status != bookings.StatusConfirmed {
		t.Errorf("expected CONFIRMED, got %s", booking.Status)
	}

	if len(repo.audits) != 1 {
		t.Fatalf("expected 1 audit row, got %d", len(repo.audits))
	}
	audit := repo.audits[0]
	if audit.BookingID != bookingID || audit.StaffID != "staff-7" || audit.Action != ActionApprove {
		t.Errorf("unexpected audit row: %+v", audit)
	}
}

func TestRejectWritesAuditWithReason(t *testing.T) {
	ledger := &mockBookingService{}
	repo := &mockAuditRepository{}
	svc := NewService(repo, ledger, logger.New())

	bookingID := uuid.New()
	booking, err := svc.Reject(context.Background(), bookingID, "staff-3", "amount mismatch")
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if booking.RejectReason != "amount mismatch" {
		t.Errorf("reason not propagated: %q", booking.RejectReason)
	}
	if ledger.lastReason != "amount mismatch" {
		t.Errorf("ledger did not receive reason: %q", ledger.lastReason)
	}

	if len(repo.audits) != 1 {
		t.Fatalf("expected 1 audit row, got %d", len(repo.audits))
	}
	if repo.audits[0].Action != ActionReject || repo.audits[0].Reason != "amount mismatch" {
		t.Errorf("unexpected audit row: %+v", repo.audits[0])
	}
}

func TestFailedDecisionWritesNoAudit(t *testing.T) {
	ledger := &mockBookingService{
		verifyErr: apperrors.InvalidState("only a booking with submitted payment can be confirmed"),
	}
	repo := &mockAuditRepository{}
	svc := NewService(repo, ledger, logger.New())

	_, err := svc.Approve(context.Background(), uuid.New(), "staff-7")
	if !apperrors.IsCode(err, apperrors.CodeInvalidState) {
		t.Errorf("expected INVALID_STATE, got %v", err)
	}
	if len(repo.audits) != 0 {
		t.Errorf("failed decision must not be audited, got %d rows", len(repo.audits))
	}
}

func TestHistory(t *testing.T) {
	ledger := &mockBookingService{}
	repo := &mockAuditRepository{}
	svc := NewService(repo, ledger, logger.New())

	bookingID := uuid.New()
	if _, err := svc.Approve(context.Background(), bookingID, "staff-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Approve(context.Background(), uuid.New(), "staff-2"); err != nil {
		t.Fatal(err)
	}

	history, err := svc.History(context.Background(), bookingID)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(history) != 1 || history[0].StaffID != "staff-1" {
		t.Errorf("unexpected history: %+v", history)
	}
}
