package seats

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"

	"studyhall/pkg/apperrors"
	"studyhall/pkg/logger"
)

type mockSeatRepository struct {
	mu    sync.Mutex
	seats map[uuid.UUID]*Seat
}

func newMockSeatRepository() *mockSeatRepository {
	return &mockSeatRepository{seats: make(map[uuid.UUID]*Seat)}
}

func (m *mockSeatRepository) add(seat *Seat) *Seat {
	m.mu.Lock()
	defer m.mu.Unlock()
	if seat.ID == uuid.Nil {
		seat.ID = uuid.New()
	}
	clone := *seat
	m.seats[seat.ID] = &clone
	return seat
}

func (m *mockSeatRepository) Create(ctx context.Context, seat *Seat) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.seats {
		if existing.SeatNumber == seat.SeatNumber {
			return apperrors.Conflict("seat number already exists")
		}
	}
	seat.ID = uuid.New()
	clone := *seat
	m.seats[seat.ID] = &clone
	return nil
}

func (m *mockSeatRepository) GetByID(ctx context.Context, id uuid.UUID) (*Seat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seat, ok := m.seats[id]
	if !ok {
		return nil, apperrors.NotFoundWithID("seat", id.String())
	}
	clone := *seat
	return &clone, nil
}

func (m *mockSeatRepository) GetBySeatNumber(ctx context.Context, seatNumber string) (*Seat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, seat := range m.seats {
		if seat.SeatNumber == seatNumber {
			clone := *seat
			return &clone, nil
		}
	}
	return nil, apperrors.NotFound("seat")
}

func (m *mockSeatRepository) List(ctx context.Context, section string, status SeatStatus) ([]Seat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []Seat
	for _, seat := range m.seats {
		if !seat.Active {
			continue
		}
		if section != "" && seat.Section != section {
			continue
		}
		if status != "" && seat.Status != status {
			continue
		}
		result = append(result, *seat)
	}
	return result, nil
}

func (m *mockSeatRepository) Update(ctx context.Context, seat *Seat) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *seat
	m.seats[seat.ID] = &clone
	return nil
}

func (m *mockSeatRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from []SeatStatus, to SeatStatus) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seat, ok := m.seats[id]
	if !ok {
		return 0, nil
	}
	for _, s := range from {
		if seat.Status == s {
			seat.Status = to
			return 1, nil
		}
	}
	return 0, nil
}

func (m *mockSeatRepository) SetStatusUnconditional(ctx context.Context, id uuid.UUID, to SeatStatus) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seat, ok := m.seats[id]
	if !ok {
		return 0, nil
	}
	seat.Status = to
	return 1, nil
}

func (m *mockSeatRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	seat, ok := m.seats[id]
	if !ok {
		return apperrors.NotFoundWithID("seat", id.String())
	}
	seat.Active = false
	return nil
}

func (m *mockSeatRepository) CountBySeatNumbers(ctx context.Context, seatNumbers []string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, seat := range m.seats {
		for _, n := range seatNumbers {
			if seat.SeatNumber == n {
				count++
			}
		}
	}
	return count, nil
}

var _ Repository = (*mockSeatRepository)(nil)

func newTestSeatService() (Service, *mockSeatRepository) {
	repo := newMockSeatRepository()
	svc := NewService(repo, nil, logger.New())
	return svc, repo
}

func TestSetStatusRoundTrip(t *testing.T) {
	svc, repo := newTestSeatService()
	seat := repo.add(&Seat{SeatNumber: "A-1-1", Section: "A", Status: StatusAvailable, Active: true})

	updated, err := svc.SetStatus(context.Background(), seat.ID, StatusClaimed, false)
	if err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	if updated.Status != StatusClaimed {
		t.Errorf("expected CLAIMED, got %s", updated.Status)
	}

	updated, err = svc.SetStatus(context.Background(), seat.ID, StatusAvailable, false)
	if err != nil {
		t.Fatalf("release failed: %v", err)
	}
	if updated.Status != StatusAvailable {
		t.Errorf("expected AVAILABLE, got %s", updated.Status)
	}
}

func TestSetStatusMaintenanceGuard(t *testing.T) {
	svc, repo := newTestSeatService()
	seat := repo.add(&Seat{SeatNumber: "B-2-3", Section: "B", Status: StatusMaintenance, Active: true})

	// A regular caller cannot claim a seat under maintenance.
	_, err := svc.SetStatus(context.Background(), seat.ID, StatusClaimed, false)
	if !apperrors.IsCode(err, apperrors.CodeInvalidState) {
		t.Errorf("expected INVALID_STATE, got %v", err)
	}

	// Nor put a seat into maintenance without the override.
	free := repo.add(&Seat{SeatNumber: "B-2-4", Section: "B", Status: StatusAvailable, Active: true})
	_, err = svc.SetStatus(context.Background(), free.ID, StatusMaintenance, false)
	if !apperrors.IsCode(err, apperrors.CodeInvalidState) {
		t.Errorf("expected INVALID_STATE for non-admin maintenance, got %v", err)
	}

	// The admin override moves it back into service.
	updated, err := svc.SetStatus(context.Background(), seat.ID, StatusAvailable, true)
	if err != nil {
		t.Fatalf("admin override failed: %v", err)
	}
	if updated.Status != StatusAvailable {
		t.Errorf("expected AVAILABLE, got %s", updated.Status)
	}
}

func TestSetStatusValidation(t *testing.T) {
	svc, repo := newTestSeatService()
	seat := repo.add(&Seat{SeatNumber: "C-1-1", Section: "C", Status: StatusAvailable, Active: true})

	_, err := svc.SetStatus(context.Background(), seat.ID, SeatStatus("BROKEN"), false)
	if !apperrors.IsCode(err, apperrors.CodeValidation) {
		t.Errorf("expected VALIDATION_ERROR, got %v", err)
	}

	_, err = svc.SetStatus(context.Background(), uuid.New(), StatusClaimed, false)
	if !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestSetStatusDeactivatedSeat(t *testing.T) {
	svc, repo := newTestSeatService()
	seat := repo.add(&Seat{SeatNumber: "D-1-1", Section: "D", Status: StatusAvailable, Active: false})

	_, err := svc.SetStatus(context.Background(), seat.ID, StatusClaimed, false)
	if !apperrors.IsCode(err, apperrors.CodeInvalidState) {
		t.Errorf("expected INVALID_STATE for deactivated seat, got %v", err)
	}
}

func TestGetStatus(t *testing.T) {
	svc, repo := newTestSeatService()
	seat := repo.add(&Seat{SeatNumber: "E-1-1", Section: "E", Status: StatusHold, Active: true})

	status, err := svc.GetStatus(context.Background(), seat.ID)
	if err != nil {
		t.Fatalf("get status failed: %v", err)
	}
	if status != StatusHold {
		t.Errorf("expected HOLD, got %s", status)
	}

	_, err = svc.GetStatus(context.Background(), uuid.New())
	if !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestListSeatsFilters(t *testing.T) {
	svc, repo := newTestSeatService()
	repo.add(&Seat{SeatNumber: "A-1-1", Section: "A", Status: StatusAvailable, Active: true})
	repo.add(&Seat{SeatNumber: "A-1-2", Section: "A", Status: StatusClaimed, Active: true})
	repo.add(&Seat{SeatNumber: "B-1-1", Section: "B", Status: StatusAvailable, Active: true})
	repo.add(&Seat{SeatNumber: "B-1-2", Section: "B", Status: StatusAvailable, Active: false})

	all, err := svc.ListSeats(context.Background(), "", "")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 active seats, got %d", len(all))
	}

	available, err := svc.ListSeats(context.Background(), "A", StatusAvailable)
	if err != nil {
		t.Fatalf("filtered list failed: %v", err)
	}
	if len(available) != 1 || available[0].SeatNumber != "A-1-1" {
		t.Errorf("unexpected filtered result: %+v", available)
	}

	_, err = svc.ListSeats(context.Background(), "", SeatStatus("BROKEN"))
	if !apperrors.IsCode(err, apperrors.CodeValidation) {
		t.Errorf("expected VALIDATION_ERROR for bad filter, got %v", err)
	}
}

func TestCreateSeatDefaults(t *testing.T) {
	svc, _ := newTestSeatService()

	seat, err := svc.CreateSeat(context.Background(), CreateSeatRequest{
		SeatNumber: "A-9-9",
		Section:    "A",
		RowNumber:  9,
		ColNumber:  9,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if seat.Status != StatusAvailable || seat.SeatType != SeatTypeStandard || !seat.Active {
		t.Errorf("unexpected defaults: %+v", seat)
	}

	_, err = svc.CreateSeat(context.Background(), CreateSeatRequest{
		SeatNumber: "A-9-9",
		Section:    "A",
		RowNumber:  9,
		ColNumber:  9,
	})
	if !apperrors.IsCode(err, apperrors.CodeConflict) {
		t.Errorf("expected CONFLICT for duplicate seat number, got %v", err)
	}
}

func TestCreateLockerUnit(t *testing.T) {
	svc, _ := newTestSeatService()

	locker, err := svc.CreateSeat(context.Background(), CreateSeatRequest{
		SeatNumber: "L-12",
		Section:    "L",
		RowNumber:  2,
		ColNumber:  2,
		SeatType:   SeatTypeLocker,
	})
	if err != nil {
		t.Fatalf("create locker failed: %v", err)
	}
	if locker.SeatType != SeatTypeLocker || locker.Status != StatusAvailable {
		t.Errorf("unexpected locker unit: %+v", locker)
	}

	// Lockers go through the same status lifecycle as seats.
	updated, err := svc.SetStatus(context.Background(), locker.ID, StatusClaimed, false)
	if err != nil {
		t.Fatalf("locker claim failed: %v", err)
	}
	if updated.Status != StatusClaimed {
		t.Errorf("expected CLAIMED locker, got %s", updated.Status)
	}
}
