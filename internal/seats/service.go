package seats

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"studyhall/pkg/apperrors"
	"studyhall/pkg/cache"
	"studyhall/pkg/logger"
)

const (
	cacheKeySeatList   = "studyhall:seats:list:%s:%s"
	cacheKeySeatByID   = "studyhall:seats:id:%s"
	cacheKeySeatsAll   = "studyhall:seats:*"
	seatListCacheTTL   = 30 * time.Second
	seatDetailCacheTTL = time.Minute
)

type Service interface {
	CreateSeat(ctx context.Context, req CreateSeatRequest) (*Seat, error)
	GetSeat(ctx context.Context, id uuid.UUID) (*Seat, error)
	ListSeats(ctx context.Context, section string, status SeatStatus) ([]Seat, error)
	GetStatus(ctx context.Context, id uuid.UUID) (SeatStatus, error)
	SetStatus(ctx context.Context, id uuid.UUID, status SeatStatus, adminOverride bool) (*Seat, error)
	UpdateSeat(ctx context.Context, id uuid.UUID, req UpdateSeatRequest) (*Seat, error)
	DeactivateSeat(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo  Repository
	cache cache.Service
	log   *logger.Logger
}

// NewService builds the seat service. cacheService may be nil, in which case
// every read goes to the database.
func NewService(repo Repository, cacheService cache.Service, log *logger.Logger) Service {
	return &service{
		repo:  repo,
		cache: cacheService,
		log:   log,
	}
}

func (s *service) CreateSeat(ctx context.Context, req CreateSeatRequest) (*Seat, error) {
	seatType := req.SeatType
	if seatType == "" {
		seatType = SeatTypeStandard
	}

	seat := &Seat{
		SeatNumber: req.SeatNumber,
		Section:    req.Section,
		RowNumber:  req.RowNumber,
		ColNumber:  req.ColNumber,
		SeatType:   seatType,
		Status:     StatusAvailable,
		Active:     true,
	}

	if err := s.repo.Create(ctx, seat); err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)
	return seat, nil
}

func (s *service) GetSeat(ctx context.Context, id uuid.UUID) (*Seat, error) {
	if s.cache != nil {
		var cached Seat
		key := fmt.Sprintf(cacheKeySeatByID, id)
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	seat, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		key := fmt.Sprintf(cacheKeySeatByID, id)
		if err := s.cache.Set(ctx, key, seat, seatDetailCacheTTL); err != nil {
			s.log.WithError(err).Debug("seat cache write failed")
		}
	}
	return seat, nil
}

func (s *service) ListSeats(ctx context.Context, section string, status SeatStatus) ([]Seat, error) {
	if status != "" && !status.IsValid() {
		return nil, apperrors.Validation("unknown seat status filter")
	}

	if s.cache == nil {
		return s.repo.List(ctx, section, status)
	}

	key := fmt.Sprintf(cacheKeySeatList, section, status)
	var result []Seat
	err := s.cache.GetOrSet(ctx, key, seatListCacheTTL, func() (interface{}, error) {
		return s.repo.List(ctx, section, status)
	}, &result)
	if err != nil {
		// Advisory cache: fall back to the database on any cache error.
		return s.repo.List(ctx, section, status)
	}
	return result, nil
}

func (s *service) GetStatus(ctx context.Context, id uuid.UUID) (SeatStatus, error) {
	seat, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return seat.Status, nil
}

// SetStatus applies an occupancy status write. Regular callers cannot move a
// seat that sits in an administrative status (MAINTENANCE or HOLD); admin
// override bypasses that guard.
func (s *service) SetStatus(ctx context.Context, id uuid.UUID, status SeatStatus, adminOverride bool) (*Seat, error) {
	if !status.IsValid() {
		return nil, apperrors.Validation("unknown seat status")
	}

	seat, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !seat.Active {
		return nil, apperrors.InvalidState("seat is deactivated")
	}

	if adminOverride {
		if _, err := s.repo.SetStatusUnconditional(ctx, id, status); err != nil {
			return nil, err
		}
	} else {
		if !status.Bookable() {
			return nil, apperrors.InvalidState("administrative statuses require an admin override")
		}
		rows, err := s.repo.UpdateStatus(ctx, id, []SeatStatus{StatusAvailable, StatusClaimed}, status)
		if err != nil {
			return nil, err
		}
		if rows == 0 {
			return nil, apperrors.InvalidState(
				fmt.Sprintf("seat is under %s and cannot be updated", seat.Status))
		}
	}

	seat.Status = status
	s.invalidateSeatCache(ctx, id)
	return seat, nil
}

func (s *service) UpdateSeat(ctx context.Context, id uuid.UUID, req UpdateSeatRequest) (*Seat, error) {
	seat, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Section != nil {
		seat.Section = *req.Section
	}
	if req.RowNumber != nil {
		seat.RowNumber = *req.RowNumber
	}
	if req.ColNumber != nil {
		seat.ColNumber = *req.ColNumber
	}
	if req.SeatType != nil {
		seat.SeatType = *req.SeatType
	}

	if err := s.repo.Update(ctx, seat); err != nil {
		return nil, err
	}

	s.invalidateSeatCache(ctx, id)
	return seat, nil
}

func (s *service) DeactivateSeat(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return err
	}
	s.invalidateSeatCache(ctx, id)
	return nil
}

func (s *service) invalidateSeatCache(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, fmt.Sprintf(cacheKeySeatByID, id)); err != nil {
		s.log.WithError(err).Debug("seat cache invalidation failed")
	}
	s.invalidateListCache(ctx)
}

func (s *service) invalidateListCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, cacheKeySeatsAll); err != nil {
		s.log.WithError(err).Debug("seat list cache invalidation failed")
	}
}
