package seats

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"studyhall/pkg/apperrors"
)

type Repository interface {
	Create(ctx context.Context, seat *Seat) error
	GetByID(ctx context.Context, id uuid.UUID) (*Seat, error)
	GetBySeatNumber(ctx context.Context, seatNumber string) (*Seat, error)
	List(ctx context.Context, section string, status SeatStatus) ([]Seat, error)
	Update(ctx context.Context, seat *Seat) error
	UpdateStatus(ctx context.Context, id uuid.UUID, from []SeatStatus, to SeatStatus) (int64, error)
	SetStatusUnconditional(ctx context.Context, id uuid.UUID, to SeatStatus) (int64, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	CountBySeatNumbers(ctx context.Context, seatNumbers []string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, seat *Seat) error {
	if err := r.db.WithContext(ctx).Create(seat).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("seat number already exists")
		}
		return apperrors.Internal("failed to create seat", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Seat, error) {
	var seat Seat
	err := r.db.WithContext(ctx).First(&seat, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundWithID("seat", id.String())
		}
		return nil, apperrors.Internal("failed to fetch seat", err)
	}
	return &seat, nil
}

func (r *repository) GetBySeatNumber(ctx context.Context, seatNumber string) (*Seat, error) {
	var seat Seat
	err := r.db.WithContext(ctx).First(&seat, "seat_number = ?", seatNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("seat")
		}
		return nil, apperrors.Internal("failed to fetch seat", err)
	}
	return &seat, nil
}

func (r *repository) List(ctx context.Context, section string, status SeatStatus) ([]Seat, error) {
	query := r.db.WithContext(ctx).Where("active = ?", true)
	if section != "" {
		query = query.Where("section = ?", section)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var result []Seat
	if err := query.Order("seat_number").Find(&result).Error; err != nil {
		return nil, apperrors.Internal("failed to list seats", err)
	}
	return result, nil
}

func (r *repository) Update(ctx context.Context, seat *Seat) error {
	if err := r.db.WithContext(ctx).Save(seat).Error; err != nil {
		return apperrors.Internal("failed to update seat", err)
	}
	return nil
}

// UpdateStatus transitions the seat only when its current status is in from.
// Returns the number of rows updated; zero means the seat was missing or in a
// disallowed status.
func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, from []SeatStatus, to SeatStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&Seat{}).
		Where("id = ? AND status IN ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return 0, apperrors.Internal("failed to update seat status", result.Error)
	}
	return result.RowsAffected, nil
}

// SetStatusUnconditional writes the status regardless of the current one.
// Reserved for admin overrides.
func (r *repository) SetStatusUnconditional(ctx context.Context, id uuid.UUID, to SeatStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&Seat{}).
		Where("id = ?", id).
		Update("status", to)
	if result.Error != nil {
		return 0, apperrors.Internal("failed to update seat status", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *repository) Deactivate(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&Seat{}).
		Where("id = ?", id).
		Update("active", false)
	if result.Error != nil {
		return apperrors.Internal("failed to deactivate seat", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFoundWithID("seat", id.String())
	}
	return nil
}

func (r *repository) CountBySeatNumbers(ctx context.Context, seatNumbers []string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Seat{}).
		Where("seat_number IN ?", seatNumbers).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Internal("failed to count seats", err)
	}
	return count, nil
}
