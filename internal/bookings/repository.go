package bookings

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"studyhall/pkg/apperrors"
)

type Repository interface {
	// CreateWithClaim inserts the booking and runs enqueue in one
	// transaction. A concurrent active booking for the same (seat, shift)
	// yields Conflict.
	CreateWithClaim(ctx context.Context, booking *Booking, enqueue func(tx *gorm.DB) error) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	ListByUser(ctx context.Context, userID string) ([]Booking, error)
	ListByStatus(ctx context.Context, status BookingStatus) ([]Booking, error)
	// Transition applies updates only when the booking currently sits in one
	// of the from statuses, running enqueue in the same transaction when the
	// guard matched. Returns the number of rows updated.
	Transition(ctx context.Context, id uuid.UUID, from []BookingStatus, updates map[string]interface{}, enqueue func(tx *gorm.DB) error) (int64, error)
	SetStatusUnconditional(ctx context.Context, id uuid.UUID, status BookingStatus) (int64, error)
	DeleteWithRelease(ctx context.Context, id uuid.UUID, enqueue func(tx *gorm.DB) error) error
	SumAmountByStatus(ctx context.Context, status BookingStatus) (float64, error)
	CountByStatus(ctx context.Context, status BookingStatus) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateWithClaim(ctx context.Context, booking *Booking, enqueue func(tx *gorm.DB) error) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Friendly pre-check; the partial unique index decides races.
		var count int64
		err := tx.Model(&Booking{}).
			Where("seat_id = ? AND shift_id = ? AND status IN ?",
				booking.SeatID, booking.ShiftID, activeStatuses()).
			Count(&count).Error
		if err != nil {
			return apperrors.Internal("failed to check seat availability", err)
		}
		if count > 0 {
			return apperrors.Conflict("seat is already booked for this shift")
		}

		if err := tx.Create(booking).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.Conflict("seat is already booked for this shift")
			}
			return apperrors.Internal("failed to create booking", err)
		}

		return enqueue(tx)
	})
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundWithID("booking", id.String())
		}
		return nil, apperrors.Internal("failed to fetch booking", err)
	}
	return &booking, nil
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]Booking, error) {
	var result []Booking
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, apperrors.Internal("failed to list bookings", err)
	}
	return result, nil
}

func (r *repository) ListByStatus(ctx context.Context, status BookingStatus) ([]Booking, error) {
	var result []Booking
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at").
		Find(&result).Error
	if err != nil {
		return nil, apperrors.Internal("failed to list bookings", err)
	}
	return result, nil
}

func (r *repository) Transition(ctx context.Context, id uuid.UUID, from []BookingStatus, updates map[string]interface{}, enqueue func(tx *gorm.DB) error) (int64, error) {
	var rows int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Booking{}).
			Where("id = ? AND status IN ?", id, from).
			Updates(updates)
		if result.Error != nil {
			return apperrors.Internal("failed to update booking status", result.Error)
		}
		rows = result.RowsAffected
		if rows == 0 || enqueue == nil {
			return nil
		}
		return enqueue(tx)
	})
	if err != nil {
		return 0, err
	}
	return rows, nil
}

func (r *repository) SetStatusUnconditional(ctx context.Context, id uuid.UUID, status BookingStatus) (int64, error) {
	updates := map[string]interface{}{"status": status}
	if status.IsTerminal() {
		now := time.Now()
		updates["cancelled_at"] = &now
	}
	result := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return 0, apperrors.Internal("failed to update booking status", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *repository) DeleteWithRelease(ctx context.Context, id uuid.UUID, enqueue func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&Booking{}, "id = ?", id)
		if result.Error != nil {
			return apperrors.Internal("failed to delete booking", result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.NotFoundWithID("booking", id.String())
		}
		return enqueue(tx)
	})
}

func (r *repository) SumAmountByStatus(ctx context.Context, status BookingStatus) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("status = ?", status).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, apperrors.Internal("failed to compute revenue", err)
	}
	return total, nil
}

func (r *repository) CountByStatus(ctx context.Context, status BookingStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("status = ?", status).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Internal("failed to count bookings", err)
	}
	return count, nil
}
