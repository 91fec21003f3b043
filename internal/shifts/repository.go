package shifts

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"studyhall/pkg/apperrors"
)

type Repository interface {
	Create(ctx context.Context, shift *Shift) error
	GetByID(ctx context.Context, id uuid.UUID) (*Shift, error)
	List(ctx context.Context) ([]Shift, error)
	Update(ctx context.Context, shift *Shift) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, shift *Shift) error {
	if err := r.db.WithContext(ctx).Create(shift).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("shift name already exists")
		}
		return apperrors.Internal("failed to create shift", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Shift, error) {
	var shift Shift
	err := r.db.WithContext(ctx).First(&shift, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundWithID("shift", id.String())
		}
		return nil, apperrors.Internal("failed to fetch shift", err)
	}
	return &shift, nil
}

func (r *repository) List(ctx context.Context) ([]Shift, error) {
	var result []Shift
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("start_time").
		Find(&result).Error
	if err != nil {
		return nil, apperrors.Internal("failed to list shifts", err)
	}
	return result, nil
}

func (r *repository) Update(ctx context.Context, shift *Shift) error {
	if err := r.db.WithContext(ctx).Save(shift).Error; err != nil {
		return apperrors.Internal("failed to update shift", err)
	}
	return nil
}

func (r *repository) Deactivate(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&Shift{}).
		Where("id = ?", id).
		Update("active", false)
	if result.Error != nil {
		return apperrors.Internal("failed to deactivate shift", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFoundWithID("shift", id.String())
	}
	return nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Shift{}).Count(&count).Error; err != nil {
		return 0, apperrors.Internal("failed to count shifts", err)
	}
	return count, nil
}
