package verification

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"studyhall/pkg/apperrors"
)

type Repository interface {
	Create(ctx context.Context, audit *VerificationAudit) error
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]VerificationAudit, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, audit *VerificationAudit) error {
	if err := r.db.WithContext(ctx).Create(audit).Error; err != nil {
		return apperrors.Internal("failed to write verification audit", err)
	}
	return nil
}

func (r *repository) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]VerificationAudit, error) {
	var audits []VerificationAudit
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at").
		Find(&audits).Error
	if err != nil {
		return nil, apperrors.Internal("failed to list verification audits", err)
	}
	return audits, nil
}
