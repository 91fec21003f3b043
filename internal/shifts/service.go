package shifts

import (
	"context"

	"github.com/google/uuid"

	"studyhall/pkg/apperrors"
)

type Service interface {
	CreateShift(ctx context.Context, req CreateShiftRequest) (*Shift, error)
	GetShift(ctx context.Context, id uuid.UUID) (*Shift, error)
	ListShifts(ctx context.Context) ([]Shift, error)
	UpdateShift(ctx context.Context, id uuid.UUID, req UpdateShiftRequest) (*Shift, error)
	DeactivateShift(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateShift(ctx context.Context, req CreateShiftRequest) (*Shift, error) {
	if req.StartTime >= req.EndTime {
		return nil, apperrors.Validation("shift start time must precede end time")
	}

	shift := &Shift{
		Name:        req.Name,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		BasePrice:   req.BasePrice,
		Description: req.Description,
		Active:      true,
	}
	if err := s.repo.Create(ctx, shift); err != nil {
		return nil, err
	}
	return shift, nil
}

func (s *service) GetShift(ctx context.Context, id uuid.UUID) (*Shift, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListShifts(ctx context.Context) ([]Shift, error) {
	return s.repo.List(ctx)
}

func (s *service) UpdateShift(ctx context.Context, id uuid.UUID, req UpdateShiftRequest) (*Shift, error) {
	shift, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.StartTime != nil {
		shift.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		shift.EndTime = *req.EndTime
	}
	if shift.StartTime >= shift.EndTime {
		return nil, apperrors.Validation("shift start time must precede end time")
	}
	if req.BasePrice != nil {
		shift.BasePrice = *req.BasePrice
	}
	if req.Description != nil {
		shift.Description = *req.Description
	}

	if err := s.repo.Update(ctx, shift); err != nil {
		return nil, err
	}
	return shift, nil
}

func (s *service) DeactivateShift(ctx context.Context, id uuid.UUID) error {
	return s.repo.Deactivate(ctx, id)
}
