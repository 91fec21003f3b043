package coordinator

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"studyhall/pkg/apperrors"
)

// ReconciliationTask is an outbox row recording a seat status write the
// registry still owes us. Rows are inserted in the same transaction as the
// booking change they mirror and deleted once the registry acknowledges.
type ReconciliationTask struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SeatID        uuid.UUID `gorm:"type:uuid;not null;index" json:"seat_id"`
	BookingID     uuid.UUID `gorm:"type:uuid;not null" json:"booking_id"`
	DesiredStatus string    `gorm:"size:20;not null" json:"desired_status"`
	Attempts      int       `gorm:"not null;default:0" json:"attempts"`
	LastError     string    `gorm:"size:500" json:"last_error"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (t *ReconciliationTask) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type TaskRepository interface {
	EnqueueTx(tx *gorm.DB, task *ReconciliationTask) error
	Delete(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	MarkAttempt(ctx context.Context, id uuid.UUID, lastError string) error
	ListOldest(ctx context.Context, limit int) ([]ReconciliationTask, error)
	Depth(ctx context.Context) (int64, error)
	OldestCreatedAt(ctx context.Context) (*time.Time, error)
}

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

// EnqueueTx inserts the task inside the caller's transaction so the outbox
// row commits or rolls back together with the booking write. Older tasks for
// the same seat are superseded in the same transaction: only the latest
// desired status per seat may ever reach the registry, otherwise a stale
// release drained by the sweep could overwrite a newer claim.
func (r *taskRepository) EnqueueTx(tx *gorm.DB, task *ReconciliationTask) error {
	if err := tx.Where("seat_id = ?", task.SeatID).Delete(&ReconciliationTask{}).Error; err != nil {
		return apperrors.Internal("failed to supersede reconciliation tasks", err)
	}
	if err := tx.Create(task).Error; err != nil {
		return apperrors.Internal("failed to enqueue reconciliation task", err)
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&ReconciliationTask{}, "id = ?", id).Error; err != nil {
		return apperrors.Internal("failed to delete reconciliation task", err)
	}
	return nil
}

func (r *taskRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&ReconciliationTask{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Internal("failed to check reconciliation task", err)
	}
	return count > 0, nil
}

func (r *taskRepository) MarkAttempt(ctx context.Context, id uuid.UUID, lastError string) error {
	err := r.db.WithContext(ctx).
		Model(&ReconciliationTask{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": lastError,
		}).Error
	if err != nil {
		return apperrors.Internal("failed to record reconciliation attempt", err)
	}
	return nil
}

func (r *taskRepository) ListOldest(ctx context.Context, limit int) ([]ReconciliationTask, error) {
	var tasks []ReconciliationTask
	err := r.db.WithContext(ctx).
		Order("created_at").
		Limit(limit).
		Find(&tasks).Error
	if err != nil {
		return nil, apperrors.Internal("failed to list reconciliation tasks", err)
	}
	return tasks, nil
}

func (r *taskRepository) Depth(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ReconciliationTask{}).Count(&count).Error
	if err != nil {
		return 0, apperrors.Internal("failed to count reconciliation tasks", err)
	}
	return count, nil
}

func (r *taskRepository) OldestCreatedAt(ctx context.Context) (*time.Time, error) {
	var task ReconciliationTask
	err := r.db.WithContext(ctx).Order("created_at").First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Internal("failed to fetch oldest reconciliation task", err)
	}
	return &task.CreatedAt, nil
}
