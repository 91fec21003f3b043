package coordinator

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"studyhall/internal/shared/config"
	"studyhall/pkg/logger"
)

// Seat statuses the coordinator writes to the registry.
const (
	SeatStatusClaimed   = "CLAIMED"
	SeatStatusAvailable = "AVAILABLE"
)

// Coordinator keeps the seat registry in step with the booking ledger. Every
// booking change that affects occupancy enqueues a task inside the booking
// transaction; after commit the coordinator pushes the status to the registry
// with bounded retries, leaving failed tasks for the background sweep.
type Coordinator struct {
	tasks    TaskRepository
	registry RegistryClient
	cfg      *config.CoordinatorConfig
	log      *logger.Logger
}

func New(tasks TaskRepository, registry RegistryClient, cfg *config.CoordinatorConfig, log *logger.Logger) *Coordinator {
	return &Coordinator{
		tasks:    tasks,
		registry: registry,
		cfg:      cfg,
		log:      log,
	}
}

// EnqueueTx records the desired seat status in the caller's transaction and
// returns the task so the caller can dispatch it after commit.
func (c *Coordinator) EnqueueTx(tx *gorm.DB, bookingID, seatID uuid.UUID, desiredStatus string) (*ReconciliationTask, error) {
	task := &ReconciliationTask{
		SeatID:        seatID,
		BookingID:     bookingID,
		DesiredStatus: desiredStatus,
	}
	if err := c.tasks.EnqueueTx(tx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Dispatch pushes the task's status to the registry with exponential backoff.
// On success the outbox row is deleted. After the final failed attempt the
// row stays behind with its attempt count and last error for the sweep.
// Booking callers never see an error from here: registry drift is repaired
// asynchronously, not surfaced.
func (c *Coordinator) Dispatch(ctx context.Context, task *ReconciliationTask) {
	var lastErr error
	for attempt := 0; attempt < c.cfg.MaxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(c.cfg.RetryBackoff * time.Duration(1<<(attempt-1))):
			case <-ctx.Done():
				lastErr = ctx.Err()
				c.recordFailure(task, lastErr)
				return
			}

			// A newer booking change may have superseded this task while
			// we were backing off; its status must not reach the registry.
			if !c.stillCurrent(ctx, task) {
				return
			}
		}

		lastErr = c.registry.SetSeatStatus(ctx, task.SeatID, task.DesiredStatus)
		if lastErr == nil {
			if err := c.tasks.Delete(context.Background(), task.ID); err != nil {
				c.log.WithError(err).Warn("failed to clear applied reconciliation task",
					"task_id", task.ID.String())
			}
			c.log.LogSeatStatusApplied(ctx, task.SeatID.String(), task.DesiredStatus, attempt+1)
			return
		}
	}

	c.recordFailure(task, lastErr)
}

func (c *Coordinator) recordFailure(task *ReconciliationTask, cause error) {
	ctx := context.Background()
	if err := c.tasks.MarkAttempt(ctx, task.ID, cause.Error()); err != nil {
		c.log.WithError(err).Error("failed to record reconciliation failure",
			"task_id", task.ID.String())
	}
	c.log.LogReconciliationPending(ctx, task.ID.String(), task.SeatID.String(), task.DesiredStatus, cause)
}

// stillCurrent reports whether the task is still the seat's latest desired
// status. Superseded rows are deleted by EnqueueTx, so a missing row means a
// newer task owns the seat now.
func (c *Coordinator) stillCurrent(ctx context.Context, task *ReconciliationTask) bool {
	exists, err := c.tasks.Exists(ctx, task.ID)
	if err != nil {
		c.log.WithError(err).Warn("failed to check reconciliation task currency",
			"task_id", task.ID.String())
		return false
	}
	return exists
}

// applyOnce is the sweep path: a single registry attempt per task per pass.
func (c *Coordinator) applyOnce(ctx context.Context, task *ReconciliationTask) bool {
	if !c.stillCurrent(ctx, task) {
		return true
	}
	if err := c.registry.SetSeatStatus(ctx, task.SeatID, task.DesiredStatus); err != nil {
		if markErr := c.tasks.MarkAttempt(ctx, task.ID, err.Error()); markErr != nil {
			c.log.WithError(markErr).Error("failed to record sweep attempt",
				"task_id", task.ID.String())
		}
		return false
	}
	if err := c.tasks.Delete(ctx, task.ID); err != nil {
		c.log.WithError(err).Warn("failed to clear applied reconciliation task",
			"task_id", task.ID.String())
	}
	return true
}
