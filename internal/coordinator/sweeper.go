package coordinator

import (
	"context"
	"time"
)

// Stats summarizes the reconciliation backlog for the internal stats
// endpoint.
type Stats struct {
	QueueDepth      int64      `json:"queue_depth"`
	OldestCreatedAt *time.Time `json:"oldest_created_at,omitempty"`
}

// Start launches the reconciliation sweep loop. It drains outstanding tasks
// on every tick until ctx is cancelled.
func (c *Coordinator) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(c.cfg.SweepInterval)
		defer ticker.Stop()

		c.log.Info("reconciliation sweeper started",
			"interval", c.cfg.SweepInterval.String(),
			"batch_size", c.cfg.SweepBatchSize,
		)

		for {
			select {
			case <-ctx.Done():
				c.log.Info("reconciliation sweeper stopped")
				return
			case <-ticker.C:
				c.Sweep(ctx)
			}
		}
	}()
}

// Sweep runs one reconciliation pass over the oldest outstanding tasks.
func (c *Coordinator) Sweep(ctx context.Context) {
	tasks, err := c.tasks.ListOldest(ctx, c.cfg.SweepBatchSize)
	if err != nil {
		c.log.WithError(err).Error("reconciliation sweep failed to list tasks")
		return
	}
	if len(tasks) == 0 {
		return
	}

	applied, failed := 0, 0
	for i := range tasks {
		if ctx.Err() != nil {
			return
		}
		if c.applyOnce(ctx, &tasks[i]) {
			applied++
		} else {
			failed++
		}
	}

	depth, err := c.tasks.Depth(ctx)
	if err != nil {
		depth = -1
	}
	c.log.LogSweepResult(ctx, applied, failed, depth)
}

// GetStats reports the current backlog.
func (c *Coordinator) GetStats(ctx context.Context) (*Stats, error) {
	depth, err := c.tasks.Depth(ctx)
	if err != nil {
		return nil, err
	}
	oldest, err := c.tasks.OldestCreatedAt(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{
		QueueDepth:      depth,
		OldestCreatedAt: oldest,
	}, nil
}
