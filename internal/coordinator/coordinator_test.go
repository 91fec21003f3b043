package coordinator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"studyhall/internal/shared/config"
	"studyhall/pkg/logger"
)

// memoryTaskRepository is an in-memory outbox for coordinator tests.
type memoryTaskRepository struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]*ReconciliationTask
}

func newMemoryTaskRepository() *memoryTaskRepository {
	return &memoryTaskRepository{tasks: make(map[uuid.UUID]*ReconciliationTask)}
}

func (m *memoryTaskRepository) EnqueueTx(tx *gorm.DB, task *ReconciliationTask) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, existing := range m.tasks {
		if existing.SeatID == task.SeatID {
			delete(m.tasks, id)
		}
	}
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	task.CreatedAt = time.Now()
	clone := *task
	m.tasks[task.ID] = &clone
	return nil
}

func (m *memoryTaskRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.tasks[id]
	return ok, nil
}

func (m *memoryTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tasks, id)
	return nil
}

func (m *memoryTaskRepository) MarkAttempt(ctx context.Context, id uuid.UUID, lastError string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if task, ok := m.tasks[id]; ok {
		task.Attempts++
		task.LastError = lastError
	}
	return nil
}

func (m *memoryTaskRepository) ListOldest(ctx context.Context, limit int) ([]ReconciliationTask, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []ReconciliationTask
	for _, task := range m.tasks {
		result = append(result, *task)
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

func (m *memoryTaskRepository) Depth(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.tasks)), nil
}

func (m *memoryTaskRepository) OldestCreatedAt(ctx context.Context) (*time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var oldest *time.Time
	for _, task := range m.tasks {
		created := task.CreatedAt
		if oldest == nil || created.Before(*oldest) {
			oldest = &created
		}
	}
	return oldest, nil
}

func (m *memoryTaskRepository) get(id uuid.UUID) *ReconciliationTask {
	m.mu.Lock()
	defer m.mu.Unlock()
	if task, ok := m.tasks[id]; ok {
		clone := *task
		return &clone
	}
	return nil
}

// flakyRegistry fails the first failures calls, then succeeds.
type flakyRegistry struct {
	mu       sync.Mutex
	failures int
	calls    int
	applied  map[uuid.UUID]string
}

func newFlakyRegistry(failures int) *flakyRegistry {
	return &flakyRegistry{failures: failures, applied: make(map[uuid.UUID]string)}
}

func (f *flakyRegistry) SetSeatStatus(ctx context.Context, seatID uuid.UUID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls <= f.failures {
		return errors.New("connection refused")
	}
	f.applied[seatID] = status
	return nil
}

func (f *flakyRegistry) statusOf(seatID uuid.UUID) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.applied[seatID]
}

func testConfig() *config.CoordinatorConfig {
	return &config.CoordinatorConfig{
		MaxAttempts:    3,
		RetryBackoff:   time.Millisecond,
		SweepInterval:  10 * time.Millisecond,
		SweepBatchSize: 10,
	}
}

func enqueueTask(t *testing.T, c *Coordinator, seatID uuid.UUID, status string) *ReconciliationTask {
	t.Helper()
	task, err := c.EnqueueTx(nil, uuid.New(), seatID, status)
	if err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}
	return task
}

func TestDispatchAppliesAndClearsTask(t *testing.T) {
	repo := newMemoryTaskRepository()
	registry := newFlakyRegistry(0)
	c := New(repo, registry, testConfig(), logger.New())

	seatID := uuid.New()
	task := enqueueTask(t, c, seatID, SeatStatusClaimed)

	c.Dispatch(context.Background(), task)

	if got := registry.statusOf(seatID); got != SeatStatusClaimed {
		t.Errorf("registry not updated, got %q", got)
	}
	if repo.get(task.ID) != nil {
		t.Error("applied task should be deleted from the outbox")
	}
}

func TestDispatchRetriesTransientFailure(t *testing.T) {
	repo := newMemoryTaskRepository()
	// Fails twice, succeeds on the third attempt, inside MaxAttempts.
	registry := newFlakyRegistry(2)
	c := New(repo, registry, testConfig(), logger.New())

	seatID := uuid.New()
	task := enqueueTask(t, c, seatID, SeatStatusAvailable)

	c.Dispatch(context.Background(), task)

	if got := registry.statusOf(seatID); got != SeatStatusAvailable {
		t.Errorf("registry not updated after retries, got %q", got)
	}
	if repo.get(task.ID) != nil {
		t.Error("task should be cleared after eventual success")
	}
}

func TestDispatchExhaustionLeavesTaskForSweep(t *testing.T) {
	repo := newMemoryTaskRepository()
	registry := newFlakyRegistry(100)
	c := New(repo, registry, testConfig(), logger.New())

	seatID := uuid.New()
	task := enqueueTask(t, c, seatID, SeatStatusClaimed)

	c.Dispatch(context.Background(), task)

	remaining := repo.get(task.ID)
	if remaining == nil {
		t.Fatal("exhausted task must stay in the outbox")
	}
	if remaining.Attempts != 1 {
		t.Errorf("expected 1 recorded attempt round, got %d", remaining.Attempts)
	}
	if remaining.LastError == "" {
		t.Error("last error should be recorded")
	}
	if got := registry.statusOf(seatID); got != "" {
		t.Errorf("registry should be untouched, got %q", got)
	}
}

func TestSweepConvergesAfterRecovery(t *testing.T) {
	repo := newMemoryTaskRepository()
	// Registry down for the dispatch (3 attempts) and one full sweep pass
	// (2 tasks), then back up.
	registry := newFlakyRegistry(5)
	c := New(repo, registry, testConfig(), logger.New())

	seatA, seatB := uuid.New(), uuid.New()
	taskA := enqueueTask(t, c, seatA, SeatStatusClaimed)
	enqueueTask(t, c, seatB, SeatStatusAvailable)

	c.Dispatch(context.Background(), taskA)
	if repo.get(taskA.ID) == nil {
		t.Fatal("task A should remain pending while registry is down")
	}

	// First sweep still hits the outage for both tasks.
	c.Sweep(context.Background())
	depth, _ := repo.Depth(context.Background())
	if depth != 2 {
		t.Fatalf("expected both tasks pending after failed sweep, depth=%d", depth)
	}

	// Registry recovered: the next sweep drains everything.
	c.Sweep(context.Background())
	depth, _ = repo.Depth(context.Background())
	if depth != 0 {
		t.Errorf("expected empty outbox after recovery, depth=%d", depth)
	}
	if got := registry.statusOf(seatA); got != SeatStatusClaimed {
		t.Errorf("seat A not converged, got %q", got)
	}
	if got := registry.statusOf(seatB); got != SeatStatusAvailable {
		t.Errorf("seat B not converged, got %q", got)
	}
}

func TestNewerClaimSupersedesFailedRelease(t *testing.T) {
	repo := newMemoryTaskRepository()
	// Registry down for the release dispatch only (3 attempts), back up for
	// the claim.
	registry := newFlakyRegistry(3)
	c := New(repo, registry, testConfig(), logger.New())

	seatID := uuid.New()

	// Booking A is cancelled while the registry is down: the release stays
	// in the outbox.
	release := enqueueTask(t, c, seatID, SeatStatusAvailable)
	c.Dispatch(context.Background(), release)
	if repo.get(release.ID) == nil {
		t.Fatal("release should remain pending while registry is down")
	}

	// Booking B claims the same seat after the registry recovered. The
	// enqueue supersedes the stale release.
	claim := enqueueTask(t, c, seatID, SeatStatusClaimed)
	if repo.get(release.ID) != nil {
		t.Fatal("stale release should be superseded by the newer claim")
	}
	c.Dispatch(context.Background(), claim)
	if got := registry.statusOf(seatID); got != SeatStatusClaimed {
		t.Fatalf("claim not applied, got %q", got)
	}

	// The sweep must not resurrect the old release.
	c.Sweep(context.Background())
	if got := registry.statusOf(seatID); got != SeatStatusClaimed {
		t.Errorf("stale release overwrote the newer claim: seat is %q while the newer booking is active", got)
	}
	depth, _ := repo.Depth(context.Background())
	if depth != 0 {
		t.Errorf("expected empty outbox, depth=%d", depth)
	}
}

func TestSweepSkipsSupersededTask(t *testing.T) {
	repo := newMemoryTaskRepository()
	registry := newFlakyRegistry(0)
	c := New(repo, registry, testConfig(), logger.New())

	seatID := uuid.New()
	stale := enqueueTask(t, c, seatID, SeatStatusAvailable)

	// Simulate a sweep racing a supersession: the sweep listed the task,
	// then a newer enqueue replaced it before applyOnce ran.
	snapshot := *stale
	enqueueTask(t, c, seatID, SeatStatusClaimed)

	if !c.applyOnce(context.Background(), &snapshot) {
		t.Error("superseded task should be treated as done, not failed")
	}
	if got := registry.statusOf(seatID); got != "" {
		t.Errorf("superseded status must never reach the registry, got %q", got)
	}
}

func TestGetStats(t *testing.T) {
	repo := newMemoryTaskRepository()
	c := New(repo, newFlakyRegistry(100), testConfig(), logger.New())

	stats, err := c.GetStats(context.Background())
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.QueueDepth != 0 || stats.OldestCreatedAt != nil {
		t.Errorf("expected empty stats, got %+v", stats)
	}

	enqueueTask(t, c, uuid.New(), SeatStatusClaimed)

	stats, err = c.GetStats(context.Background())
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.QueueDepth != 1 || stats.OldestCreatedAt == nil {
		t.Errorf("expected one pending task in stats, got %+v", stats)
	}
}
