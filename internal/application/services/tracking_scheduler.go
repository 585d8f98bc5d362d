package services

import (
	"context"
	"sync"
	"time"

	"github.com/queueaway/queueaway/internal/domain/entities"
	"github.com/queueaway/queueaway/internal/domain/providers"
	"github.com/queueaway/queueaway/internal/domain/repositories"
	"github.com/queueaway/queueaway/internal/infrastructure/observability"
)

const defaultTickInterval = 8 * time.Second

// TrackingScheduler owns one periodic simulation loop per joined queue.
// Each loop re-reads its record every tick, runs a simulator step, and
// shuts itself down when the record disappears or reaches the front of
// the line. Track and Untrack are idempotent.
type TrackingScheduler struct {
	repo       repositories.QueueRepository
	simulator  *PositionSimulator
	gateway    *PersistenceGateway
	dispatcher *NotificationDispatcher
	bus        providers.EventBus
	metrics    *observability.Metrics
	interval   time.Duration

	mu      sync.Mutex
	cancels map[string]*trackingHandle
	stopped bool
	wg      sync.WaitGroup
}

// trackingHandle identifies one tick loop's registration. Loops compare
// handles by identity so a stale loop never deregisters a successor that
// was started under the same queue id.
type trackingHandle struct {
	cancel context.CancelFunc
}

// NewTrackingScheduler creates a new tracking scheduler. The event bus
// and metrics may be nil.
func NewTrackingScheduler(
	repo repositories.QueueRepository,
	simulator *PositionSimulator,
	gateway *PersistenceGateway,
	dispatcher *NotificationDispatcher,
	bus providers.EventBus,
	metrics *observability.Metrics,
	interval time.Duration,
) *TrackingScheduler {
	if interval <= 0 {
		interval = defaultTickInterval
	}
	return &TrackingScheduler{
		repo:       repo,
		simulator:  simulator,
		gateway:    gateway,
		dispatcher: dispatcher,
		bus:        bus,
		metrics:    metrics,
		interval:   interval,
		cancels:    make(map[string]*trackingHandle),
	}
}

// Track starts the tick loop for a queue. Tracking an already-tracked
// queue is a no-op.
func (s *TrackingScheduler) Track(queueID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	if _, exists := s.cancels[queueID]; exists {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	handle := &trackingHandle{cancel: cancel}
	s.cancels[queueID] = handle
	s.wg.Add(1)
	go s.run(ctx, queueID, handle)
}

// Untrack stops the tick loop for a queue if one is running
func (s *TrackingScheduler) Untrack(queueID string) {
	s.mu.Lock()
	handle, ok := s.cancels[queueID]
	if ok {
		delete(s.cancels, queueID)
	}
	s.mu.Unlock()
	if ok {
		handle.cancel()
	}
}

// IsTracking reports whether a tick loop is registered for the queue
func (s *TrackingScheduler) IsTracking(queueID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.cancels[queueID]
	return ok
}

// TrackAll starts loops for every active joined record in the
// repository. Used at startup to resume tracking after a restart.
func (s *TrackingScheduler) TrackAll(ctx context.Context) error {
	records, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	for _, record := range records {
		if record.IsTracked() {
			s.Track(record.QueueID)
		}
	}
	return nil
}

// Stop cancels every loop and waits for them to drain
func (s *TrackingScheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	cancels := s.cancels
	s.cancels = make(map[string]*trackingHandle)
	s.mu.Unlock()
	for _, handle := range cancels {
		handle.cancel()
	}
	s.wg.Wait()
}

func (s *TrackingScheduler) run(ctx context.Context, queueID string, handle *trackingHandle) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !s.tick(ctx, queueID) {
				s.deregister(queueID, handle)
				return
			}
		}
	}
}

// deregister removes the loop's own registration. A leave-and-rejoin can
// register a successor loop under the same queue id while a stale tick
// is in flight; the successor's entry must be left alone.
func (s *TrackingScheduler) deregister(queueID string, handle *trackingHandle) {
	s.mu.Lock()
	if s.cancels[queueID] == handle {
		delete(s.cancels, queueID)
	}
	s.mu.Unlock()
	handle.cancel()
}

// tick runs one step for the queue and reports whether tracking should
// continue.
func (s *TrackingScheduler) tick(ctx context.Context, queueID string) bool {
	logger := observability.LoggerFromContext(ctx)

	record, err := s.repo.Get(ctx, queueID)
	if err != nil {
		// Record left the repository under us; the loop is stale.
		return false
	}
	if !record.IsTracked() {
		return false
	}

	previousPosition := record.Position
	advanced := s.simulator.Step(record)
	observability.RecordTickMetric(ctx, s.metrics, queueID, advanced)
	if !advanced {
		return true
	}

	if err := s.repo.Put(ctx, record); err != nil {
		logger.Warn().Err(err).Str("queue_id", queueID).Msg("failed to store advanced position")
		return true
	}
	s.gateway.SaveAll(ctx)

	s.publishUpdate(ctx, record)
	s.dispatcher.Dispatch(ctx, previousPosition, record)

	logger.Debug().
		Str("queue_id", queueID).
		Int("position", record.Position).
		Int("wait_time", record.WaitTime).
		Msg("queue position advanced")

	return record.Position > 0
}

func (s *TrackingScheduler) publishUpdate(ctx context.Context, record *entities.QueueRecord) {
	if s.bus == nil {
		return
	}
	event := entities.NewQueueEvent(record.QueueID, entities.QueueEventTypeRecordUpdated, map[string]interface{}{
		"position":  record.Position,
		"wait_time": record.WaitTime,
	})
	logger := observability.LoggerFromContext(ctx)
	if err := s.bus.Publish(ctx, providers.EventChannelQueueUpdates, event); err != nil {
		logger.Warn().Err(err).Str("queue_id", record.QueueID).Msg("failed to publish queue update")
	}
	if err := s.bus.Publish(ctx, providers.GetQueueChannel(record.QueueID), event); err != nil {
		logger.Warn().Err(err).Str("queue_id", record.QueueID).Msg("failed to publish queue-scoped update")
	}
}
