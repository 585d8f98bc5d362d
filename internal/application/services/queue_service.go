package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/queueaway/queueaway/internal/domain/entities"
	"github.com/queueaway/queueaway/internal/domain/providers"
	"github.com/queueaway/queueaway/internal/domain/repositories"
	"github.com/queueaway/queueaway/internal/infrastructure/observability"
	apperrors "github.com/queueaway/queueaway/pkg/errors"
)

// Defaults applied when a caller omits queue metadata
const (
	defaultBusinessName = "Sample Business"
	defaultServiceType  = "General Service"
	defaultLocation     = "Mumbai"
	defaultServiceTime  = 5
	defaultCapacity     = 50
)

// CreateQueueParams carries the owner-side setup form
type CreateQueueParams struct {
	BusinessName string `json:"business_name"`
	ServiceType  string `json:"service_type"`
	Location     string `json:"location"`
	ServiceTime  int    `json:"service_time"`
	Capacity     int    `json:"capacity"`
}

// JoinQueueParams carries the optional participant details
type JoinQueueParams struct {
	UserName    string `json:"user_name"`
	PhoneNumber string `json:"phone_number"`
}

// QueueService implements the queue lifecycle: creating an owned queue,
// joining a remote one, leaving, and listing. Backend round trips are
// simulated with fixed delays; the delays are injected so tests can run
// them at zero.
type QueueService struct {
	repo        repositories.QueueRepository
	gateway     *PersistenceGateway
	scheduler   *TrackingScheduler
	simulator   *PositionSimulator
	ids         *IDGenerator
	bus         providers.EventBus
	createDelay time.Duration
	joinDelay   time.Duration
}

// NewQueueService creates a new queue service. The event bus may be nil.
func NewQueueService(
	repo repositories.QueueRepository,
	gateway *PersistenceGateway,
	scheduler *TrackingScheduler,
	simulator *PositionSimulator,
	ids *IDGenerator,
	bus providers.EventBus,
	createDelay time.Duration,
	joinDelay time.Duration,
) *QueueService {
	return &QueueService{
		repo:        repo,
		gateway:     gateway,
		scheduler:   scheduler,
		simulator:   simulator,
		ids:         ids,
		bus:         bus,
		createDelay: createDelay,
		joinDelay:   joinDelay,
	}
}

// CreateQueue provisions a new owned queue. The free tier allows
// exactly one; a second attempt is rejected with a quota error before
// any backend work happens.
func (s *QueueService) CreateQueue(ctx context.Context, params CreateQueueParams) (*entities.QueueRecord, error) {
	if s.gateway.FreeQueueUsed(ctx) {
		return nil, apperrors.NewQuotaExceededError("free queue allowance already used")
	}

	if err := simulateLatency(ctx, s.createDelay); err != nil {
		return nil, err
	}

	now := time.Now()
	record := &entities.QueueRecord{
		QueueID:      s.ids.QueueID(),
		Role:         entities.QueueRoleOwned,
		BusinessName: valueOrDefault(params.BusinessName, defaultBusinessName),
		ServiceType:  valueOrDefault(params.ServiceType, defaultServiceType),
		Location:     valueOrDefault(params.Location, defaultLocation),
		ServiceTime:  intOrDefault(params.ServiceTime, defaultServiceTime),
		Capacity:     intOrDefault(params.Capacity, defaultCapacity),
		CurrentToken: 1,
		TotalServed:  0,
		CreatedAt:    &now,
	}

	if err := s.repo.Put(ctx, record); err != nil {
		return nil, apperrors.NewInternalError("failed to store queue record", err)
	}
	s.gateway.MarkFreeQueueUsed(ctx)
	s.gateway.SaveAll(ctx)
	s.publish(ctx, record.QueueID, entities.QueueEventTypeRecordCreated, map[string]interface{}{
		"role": string(record.Role),
	})

	observability.LoggerFromContext(ctx).Info().
		Str("queue_id", record.QueueID).
		Str("business_name", record.BusinessName).
		Msg("queue created")

	return record, nil
}

// JoinQueue places the user in a remote queue identified by queueID.
// The identifier is accepted as-is; there is no registry of real queues
// to validate against, so business metadata comes from defaults. Joining
// a queue the user already holds a record for is a conflict.
func (s *QueueService) JoinQueue(ctx context.Context, queueID string, params JoinQueueParams) (*entities.QueueRecord, error) {
	queueID = strings.ToUpper(strings.TrimSpace(queueID))
	if queueID == "" {
		return nil, apperrors.NewValidationError("queue id is required")
	}

	if _, err := s.repo.Get(ctx, queueID); err == nil {
		return nil, apperrors.NewConflictError("already in this queue")
	}

	if err := simulateLatency(ctx, s.joinDelay); err != nil {
		return nil, err
	}

	// A concurrent join can land a record while this one was waiting.
	if _, err := s.repo.Get(ctx, queueID); err == nil {
		return nil, apperrors.NewConflictError("already in this queue")
	}

	position := s.simulator.InitialPosition()
	now := time.Now()
	record := &entities.QueueRecord{
		QueueID:      queueID,
		Role:         entities.QueueRoleJoined,
		BusinessName: defaultBusinessName,
		ServiceType:  defaultServiceType,
		Location:     defaultLocation,
		Token:        s.ids.Token(),
		UserName:     params.UserName,
		PhoneNumber:  params.PhoneNumber,
		Position:     position,
		WaitTime:     s.simulator.InitialWaitTime(position),
		JoinedAt:     &now,
	}

	if err := s.repo.Put(ctx, record); err != nil {
		return nil, apperrors.NewInternalError("failed to store queue record", err)
	}
	s.gateway.SaveAll(ctx)
	s.publish(ctx, record.QueueID, entities.QueueEventTypeRecordCreated, map[string]interface{}{
		"role":     string(record.Role),
		"position": record.Position,
	})
	s.scheduler.Track(record.QueueID)

	observability.LoggerFromContext(ctx).Info().
		Str("queue_id", record.QueueID).
		Str("token", record.Token).
		Int("position", record.Position).
		Msg("joined queue")

	return record, nil
}

// LeaveQueue removes the user's record for a queue and stops its tick
// loop. Leaving a queue with no record is a no-op.
func (s *QueueService) LeaveQueue(ctx context.Context, queueID string) error {
	queueID = strings.ToUpper(strings.TrimSpace(queueID))
	if queueID == "" {
		return apperrors.NewValidationError("queue id is required")
	}

	s.scheduler.Untrack(queueID)

	if _, err := s.repo.Get(ctx, queueID); err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return nil
		}
		return err
	}

	if err := s.repo.Delete(ctx, queueID); err != nil {
		return apperrors.NewInternalError("failed to remove queue record", err)
	}
	s.gateway.SaveAll(ctx)
	s.publish(ctx, queueID, entities.QueueEventTypeRecordRemoved, nil)

	observability.LoggerFromContext(ctx).Info().
		Str("queue_id", queueID).
		Msg("left queue")

	return nil
}

// ListQueues returns every record the user holds, owned and joined
func (s *QueueService) ListQueues(ctx context.Context) ([]*entities.QueueRecord, error) {
	return s.repo.List(ctx)
}

// GetQueue returns one record by id
func (s *QueueService) GetQueue(ctx context.Context, queueID string) (*entities.QueueRecord, error) {
	return s.repo.Get(ctx, strings.ToUpper(strings.TrimSpace(queueID)))
}

// ShareText renders the share message for a queue record
func (s *QueueService) ShareText(ctx context.Context, queueID string) (string, error) {
	record, err := s.GetQueue(ctx, queueID)
	if err != nil {
		return "", err
	}
	if record.Role == entities.QueueRoleOwned {
		return fmt.Sprintf("Join my queue at %s! Queue ID: %s - QueueAway", record.BusinessName, record.QueueID), nil
	}
	return fmt.Sprintf("I'm #%d in line at %s! Estimated wait: %d minutes - QueueAway", record.Position, record.BusinessName, record.WaitTime), nil
}

func (s *QueueService) publish(ctx context.Context, queueID string, eventType entities.QueueEventType, changed map[string]interface{}) {
	if s.bus == nil {
		return
	}
	event := entities.NewQueueEvent(queueID, eventType, changed)
	if err := s.bus.Publish(ctx, providers.EventChannelQueueUpdates, event); err != nil {
		observability.LoggerFromContext(ctx).Warn().
			Err(err).
			Str("queue_id", queueID).
			Msg("failed to publish queue event")
	}
}

// simulateLatency stands in for the backend round trip the real product
// would make. It respects context cancellation so a dropped request does
// not leave a sleeper behind.
func simulateLatency(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func intOrDefault(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}
