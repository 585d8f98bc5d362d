package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/queueaway/queueaway/internal/domain/entities"
	"github.com/queueaway/queueaway/internal/domain/providers"
	apperrors "github.com/queueaway/queueaway/pkg/errors"
)

// Canned response pools, keyed by topic. The assistant is rule based:
// it never calls an external model, it matches keywords and picks a
// pooled answer at random.
var assistantResponses = map[string][]string{
	"greeting": {
		"Hello! I'm your Queue Assistant. How can I help you optimize your waiting experience today?",
		"Hi there! Ready to spend less time in lines? What can I assist you with?",
		"Welcome! I'm here to make your queue experience smarter. What would you like to know?",
	},
	"find": {
		"I can help you find nearby queues! For now, you can join any queue using a Queue ID shared by the business.",
		"To find nearby queues, check with local businesses that display QueueAway codes. Popular locations include hospitals, banks, restaurants, and government offices.",
		"Many businesses in Mumbai, Delhi, and Bangalore are already using QueueAway. Ask staff at the reception desk for the Queue ID.",
	},
	"wait_time": {
		"Wait times depend on current queue length, service time per person, and time of day.",
		"Peak hours (10-12 AM, 2-4 PM) usually have longer waits. Try visiting during off-peak hours for shorter waits!",
		"Pro tip: enable notifications so you get an alert when you're two people away from the counter.",
	},
	"optimize": {
		"Top optimization tips: join queues during off-peak hours, enable notifications, and use virtual queuing to avoid physical waiting.",
		"Smart queue strategies: check multiple locations for shorter waits, join queues remotely when possible, and set up notifications for position updates.",
		"Advanced tips: monitor queue patterns through the week, join multiple queues and cancel the slower ones, and share queues with family for coordination.",
	},
	"help": {
		"I can help with finding nearby queues, understanding wait times, queue optimization strategies, and best practices for efficient waiting.",
		"Common issues: can't join a queue? Check the Queue ID format. Position not updating? Check your connection. Want to leave early? You can safely exit anytime.",
		"Things I can explain: real-time position tracking, wait time estimates, the notification system, multi-queue management, and business queue creation.",
	},
	"default": {
		"I'm still learning! Could you rephrase that, or try asking about finding queues, wait times, or optimization tips?",
		"That's interesting! While I focus on queue management, feel free to ask me about wait times, nearby queues, or optimization strategies.",
		"I specialize in queue-related assistance. Try asking me about finding queues, predicting wait times, or getting optimization tips!",
	},
}

// AssistantService answers chat messages about the user's queues. It
// reads queue state through the queue service and never mutates it.
type AssistantService struct {
	queues *QueueService
	rng    providers.RandomSource
	now    func() time.Time
}

// NewAssistantService creates a new assistant service
func NewAssistantService(queues *QueueService, rng providers.RandomSource) *AssistantService {
	return &AssistantService{
		queues: queues,
		rng:    rng,
		now:    time.Now,
	}
}

// Reply produces the assistant's answer to a chat message. Contextual
// answers (current status, next turn prediction) take precedence when
// the user has active queues; otherwise keyword matching selects a
// canned response pool.
func (s *AssistantService) Reply(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", apperrors.NewValidationError("message is required")
	}
	msg := strings.ToLower(message)

	active, err := s.activeQueues(ctx)
	if err != nil {
		return "", err
	}

	if len(active) > 0 {
		if containsAny(msg, "status", "position", "how long") {
			return s.queueStatus(active), nil
		}
		if containsAny(msg, "next", "when", "turn") {
			return s.nextTurnPrediction(active), nil
		}
	}

	switch {
	case containsAny(msg, "hello", "hi", "hey"):
		return s.pick("greeting"), nil
	case containsAny(msg, "find", "nearby", "location"):
		return s.pick("find"), nil
	case containsAny(msg, "wait", "time", "long"):
		return s.pick("wait_time"), nil
	case containsAny(msg, "optimize", "faster", "efficient", "tips"):
		return s.pick("optimize"), nil
	case containsAny(msg, "help", "support", "how"):
		return s.pick("help"), nil
	default:
		return s.pick("default"), nil
	}
}

// activeQueues returns the joined records still ahead of the counter
func (s *AssistantService) activeQueues(ctx context.Context) ([]*entities.QueueRecord, error) {
	records, err := s.queues.ListQueues(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]*entities.QueueRecord, 0, len(records))
	for _, record := range records {
		if record.IsTracked() {
			active = append(active, record)
		}
	}
	return active, nil
}

func (s *AssistantService) queueStatus(active []*entities.QueueRecord) string {
	if len(active) == 1 {
		record := active[0]
		closing := "You can relax for a bit more."
		if record.Position <= 3 {
			closing = "You're almost up! Get ready!"
		}
		return fmt.Sprintf("%s - Token %s, position %d, est. wait %d minutes. %s",
			record.BusinessName, record.Token, record.Position, record.WaitTime, closing)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You're in %d queues:\n", len(active))
	for i, record := range active {
		fmt.Fprintf(&b, "%d. %s - position %d, wait %d min\n", i+1, record.BusinessName, record.Position, record.WaitTime)
	}
	b.WriteString("I recommend focusing on the queue with the shortest wait time!")
	return b.String()
}

func (s *AssistantService) nextTurnPrediction(active []*entities.QueueRecord) string {
	next := active[0]
	for _, record := range active[1:] {
		if record.Position < next.Position {
			next = record
		}
	}

	eta := s.now().Add(time.Duration(next.WaitTime) * time.Minute)
	closing := "You have time to relax or run a quick errand."
	if next.WaitTime <= 5 {
		closing = "Head over soon!"
	}
	return fmt.Sprintf("Next turn prediction: %s, token %s, estimated time %s. You'll get a notification when you're 2 people away! %s",
		next.BusinessName, next.Token, eta.Format("15:04"), closing)
}

func (s *AssistantService) pick(category string) string {
	pool, ok := assistantResponses[category]
	if !ok {
		pool = assistantResponses["default"]
	}
	return pool[s.rng.Intn(len(pool))]
}

func containsAny(msg string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(msg, keyword) {
			return true
		}
	}
	return false
}
