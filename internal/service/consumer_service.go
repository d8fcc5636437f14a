package service

import (
	"context"
	"encoding/json"
	"sync"

	"ai-presentation-coach-be/internal/dto"
	"ai-presentation-coach-be/internal/pkg/logger"
	"ai-presentation-coach-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// StreamPusher delivers an outbound frame to a session's live connection.
// Satisfied by the websocket gateway.
type StreamPusher interface {
	Push(sessionID uuid.UUID, payload interface{})
}

// consumerService tails the chunk-analyzed topic, tracks per-session score
// movement so operators can watch rehearsal trends from the logs alone, and
// mirrors each event to the session's live stream as a progress frame.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	pusher    StreamPusher
	logger    logger.ILogger

	mu        sync.Mutex
	lastScore map[uuid.UUID]float64
}

func NewConsumerService(pubSub *gochannel.GoChannel, topicName string, pusher StreamPusher, log logger.ILogger) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		pusher:    pusher,
		logger:    log,
		lastScore: make(map[uuid.UUID]float64),
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload dto.ChunkAnalyzedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("Consumer", "Failed to unmarshal chunk event", map[string]interface{}{
			"error": err.Error(),
		})
		// Ack invalid messages to prevent infinite retry.
		msg.Ack()
		return
	}

	cs.mu.Lock()
	prev, seen := cs.lastScore[payload.SessionId]
	cs.lastScore[payload.SessionId] = payload.OverallScore
	cs.mu.Unlock()

	details := map[string]interface{}{
		"session_id":    payload.SessionId.String(),
		"overall_score": payload.OverallScore,
		"mode":          payload.Mode,
	}
	if seen {
		details["delta"] = payload.OverallScore - prev
	}
	cs.logger.Info("Consumer", "Chunk analyzed", details)

	if cs.pusher != nil {
		cs.pusher.Push(payload.SessionId, map[string]interface{}{
			"type": "progress",
			"data": details,
		})
	}

	msg.Ack()
}

// NewLifecycleEventHandler returns the handler bound to the NATS lifecycle
// subscription. Session create/delete events from every instance land in the
// main log for auditing.
func NewLifecycleEventHandler(log logger.ILogger) func(ctx context.Context, event events.Event) error {
	return func(_ context.Context, event events.Event) error {
		log.Info("Lifecycle", "Session event received", map[string]interface{}{
			"subject": event.EventType(),
			"data":    event.Payload(),
		})
		return nil
	}
}
