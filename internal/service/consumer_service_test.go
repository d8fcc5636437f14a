package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"ai-presentation-coach-be/internal/dto"
	"ai-presentation-coach-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakePusher struct {
	sessionIDs []uuid.UUID
	payloads   []interface{}
}

func (f *fakePusher) Push(sessionID uuid.UUID, payload interface{}) {
	f.sessionIDs = append(f.sessionIDs, sessionID)
	f.payloads = append(f.payloads, payload)
}

type recordingLogger struct {
	infos []map[string]interface{}
}

func (r *recordingLogger) Debug(string, string, map[string]interface{}) {}
func (r *recordingLogger) Info(_, _ string, details map[string]interface{}) {
	r.infos = append(r.infos, details)
}
func (r *recordingLogger) Warn(string, string, map[string]interface{})  {}
func (r *recordingLogger) Error(string, string, map[string]interface{}) {}
func (r *recordingLogger) Sync() error                                  { return nil }

func newChunkMessage(t *testing.T, payload dto.ChunkAnalyzedMessage) *message.Message {
	t.Helper()
	raw, err := json.Marshal(payload)
	assert.NoError(t, err)
	return message.NewMessage(watermill.NewUUID(), raw)
}

func TestProcessMessagePushesProgressFrame(t *testing.T) {
	pusher := &fakePusher{}
	cs := &consumerService{
		pusher:    pusher,
		logger:    noopLogger{},
		lastScore: make(map[uuid.UUID]float64),
	}

	id := uuid.New()
	cs.processMessage(newChunkMessage(t, dto.ChunkAnalyzedMessage{SessionId: id, OverallScore: 0.7, Mode: "professional"}))
	cs.processMessage(newChunkMessage(t, dto.ChunkAnalyzedMessage{SessionId: id, OverallScore: 0.9, Mode: "professional"}))

	assert.Equal(t, []uuid.UUID{id, id}, pusher.sessionIDs)

	frame, ok := pusher.payloads[1].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, "progress", frame["type"])

	details, ok := frame["data"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, 0.9, details["overall_score"])
	assert.InDelta(t, 0.2, details["delta"].(float64), 1e-9)
}

func TestProcessMessageWithoutPusher(t *testing.T) {
	cs := &consumerService{
		logger:    noopLogger{},
		lastScore: make(map[uuid.UUID]float64),
	}

	// No live-stream pusher wired; logging alone must still work.
	cs.processMessage(newChunkMessage(t, dto.ChunkAnalyzedMessage{SessionId: uuid.New(), OverallScore: 0.5}))
}

func TestProcessMessageInvalidPayloadSkipsPush(t *testing.T) {
	pusher := &fakePusher{}
	cs := &consumerService{
		pusher:    pusher,
		logger:    noopLogger{},
		lastScore: make(map[uuid.UUID]float64),
	}

	cs.processMessage(message.NewMessage(watermill.NewUUID(), []byte("not json")))

	assert.Empty(t, pusher.payloads)
}

func TestLifecycleEventHandlerLogsEvent(t *testing.T) {
	rec := &recordingLogger{}
	handler := NewLifecycleEventHandler(rec)

	err := handler(context.Background(), events.BaseEvent{
		Type:       "coach.events.SESSION_CREATED",
		Data:       map[string]interface{}{"session_id": "abc"},
		OccurredAt: time.Now(),
	})

	assert.NoError(t, err)
	assert.Len(t, rec.infos, 1)
	assert.Equal(t, "coach.events.SESSION_CREATED", rec.infos[0]["subject"])
}
