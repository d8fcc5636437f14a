package constant

// In-process event bus topics.
const (
	TopicChunkAnalyzed = "presentation.chunk.analyzed"
)

// Cross-service NATS event types.
const (
	EventSessionCreated = "SESSION_CREATED"
	EventSessionDeleted = "SESSION_DELETED"
)
