package websocket

import (
	"sync"

	"ai-presentation-coach-be/internal/pkg/logger"
	"ai-presentation-coach-be/internal/service"
	"ai-presentation-coach-be/internal/store"

	"github.com/google/uuid"
)

// Gateway owns the live audio streams. One registered client per session; a
// second connection for the same session bumps the first.
type Gateway struct {
	clients map[uuid.UUID]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	sessionStore   *store.SessionStore
	analyzer       service.IAnalyzerService
	chunkThreshold int

	// Dedicated logger so stream traffic does not drown the main log.
	logger logger.ILogger
}

func NewGateway(sessionStore *store.SessionStore, analyzer service.IAnalyzerService, chunkThreshold int, log logger.ILogger) *Gateway {
	return &Gateway{
		clients:        make(map[uuid.UUID]*Client),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		sessionStore:   sessionStore,
		analyzer:       analyzer,
		chunkThreshold: chunkThreshold,
		logger:         log,
	}
}

// SessionExists reports whether a session can accept a stream.
func (g *Gateway) SessionExists(sessionID uuid.UUID) bool {
	return g.sessionStore.Exists(sessionID)
}

func (g *Gateway) Run() {
	for {
		select {
		case client := <-g.register:
			g.mu.Lock()
			prev, bumped := g.clients[client.SessionID]
			g.clients[client.SessionID] = client
			g.mu.Unlock()
			if bumped {
				// Kick the stale connection; its read pump tears down
				// through its own unregister path, which closes Send only
				// after the final drain has finished.
				if prev.Conn != nil {
					prev.Conn.Close()
				}
				g.logger.Warn("Gateway", "Stream bumped by new connection", map[string]interface{}{"session_id": client.SessionID})
			}
			g.logger.Info("Gateway", "Stream opened", map[string]interface{}{"session_id": client.SessionID})

		case client := <-g.unregister:
			g.mu.Lock()
			if current, ok := g.clients[client.SessionID]; ok && current == client {
				delete(g.clients, client.SessionID)
			}
			g.mu.Unlock()
			g.logger.Info("Gateway", "Stream closed", map[string]interface{}{"session_id": client.SessionID})
		}
	}
}

// Push queues an outbound frame for the session's live connection, if any.
// Frames for sessions with no registered stream are dropped.
func (g *Gateway) Push(sessionID uuid.UUID, payload interface{}) {
	g.mu.RLock()
	client, ok := g.clients[sessionID]
	g.mu.RUnlock()
	if !ok {
		return
	}
	client.send(payload)
}
