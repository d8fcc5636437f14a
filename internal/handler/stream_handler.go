package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"ai-presentation-coach-be/internal/pkg/logger"
	internalWS "ai-presentation-coach-be/internal/websocket"
)

// StreamHandler upgrades audio-stream requests and hands them to the gateway.
type StreamHandler struct {
	gateway *internalWS.Gateway
	logger  logger.ILogger
}

func NewStreamHandler(gateway *internalWS.Gateway, log logger.ILogger) *StreamHandler {
	return &StreamHandler{
		gateway: gateway,
		logger:  log,
	}
}

// ServeWs handles websocket requests from the peer. The session must exist
// before the upgrade; unknown ids are rejected with a plain HTTP error.
func (h *StreamHandler) ServeWs(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("session_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session ID format"})
	}

	if !h.gateway.SessionExists(sessionID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("StreamHandler", "Starting audio stream", map[string]interface{}{"session_id": sessionID})
			internalWS.ServeWs(h.gateway, conn, sessionID)
			h.logger.Info("StreamHandler", "Audio stream ended", map[string]interface{}{"session_id": sessionID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

func (h *StreamHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/ws/:session_id", h.ServeWs)
}
