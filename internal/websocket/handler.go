package websocket

import (
	"ai-presentation-coach-be/pkg/audio"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs handles an upgraded audio-stream connection for one session.
func ServeWs(gateway *Gateway, c *websocket.Conn, sessionID uuid.UUID) {
	client := &Client{
		Gateway:     gateway,
		Conn:        c,
		SessionID:   sessionID,
		Send:        make(chan []byte, 256),
		accumulator: audio.NewAccumulator(gateway.chunkThreshold),
		state:       stateOpen,
	}
	client.Gateway.register <- client

	go client.writePump()
	client.readPump()
}
