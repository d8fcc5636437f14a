package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"ai-presentation-coach-be/internal/store"
	"ai-presentation-coach-be/pkg/audio"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1 << 20 // raw PCM frames, not chat lines

	endOfStreamSignal = "end_of_stream"
)

// Connection lifecycle states.
type streamState int32

const (
	stateOpen streamState = iota
	stateAccumulating
	stateAnalyzing
	stateClosed
)

// Client is one live audio stream: a websocket connection bound to a session,
// an accumulator for inbound PCM and the set of in-flight chunk analyses.
type Client struct {
	Gateway *Gateway

	Conn *websocket.Conn

	SessionID uuid.UUID

	// Buffered channel of outbound messages. Closed exactly once, by
	// closeSend, after the final drain has finished.
	Send chan []byte

	sendMu     sync.Mutex
	sendClosed bool

	accumulator *audio.Accumulator

	stateMu sync.Mutex
	state   streamState

	// Tracks chunk analyses still running so the final drain can wait for them.
	inflight sync.WaitGroup
}

func (c *Client) setState(s streamState) {
	c.stateMu.Lock()
	c.state = s
	c.stateMu.Unlock()
}

// readPump consumes frames from the websocket connection. Binary frames are
// raw PCM appended to the accumulator; the text frame "end_of_stream" (and a
// plain disconnect) forces a final drain of whatever is buffered.
func (c *Client) readPump() {
	defer func() {
		c.finishStream()
		c.Gateway.unregister <- c
		c.closeSend()
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	c.setState(stateAccumulating)
	for {
		msgType, payload, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.Gateway.logger.Warn("Gateway", "Read error", map[string]interface{}{
					"session_id": c.SessionID,
					"error":      err.Error(),
				})
			}
			return
		}

		switch msgType {
		case websocket.BinaryMessage:
			if c.accumulator.Append(payload) {
				c.dispatchChunk(c.accumulator.Drain())
			}
		case websocket.TextMessage:
			if strings.TrimSpace(string(payload)) == endOfStreamSignal {
				return
			}
		}
	}
}

// dispatchChunk runs one chunk analysis without blocking the read loop, so
// audio keeps accumulating while earlier chunks are still being analyzed.
func (c *Client) dispatchChunk(pcm []byte) {
	c.setState(stateAnalyzing)
	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		defer c.setState(stateAccumulating)

		feedback, err := c.Gateway.analyzer.AnalyzeChunk(context.Background(), c.SessionID, pcm, "")
		if err != nil {
			if errors.Is(err, store.ErrSessionNotFound) {
				// Session deleted mid-stream: drop the result silently.
				return
			}
			c.Gateway.logger.Warn("Gateway", "Chunk analysis failed", map[string]interface{}{
				"session_id": c.SessionID,
				"error":      err.Error(),
			})
			c.send(map[string]interface{}{"type": "error", "message": "chunk analysis failed"})
			return
		}
		c.send(map[string]interface{}{"type": "feedback", "data": feedback})
	}()
}

// finishStream drains the sub-threshold remainder and waits out in-flight
// analyses before the connection is torn down.
func (c *Client) finishStream() {
	if remainder := c.accumulator.Drain(); len(remainder) > 0 {
		c.dispatchChunk(remainder)
	}
	c.inflight.Wait()
	c.setState(stateClosed)
}

func (c *Client) send(payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.sendClosed {
		return
	}
	select {
	case c.Send <- data:
	default:
		c.Gateway.logger.Warn("Gateway", "Send buffer full, dropping frame", map[string]interface{}{"session_id": c.SessionID})
	}
}

// closeSend closes the outbound channel. Only the owning read pump calls it,
// after finishStream has waited out every in-flight analysis; the mutex makes
// it safe against frames pushed from outside the pump (Gateway.Push) and
// against a repeated call.
func (c *Client) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.sendClosed {
		return
	}
	c.sendClosed = true
	close(c.Send)
}

// writePump pumps outbound messages to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
