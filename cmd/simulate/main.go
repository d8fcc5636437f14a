package main

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/gorilla/websocket"
)

// Streams a local WAV file to a running backend the way a browser client
// would: create a session, push PCM frames over the websocket, print every
// feedback message as it arrives.

var (
	baseURL  = flag.String("base-url", "http://localhost:8000", "backend base URL")
	wsURL    = flag.String("ws-url", "ws://localhost:8000", "backend websocket URL")
	wavPath  = flag.String("wav", "testdata/sample.wav", "16 kHz 16-bit mono WAV file to stream")
	mode     = flag.String("mode", "professional", "presentation mode")
	topic    = flag.String("topic", "Quarterly results", "presentation topic")
	frameLen = flag.Int("frame", 3200, "bytes per websocket frame (3200 = 100ms)")
	realtime = flag.Bool("realtime", false, "pace frames at wall-clock speed")
)

type createSessionResponse struct {
	Data struct {
		SessionId string `json:"session_id"`
	} `json:"data"`
}

func main() {
	flag.Parse()

	sessionID, err := createSession()
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}
	color.Green("Session created: %s", sessionID)

	pcm, err := readWavData(*wavPath)
	if err != nil {
		log.Fatalf("Failed to read WAV: %v", err)
	}
	color.Cyan("Loaded %d bytes of PCM (%.1fs of audio)", len(pcm), float64(len(pcm))/32000.0)

	conn, _, err := websocket.DefaultDialer.Dial(fmt.Sprintf("%s/ws/%s", *wsURL, sessionID), nil)
	if err != nil {
		log.Fatalf("Failed to dial websocket: %v", err)
	}
	defer conn.Close()

	done := make(chan struct{})
	go readFeedback(conn, done)

	for off := 0; off < len(pcm); off += *frameLen {
		end := off + *frameLen
		if end > len(pcm) {
			end = len(pcm)
		}
		if err := conn.WriteMessage(websocket.BinaryMessage, pcm[off:end]); err != nil {
			log.Fatalf("Write failed at offset %d: %v", off, err)
		}
		if *realtime {
			time.Sleep(100 * time.Millisecond)
		}
	}

	color.Yellow("Stream complete, sending end_of_stream")
	if err := conn.WriteMessage(websocket.TextMessage, []byte("end_of_stream")); err != nil {
		log.Fatalf("Failed to signal end of stream: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Minute):
		color.Red("Timed out waiting for final feedback")
	}
}

func readFeedback(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg struct {
			Type string `json:"type"`
			Data struct {
				Transcript string `json:"transcript"`
				Score      struct {
					OverallScore float64 `json:"overall_score"`
				} `json:"score"`
				Questions []struct {
					Question string `json:"question"`
				} `json:"questions"`
			} `json:"data"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(payload, &msg); err != nil {
			color.Red("Unparseable frame: %s", payload)
			continue
		}

		switch msg.Type {
		case "feedback":
			color.Green("score=%.2f  %q", msg.Data.Score.OverallScore, msg.Data.Transcript)
			for _, q := range msg.Data.Questions {
				color.Magenta("  Q: %s", q.Question)
			}
		case "error":
			color.Red("server error: %s", msg.Message)
		default:
			fmt.Println(string(payload))
		}
	}
}

func createSession() (string, error) {
	body, _ := json.Marshal(map[string]string{
		"mode":  *mode,
		"topic": *topic,
	})
	resp, err := http.Post(*baseURL+"/api/sessions", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var res createSessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return "", err
	}
	return res.Data.SessionId, nil
}

// readWavData returns the raw samples from a RIFF WAV file, walking the chunk
// list until the data chunk. Raw PCM files (no RIFF header) pass through as-is.
func readWavData(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(raw) < 12 || string(raw[0:4]) != "RIFF" {
		return raw, nil
	}

	off := 12
	for off+8 <= len(raw) {
		id := string(raw[off : off+4])
		size := int(binary.LittleEndian.Uint32(raw[off+4 : off+8]))
		off += 8
		if off+size > len(raw) {
			size = len(raw) - off
		}
		if id == "data" {
			return raw[off : off+size], nil
		}
		off += size
	}
	return nil, errors.New("no data chunk found")
}
