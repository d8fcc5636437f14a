package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"ai-presentation-coach-be/pkg/audio"
)

// WhisperTranscriber sends chunk audio to the OpenAI transcription endpoint.
// Raw PCM is wrapped in a WAV container first; the API rejects headerless
// uploads.
type WhisperTranscriber struct {
	BaseURL    string
	APIKey     string
	ModelName  string
	SampleRate int
	Client     *http.Client
}

var _ Transcriber = &WhisperTranscriber{}

func NewWhisperTranscriber(apiKey string, sampleRate int) *WhisperTranscriber {
	return &WhisperTranscriber{
		BaseURL:    "https://api.openai.com/v1",
		APIKey:     apiKey,
		ModelName:  "whisper-1",
		SampleRate: sampleRate,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type transcriptionResponse struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

func (t *WhisperTranscriber) Transcribe(ctx context.Context, pcm []byte) (string, string, error) {
	wav := audio.EncodeWAV(pcm, t.SampleRate, 2, 1)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", "chunk.wav")
	if err != nil {
		return "", "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(wav); err != nil {
		return "", "", fmt.Errorf("write form file: %w", err)
	}
	if err := writer.WriteField("model", t.ModelName); err != nil {
		return "", "", fmt.Errorf("write model field: %w", err)
	}
	if err := writer.WriteField("response_format", "verbose_json"); err != nil {
		return "", "", fmt.Errorf("write format field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", "", fmt.Errorf("close multipart writer: %w", err)
	}

	url := t.BaseURL + "/audio/transcriptions"
	req, err := http.NewRequestWithContext(ctx, "POST", url, &body)
	if err != nil {
		return "", "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+t.APIKey)

	resp, err := t.Client.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("transcription request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("transcription error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var result transcriptionResponse
	if err := json.Unmarshal(bodyBytes, &result); err != nil {
		return "", "", fmt.Errorf("unmarshal response: %w", err)
	}

	return result.Text, result.Language, nil
}
