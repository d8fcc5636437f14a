package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App   AppConfig
	Audio AudioConfig
	Ai    AIConfig
	Keys  APIKeys
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	StreamLogFilePath  string
	CorsAllowedOrigins string
	NatsURL            string
}

type AudioConfig struct {
	SampleRate     int // Hz
	BytesPerSample int
	ChunkSeconds   int // wall-clock audio per analysis chunk
}

type AIConfig struct {
	LLMProvider         string // "openai", "ollama" or "grok"
	LLMModel            string
	OllamaBaseURL       string
	TranscriberProvider string // "openai" or "none"
	StageTimeoutSeconds int
}

type APIKeys struct {
	OpenAI string
	XAI    string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			StreamLogFilePath:  getEnv("STREAM_LOG_FILE_PATH", "logs/stream.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
		},
		Audio: AudioConfig{
			SampleRate:     getEnvAsInt("AUDIO_SAMPLE_RATE", 16000),
			BytesPerSample: getEnvAsInt("AUDIO_BYTES_PER_SAMPLE", 2),
			ChunkSeconds:   getEnvAsInt("AUDIO_CHUNK_SECONDS", 5),
		},
		Ai: AIConfig{
			LLMProvider:         getEnv("LLM_PROVIDER", "openai"),
			LLMModel:            getEnv("LLM_MODEL", "gpt-4"),
			OllamaBaseURL:       getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			TranscriberProvider: getEnv("TRANSCRIBER_PROVIDER", "openai"),
			StageTimeoutSeconds: getEnvAsInt("AI_STAGE_TIMEOUT_SECONDS", 30),
		},
		Keys: APIKeys{
			OpenAI: getEnv("OPENAI_API_KEY", ""),
			XAI:    getEnv("XAI_API_KEY", ""),
		},
	}
}

// ChunkThresholdBytes is the accumulated byte count that makes a chunk ready
// for analysis: sample rate x bytes per sample x chunk duration.
func (c *Config) ChunkThresholdBytes() int {
	return c.Audio.SampleRate * c.Audio.BytesPerSample * c.Audio.ChunkSeconds
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
