package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv         string
	Port           string
	DefaultProject string

	StoragePath    string
	StorageBaseURL string
	VoiceCatalog   string

	FirecrawlBaseURL string
	FirecrawlAPIKey  string
	OllamaBaseURL    string
	OllamaModel      string
	ElevenBaseURL    string
	ElevenAPIKey     string
	ElevenModelID    string
	HeyGemBaseURL    string

	GatewayTimeout time.Duration
	RenderTimeout  time.Duration

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	RateLimitPerMin  int
	AllowedOrigins   []string
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		DefaultProject: os.Getenv("DEFAULT_PROJECT_NAME"),

		StoragePath:  getEnv("STORAGE_PATH", "./data/uploads"),
		VoiceCatalog: os.Getenv("VOICE_CATALOG_PATH"),

		FirecrawlBaseURL: getEnv("FIRECRAWL_BASE_URL", "http://localhost:3002"),
		FirecrawlAPIKey:  os.Getenv("FIRECRAWL_API_KEY"),
		OllamaBaseURL:    getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		OllamaModel:      getEnv("OLLAMA_MODEL", "llama3"),
		ElevenBaseURL:    getEnv("ELEVENLABS_BASE_URL", "https://api.elevenlabs.io"),
		ElevenAPIKey:     os.Getenv("ELEVENLABS_API_KEY"),
		ElevenModelID:    getEnv("ELEVENLABS_MODEL_ID", "eleven_monolingual_v1"),
		HeyGemBaseURL:    getEnv("HEYGEM_BASE_URL", "http://localhost:8001"),

		GatewayTimeout: time.Second * time.Duration(getEnvInt("GATEWAY_TIMEOUT_SECONDS", 120)),
		RenderTimeout:  time.Second * time.Duration(getEnvInt("RENDER_TIMEOUT_SECONDS", 300)),

		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 330)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
		AllowedOrigins:   splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")),
	}

	// uploads are served from this process unless an external CDN is set
	cfg.StorageBaseURL = getEnv("STORAGE_BASE_URL", "http://localhost:"+cfg.Port+"/uploads")

	if cfg.GatewayTimeout <= 0 {
		return nil, fmt.Errorf("GATEWAY_TIMEOUT_SECONDS must be positive")
	}
	if cfg.RenderTimeout <= 0 {
		return nil, fmt.Errorf("RENDER_TIMEOUT_SECONDS must be positive")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
