package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"infobot-backend/internal/core"
	logx "infobot-backend/pkg/logger"
)

type Config struct {
	Environment   core.Environment
	Port          string
	AllowedOrigin string
	Timezone      string
	// Session persistence: "memory" or "redis" (REDIS_* read via envconfig)
	SessionStore string
	SessionTTL   time.Duration
	// Fallback answers: "none", "http", "openai" or "gemini"
	AnswerBackend       string
	RemoteAnswerURL     string
	RemoteAnswerPath    string
	RemoteClearPath     string
	RemoteAnswerPayload string
	RemoteAnswerTimeout time.Duration
	AnswerPromptFile    string
	OpenAIAPIKey        string
	OpenAIModel         string
	OpenAIBaseURL       string
	GeminiAPIKey        string
	GeminiModel         string
	// Database
	DatabaseURL   string
	MigrationsDir string
}

func Load() Config {
	_ = godotenv.Load()
	cfg := Config{
		Environment:         core.ParseEnvironment(os.Getenv("ENVIRONMENT")),
		Port:                getEnvDefault("PORT", "8080"),
		AllowedOrigin:       getEnvDefault("ALLOWED_ORIGIN", "*"),
		Timezone:            getEnvDefault("TIMEZONE", "Asia/Kolkata"),
		SessionStore:        strings.ToLower(getEnvDefault("SESSION_STORE", "memory")),
		SessionTTL:          getEnvDurationDefault("SESSION_TTL", 30*time.Minute),
		AnswerBackend:       strings.ToLower(getEnvDefault("ANSWER_BACKEND", "none")),
		RemoteAnswerURL:     os.Getenv("REMOTE_ANSWER_URL"),
		RemoteAnswerPath:    getEnvDefault("REMOTE_ANSWER_PATH", "/chat"),
		RemoteClearPath:     getEnvDefault("REMOTE_CLEAR_PATH", "/clear_history"),
		RemoteAnswerPayload: getEnvDefault("REMOTE_ANSWER_PAYLOAD", "message"),
		RemoteAnswerTimeout: getEnvDurationDefault("REMOTE_ANSWER_TIMEOUT", 30*time.Second),
		AnswerPromptFile:    getEnvDefault("ANSWER_PROMPT_FILE", "./prompts/answer.yaml"),
		OpenAIAPIKey:        os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:         getEnvDefault("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:       os.Getenv("OPENAI_BASE_URL"),
		GeminiAPIKey:        os.Getenv("GEMINI_API_KEY"),
		GeminiModel:         getEnvDefault("GEMINI_MODEL", "gemini-2.5-flash"),
		DatabaseURL:         os.Getenv("DB_URL"),
		MigrationsDir:       getEnvDefault("MIGRATIONS_DIR", "./migrations"),
	}
	cfg.warn()
	return cfg
}

func (c Config) warn() {
	switch c.AnswerBackend {
	case "http":
		if c.RemoteAnswerURL == "" {
			logx.Warn().Msg("ANSWER_BACKEND=http but REMOTE_ANSWER_URL is not set; remote answers are disabled")
		}
	case "openai":
		if c.OpenAIAPIKey == "" {
			logx.Warn().Msg("OPENAI_API_KEY is not set; API calls will fail until provided")
		}
	case "gemini":
		if c.GeminiAPIKey == "" {
			logx.Warn().Msg("GEMINI_API_KEY is not set; API calls will fail until provided")
		}
	}
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvDurationDefault(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil && d > 0 {
			return d
		}
		logx.Warn().Str("key", key).Str("value", v).Msg("invalid duration, using default")
	}
	return def
}
