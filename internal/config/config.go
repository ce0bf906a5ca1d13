package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	SMTP     SMTPConfig
	Ai       AIConfig
	Chat     ChatConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	JWTSecret            string
	AccessTokenTTLMins   int
	RefreshTokenTTLDays  int
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type AIConfig struct {
	LLMProvider        string // "gemini" or "ollama"
	LLMModel           string
	GeminiAPIKey       string
	EmbeddingProvider  string // "gemini" or "ollama"
	OllamaBaseURL      string
	OllamaEmbedModel   string
	RetryMaxAttempts   int
	RetryBaseDelaySecs int
	RetryMaxDelaySecs  int
}

type ChatConfig struct {
	MaxInputTokens     int
	HistoryTokenBudget int
	MaxResponseTokens  int
	IngestTopicName    string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JWTSecret:           getEnv("JWT_SECRET", ""),
			AccessTokenTTLMins:  getEnvAsInt("ACCESS_TOKEN_TTL_MINUTES", 15),
			RefreshTokenTTLDays: getEnvAsInt("REFRESH_TOKEN_TTL_DAYS", 7),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "FUE Admission Office"),
		},
		Ai: AIConfig{
			LLMProvider:        getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:           getEnv("LLM_MODEL", "gemini-2.5-flash"),
			GeminiAPIKey:       getEnv("GOOGLE_GEMINI_API_KEY", ""),
			EmbeddingProvider:  getEnv("EMBEDDING_PROVIDER", "gemini"),
			OllamaBaseURL:      getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaEmbedModel:   getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			RetryMaxAttempts:   getEnvAsInt("MODEL_RETRY_ATTEMPTS", 5),
			RetryBaseDelaySecs: getEnvAsInt("MODEL_RETRY_BASE_DELAY_SECS", 2),
			RetryMaxDelaySecs:  getEnvAsInt("MODEL_RETRY_MAX_DELAY_SECS", 70),
		},
		Chat: ChatConfig{
			MaxInputTokens:     getEnvAsInt("MAX_INPUT_TOKENS", 1000),
			HistoryTokenBudget: getEnvAsInt("HISTORY_TOKEN_BUDGET", 3000),
			MaxResponseTokens:  getEnvAsInt("MAX_RESPONSE_TOKENS", 2048),
			IngestTopicName:    getEnv("EMBED_DOCUMENT_TOPIC_NAME", "EMBED_KNOWLEDGE_DOCUMENT"),
		},
	}
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
