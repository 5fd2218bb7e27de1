package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Auth     AuthConfig
	Cache    CacheConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	OtelEnabled        bool
}

type DatabaseConfig struct {
	Driver     string // postgres or sqlite
	Connection string
	LogLevel   string
}

type APIKeys struct {
	GoogleGemini string
	HuggingFace  string
}

type AIConfig struct {
	LLMProvider         string // gemini, ollama, huggingface
	LLMModel            string
	LLMBaseURL          string
	OllamaBaseURL       string
	Timeout             time.Duration
	AssessmentEvaluator string // generative or deterministic
	Temperature         float64
	MaxTokens           int
}

type AuthConfig struct {
	JwtSecret string
}

type CacheConfig struct {
	RedisURL string // empty selects the in-process cache
	TTL      time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			OtelEnabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
		Database: DatabaseConfig{
			Driver:     getEnv("DB_DRIVER", "postgres"),
			Connection: getEnv("DB_CONNECTION_STRING", ""),
			LogLevel:   getEnv("DB_LOG_LEVEL", "warn"),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			HuggingFace:  getEnv("HUGGINGFACE_API_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider:         getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:            getEnv("LLM_MODEL", ""),
			LLMBaseURL:          getEnv("LLM_BASE_URL", ""),
			OllamaBaseURL:       getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			Timeout:             time.Duration(getEnvAsInt("LLM_TIMEOUT_SECONDS", 60)) * time.Second,
			AssessmentEvaluator: getEnv("ASSESSMENT_EVALUATOR", "generative"),
			Temperature:         getEnvAsFloat("LLM_TEMPERATURE", 0),
			MaxTokens:           getEnvAsInt("LLM_MAX_TOKENS", 0),
		},
		Auth: AuthConfig{
			JwtSecret: getEnv("JWT_SECRET", ""),
		},
		Cache: CacheConfig{
			RedisURL: getEnv("REDIS_URL", ""),
			TTL:      time.Duration(getEnvAsInt("CONTENT_CACHE_TTL_MINUTES", 60)) * time.Minute,
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// ProviderAPIKey returns the key for the configured LLM backend.
func (c *Config) ProviderAPIKey() string {
	if c.Ai.LLMProvider == "huggingface" {
		return c.Keys.HuggingFace
	}
	return c.Keys.GoogleGemini
}

// ProviderBaseURL prefers LLM_BASE_URL and falls back to OLLAMA_BASE_URL for ollama.
func (c *Config) ProviderBaseURL() string {
	if c.Ai.LLMBaseURL != "" {
		return c.Ai.LLMBaseURL
	}
	if c.Ai.LLMProvider == "ollama" {
		return c.Ai.OllamaBaseURL
	}
	return ""
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
