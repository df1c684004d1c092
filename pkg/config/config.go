package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the full application configuration, loaded from environment
// variables. Every field has a sensible default except Mistral.APIKey, which
// is validated before any network call is made.
type Config struct {
	Mistral   MistralConfig
	Describer DescriberConfig
	Storage   StorageConfig
	Server    ServerConfig
}

// MistralConfig configures the Mistral API client.
type MistralConfig struct {
	APIKey     string
	BaseURL    string
	OCRModel   string
	ChatModel  string
	ParseModel string
	Timeout    time.Duration
	MaxRetries int
}

// DescriberConfig selects the image description provider.
type DescriberConfig struct {
	// Provider is one of "mistral", "openai", "anthropic".
	Provider string

	OpenAIAPIKey    string
	OpenAIModel     string
	AnthropicAPIKey string
	AnthropicModel  string
}

// StorageConfig selects where batch inputs and outputs live.
type StorageConfig struct {
	// Provider is one of "local", "s3".
	Provider string

	LocalBasePath string
	S3Bucket      string
	S3Region      string
	S3Prefix      string
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port        string
	CORSOrigins string
	BodyLimit   int
	Debug       bool
}

// Load reads configuration from the environment.
func Load() *Config {
	return &Config{
		Mistral: MistralConfig{
			APIKey:     getEnv("MISTRAL_API_KEY", ""),
			BaseURL:    getEnv("MISTRAL_BASE_URL", "https://api.mistral.ai/v1"),
			OCRModel:   getEnv("MISTRAL_OCR_MODEL", "mistral-ocr-latest"),
			ChatModel:  getEnv("MISTRAL_CHAT_MODEL", "mistral-large-latest"),
			ParseModel: getEnv("MISTRAL_PARSE_MODEL", "pixtral-12b-latest"),
			Timeout:    getEnvDuration("MISTRAL_TIMEOUT", 5*time.Minute),
			MaxRetries: getEnvInt("MISTRAL_MAX_RETRIES", 3),
		},
		Describer: DescriberConfig{
			Provider:        getEnv("DESCRIBER_PROVIDER", "mistral"),
			OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
			OpenAIModel:     getEnv("OPENAI_DESCRIBE_MODEL", "gpt-4o"),
			AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
			AnthropicModel:  getEnv("ANTHROPIC_DESCRIBE_MODEL", "claude-sonnet-4-20250514"),
		},
		Storage: StorageConfig{
			Provider:      getEnv("STORAGE_PROVIDER", "local"),
			LocalBasePath: getEnv("STORAGE_LOCAL_PATH", "."),
			S3Bucket:      getEnv("STORAGE_S3_BUCKET", ""),
			S3Region:      getEnv("STORAGE_S3_REGION", getEnv("AWS_REGION", "us-east-1")),
			S3Prefix:      getEnv("STORAGE_S3_PREFIX", ""),
		},
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			CORSOrigins: getEnv("CORS_ORIGINS", "*"),
			BodyLimit:   getEnvInt("SERVER_BODY_LIMIT", 50*1024*1024),
			Debug:       getEnvBool("DEBUG", false),
		},
	}
}

// ---------------------------------------------------------------------------
// Env helpers
// ---------------------------------------------------------------------------

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
