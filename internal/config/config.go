package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/akudrin/websearch-bot/internal/search"
)

var (
	ErrMissingToken       = errors.New("TELEGRAM_BOT_TOKEN is required")
	ErrInvalidProvider    = errors.New("invalid search provider")
	ErrInvalidResultCount = errors.New("search result count must be between 1 and 20")
)

type Config struct {
	Telegram  TelegramConfig
	Search    SearchConfig
	LLM       LLMConfig
	Log       LogConfig
	Metrics   MetricsConfig
	RateLimit RateLimitConfig
}

type TelegramConfig struct {
	Token string
}

type SearchConfig struct {
	Enabled     bool
	Provider    string
	BaseURL     string
	APIKey      string
	ResultCount int
	Timeout     time.Duration
}

type LLMConfig struct {
	Provider     string
	SystemPrompt string
	Ollama       OllamaConfig
}

type OllamaConfig struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

type LogConfig struct {
	Level string
}

type MetricsConfig struct {
	Addr string
}

type RateLimitConfig struct {
	RequestsPerMinute int
}

func Load() (*Config, error) {
	cfg := &Config{
		Telegram: TelegramConfig{
			Token: os.Getenv("TELEGRAM_BOT_TOKEN"),
		},
		Search: SearchConfig{
			Enabled:     getEnvBoolOrDefault("WEB_SEARCH_ENABLED", false),
			Provider:    getEnvOrDefault("SEARCH_PROVIDER", "searxng"),
			BaseURL:     os.Getenv("SEARCH_URL"),
			APIKey:      os.Getenv("SEARCH_API_KEY"),
			ResultCount: getEnvIntOrDefault("SEARCH_RESULTS_COUNT", search.DefaultResultCount),
			Timeout:     time.Duration(getEnvIntOrDefault("SEARCH_TIMEOUT_SEC", 10)) * time.Second,
		},
		LLM: LLMConfig{
			Provider:     getEnvOrDefault("LLM_PROVIDER", "mock"),
			SystemPrompt: getEnvOrDefault("SYSTEM_PROMPT", "You are a helpful assistant."),
			Ollama: OllamaConfig{
				BaseURL: getEnvOrDefault("OLLAMA_BASE_URL", "http://localhost:11434"),
				Model:   getEnvOrDefault("OLLAMA_MODEL", "llama3.2"),
				Timeout: time.Duration(getEnvIntOrDefault("OLLAMA_TIMEOUT_SEC", 120)) * time.Second,
			},
		},
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "info"),
		},
		Metrics: MetricsConfig{
			Addr: getEnvOrDefault("METRICS_ADDR", ":9090"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: getEnvIntOrDefault("RATE_LIMIT_PER_MINUTE", 10),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Telegram.Token == "" {
		return ErrMissingToken
	}
	if c.Search.Enabled {
		if !search.Kind(c.Search.Provider).IsValid() {
			return ErrInvalidProvider
		}
		if c.Search.ResultCount < 1 || c.Search.ResultCount > search.MaxResultCount {
			return ErrInvalidResultCount
		}
	}
	return nil
}

// ProviderConfig builds the per-turn search configuration.
func (c *Config) ProviderConfig() search.ProviderConfig {
	return search.ProviderConfig{
		Kind:        search.Kind(c.Search.Provider),
		BaseURL:     c.Search.BaseURL,
		APIKey:      c.Search.APIKey,
		ResultCount: c.Search.ResultCount,
		Timeout:     c.Search.Timeout,
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
