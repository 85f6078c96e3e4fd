package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Redis     RedisConfig
	Fetch     FetchConfig
	Aggregate AggregateConfig
	Scheduler SchedulerConfig
	Weather   WeatherConfig
	Logging   LoggingConfig
	Metrics   MetricsConfig
}

type ServerConfig struct {
	Host                    string
	Port                    int
	ReadTimeout             time.Duration
	WriteTimeout            time.Duration
	IdleTimeout             time.Duration
	GracefulShutdownTimeout time.Duration
	RateLimitPerMinute      int
}

type StoreConfig struct {
	// FilePath is the flat JSON record set used when no database is configured
	FilePath        string
	DatabaseURL     string
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
}

type RedisConfig struct {
	URL string
}

type FetchConfig struct {
	// Timeout bounds one upstream request; there are no retries at this level
	Timeout        time.Duration
	UserAgent      string
	MaxItemsPerFeed int
	// RecencyWindow is the standard cutoff; FallbackWindow widens it for the
	// guaranteed-feed fallback when locality feeds come back empty.
	RecencyWindow   time.Duration
	FallbackWindow  time.Duration
	Concurrency     int
	RatePerSecond   float64
	VKAccessToken   string
}

type AggregateConfig struct {
	// Deadline bounds the whole cascade for a synchronous lookup
	Deadline     time.Duration
	DefaultLimit int
}

type SchedulerConfig struct {
	TickInterval time.Duration
	// StartupGrace delays the first tick so storage and network can warm up
	StartupGrace time.Duration
}

type WeatherConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

type LoggingConfig struct {
	Level  string
	Format string // json or text
}

type MetricsConfig struct {
	Enabled bool
	Port    int
	Path    string
}

// browserUA mirrors what desktop browsers send; several RSS bridges refuse
// obvious bot user-agents.
const browserUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Load loads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:                    getEnv("SERVER_HOST", "0.0.0.0"),
			Port:                    getEnvInt("SERVER_PORT", 8080),
			ReadTimeout:             getEnvDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:            getEnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:             getEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
			GracefulShutdownTimeout: getEnvDuration("SERVER_GRACEFUL_SHUTDOWN_TIMEOUT", 30*time.Second),
			RateLimitPerMinute:      getEnvInt("SERVER_RATE_LIMIT_PER_MINUTE", 120),
		},
		Store: StoreConfig{
			FilePath:        getEnv("SUBSCRIPTIONS_FILE", "data/subscriptions.json"),
			DatabaseURL:     getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvDuration("DB_MAX_CONN_LIFETIME", 1*time.Hour),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
		Fetch: FetchConfig{
			Timeout:         getEnvDuration("FETCH_TIMEOUT", 18*time.Second),
			UserAgent:       getEnv("FETCH_USER_AGENT", browserUA),
			MaxItemsPerFeed: getEnvInt("FETCH_MAX_ITEMS_PER_FEED", 120),
			RecencyWindow:   getEnvDuration("FETCH_RECENCY_WINDOW", 14*24*time.Hour),
			FallbackWindow:  getEnvDuration("FETCH_FALLBACK_WINDOW", 30*24*time.Hour),
			Concurrency:     getEnvInt("FETCH_CONCURRENCY", 6),
			RatePerSecond:   getEnvFloat("FETCH_RATE_PER_SECOND", 8.0),
			VKAccessToken:   getEnv("VK_ACCESS_TOKEN", ""),
		},
		Aggregate: AggregateConfig{
			Deadline:     getEnvDuration("AGGREGATE_DEADLINE", 15*time.Second),
			DefaultLimit: getEnvInt("AGGREGATE_DEFAULT_LIMIT", 5),
		},
		Scheduler: SchedulerConfig{
			TickInterval: getEnvDuration("SCHEDULER_TICK_INTERVAL", time.Minute),
			StartupGrace: getEnvDuration("SCHEDULER_STARTUP_GRACE", 10*time.Second),
		},
		Weather: WeatherConfig{
			APIKey:  getEnv("WEATHERAPI_KEY", ""),
			BaseURL: getEnv("WEATHERAPI_BASE_URL", "https://api.weatherapi.com/v1"),
			Timeout: getEnvDuration("WEATHERAPI_TIMEOUT", 10*time.Second),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBool("METRICS_ENABLED", true),
			Port:    getEnvInt("METRICS_PORT", 9090),
			Path:    getEnv("METRICS_PATH", "/metrics"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Store.FilePath == "" && c.Store.DatabaseURL == "" {
		return fmt.Errorf("either SUBSCRIPTIONS_FILE or DATABASE_URL must be set")
	}
	if c.Fetch.Concurrency < 1 {
		return fmt.Errorf("fetch concurrency must be at least 1")
	}
	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive")
	}
	if c.Scheduler.TickInterval <= 0 {
		return fmt.Errorf("scheduler tick interval must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
