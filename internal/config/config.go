package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Env         string
	Port        string
	Timezone    *time.Location
	CORSOrigins []string
	LogFile     string

	// Database
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// AI
	GeminiAPIKey     string
	GeminiModel      string
	AITimeout        time.Duration
	AIMaxAttempts    int
	AIBaseDelay      time.Duration
	AIMaxDelay       time.Duration
	AIJitter         float64
	AIMaxSuggestions int
	AIRatePerMinute  float64
	AIRateBurst      int

	// Cache
	RedisURL   string
	AICacheTTL time.Duration

	// Warnings collects problems found while loading. They are reported once
	// the logger is up, since logging itself depends on ENV and LOG_FILE.
	Warnings []string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}

	// A missing .env file is normal outside local development.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		cfg.warn("could not read .env file: %v", err)
	}

	cfg.Env = getEnv("ENV", "development")
	cfg.Port = getEnv("PORT", "8080")
	cfg.LogFile = getEnv("LOG_FILE", "")
	cfg.CORSOrigins = splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"))

	tzName := getEnv("APP_TIMEZONE", "Local")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		cfg.warn("invalid APP_TIMEZONE %q, falling back to Local", tzName)
		loc = time.Local
	}
	cfg.Timezone = loc

	cfg.DBDriver = strings.ToLower(getEnv("DB_DRIVER", "postgres"))
	if cfg.DBDriver != "postgres" && cfg.DBDriver != "sqlite" {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (want postgres or sqlite)", cfg.DBDriver)
	}
	cfg.DBHost = getEnv("DB_HOST", "localhost")
	cfg.DBPort = getEnv("DB_PORT", "5432")
	cfg.DBUser = getEnv("DB_USER", "habithero")
	cfg.DBPassword = getEnv("DB_PASSWORD", "habithero")
	cfg.DBName = getEnv("DB_NAME", "habithero")
	cfg.DBSSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.SQLitePath = getEnv("SQLITE_PATH", "habits.db")

	cfg.GeminiAPIKey = getEnv("GEMINI_API_KEY", "")
	cfg.GeminiModel = getEnv("GEMINI_MODEL", "gemini-2.5-flash")
	cfg.AITimeout = cfg.duration("AI_TIMEOUT", 30*time.Second)
	cfg.AIMaxAttempts = cfg.positiveInt("AI_MAX_ATTEMPTS", 3)
	cfg.AIBaseDelay = cfg.duration("AI_BASE_DELAY", 500*time.Millisecond)
	cfg.AIMaxDelay = cfg.duration("AI_MAX_DELAY", 5*time.Second)
	cfg.AIJitter = cfg.fraction("AI_JITTER", 0.2)
	cfg.AIMaxSuggestions = cfg.positiveInt("AI_MAX_SUGGESTIONS", 5)
	cfg.AIRatePerMinute = cfg.positiveFloat("AI_RATE_PER_MINUTE", 20)
	cfg.AIRateBurst = cfg.positiveInt("AI_RATE_BURST", 5)

	cfg.RedisURL = getEnv("REDIS_URL", "")
	cfg.AICacheTTL = cfg.duration("AI_CACHE_TTL", time.Hour)

	appConfig = cfg
	return cfg, nil
}

// Get returns the application configuration, loading it on first use.
func Get() *Config {
	if appConfig == nil {
		cfg, err := Load()
		if err != nil {
			panic(fmt.Sprintf("failed to load configuration: %v", err))
		}
		appConfig = cfg
	}
	return appConfig
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) warn(format string, args ...any) {
	c.Warnings = append(c.Warnings, fmt.Sprintf(format, args...))
}

func (c *Config) duration(key string, def time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		c.warn("invalid %s value '%s', falling back to %s", key, raw, def)
		return def
	}
	return d
}

func (c *Config) positiveInt(key string, def int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		c.warn("invalid %s value '%s', falling back to %d", key, raw, def)
		return def
	}
	return n
}

func (c *Config) positiveFloat(key string, def float64) float64 {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f <= 0 {
		c.warn("invalid %s value '%s', falling back to %g", key, raw, def)
		return def
	}
	return f
}

func (c *Config) fraction(key string, def float64) float64 {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 || f > 1 {
		c.warn("invalid %s value '%s', falling back to %g", key, raw, def)
		return def
	}
	return f
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
