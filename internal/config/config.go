package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// TokenSourceRedis selects loading the credential table from Redis at startup.
const TokenSourceRedis = "redis"

// Config aggregates runtime configuration for the service.
type Config struct {
	App    AppConfig
	Redis  RedisConfig
	Logger LoggerConfig
	Auth   AuthConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// RedisConfig holds Redis connection values. Redis is optional; it is only
// contacted when AuthConfig selects it as the token source.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines the credential table. Tokens holds comma-separated
// "token:role" pairs; TokenSource selects "env" (the default) or "redis".
type AuthConfig struct {
	Tokens      string
	TokenSource string
	RedisKey    string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "crm-ticketing-api"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			Tokens:      getEnv("AUTH_TOKENS", "agent123:agent,admin123:admin"),
			TokenSource: getEnv("AUTH_TOKEN_SOURCE", "env"),
			RedisKey:    getEnv("AUTH_TOKENS_REDIS_KEY", "auth:tokens"),
		},
	}

	return cfg, nil
}

// TokenTable parses the configured "token:role" pairs. Malformed pairs are
// rejected rather than skipped so a typo cannot silently drop a credential.
func (a AuthConfig) TokenTable() (map[string]string, error) {
	table := make(map[string]string)
	if strings.TrimSpace(a.Tokens) == "" {
		return table, nil
	}
	for _, pair := range strings.Split(a.Tokens, ",") {
		token, role, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok || token == "" || role == "" {
			return nil, fmt.Errorf("invalid AUTH_TOKENS entry %q", pair)
		}
		table[token] = role
	}
	return table, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
