package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "change-me-jwt-secret"

type Config struct {
	AppEnv      string `mapstructure:"APP_ENV"`
	HTTPAddr    string `mapstructure:"HTTP_ADDR"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	JWTSecret string        `mapstructure:"JWT_SECRET"`
	JWTTTL    time.Duration `mapstructure:"JWT_TTL"`

	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RoomLockTTL   time.Duration `mapstructure:"ROOM_LOCK_TTL"`
	RoomLockWait  time.Duration `mapstructure:"ROOM_LOCK_WAIT"`

	KafkaBrokers string `mapstructure:"KAFKA_BROKERS"`
	KafkaTopic   string `mapstructure:"KAFKA_TOPIC"`

	CORSAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RateLimitPerMin    int    `mapstructure:"RATE_LIMIT_PER_MIN"`

	StayCompletionInterval time.Duration `mapstructure:"STAY_COMPLETION_INTERVAL"`
}

var defaults = map[string]any{
	"APP_ENV":                  "dev",
	"HTTP_ADDR":                ":8080",
	"DATABASE_URL":             "hotel.db",
	"LOG_LEVEL":                "info",
	"JWT_SECRET":               defaultJWTSecret,
	"JWT_TTL":                  "24h",
	"REDIS_ADDR":               "",
	"REDIS_PASSWORD":           "",
	"ROOM_LOCK_TTL":            "10s",
	"ROOM_LOCK_WAIT":           "3s",
	"KAFKA_BROKERS":            "",
	"KAFKA_TOPIC":              "booking-events",
	"CORS_ALLOWED_ORIGINS":     "http://localhost:3000,http://localhost:5173",
	"RATE_LIMIT_PER_MIN":       120,
	"STAY_COMPLETION_INTERVAL": "1h",
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))
	cfg.JWTSecret = strings.TrimSpace(cfg.JWTSecret)

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.RoomLockTTL <= 0 {
		return fmt.Errorf("ROOM_LOCK_TTL must be > 0")
	}
	if cfg.RoomLockWait <= 0 {
		return fmt.Errorf("ROOM_LOCK_WAIT must be > 0")
	}
	if cfg.RateLimitPerMin < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MIN must be >= 0")
	}
	if cfg.StayCompletionInterval < 0 {
		return fmt.Errorf("STAY_COMPLETION_INTERVAL must be >= 0")
	}

	if cfg.IsProdLike() && isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
		return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
	}
	return nil
}

func (c *Config) IsProdLike() bool {
	return c.AppEnv == "prod" || c.AppEnv == "production" || c.AppEnv == "release"
}

func (c *Config) KafkaBrokerList() []string {
	return splitList(c.KafkaBrokers)
}

func (c *Config) AllowedOrigins() []string {
	return splitList(c.CORSAllowedOrigins)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}
