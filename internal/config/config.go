package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Messaging channels selectable with MESSAGING_CHANNEL.
const (
	ChannelWhatsApp = "whatsapp"
	ChannelSMS      = "sms"
)

// Config holds all runtime configuration loaded from environment variables.
// It is built once at startup and never mutated afterwards.
type Config struct {
	AppPort  string
	AppEnv   string
	LogLevel string

	EvolutionAPIURL   string
	EvolutionInstance string
	EvolutionAPIKey   string

	JWTSecret string
	JWTExpiry time.Duration

	MessagingChannel string
	MessagingTimeout time.Duration

	SNSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string

	RateLimitRPS   float64
	RateLimitBurst int

	AllowedOrigins []string // CORS allowed origins
}

// ErrMissingEnv is returned by Load when a required variable is unset.
var ErrMissingEnv = errors.New("missing environment variables")

var required = []string{
	"EVOLUTION_API_URL",
	"EVOLUTION_INSTANCE",
	"EVOLUTION_API_KEY",
	"JWT_SECRET",
}

// Load reads all configuration from environment variables and fails if any
// required variable is absent.
func Load() (*Config, error) {
	var missing []string
	for _, key := range required {
		if os.Getenv(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingEnv, strings.Join(missing, ", "))
	}

	cfg := &Config{
		AppPort:  getEnv("APP_PORT", "5000"),
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		EvolutionAPIURL:   strings.TrimRight(os.Getenv("EVOLUTION_API_URL"), "/"),
		EvolutionInstance: os.Getenv("EVOLUTION_INSTANCE"),
		EvolutionAPIKey:   os.Getenv("EVOLUTION_API_KEY"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTExpiry: 5 * time.Hour,

		MessagingChannel: strings.ToLower(getEnv("MESSAGING_CHANNEL", ChannelWhatsApp)),
		MessagingTimeout: getEnvDuration("MESSAGING_TIMEOUT", 15*time.Second),

		SNSRegion:      getEnv("SNS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),

		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 10),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}

	switch cfg.MessagingChannel {
	case ChannelWhatsApp, ChannelSMS:
	default:
		return nil, fmt.Errorf("unknown MESSAGING_CHANNEL %q", cfg.MessagingChannel)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
