package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// ClientConfig configures the partner CLI.
type ClientConfig struct {
	APIBaseURL        string
	HTTPTimeout       time.Duration
	AuthMode          string
	OTPLength         int
	SessionDBPath     string
	SessionRedisAddr  string
	CurrencySymbol    string
	LogLevel          slog.Level
	ValidateResponses bool
}

// BackendConfig configures the development backend.
type BackendConfig struct {
	HTTPPort            string
	DBHost              string
	DBPort              string
	DBUser              string
	DBPassword          string
	DBName              string
	DBSslMode           string
	DBPath              string
	RedisAddr           string
	RedisUsername       string
	RedisPassword       string
	JWTSecret           string
	TokenTTL            time.Duration
	OTPTTL              time.Duration
	OTPLength           int
	DeliveryCharge      decimal.Decimal
	ProgressionSchedule string
	ProgressionMinAge   time.Duration
	Seed                bool
	LogLevel            slog.Level
}

// LoadEnv reads .env into the environment. A missing file is fine; values
// already set in the environment win.
func LoadEnv() error {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func LoadClientConfig() (ClientConfig, error) {
	var p envParser
	cfg := ClientConfig{
		APIBaseURL:        p.str("API_BASE_URL", "http://localhost:8080"),
		HTTPTimeout:       p.duration("HTTP_TIMEOUT", 0),
		AuthMode:          p.str("AUTH_MODE", "otp"),
		OTPLength:         p.integer("OTP_LENGTH", 6),
		SessionDBPath:     p.str("SESSION_DB_PATH", "partner-session.db"),
		SessionRedisAddr:  p.str("SESSION_REDIS_ADDR", ""),
		CurrencySymbol:    p.str("CURRENCY_SYMBOL", "₹"),
		LogLevel:          p.level("LOG_LEVEL", slog.LevelWarn),
		ValidateResponses: p.boolean("VALIDATE_RESPONSES", true),
	}
	return cfg, p.err()
}

func LoadBackendConfig() (BackendConfig, error) {
	var p envParser
	cfg := BackendConfig{
		HTTPPort:            p.str("HTTP_PORT", "8080"),
		DBHost:              p.str("DB_HOST", ""),
		DBPort:              p.str("DB_PORT", "5432"),
		DBUser:              p.str("DB_USER", ""),
		DBPassword:          p.str("DB_PASSWORD", ""),
		DBName:              p.str("DB_NAME", ""),
		DBSslMode:           p.str("DB_SSLMODE", "disable"),
		DBPath:              p.str("DB_PATH", "devbackend.db"),
		RedisAddr:           p.str("REDIS_ADDR", ""),
		RedisUsername:       p.str("REDIS_USERNAME", ""),
		RedisPassword:       p.str("REDIS_PASSWORD", ""),
		JWTSecret:           p.str("JWT_SECRET", ""),
		TokenTTL:            p.duration("TOKEN_TTL", 24*time.Hour),
		OTPTTL:              p.duration("OTP_TTL", 5*time.Minute),
		OTPLength:           p.integer("OTP_LENGTH", 6),
		DeliveryCharge:      p.money("DELIVERY_CHARGE", decimal.NewFromInt(40)),
		ProgressionSchedule: p.str("PROGRESSION_SCHEDULE", ""),
		ProgressionMinAge:   p.duration("PROGRESSION_MIN_AGE", time.Minute),
		Seed:                p.boolean("SEED", true),
		LogLevel:            p.level("LOG_LEVEL", slog.LevelInfo),
	}
	if cfg.JWTSecret == "" {
		p.errs = append(p.errs, errors.New("JWT_SECRET is required"))
	}
	return cfg, p.err()
}

// envParser collects every malformed variable instead of stopping at the first.
type envParser struct {
	errs []error
}

func (p *envParser) err() error {
	return errors.Join(p.errs...)
}

func (p *envParser) fail(key, raw string, err error) {
	p.errs = append(p.errs, fmt.Errorf("%s=%q: %w", key, raw, err))
}

func (p *envParser) str(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func (p *envParser) integer(key string, fallback int) int {
	raw := p.str(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(key, raw, err)
		return fallback
	}
	return v
}

func (p *envParser) boolean(key string, fallback bool) bool {
	raw := p.str(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		p.fail(key, raw, err)
		return fallback
	}
	return v
}

func (p *envParser) duration(key string, fallback time.Duration) time.Duration {
	raw := p.str(key, "")
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		p.fail(key, raw, err)
		return fallback
	}
	if v < 0 {
		p.fail(key, raw, errors.New("must not be negative"))
		return fallback
	}
	return v
}

func (p *envParser) money(key string, fallback decimal.Decimal) decimal.Decimal {
	raw := p.str(key, "")
	if raw == "" {
		return fallback
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		p.fail(key, raw, err)
		return fallback
	}
	if v.IsNegative() {
		p.fail(key, raw, errors.New("must not be negative"))
		return fallback
	}
	return v
}

func (p *envParser) level(key string, fallback slog.Level) slog.Level {
	raw := p.str(key, "")
	if raw == "" {
		return fallback
	}
	var v slog.Level
	if err := v.UnmarshalText([]byte(raw)); err != nil {
		p.fail(key, raw, err)
		return fallback
	}
	return v
}
