package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrCodeIsInvalid   = errors.New("invalid or expired OTP")
	ErrTooManyAttempts = errors.New("too many attempts, request a new OTP")
)

// Config tunes code issuance. Zero fields take the defaults below.
type Config struct {
	Length      int
	TTL         time.Duration
	MaxAttempts int
	HashCost    int
}

const (
	DefaultLength      = 6
	DefaultTTL         = 5 * time.Minute
	DefaultMaxAttempts = 5
)

func (c Config) withDefaults() Config {
	if c.Length <= 0 {
		c.Length = DefaultLength
	}
	if c.TTL <= 0 {
		c.TTL = DefaultTTL
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.HashCost == 0 {
		c.HashCost = bcrypt.DefaultCost
	}
	return c
}

type Service struct {
	store  Store
	cfg    Config
	now    func() time.Time
	logger *slog.Logger
}

func NewService(store Store, cfg Config, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		cfg:    cfg.withDefaults(),
		now:    time.Now,
		logger: logger.With("component", "OTPService"),
	}
}

// Length is the number of digits in issued codes.
func (s *Service) Length() int {
	return s.cfg.Length
}

// Issue replaces any pending code for email with a fresh one and returns it.
// There is no mailer; callers log the code.
func (s *Service) Issue(ctx context.Context, email string) (string, error) {
	email = normalize(email)

	code, err := randomDigits(s.cfg.Length)
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), s.cfg.HashCost)
	if err != nil {
		return "", fmt.Errorf("hash code: %w", err)
	}

	entry := Entry{Hash: hash, ExpiresAt: s.now().Add(s.cfg.TTL)}
	if err := s.store.Save(ctx, email, entry); err != nil {
		return "", fmt.Errorf("store code: %w", err)
	}

	s.logger.DebugContext(ctx, "OTP issued", "email", email, "expiresAt", entry.ExpiresAt)
	return code, nil
}

// Verify consumes the pending code for email when code matches it.
func (s *Service) Verify(ctx context.Context, email, code string) error {
	email = normalize(email)

	entry, ok, err := s.store.Load(ctx, email)
	if err != nil {
		return fmt.Errorf("load code: %w", err)
	}
	if !ok || !s.now().Before(entry.ExpiresAt) {
		return ErrCodeIsInvalid
	}

	if bcrypt.CompareHashAndPassword(entry.Hash, []byte(strings.TrimSpace(code))) != nil {
		entry.Attempts++
		if entry.Attempts >= s.cfg.MaxAttempts {
			if err := s.store.Delete(ctx, email); err != nil {
				return fmt.Errorf("drop code: %w", err)
			}
			s.logger.InfoContext(ctx, "OTP dropped after failed attempts")
			return ErrTooManyAttempts
		}
		if err := s.store.Save(ctx, email, entry); err != nil {
			return fmt.Errorf("store code: %w", err)
		}
		return ErrCodeIsInvalid
	}

	if err := s.store.Delete(ctx, email); err != nil {
		return fmt.Errorf("drop code: %w", err)
	}
	return nil
}

func randomDigits(n int) (string, error) {
	var b strings.Builder
	b.Grow(n)
	ten := big.NewInt(10)
	for range n {
		d, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + d.Int64()))
	}
	return b.String(), nil
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
