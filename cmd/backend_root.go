package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"deliverypartner/internal/devbackend/httpapi"
	"deliverypartner/internal/devbackend/otp"
	"deliverypartner/internal/devbackend/service"
	"deliverypartner/internal/devbackend/store"
	"deliverypartner/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// BackendRoot wires the development backend.
type BackendRoot struct {
	cfg    BackendConfig
	logger *slog.Logger

	db          *gorm.DB
	redis       *redis.Client
	memoryCodes *otp.MemoryStore
	codes       *otp.Service
	orders      *service.OrderService
	auth        *service.AuthService
}

func NewBackendRoot(ctx context.Context, cfg BackendConfig, logger *slog.Logger) (*BackendRoot, error) {
	db, err := store.Open(store.Config{
		Host:       cfg.DBHost,
		Port:       cfg.DBPort,
		User:       cfg.DBUser,
		Password:   cfg.DBPassword,
		Name:       cfg.DBName,
		SSLMode:    cfg.DBSslMode,
		SQLitePath: cfg.DBPath,
	})
	if err != nil {
		return nil, err
	}
	b := &BackendRoot{cfg: cfg, logger: logger, db: db}

	var codeStore otp.Store
	if cfg.RedisAddr != "" {
		b.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Username: cfg.RedisUsername,
			Password: cfg.RedisPassword,
		})
		if err := b.redis.Ping(ctx).Err(); err != nil {
			_ = b.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		codeStore = otp.NewRedisStore(b.redis, "")
	} else {
		b.memoryCodes = otp.NewMemoryStore()
		codeStore = b.memoryCodes
	}

	b.codes = otp.NewService(codeStore, otp.Config{Length: cfg.OTPLength, TTL: cfg.OTPTTL}, logger)
	b.orders = service.NewOrderService(db, cfg.DeliveryCharge, logger)
	b.auth, err = service.NewAuthService(store.NewPartnerRepository(db), b.codes, []byte(cfg.JWTSecret), cfg.TokenTTL, logger)
	if err != nil {
		_ = b.Close()
		return nil, err
	}
	return b, nil
}

// Seed fills an empty database with demo data.
func (b *BackendRoot) Seed(ctx context.Context) error {
	if !b.cfg.Seed {
		return nil
	}
	seeded, err := store.Seed(ctx, b.db, store.DefaultSeedPartner, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("seed database: %w", err)
	}
	if seeded {
		b.logger.InfoContext(ctx, "Database seeded",
			"email", store.DefaultSeedPartner.Email,
			"password", store.DefaultSeedPartner.Password)
	}
	return nil
}

func (b *BackendRoot) CreateEcho(ctx context.Context) (*echo.Echo, error) {
	return httpapi.NewEcho(ctx, httpapi.NewServer(b.orders, b.auth, b.logger))
}

func (b *BackendRoot) CreateJobManager() *jobs.JobManager {
	var sweeper jobs.CodeSweeper
	if b.memoryCodes != nil {
		sweeper = b.memoryCodes
	}
	return jobs.NewJobManager(b.orders, b.cfg.ProgressionSchedule, b.cfg.ProgressionMinAge, sweeper, b.logger)
}

func (b *BackendRoot) Close() error {
	var errs []error
	if b.redis != nil {
		errs = append(errs, b.redis.Close())
	}
	if sqlDB, err := b.db.DB(); err == nil {
		errs = append(errs, sqlDB.Close())
	}
	return errors.Join(errs...)
}
