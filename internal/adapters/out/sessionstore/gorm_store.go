package sessionstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"deliverypartner/internal/core/domain/model/partner"
	"deliverypartner/internal/core/ports"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

var _ ports.SessionStore = &GormStore{}

// GormStore keeps the session slot in a single-row table.
type GormStore struct {
	db  *gorm.DB
	now func() time.Time
}

// OpenSQLite opens (creating if needed) the session database at path and
// migrates the slot table.
func OpenSQLite(path string) (*GormStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open session db %s: %w", path, err)
	}
	return NewGormStore(db)
}

// NewGormStore migrates the slot table on db.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&SessionDTO{}); err != nil {
		return nil, fmt.Errorf("migrate session table: %w", err)
	}
	return &GormStore{db: db, now: time.Now}, nil
}

func (s *GormStore) Load(ctx context.Context) (partner.Session, bool, error) {
	var dto SessionDTO
	if err := s.db.WithContext(ctx).First(&dto, "slot = ?", slotID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return partner.Session{}, false, nil
		}
		return partner.Session{}, false, err
	}

	session, err := toDomain(dto)
	if err != nil {
		return partner.Session{}, false, fmt.Errorf("stored session is corrupt: %w", err)
	}
	return session, true, nil
}

func (s *GormStore) Save(ctx context.Context, session partner.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}

	dto := fromDomain(session, s.now())
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&dto).Error
}

func (s *GormStore) Clear(ctx context.Context) error {
	return s.db.WithContext(ctx).Delete(&SessionDTO{}, "slot = ?", slotID).Error
}

// Close releases the underlying connection pool.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
