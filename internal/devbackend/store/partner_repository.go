package store

import (
	"context"
	"errors"
	"strings"

	"deliverypartner/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PartnerRepository struct {
	db *gorm.DB
}

func NewPartnerRepository(db *gorm.DB) *PartnerRepository {
	return &PartnerRepository{db: db}
}

func (r *PartnerRepository) Add(ctx context.Context, p *PartnerDTO) error {
	p.Email = normalizeEmail(p.Email)
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PartnerRepository) Get(ctx context.Context, id string) (PartnerDTO, error) {
	var dto PartnerDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PartnerDTO{}, errs.NewObjectNotFoundError("delivery partner", id)
		}
		return PartnerDTO{}, err
	}
	return dto, nil
}

// GetByEmail matches the address case-insensitively.
func (r *PartnerRepository) GetByEmail(ctx context.Context, email string) (PartnerDTO, error) {
	email = normalizeEmail(email)

	var dto PartnerDTO
	if err := r.db.WithContext(ctx).First(&dto, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PartnerDTO{}, errs.NewObjectNotFoundError("delivery partner", email)
		}
		return PartnerDTO{}, err
	}
	return dto, nil
}

// AddEarnings credits amount to the partner's running total.
func (r *PartnerRepository) AddEarnings(ctx context.Context, id string, amount decimal.Decimal) error {
	result := r.db.WithContext(ctx).Model(&PartnerDTO{}).
		Where("id = ?", id).
		Update("earnings", gorm.Expr("earnings + ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("delivery partner", id)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
