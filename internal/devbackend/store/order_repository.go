package store

import (
	"context"
	"errors"
	"time"

	"deliverypartner/internal/pkg/errs"

	"gorm.io/gorm"
)

// Window bounds order listings by delivery date, falling back to creation
// date for undelivered orders. Nil ends are open.
type Window struct {
	Start *time.Time
	End   *time.Time
}

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Add inserts an order with its items.
func (r *OrderRepository) Add(ctx context.Context, o *OrderDTO) error {
	return r.db.WithContext(ctx).Create(o).Error
}

// List returns every order, newest first.
func (r *OrderRepository) List(ctx context.Context) ([]OrderDTO, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", orderItems).
		Order("created_at DESC").
		Find(&dtos).Error
	return dtos, err
}

// ListByPartner returns the orders assigned to partnerID inside window, newest first.
func (r *OrderRepository) ListByPartner(ctx context.Context, partnerID string, window Window) ([]OrderDTO, error) {
	q := r.db.WithContext(ctx).
		Preload("Items", orderItems).
		Where("delivery_partner_id = ?", partnerID)
	if window.Start != nil {
		q = q.Where("COALESCE(delivery_date, created_at) >= ?", *window.Start)
	}
	if window.End != nil {
		q = q.Where("COALESCE(delivery_date, created_at) <= ?", *window.End)
	}

	var dtos []OrderDTO
	err := q.Order("created_at DESC").Find(&dtos).Error
	return dtos, err
}

// Get returns one order with its items.
func (r *OrderRepository) Get(ctx context.Context, id string) (OrderDTO, error) {
	var dto OrderDTO
	if err := r.db.WithContext(ctx).Preload("Items", orderItems).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderDTO{}, errs.NewObjectNotFoundError("order", id)
		}
		return OrderDTO{}, err
	}
	return dto, nil
}

// Update writes the mutable columns of an existing order.
func (r *OrderRepository) Update(ctx context.Context, o OrderDTO) error {
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", o.ID).Updates(map[string]any{
		"status":          o.Status,
		"delivery_charge": o.DeliveryCharge,
		"final_amount":    o.FinalAmount,
		"delivery_date":   o.DeliveryDate,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", o.ID)
	}
	return nil
}

// Promote moves orders in status from to status to when they were created
// at or before cutoff. It returns how many orders moved.
func (r *OrderRepository) Promote(ctx context.Context, from, to string, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("LOWER(status) = LOWER(?) AND created_at <= ?", from, cutoff).
		Updates(map[string]any{"status": to, "updated_at": time.Now()})
	return result.RowsAffected, result.Error
}

// Count returns the number of stored orders.
func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).Count(&n).Error
	return n, err
}

func orderItems(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}
