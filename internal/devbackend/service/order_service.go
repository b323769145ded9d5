// Package service holds the development backend's use cases: order
// listing and status changes, and partner sign-in.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"deliverypartner/internal/core/domain/model/order"
	"deliverypartner/internal/devbackend/store"
	"deliverypartner/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrOrderAlreadyDelivered = errors.New("order is already delivered")

type OrderService struct {
	db             *gorm.DB
	orders         *store.OrderRepository
	deliveryCharge decimal.Decimal
	now            func() time.Time
	logger         *slog.Logger
}

// NewOrderService builds the service. deliveryCharge is applied to orders
// delivered without a charge of their own.
func NewOrderService(db *gorm.DB, deliveryCharge decimal.Decimal, logger *slog.Logger) *OrderService {
	return &OrderService{
		db:             db,
		orders:         store.NewOrderRepository(db),
		deliveryCharge: deliveryCharge,
		now:            time.Now,
		logger:         logger.With("component", "OrderService"),
	}
}

func (s *OrderService) List(ctx context.Context) ([]store.OrderDTO, error) {
	return s.orders.List(ctx)
}

func (s *OrderService) ListForPartner(ctx context.Context, partnerID string, window store.Window) ([]store.OrderDTO, error) {
	if strings.TrimSpace(partnerID) == "" {
		return nil, errs.NewValueIsRequiredError("userId")
	}
	if window.Start != nil && window.End != nil && window.End.Before(*window.Start) {
		return nil, errs.NewValueIsInvalidError("end")
	}
	return s.orders.ListByPartner(ctx, partnerID, window)
}

func (s *OrderService) Get(ctx context.Context, id string) (store.OrderDTO, error) {
	return s.orders.Get(ctx, id)
}

// UpdateStatus moves an order to status. Delivering an order stamps the
// delivery date, settles the charge, recomputes the final amount and
// credits the assigned partner, all in one transaction.
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (store.OrderDTO, error) {
	status = strings.TrimSpace(status)
	target := order.ParseStatus(status)
	if !target.IsKnown() {
		return store.OrderDTO{}, errs.NewValueIsInvalidError("status")
	}

	uow := store.NewUnitOfWork(s.db)
	if err := uow.Begin(ctx); err != nil {
		return store.OrderDTO{}, err
	}

	if err := s.applyStatus(ctx, uow, id, status, target); err != nil {
		if rbErr := uow.Rollback(ctx); rbErr != nil {
			s.logger.ErrorContext(ctx, "rollback failed", "orderId", id, "error", rbErr)
		}
		return store.OrderDTO{}, err
	}
	if err := uow.Commit(ctx); err != nil {
		return store.OrderDTO{}, err
	}

	s.logger.InfoContext(ctx, "order status updated", "orderId", id, "status", status)
	return s.orders.Get(ctx, id)
}

func (s *OrderService) applyStatus(
	ctx context.Context,
	uow *store.UnitOfWork,
	id, status string,
	target order.Status,
) error {
	dto, err := uow.Orders().Get(ctx, id)
	if err != nil {
		return err
	}
	if order.Status(dto.Status).IsDelivered() {
		return ErrOrderAlreadyDelivered
	}

	dto.Status = status
	if target.IsDelivered() {
		now := s.now().UTC()
		dto.DeliveryDate = &now
		if dto.DeliveryCharge.IsZero() {
			dto.DeliveryCharge = s.deliveryCharge
		}
		dto.FinalAmount = dto.ItemsTotal().Add(dto.DeliveryCharge)
	}
	if err := uow.Orders().Update(ctx, dto); err != nil {
		return err
	}

	if target.IsDelivered() && dto.DeliveryPartnerID != nil {
		if err := uow.Partners().AddEarnings(ctx, *dto.DeliveryPartnerID, dto.DeliveryCharge); err != nil {
			return err
		}
	}
	return nil
}

// PromoteReceived moves received orders older than minAge to packed.
func (s *OrderService) PromoteReceived(ctx context.Context, minAge time.Duration) (int64, error) {
	return s.orders.Promote(ctx, string(order.Received), string(order.Packed), s.now().Add(-minAge))
}
