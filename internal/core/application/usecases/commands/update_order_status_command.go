package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"deliverypartner/internal/core/domain/model/order"
	"deliverypartner/internal/core/ports"
	"deliverypartner/internal/pkg/errs"
	"deliverypartner/internal/pkg/guard"
)

var (
	ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
		"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
	)
	ErrOrderIDIsRequired = errs.NewValueIsRequiredError("order id")
	ErrStatusIsRequired  = errs.NewValueIsRequiredError("status")
)

// UpdateOrderStatusCommand requests a status transition. The client does not
// check the transition; the backend accepts or rejects it.
//
// Example:
//
//	cmd, err := NewUpdateOrderStatusCommand(orderID, "Out for Delivery")
//	if err != nil {
//	    return err
//	}
//	updated, err := handler.Handle(ctx, cmd)
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID string
	status  order.Status

	guard guard.ConstructorGuard
}

func NewUpdateOrderStatusCommand(orderID string, status order.Status) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStatus(status),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}
	return cmd, nil
}

func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

func (c UpdateOrderStatusCommand) OrderID() string {
	return c.orderID
}

func (c UpdateOrderStatusCommand) Status() order.Status {
	return c.status
}

func (c *UpdateOrderStatusCommand) setOrderID(orderID string) error {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return ErrOrderIDIsRequired
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateOrderStatusCommand) setStatus(status order.Status) error {
	trimmed := order.Status(strings.TrimSpace(string(status)))
	if trimmed == "" {
		return ErrStatusIsRequired
	}
	c.status = trimmed
	return nil
}

// UpdateOrderStatusCommandHandler issues exactly one update request and
// returns the order as the backend stored it.
type UpdateOrderStatusCommandHandler struct {
	orders ports.OrderGateway
	logger *slog.Logger
}

func NewUpdateOrderStatusCommandHandler(
	orders ports.OrderGateway,
	logger *slog.Logger,
) *UpdateOrderStatusCommandHandler {
	return &UpdateOrderStatusCommandHandler{
		orders: orders,
		logger: logger.With("component", "update_order_status"),
	}
}

func (h *UpdateOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateOrderStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	updated, err := h.orders.UpdateStatus(ctx, cmd.OrderID(), cmd.Status())
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to update order status",
			"order_id", cmd.OrderID(), "status", cmd.Status(), "error", err)
		return nil, err
	}

	h.logger.InfoContext(ctx, "Order status updated",
		"order_id", updated.ID(), "requested", cmd.Status(), "status", updated.Status())
	return updated, nil
}
