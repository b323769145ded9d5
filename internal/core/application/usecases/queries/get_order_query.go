package queries

import (
	"context"
	"errors"
	"strings"

	"deliverypartner/internal/core/domain/model/order"
	"deliverypartner/internal/core/ports"
	"deliverypartner/internal/pkg/errs"
	"deliverypartner/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
	ErrOrderIDIsRequired = errs.NewValueIsRequiredError("order id")
)

// GetOrderQuery fetches one order for the detail view. A missing order comes
// back as errs.ErrObjectNotFound, which the view renders as a terminal empty state.
type GetOrderQuery struct {
	orderID string

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID string) (GetOrderQuery, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return GetOrderQuery{}, ErrOrderIDIsRequired
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() string {
	return q.orderID
}

type GetOrderQueryHandler struct {
	orders ports.OrderGateway
}

func NewGetOrderQueryHandler(orders ports.OrderGateway) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.orders.Get(ctx, query.OrderID())
}
