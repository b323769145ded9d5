package queries

import (
	"context"
	"errors"
	"time"

	"deliverypartner/internal/core/domain/model/order"
	"deliverypartner/internal/core/ports"
	"deliverypartner/internal/pkg/guard"
)

var ErrGetDeliveryHistoryQueryIsNotConstructed = errors.New(
	"GetDeliveryHistoryQuery must be created via NewGetDeliveryHistoryQuery constructor",
)

// GetDeliveryHistoryQuery lists the partner's delivered orders grouped by
// delivery day, newest day first.
type GetDeliveryHistoryQuery struct {
	location *time.Location

	guard guard.ConstructorGuard
}

// NewGetDeliveryHistoryQuery groups days in loc; nil means the local zone.
func NewGetDeliveryHistoryQuery(loc *time.Location) GetDeliveryHistoryQuery {
	if loc == nil {
		loc = time.Local
	}
	return GetDeliveryHistoryQuery{location: loc, guard: guard.NewConstructorGuard()}
}

func (q GetDeliveryHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryHistoryQueryIsNotConstructed)
}

func (q GetDeliveryHistoryQuery) Location() *time.Location {
	return q.location
}

type GetDeliveryHistoryQueryHandler struct {
	orders ports.OrderGateway
	user   CurrentUser
}

func NewGetDeliveryHistoryQueryHandler(orders ports.OrderGateway, user CurrentUser) GetDeliveryHistoryQueryHandler {
	return GetDeliveryHistoryQueryHandler{orders: orders, user: user}
}

// Handle returns an empty, non-nil slice when nothing was delivered yet.
func (h GetDeliveryHistoryQueryHandler) Handle(ctx context.Context, query GetDeliveryHistoryQuery) ([]order.Group, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	u, err := h.user.RequireUser()
	if err != nil {
		return nil, err
	}

	orders, err := h.orders.ListAssigned(ctx, u.ID(), nil)
	if err != nil {
		return nil, err
	}

	return order.GroupByDeliveryDate(order.OnlyDelivered(orders), query.Location()), nil
}
