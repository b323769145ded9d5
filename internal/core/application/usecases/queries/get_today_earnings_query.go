package queries

import (
	"context"
	"errors"
	"time"

	"deliverypartner/internal/core/domain/model/kernel"
	"deliverypartner/internal/core/domain/model/order"
	"deliverypartner/internal/core/ports"
	"deliverypartner/internal/pkg/guard"
)

var ErrGetTodayEarningsQueryIsNotConstructed = errors.New(
	"GetTodayEarningsQuery must be created via NewGetTodayEarningsQuery constructor",
)

// GetTodayEarningsQuery sums the delivery charges earned during the local day
// that contains the reference instant.
type GetTodayEarningsQuery struct {
	now time.Time

	guard guard.ConstructorGuard
}

func NewGetTodayEarningsQuery(now time.Time) GetTodayEarningsQuery {
	return GetTodayEarningsQuery{now: now, guard: guard.NewConstructorGuard()}
}

func (q GetTodayEarningsQuery) Validate() error {
	return q.guard.Validate(ErrGetTodayEarningsQueryIsNotConstructed)
}

func (q GetTodayEarningsQuery) Now() time.Time {
	return q.now
}

// TodayEarnings is presentational only; it is never sent back.
type TodayEarnings struct {
	Window    ports.TimeWindow
	Delivered []*order.Order
	Total     kernel.Money
}

type GetTodayEarningsQueryHandler struct {
	orders ports.OrderGateway
	user   CurrentUser
}

func NewGetTodayEarningsQueryHandler(orders ports.OrderGateway, user CurrentUser) GetTodayEarningsQueryHandler {
	return GetTodayEarningsQueryHandler{orders: orders, user: user}
}

func (h GetTodayEarningsQueryHandler) Handle(ctx context.Context, query GetTodayEarningsQuery) (TodayEarnings, error) {
	if err := query.Validate(); err != nil {
		return TodayEarnings{}, err
	}

	u, err := h.user.RequireUser()
	if err != nil {
		return TodayEarnings{}, err
	}

	start, end := order.TodayWindow(query.Now())
	window := ports.TimeWindow{Start: start, End: end}

	orders, err := h.orders.ListAssigned(ctx, u.ID(), &window)
	if err != nil {
		return TodayEarnings{}, err
	}

	return TodayEarnings{
		Window:    window,
		Delivered: order.OnlyDelivered(orders),
		Total:     order.SumDeliveredCharges(orders),
	}, nil
}
