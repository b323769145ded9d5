package queries

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"deliverypartner/internal/core/domain/model/order"
	"deliverypartner/internal/core/domain/services"
	"deliverypartner/internal/core/ports"
	"deliverypartner/internal/pkg/errs"
	"deliverypartner/internal/pkg/guard"
)

var ErrGetAssignedOrdersQueryIsNotConstructed = errors.New(
	"GetAssignedOrdersQuery must be created via NewGetAssignedOrdersQuery constructor",
)

// Scope selects which listing endpoint feeds the board.
type Scope string

const (
	// ScopeAssigned lists the signed-in partner's orders.
	ScopeAssigned Scope = "assigned"
	// ScopeAll lists every order through the unscoped legacy endpoint.
	ScopeAll Scope = "all"
)

// GetAssignedOrdersQuery builds the list view: fetch, filter, group, count.
//
// Example:
//
//	query, _ := NewGetAssignedOrdersQuery(order.FilterAll, ScopeAssigned, nil)
//	board, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d pending, %d delivered\n", board.Pending, board.Delivered)
type GetAssignedOrdersQuery struct {
	filter string
	scope  Scope
	window *ports.TimeWindow

	guard guard.ConstructorGuard
}

// NewGetAssignedOrdersQuery accepts an empty filter as order.FilterAll and an
// empty scope as ScopeAssigned. window is only honoured for ScopeAssigned.
func NewGetAssignedOrdersQuery(filter string, scope Scope, window *ports.TimeWindow) (GetAssignedOrdersQuery, error) {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		filter = order.FilterAll
	}

	switch scope {
	case "":
		scope = ScopeAssigned
	case ScopeAssigned, ScopeAll:
	default:
		return GetAssignedOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"scope", fmt.Errorf("unknown scope %q", scope))
	}

	if window != nil && window.End.Before(window.Start) {
		return GetAssignedOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"window", errors.New("end is before start"))
	}

	return GetAssignedOrdersQuery{
		filter: filter,
		scope:  scope,
		window: window,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q GetAssignedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAssignedOrdersQueryIsNotConstructed)
}

func (q GetAssignedOrdersQuery) Filter() string {
	return q.filter
}

func (q GetAssignedOrdersQuery) Scope() Scope {
	return q.scope
}

func (q GetAssignedOrdersQuery) Window() *ports.TimeWindow {
	return q.window
}

type GetAssignedOrdersQueryHandler struct {
	orders ports.OrderGateway
	user   CurrentUser
	board  services.OrderBoard
}

func NewGetAssignedOrdersQueryHandler(
	orders ports.OrderGateway,
	user CurrentUser,
	board services.OrderBoard,
) GetAssignedOrdersQueryHandler {
	return GetAssignedOrdersQueryHandler{orders: orders, user: user, board: board}
}

func (h GetAssignedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAssignedOrdersQuery,
) (services.Board, error) {
	if err := query.Validate(); err != nil {
		return services.Board{}, err
	}

	var (
		orders []*order.Order
		err    error
	)
	switch query.Scope() {
	case ScopeAll:
		orders, err = h.orders.ListAll(ctx)
	default:
		u, userErr := h.user.RequireUser()
		if userErr != nil {
			return services.Board{}, userErr
		}
		orders, err = h.orders.ListAssigned(ctx, u.ID(), query.Window())
	}
	if err != nil {
		return services.Board{}, err
	}

	return h.board.Build(orders, query.Filter()), nil
}
