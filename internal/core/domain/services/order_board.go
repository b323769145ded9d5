package services

import (
	"deliverypartner/internal/core/domain/model/kernel"
	"deliverypartner/internal/core/domain/model/order"
)

// Board is the list view model built from one fetch of the partner's orders.
//
// Counts are computed over every fetched order, the filter only narrows Groups.
type Board struct {
	Filter    string
	Groups    []order.Group
	Total     int
	Pending   int
	Delivered int
	Earnings  kernel.Money
}

// IsEmpty reports whether the filtered view has nothing to show.
func (b Board) IsEmpty() bool {
	return len(b.Groups) == 0
}

// OrderBoard builds list view models.
//
// Example usage:
//
//	board := services.NewOrderBoard().Build(orders, "Packed")
//	if board.IsEmpty() {
//	    fmt.Println("No orders found.")
//	}
type OrderBoard struct{}

func NewOrderBoard() OrderBoard {
	return OrderBoard{}
}

// Build filters orders by status (order.FilterAll for none), groups what is
// left by status priority and counts pending orders, delivered orders and the
// delivery charges earned on them.
func (OrderBoard) Build(orders []*order.Order, filter string) Board {
	if filter == "" {
		filter = order.FilterAll
	}

	board := Board{
		Filter:   filter,
		Groups:   order.GroupByStatus(order.FilterByStatus(orders, filter)),
		Total:    len(orders),
		Earnings: order.SumDeliveredCharges(orders),
	}

	for _, o := range orders {
		switch {
		case o.IsDelivered():
			board.Delivered++
		case o.IsPending():
			board.Pending++
		}
	}

	return board
}
