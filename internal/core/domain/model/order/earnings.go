package order

import (
	"deliverypartner/internal/core/domain/model/kernel"
)

// SumDeliveredCharges adds the delivery charges of delivered orders.
// Other statuses are ignored and an absent charge counts as zero.
func SumDeliveredCharges(orders []*Order) kernel.Money {
	total := kernel.ZeroMoney()
	for _, o := range orders {
		if o.IsDelivered() {
			total = total.Add(o.DeliveryCharge())
		}
	}
	return total
}

// OnlyDelivered keeps delivered orders in their original order.
func OnlyDelivered(orders []*Order) []*Order {
	delivered := make([]*Order, 0, len(orders))
	for _, o := range orders {
		if o.IsDelivered() {
			delivered = append(delivered, o)
		}
	}
	return delivered
}
