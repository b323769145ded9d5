package order_test

import (
	"testing"
	"time"

	"deliverypartner/internal/core/domain/model/kernel"
	"deliverypartner/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func newOrder(t *testing.T, id string, status order.Status, charge string) *order.Order {
	t.Helper()

	s := order.Snapshot{ID: id, Status: status}
	if charge != "" {
		s.DeliveryCharge = kernel.MustMoney(charge)
	}

	o, err := order.RestoreOrder(s)
	require.NoError(t, err)
	return o
}

func newDeliveredOn(t *testing.T, id string, at *time.Time) *order.Order {
	t.Helper()

	o, err := order.RestoreOrder(order.Snapshot{ID: id, Status: order.Delivered, DeliveryDate: at})
	require.NoError(t, err)
	return o
}

func ids(orders []*order.Order) []string {
	out := make([]string, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID())
	}
	return out
}
