package order_test

import (
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"deliverypartner/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupByStatus(t *testing.T) {
	orders := []*order.Order{
		newOrder(t, "1", order.Delivered, "50"),
		newOrder(t, "2", order.Packed, ""),
		newOrder(t, "3", "unknown-status", ""),
		newOrder(t, "4", "Out for Delivery", ""),
		newOrder(t, "5", order.Received, ""),
		newOrder(t, "6", "Packed", ""),
		newOrder(t, "7", "", ""),
		newOrder(t, "8", order.Return, ""),
	}

	groups := order.GroupByStatus(orders)

	keys := make([]string, 0, len(groups))
	for _, g := range groups {
		keys = append(keys, g.Key)
	}
	assert.Equal(t, []string{
		"out for delivery", "packed", "received", "return", "delivered", "unknown-status", order.UnknownLabel,
	}, keys)
	assert.Equal(t, []string{"2", "6"}, ids(groups[1].Items), "fetch order inside a group")
}

func TestGroupByStatus_RawUnknownJoinsMissingStatusGroup(t *testing.T) {
	groups := order.GroupByStatus([]*order.Order{
		newOrder(t, "1", "", ""),
		newOrder(t, "2", "Unknown", ""),
		newOrder(t, "3", order.Packed, ""),
	})

	require.Len(t, groups, 2)
	assert.Equal(t, "packed", groups[0].Key)
	assert.Equal(t, order.UnknownLabel, groups[1].Key)
	assert.Equal(t, []string{"1", "2"}, ids(groups[1].Items))
}

func TestGroupByStatus_Empty(t *testing.T) {
	groups := order.GroupByStatus(nil)

	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}

func TestGroupByStatus_Properties(t *testing.T) {
	vocabulary := []order.Status{
		"received", "Packed", "out for delivery", "Delivered", "return", "unknown-status", "",
	}
	rng := rand.New(rand.NewPCG(7, 11))

	for run := 0; run < 50; run++ {
		n := rng.IntN(30)
		orders := make([]*order.Order, 0, n)
		for i := 0; i < n; i++ {
			status := vocabulary[rng.IntN(len(vocabulary))]
			orders = append(orders, newOrder(t, fmt.Sprintf("%d-%d", run, i), status, ""))
		}

		groups := order.GroupByStatus(orders)

		seen := make(map[*order.Order]int)
		prev := 0
		for _, g := range groups {
			p := order.Status(g.Key).Priority()
			require.GreaterOrEqual(t, p, prev, "groups must follow priority")
			prev = p
			for _, o := range g.Items {
				seen[o]++
				assert.Equal(t, g.Key, o.Status().Key())
			}
		}
		require.Len(t, seen, len(orders), "every order appears in a group")
		for _, count := range seen {
			require.Equal(t, 1, count, "every order appears exactly once")
		}
	}
}

func TestFilterByStatus(t *testing.T) {
	orders := []*order.Order{
		newOrder(t, "1", "Delivered", ""),
		newOrder(t, "2", order.Packed, ""),
		newOrder(t, "3", order.Delivered, ""),
		newOrder(t, "4", "", ""),
	}

	t.Run("single status is case-insensitive", func(t *testing.T) {
		groups := order.GroupByStatus(order.FilterByStatus(orders, "DELIVERED"))

		require.Len(t, groups, 1)
		assert.Equal(t, "delivered", groups[0].Key)
		assert.Equal(t, []string{"1", "3"}, ids(groups[0].Items))
	})

	t.Run("All equals no filter", func(t *testing.T) {
		assert.Equal(t, order.GroupByStatus(orders), order.GroupByStatus(order.FilterByStatus(orders, order.FilterAll)))
		assert.Equal(t, order.GroupByStatus(orders), order.GroupByStatus(order.FilterByStatus(orders, "all")))
		assert.Equal(t, order.GroupByStatus(orders), order.GroupByStatus(order.FilterByStatus(orders, "")))
	})

	t.Run("Unknown matches orders without status", func(t *testing.T) {
		assert.Equal(t, []string{"4"}, ids(order.FilterByStatus(orders, order.UnknownLabel)))
	})

	t.Run("no match yields no groups", func(t *testing.T) {
		assert.Empty(t, order.GroupByStatus(order.FilterByStatus(orders, "Return")))
	})
}

func TestGroupByDeliveryDate(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	day1 := time.Date(2025, 3, 1, 9, 0, 0, 0, loc)
	day1Late := time.Date(2025, 3, 1, 23, 0, 0, 0, loc)
	day2 := time.Date(2025, 3, 2, 8, 0, 0, 0, loc)
	prevYear := time.Date(2024, 12, 31, 8, 0, 0, 0, loc)

	orders := []*order.Order{
		newDeliveredOn(t, "a", &day1),
		newDeliveredOn(t, "b", &prevYear),
		newDeliveredOn(t, "c", nil),
		newDeliveredOn(t, "d", &day2),
		newDeliveredOn(t, "e", &day1Late),
	}

	groups := order.GroupByDeliveryDate(orders, loc)

	require.Len(t, groups, 4)
	assert.Equal(t, "02/03/2025", groups[0].Key)
	assert.Equal(t, "01/03/2025", groups[1].Key)
	assert.Equal(t, []string{"a", "e"}, ids(groups[1].Items))
	assert.Equal(t, "31/12/2024", groups[2].Key)
	assert.Equal(t, order.NoDeliveryDateLabel, groups[3].Key)
}

func TestGroupByDeliveryDate_UsesLocation(t *testing.T) {
	utcEvening := time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC)
	o := newDeliveredOn(t, "a", &utcEvening)

	groups := order.GroupByDeliveryDate([]*order.Order{o}, time.FixedZone("IST", 5*3600+1800))

	require.Len(t, groups, 1)
	assert.Equal(t, "02/03/2025", groups[0].Key)
}

func TestTodayWindow(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2025, 3, 14, 15, 4, 5, 0, loc)

	start, end := order.TodayWindow(now)

	assert.True(t, time.Date(2025, 3, 14, 0, 0, 0, 0, loc).Equal(start))
	assert.True(t, time.Date(2025, 3, 14, 23, 59, 59, 999_000_000, loc).Equal(end))
	assert.Equal(t, loc, start.Location())
}
