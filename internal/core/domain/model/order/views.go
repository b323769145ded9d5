package order

import (
	"cmp"
	"strings"
	"time"

	"deliverypartner/internal/pkg/grouping"
)

// FilterAll disables status filtering.
const FilterAll = "All"

// DeliveryDateLayout is the dd/mm/yyyy key of delivery history groups.
const DeliveryDateLayout = "02/01/2006"

// NoDeliveryDateLabel groups delivered orders the backend reported without a date.
const NoDeliveryDateLabel = "No date"

// Group is a labelled run of orders.
type Group = grouping.Group[string, *Order]

// FilterByStatus keeps orders whose status matches filter case-insensitively.
// FilterAll or an empty filter returns the input unchanged.
func FilterByStatus(orders []*Order, filter string) []*Order {
	filter = strings.TrimSpace(filter)
	if filter == "" || strings.EqualFold(filter, FilterAll) {
		return orders
	}

	want := Status(filter).Key()
	filtered := make([]*Order, 0, len(orders))
	for _, o := range orders {
		if strings.EqualFold(o.Status().Key(), want) {
			filtered = append(filtered, o)
		}
	}
	return filtered
}

// GroupByStatus groups orders by status key in priority order: out for
// delivery, packed, received, return, delivered, then unrecognized statuses
// in the order they first appear. Orders keep fetch order inside a group.
func GroupByStatus(orders []*Order) []Group {
	return grouping.By(
		orders,
		func(o *Order) string { return o.Status().Key() },
		func(a, b string) int { return cmp.Compare(Status(a).Priority(), Status(b).Priority()) },
	)
}

// GroupByDeliveryDate groups orders by the calendar day of their delivery
// date in loc, newest day first. Orders without a delivery date come last.
func GroupByDeliveryDate(orders []*Order, loc *time.Location) []Group {
	if loc == nil {
		loc = time.Local
	}

	return grouping.By(
		orders,
		func(o *Order) string {
			d, ok := o.DeliveryDate()
			if !ok {
				return NoDeliveryDateLabel
			}
			return d.In(loc).Format(DeliveryDateLayout)
		},
		compareDayKeysNewestFirst,
	)
}

func compareDayKeysNewestFirst(a, b string) int {
	da, errA := time.Parse(DeliveryDateLayout, a)
	db, errB := time.Parse(DeliveryDateLayout, b)

	switch {
	case errA != nil && errB != nil:
		return 0
	case errA != nil:
		return 1
	case errB != nil:
		return -1
	default:
		return db.Compare(da)
	}
}

// TodayWindow returns the inclusive local-day interval containing now:
// 00:00:00.000 through 23:59:59.999 in now's location.
func TodayWindow(now time.Time) (time.Time, time.Time) {
	y, m, d := now.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1).Add(-time.Millisecond)
	return start, end
}
