package order

import (
	"strings"
)

// Status is an order fulfillment state as the backend reports it. Comparison
// is case-insensitive: "Delivered" and "delivered" are the same status.
// Unrecognized values are kept verbatim so they can still be displayed.
type Status string

const (
	Received       Status = "received"
	Packed         Status = "packed"
	OutForDelivery Status = "out for delivery"
	Delivered      Status = "delivered"
	Return         Status = "return"
)

// UnknownPriority sorts unrecognized statuses after every known one.
const UnknownPriority = 99

// UnknownLabel is the group label of orders that carry no status at all.
const UnknownLabel = "Unknown"

var priorities = map[Status]int{
	OutForDelivery: 1,
	Packed:         2,
	Received:       3,
	Return:         4,
	Delivered:      5,
}

var labels = map[Status]string{
	Received:       "Received",
	Packed:         "Packed",
	OutForDelivery: "Out for Delivery",
	Delivered:      "Delivered",
	Return:         "Return",
}

// SelectableTargets lists the statuses offered by the status picker, in display order.
func SelectableTargets() []Status {
	return []Status{"Out for Delivery", "Delivered", "Return"}
}

// ParseStatus maps a raw backend value onto the vocabulary. Known values
// become their canonical lowercase form, anything else is returned trimmed.
func ParseStatus(raw string) Status {
	trimmed := strings.TrimSpace(raw)
	canonical := Status(strings.ToLower(trimmed))
	if _, ok := priorities[canonical]; ok {
		return canonical
	}
	return Status(trimmed)
}

// Is compares two statuses case-insensitively.
func (s Status) Is(other Status) bool {
	return strings.EqualFold(strings.TrimSpace(string(s)), strings.TrimSpace(string(other)))
}

func (s Status) IsDelivered() bool {
	return s.Is(Delivered)
}

func (s Status) IsReturn() bool {
	return s.Is(Return)
}

// IsKnown reports whether the status belongs to the vocabulary.
func (s Status) IsKnown() bool {
	_, ok := priorities[ParseStatus(string(s))]
	return ok
}

// Priority is the list view group order: out for delivery first, delivered last.
func (s Status) Priority() int {
	if p, ok := priorities[ParseStatus(string(s))]; ok {
		return p
	}
	return UnknownPriority
}

// Key is the grouping key. Known statuses collapse to their canonical form,
// unknown ones keep the raw value, and an empty status becomes UnknownLabel.
// A raw "Unknown" therefore lands in the same group as a missing status.
func (s Status) Key() string {
	parsed := ParseStatus(string(s))
	if parsed == "" {
		return UnknownLabel
	}
	return string(parsed)
}

// Label is the display form, e.g. "Out for Delivery".
func (s Status) Label() string {
	if label, ok := labels[ParseStatus(string(s))]; ok {
		return label
	}
	return s.Key()
}

func (s Status) String() string {
	return string(s)
}
