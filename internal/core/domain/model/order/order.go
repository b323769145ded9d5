package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"deliverypartner/internal/core/domain/model/kernel"
	"deliverypartner/internal/pkg/errs"
	"deliverypartner/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not built by RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via RestoreOrder")

	// ErrIDIsRequired is returned for an order payload without an identifier.
	ErrIDIsRequired = errs.NewValueIsRequiredError("order id")
)

// Snapshot carries the fields of an order as decoded from a backend payload.
// It is the only input to RestoreOrder; the client never builds orders any other way.
type Snapshot struct {
	ID                string
	Status            Status
	Items             []LineItem
	FinalAmount       kernel.Money
	PaymentMethod     string
	Address           Address
	Customer          Customer
	DeliveryCharge    kernel.Money
	DeliveryPartnerID string
	DeliveryDate      *time.Time
	CreatedAt         *time.Time
}

// Order is a backend order as the client last saw it.
//
// Order is a read model: there are no mutators. After a status update the
// caller replaces its Order wholesale with the one the backend returned, so
// server-computed fields (final amount, delivery charge) never diverge.
type Order struct {
	id                string
	status            Status
	items             []LineItem
	finalAmount       kernel.Money
	paymentMethod     string
	address           Address
	customer          Customer
	deliveryCharge    kernel.Money
	deliveryPartnerID string
	deliveryDate      *time.Time
	createdAt         *time.Time

	guard guard.ConstructorGuard
}

// RestoreOrder rebuilds an order from a backend snapshot.
//
// Only the identifier is mandatory. A missing status is kept empty and is
// grouped under UnknownLabel; an unrecognized one is kept verbatim.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		o.setID(s.ID),
		o.setItems(s.Items),
	); err != nil {
		return nil, err
	}

	o.status = ParseStatus(string(s.Status))
	o.finalAmount = s.FinalAmount
	o.paymentMethod = strings.TrimSpace(s.PaymentMethod)
	o.address = s.Address
	o.customer = s.Customer
	o.deliveryCharge = s.DeliveryCharge
	o.deliveryPartnerID = s.DeliveryPartnerID
	o.deliveryDate = copyTime(s.DeliveryDate)
	o.createdAt = copyTime(s.CreatedAt)

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id == other.id
}

func (o *Order) ID() string {
	return o.id
}

func (o *Order) Status() Status {
	return o.status
}

// Items returns a copy of the line items in backend order.
func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

func (o *Order) FinalAmount() kernel.Money {
	return o.finalAmount
}

func (o *Order) PaymentMethod() string {
	return o.paymentMethod
}

func (o *Order) Address() Address {
	return o.address
}

func (o *Order) Customer() Customer {
	return o.customer
}

// DeliveryCharge is zero when the backend did not report one.
func (o *Order) DeliveryCharge() kernel.Money {
	return o.deliveryCharge
}

func (o *Order) DeliveryPartnerID() string {
	return o.deliveryPartnerID
}

// DeliveryDate returns the delivery instant and whether one was reported.
func (o *Order) DeliveryDate() (time.Time, bool) {
	if o.deliveryDate == nil {
		return time.Time{}, false
	}
	return *o.deliveryDate, true
}

// CreatedAt returns the creation instant and whether one was reported.
func (o *Order) CreatedAt() (time.Time, bool) {
	if o.createdAt == nil {
		return time.Time{}, false
	}
	return *o.createdAt, true
}

// IsDelivered reports whether the order reached its final delivered state.
func (o *Order) IsDelivered() bool {
	return o.status.IsDelivered()
}

// IsPending reports whether the order still needs the partner: neither delivered nor returned.
func (o *Order) IsPending() bool {
	return !o.status.IsDelivered() && !o.status.IsReturn()
}

// ItemCount sums line item quantities.
func (o *Order) ItemCount() int {
	total := 0
	for _, item := range o.items {
		total += item.Quantity()
	}
	return total
}

func (o *Order) setID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrIDIsRequired
	}
	o.id = id
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	for i, item := range items {
		if item.quantity < 0 {
			return errs.NewValueIsInvalidErrorWithCause(
				"items",
				fmt.Errorf("item %d has negative quantity %d", i, item.quantity),
			)
		}
	}
	o.items = make([]LineItem, len(items))
	copy(o.items, items)
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// LineItem is one ordered product. Subtotals are the backend's to compute;
// when the backend omits one, Subtotal falls back to price times quantity for display only.
type LineItem struct {
	productID   string
	productName string
	unitPrice   kernel.Money
	quantity    int
	subtotal    *kernel.Money
}

// NewLineItem builds a line item. serverSubtotal may be nil.
func NewLineItem(
	productID, productName string,
	unitPrice kernel.Money,
	quantity int,
	serverSubtotal *kernel.Money,
) (LineItem, error) {
	if quantity < 0 {
		return LineItem{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 0, "unbounded")
	}

	item := LineItem{
		productID:   strings.TrimSpace(productID),
		productName: strings.TrimSpace(productName),
		unitPrice:   unitPrice,
		quantity:    quantity,
	}
	if serverSubtotal != nil {
		st := *serverSubtotal
		item.subtotal = &st
	}
	return item, nil
}

func (l LineItem) ProductID() string {
	return l.productID
}

// ProductName falls back to the product id when the backend did not populate the product.
func (l LineItem) ProductName() string {
	if l.productName != "" {
		return l.productName
	}
	return l.productID
}

func (l LineItem) UnitPrice() kernel.Money {
	return l.unitPrice
}

func (l LineItem) Quantity() int {
	return l.quantity
}

func (l LineItem) HasServerSubtotal() bool {
	return l.subtotal != nil
}

func (l LineItem) Subtotal() kernel.Money {
	if l.subtotal != nil {
		return *l.subtotal
	}
	return l.unitPrice.Times(l.quantity)
}

// Address is the delivery destination: a free-text landmark and optional coordinates.
type Address struct {
	landmark    string
	coordinates *kernel.Coordinates
}

// NewAddress builds an address. coordinates may be nil.
func NewAddress(landmark string, coordinates *kernel.Coordinates) Address {
	a := Address{landmark: strings.TrimSpace(landmark)}
	if coordinates != nil && coordinates.Validate() == nil {
		c := *coordinates
		a.coordinates = &c
	}
	return a
}

func (a Address) Landmark() string {
	return a.landmark
}

func (a Address) Coordinates() (kernel.Coordinates, bool) {
	if a.coordinates == nil {
		return kernel.Coordinates{}, false
	}
	return *a.coordinates, true
}

// DirectionsURL is empty when the address has no coordinates.
func (a Address) DirectionsURL() string {
	if a.coordinates == nil {
		return ""
	}
	return a.coordinates.DirectionsURL()
}

// Customer is the buyer the partner delivers to.
type Customer struct {
	name  string
	phone string
}

func NewCustomer(name, phone string) Customer {
	return Customer{name: strings.TrimSpace(name), phone: strings.TrimSpace(phone)}
}

func (c Customer) Name() string {
	return c.name
}

func (c Customer) Phone() string {
	return c.phone
}

// CallURI is the telephony link for "call customer", empty without a phone number.
func (c Customer) CallURI() string {
	if c.phone == "" {
		return ""
	}
	return "tel:" + c.phone
}
