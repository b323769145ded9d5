package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"deliverypartner/internal/core/domain/model/kernel"
	"deliverypartner/internal/core/domain/model/order"
	"deliverypartner/internal/core/domain/model/partner"
	"deliverypartner/internal/pkg/authtoken"
	"deliverypartner/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// The DTOs below mirror what the backend actually sends, which is looser than
// the domain: ids come as `_id` or `id`, products and partners may or may not
// be populated, and money may be missing.

type orderDTO struct {
	MongoID         string          `json:"_id"`
	ID              string          `json:"id"`
	Status          *string         `json:"status"`
	Items           []lineItemDTO   `json:"items"`
	FinalAmount     *json.Number    `json:"finalAmount"`
	PaymentMethod   *string         `json:"paymentMethod"`
	DeliveryAddress *addressDTO     `json:"deliveryAddress"`
	User            *customerDTO    `json:"user"`
	DeliveryCharge  *json.Number    `json:"deliveryCharge"`
	DeliveryPartner json.RawMessage `json:"deliveryPartner"`
	DeliveryDate    *string         `json:"deliveryDate"`
	CreatedAt       *string         `json:"createdAt"`
}

type lineItemDTO struct {
	Product  json.RawMessage `json:"product"`
	Price    *json.Number    `json:"price"`
	Qty      looseNumber     `json:"qty"`
	Subtotal *json.Number    `json:"subtotal"`
}

type productDTO struct {
	MongoID string `json:"_id"`
	ID      string `json:"id"`
	Name    string `json:"name"`
}

type addressDTO struct {
	Landmark    *string `json:"landmark"`
	Coordinates *struct {
		Lat looseNumber `json:"lat"`
		Lng looseNumber `json:"lng"`
	} `json:"coordinates"`
}

type customerDTO struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

type userDTO struct {
	MongoID  string       `json:"_id"`
	ID       string       `json:"id"`
	Name     *string      `json:"name"`
	Email    *string      `json:"email"`
	Phone    *string      `json:"phone"`
	Earnings *json.Number `json:"earnings"`
}

type authResponseDTO struct {
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    *userDTO `json:"user"`
}

type statusUpdateDTO struct {
	Status string `json:"status"`
}

type loginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

type verifyOTPRequestDTO struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// decodeJSON decodes numbers as json.Number so money keeps its exact decimal form.
func decodeJSON(body []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("response body", err)
	}
	return nil
}

// decodeOrderList accepts a bare array or an object wrapping the array under
// `orders` or `data`.
func decodeOrderList(body []byte) ([]*order.Order, error) {
	trimmed := bytes.TrimSpace(body)

	var dtos []orderDTO
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		return []*order.Order{}, nil
	case trimmed[0] == '[':
		if err := decodeJSON(trimmed, &dtos); err != nil {
			return nil, err
		}
	case trimmed[0] == '{':
		var envelope struct {
			Orders []orderDTO `json:"orders"`
			Data   []orderDTO `json:"data"`
		}
		if err := decodeJSON(trimmed, &envelope); err != nil {
			return nil, err
		}
		dtos = envelope.Orders
		if dtos == nil {
			dtos = envelope.Data
		}
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause("response body",
			fmt.Errorf("expected an order list, got %q", firstBytes(trimmed)))
	}

	orders := make([]*order.Order, 0, len(dtos))
	for i, dto := range dtos {
		o, err := dto.toDomain()
		if err != nil {
			return nil, fmt.Errorf("order %d: %w", i, err)
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func decodeOrder(body []byte) (*order.Order, error) {
	var dto orderDTO
	if err := decodeJSON(body, &dto); err != nil {
		return nil, err
	}
	return dto.toDomain()
}

func (d orderDTO) toDomain() (*order.Order, error) {
	items := make([]order.LineItem, 0, len(d.Items))
	for i, it := range d.Items {
		item, err := it.toDomain()
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		items = append(items, item)
	}

	finalAmount, err := money("finalAmount", d.FinalAmount)
	if err != nil {
		return nil, err
	}
	charge, err := money("deliveryCharge", d.DeliveryCharge)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:                firstNonEmpty(d.MongoID, d.ID),
		Status:            order.Status(deref(d.Status)),
		Items:             items,
		FinalAmount:       finalAmount,
		PaymentMethod:     deref(d.PaymentMethod),
		Address:           d.DeliveryAddress.toDomain(),
		Customer:          d.User.toDomain(),
		DeliveryCharge:    charge,
		DeliveryPartnerID: refID(d.DeliveryPartner),
		DeliveryDate:      parseTime(d.DeliveryDate),
		CreatedAt:         parseTime(d.CreatedAt),
	})
}

func (d lineItemDTO) toDomain() (order.LineItem, error) {
	price, err := money("price", d.Price)
	if err != nil {
		return order.LineItem{}, err
	}

	var subtotal *kernel.Money
	if d.Subtotal != nil {
		st, err := money("subtotal", d.Subtotal)
		if err != nil {
			return order.LineItem{}, err
		}
		subtotal = &st
	}

	qty, _ := d.Qty.int()

	id, name := product(d.Product)
	return order.NewLineItem(id, name, price, qty, subtotal)
}

func (d *addressDTO) toDomain() order.Address {
	if d == nil {
		return order.Address{}
	}

	var coords *kernel.Coordinates
	if d.Coordinates != nil {
		lat, latOK := d.Coordinates.Lat.float()
		lng, lngOK := d.Coordinates.Lng.float()
		if latOK && lngOK {
			if c, err := kernel.NewCoordinates(lat, lng); err == nil {
				coords = &c
			}
		}
	}
	return order.NewAddress(deref(d.Landmark), coords)
}

func (d *customerDTO) toDomain() order.Customer {
	if d == nil {
		return order.Customer{}
	}
	return order.NewCustomer(deref(d.Name), deref(d.Phone))
}

func (d *userDTO) toDomain() (partner.User, error) {
	if d == nil {
		return partner.User{}, partner.ErrUserIDIsRequired
	}
	earnings, err := money("earnings", d.Earnings)
	if err != nil {
		return partner.User{}, err
	}
	return partner.NewUser(
		firstNonEmpty(d.ID, d.MongoID),
		deref(d.Name),
		deref(d.Email),
		deref(d.Phone),
		earnings,
	)
}

// toSession builds the session of a successful sign-in. The expiry is read
// from the token when it is a JWT.
func (d authResponseDTO) toSession() (partner.Session, error) {
	user, err := d.User.toDomain()
	if err != nil {
		return partner.Session{}, err
	}

	var expiresAt *time.Time
	if exp, ok := authtoken.ParseExpiry(d.Token); ok {
		expiresAt = &exp
	}
	return partner.NewSession(user, d.Token, expiresAt)
}

// product reads a populated product object or a bare product id.
func product(raw json.RawMessage) (string, string) {
	if len(raw) == 0 {
		return "", ""
	}

	var id string
	if err := json.Unmarshal(raw, &id); err == nil {
		return id, ""
	}

	var p productDTO
	if err := json.Unmarshal(raw, &p); err == nil {
		return firstNonEmpty(p.MongoID, p.ID), p.Name
	}
	return "", ""
}

// refID reads a reference that is either an id string or a populated object.
func refID(raw json.RawMessage) string {
	id, _ := product(raw)
	return id
}

func money(field string, n *json.Number) (kernel.Money, error) {
	if n == nil || n.String() == "" {
		return kernel.ZeroMoney(), nil
	}
	m, err := kernel.MoneyFromString(n.String())
	if err != nil {
		return kernel.Money{}, fmt.Errorf("%s: %w", field, err)
	}
	return m, nil
}

// looseNumber takes a JSON number or a numeric string. Anything else decodes
// as absent so one odd field cannot fail a whole order list.
type looseNumber string

func (n *looseNumber) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}
	if _, err := decimal.NewFromString(raw); err != nil {
		*n = ""
		return nil
	}
	*n = looseNumber(raw)
	return nil
}

func (n looseNumber) value() (decimal.Decimal, bool) {
	if n == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(string(n))
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

func (n looseNumber) float() (float64, bool) {
	d, ok := n.value()
	if !ok {
		return 0, false
	}
	return d.InexactFloat64(), true
}

// int accepts integral values only, so 2.0 is 2 and 2.5 is absent.
func (n looseNumber) int() (int, bool) {
	d, ok := n.value()
	if !ok || !d.IsInteger() {
		return 0, false
	}
	return int(d.IntPart()), true
}

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", time.DateOnly}

// parseTime is lenient: an unparseable timestamp counts as absent.
func parseTime(raw *string) *time.Time {
	if raw == nil {
		return nil
	}
	s := strings.TrimSpace(*raw)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func firstBytes(b []byte) string {
	const limit = 16
	if len(b) > limit {
		return string(b[:limit])
	}
	return string(b)
}

// isoMillis formats window bounds the way the backend expects them.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"
