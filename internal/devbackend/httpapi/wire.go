package httpapi

import (
	"encoding/json"
	"time"

	"deliverypartner/internal/devbackend/service"
	"deliverypartner/internal/devbackend/store"

	"github.com/shopspring/decimal"
)

const isoMillis = "2006-01-02T15:04:05.000Z07:00"

type errorJSON struct {
	Error string `json:"error"`
}

type orderJSON struct {
	ID              string         `json:"_id"`
	Status          string         `json:"status"`
	Items           []lineItemJSON `json:"items"`
	FinalAmount     json.Number    `json:"finalAmount"`
	PaymentMethod   string         `json:"paymentMethod"`
	DeliveryAddress addressJSON    `json:"deliveryAddress"`
	User            customerJSON   `json:"user"`
	DeliveryCharge  json.Number    `json:"deliveryCharge"`
	DeliveryPartner *string        `json:"deliveryPartner"`
	DeliveryDate    *string        `json:"deliveryDate"`
	CreatedAt       string         `json:"createdAt"`
}

type lineItemJSON struct {
	Product  productJSON `json:"product"`
	Price    json.Number `json:"price"`
	Qty      int         `json:"qty"`
	Subtotal json.Number `json:"subtotal"`
}

type productJSON struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

type addressJSON struct {
	Landmark    string           `json:"landmark"`
	Coordinates *coordinatesJSON `json:"coordinates,omitempty"`
}

type coordinatesJSON struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type customerJSON struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type userJSON struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Phone    string      `json:"phone"`
	Earnings json.Number `json:"earnings"`
}

type loginResponseJSON struct {
	Message string    `json:"message"`
	Token   string    `json:"token,omitempty"`
	User    *userJSON `json:"user,omitempty"`
}

type authResponseJSON struct {
	Token string   `json:"token"`
	User  userJSON `json:"user"`
}

type statusUpdateJSON struct {
	Status string `json:"status"`
}

type loginRequestJSON struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyOTPRequestJSON struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type ordersEnvelopeJSON struct {
	Orders []orderJSON `json:"orders"`
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func timestamp(t time.Time) string {
	return t.UTC().Format(isoMillis)
}

func toOrderJSON(o store.OrderDTO) orderJSON {
	out := orderJSON{
		ID:              o.ID,
		Status:          o.Status,
		Items:           make([]lineItemJSON, 0, len(o.Items)),
		FinalAmount:     number(o.FinalAmount),
		PaymentMethod:   o.PaymentMethod,
		DeliveryAddress: addressJSON{Landmark: o.Address.Landmark},
		User:            customerJSON{Name: o.CustomerName, Phone: o.CustomerPhone},
		DeliveryCharge:  number(o.DeliveryCharge),
		DeliveryPartner: o.DeliveryPartnerID,
		CreatedAt:       timestamp(o.CreatedAt),
	}
	if o.Address.Lat != nil && o.Address.Lng != nil {
		out.DeliveryAddress.Coordinates = &coordinatesJSON{Lat: *o.Address.Lat, Lng: *o.Address.Lng}
	}
	if o.DeliveryDate != nil {
		d := timestamp(*o.DeliveryDate)
		out.DeliveryDate = &d
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, lineItemJSON{
			Product:  productJSON{ID: it.ProductID, Name: it.ProductName},
			Price:    number(it.Price),
			Qty:      it.Qty,
			Subtotal: number(it.Price.Mul(decimal.NewFromInt(int64(it.Qty)))),
		})
	}
	return out
}

func toOrderListJSON(orders []store.OrderDTO) []orderJSON {
	out := make([]orderJSON, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderJSON(o))
	}
	return out
}

func toUserJSON(p store.PartnerDTO) userJSON {
	return userJSON{
		ID:       p.ID,
		Name:     p.Name,
		Email:    p.Email,
		Phone:    p.Phone,
		Earnings: number(p.Earnings),
	}
}

func toAuthResponseJSON(s service.SignedIn) authResponseJSON {
	return authResponseJSON{Token: s.Token, User: toUserJSON(s.Partner)}
}
