package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedPartner describes the account created on an empty database.
type SeedPartner struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// DefaultSeedPartner is the login printed in the backend's startup log.
var DefaultSeedPartner = SeedPartner{
	Name:     "Ravi Kumar",
	Email:    "partner@example.com",
	Phone:    "9876543210",
	Password: "partner123",
}

// NewOrderID returns a fresh 24-character hex id.
func NewOrderID() string {
	return primitive.NewObjectID().Hex()
}

// Seed fills an empty database with one partner and a day's worth of
// orders in every status. It does nothing when orders already exist and
// reports whether data was written.
func Seed(ctx context.Context, db *gorm.DB, partner SeedPartner, now time.Time) (bool, error) {
	n, err := NewOrderRepository(db).Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(partner.Password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hash seed password: %w", err)
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p := PartnerDTO{
			ID:           uuid.NewString(),
			Name:         partner.Name,
			Email:        partner.Email,
			Phone:        partner.Phone,
			PasswordHash: hash,
			Earnings:     decimal.Zero,
		}
		if err := NewPartnerRepository(tx).Add(ctx, &p); err != nil {
			return fmt.Errorf("seed partner: %w", err)
		}

		orders := NewOrderRepository(tx)
		for _, o := range seedOrders(p.ID, now) {
			if err := orders.Add(ctx, &o); err != nil {
				return fmt.Errorf("seed order: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

type seedCustomer struct {
	name     string
	phone    string
	landmark string
	lat, lng float64
}

var seedCustomers = []seedCustomer{
	{"Anita Sharma", "9811122233", "Near City Mall", 28.6139, 77.2090},
	{"Vikram Singh", "9822233344", "Opposite Metro Gate 2", 28.5355, 77.3910},
	{"Meera Nair", "9833344455", "Behind Lotus Temple", 28.5535, 77.2588},
	{"Arjun Das", "9844455566", "Sector 18 Market", 28.5708, 77.3261},
	{"Priya Menon", "9855566677", "", 28.4595, 77.0266},
}

var seedProducts = []struct {
	name  string
	price string
}{
	{"Basmati Rice 5kg", "549.00"},
	{"Toor Dal 1kg", "165.50"},
	{"Amul Butter 500g", "275.00"},
	{"Fresh Milk 1L", "68.00"},
	{"Whole Wheat Atta 10kg", "455.00"},
	{"Green Tea 100 bags", "320.00"},
}

func seedOrders(partnerID string, now time.Time) []OrderDTO {
	statuses := []string{"received", "packed", "packed", "out for delivery", "delivered", "delivered", "return"}

	var orders []OrderDTO
	for i, status := range statuses {
		c := seedCustomers[i%len(seedCustomers)]
		lat, lng := c.lat, c.lng
		created := now.Add(-time.Duration(len(statuses)-i) * time.Hour)

		o := OrderDTO{
			ID:                NewOrderID(),
			Status:            status,
			CustomerName:      c.name,
			CustomerPhone:     c.phone,
			Address:           AddressDTO{Landmark: c.landmark, Lat: &lat, Lng: &lng},
			PaymentMethod:     []string{"COD", "UPI", "Card"}[i%3],
			DeliveryCharge:    decimal.NewFromInt(int64(30 + 10*(i%3))),
			DeliveryPartnerID: &partnerID,
			CreatedAt:         created,
			UpdatedAt:         created,
		}
		for j := 0; j <= i%3; j++ {
			p := seedProducts[(i+j)%len(seedProducts)]
			o.Items = append(o.Items, LineItemDTO{
				ProductID:   primitive.NewObjectID().Hex(),
				ProductName: p.name,
				Price:       decimal.RequireFromString(p.price),
				Qty:         1 + j,
			})
		}
		if status == "delivered" {
			delivered := created.Add(40 * time.Minute)
			o.DeliveryDate = &delivered
		}
		o.FinalAmount = o.ItemsTotal().Add(o.DeliveryCharge)
		orders = append(orders, o)
	}

	// one order from yesterday and one waiting for any partner
	yesterday := now.Add(-24 * time.Hour)
	old := orders[4]
	old.ID = NewOrderID()
	old.CreatedAt, old.UpdatedAt, old.DeliveryDate = yesterday, yesterday, &yesterday
	old.Items = cloneItems(old.Items)
	orders = append(orders, old)

	unassigned := orders[0]
	unassigned.ID = NewOrderID()
	unassigned.DeliveryPartnerID = nil
	unassigned.Items = cloneItems(unassigned.Items)
	orders = append(orders, unassigned)

	return orders
}

func cloneItems(items []LineItemDTO) []LineItemDTO {
	out := make([]LineItemDTO, len(items))
	for i, it := range items {
		it.ID = 0
		it.OrderID = ""
		out[i] = it
	}
	return out
}
