// Package store persists the development backend's orders and delivery
// partners with GORM. Postgres is used when configured, otherwise a local
// SQLite file, so the backend runs without any infrastructure.
package store

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderDTO is an order row. IDs are 24-character hex ObjectIDs, the form the
// partner app receives in `_id`.
type OrderDTO struct {
	ID                string          `gorm:"primaryKey;size:24"`
	Status            string          `gorm:"index;not null"`
	CustomerName      string          `gorm:"not null;default:''"`
	CustomerPhone     string          `gorm:"not null;default:''"`
	Address           AddressDTO      `gorm:"embedded;embeddedPrefix:address_"`
	Items             []LineItemDTO   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	PaymentMethod     string          `gorm:"not null;default:''"`
	DeliveryCharge    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	FinalAmount       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DeliveryPartnerID *string         `gorm:"size:36;index"`
	DeliveryDate      *time.Time      `gorm:"index"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO is embedded in the orders table.
type AddressDTO struct {
	Landmark string
	Lat      *float64
	Lng      *float64
}

// LineItemDTO is one ordered product.
type LineItemDTO struct {
	ID          uint            `gorm:"primaryKey"`
	OrderID     string          `gorm:"size:24;index;not null"`
	ProductID   string          `gorm:"size:24;not null"`
	ProductName string          `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Qty         int             `gorm:"not null"`
}

func (LineItemDTO) TableName() string {
	return "order_items"
}

// ItemsTotal is the sum of price times quantity over the items.
func (o OrderDTO) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Qty))))
	}
	return total
}

// PartnerDTO is a delivery partner account.
type PartnerDTO struct {
	ID           string          `gorm:"primaryKey;size:36"`
	Name         string          `gorm:"not null"`
	Email        string          `gorm:"uniqueIndex;not null"`
	Phone        string          `gorm:"not null;default:''"`
	PasswordHash []byte          `gorm:"not null"`
	Earnings     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreatedAt    time.Time
}

func (PartnerDTO) TableName() string {
	return "delivery_partners"
}

// Models lists every table for AutoMigrate.
func Models() []any {
	return []any{&PartnerDTO{}, &OrderDTO{}, &LineItemDTO{}}
}
