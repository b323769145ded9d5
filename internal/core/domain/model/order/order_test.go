package order_test

import (
	"testing"
	"time"

	"deliverypartner/internal/core/domain/model/kernel"
	"deliverypartner/internal/core/domain/model/order"
	"deliverypartner/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestoreOrder(t *testing.T) {
	coords, err := kernel.NewCoordinates(12.97, 77.59)
	require.NoError(t, err)
	price := kernel.MustMoney("120")
	subtotal := kernel.MustMoney("230")
	item, err := order.NewLineItem("p1", "Rice 1kg", price, 2, &subtotal)
	require.NoError(t, err)
	delivered := time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)

	t.Run("should restore every field", func(t *testing.T) {
		o, err := order.RestoreOrder(order.Snapshot{
			ID:                "65f1c0ffee",
			Status:            "Delivered",
			Items:             []order.LineItem{item},
			FinalAmount:       kernel.MustMoney("280"),
			PaymentMethod:     " COD ",
			Address:           order.NewAddress("Near the temple", &coords),
			Customer:          order.NewCustomer("Asha", "9876543210"),
			DeliveryCharge:    kernel.MustMoney("50"),
			DeliveryPartnerID: "partner-1",
			DeliveryDate:      &delivered,
		})

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, "65f1c0ffee", o.ID())
		assert.Equal(t, order.Delivered, o.Status())
		assert.True(t, o.IsDelivered())
		assert.False(t, o.IsPending())
		assert.Len(t, o.Items(), 1)
		assert.Equal(t, 2, o.ItemCount())
		assert.Equal(t, "280", o.FinalAmount().String())
		assert.Equal(t, "COD", o.PaymentMethod())
		assert.Equal(t, "Near the temple", o.Address().Landmark())
		assert.Equal(t, "tel:9876543210", o.Customer().CallURI())
		assert.Equal(t, "50", o.DeliveryCharge().String())
		assert.Equal(t, "partner-1", o.DeliveryPartnerID())
		d, ok := o.DeliveryDate()
		assert.True(t, ok)
		assert.True(t, d.Equal(delivered))
		_, ok = o.CreatedAt()
		assert.False(t, ok)
	})

	t.Run("should default absent delivery charge to zero", func(t *testing.T) {
		o, err := order.RestoreOrder(order.Snapshot{ID: "1", Status: order.Packed})

		require.NoError(t, err)
		assert.True(t, o.DeliveryCharge().IsZero())
		assert.True(t, o.IsPending())
	})

	t.Run("should keep unknown status verbatim", func(t *testing.T) {
		o, err := order.RestoreOrder(order.Snapshot{ID: "1", Status: "On-Hold"})

		require.NoError(t, err)
		assert.Equal(t, order.Status("On-Hold"), o.Status())
	})

	t.Run("should fail without id", func(t *testing.T) {
		o, err := order.RestoreOrder(order.Snapshot{ID: "  "})

		require.Error(t, err)
		assert.Nil(t, o)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should not share the items slice with the caller", func(t *testing.T) {
		items := []order.LineItem{item}
		o, err := order.RestoreOrder(order.Snapshot{ID: "1", Items: items})
		require.NoError(t, err)

		got := o.Items()
		got[0] = order.LineItem{}

		assert.Equal(t, "Rice 1kg", o.Items()[0].ProductName())
	})
}

func TestOrder_ValidateZeroValue(t *testing.T) {
	var o order.Order
	require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)

	var nilOrder *order.Order
	require.ErrorIs(t, nilOrder.Validate(), order.ErrOrderIsNotConstructed)
}

func TestOrder_IsEqual(t *testing.T) {
	a := newOrder(t, "a", order.Packed, "")
	a2 := newOrder(t, "a", order.Delivered, "10")
	b := newOrder(t, "b", order.Packed, "")

	assert.True(t, a.IsEqual(a2))
	assert.False(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(nil))
}

func TestLineItem(t *testing.T) {
	price := kernel.MustMoney("12.50")

	t.Run("should fall back to price times quantity without server subtotal", func(t *testing.T) {
		item, err := order.NewLineItem("p1", "", price, 3, nil)

		require.NoError(t, err)
		assert.False(t, item.HasServerSubtotal())
		assert.Equal(t, "37.50", item.Subtotal().String())
		assert.Equal(t, "p1", item.ProductName())
	})

	t.Run("should prefer the server subtotal", func(t *testing.T) {
		server := kernel.MustMoney("30")
		item, err := order.NewLineItem("p1", "Milk", price, 3, &server)

		require.NoError(t, err)
		assert.True(t, item.HasServerSubtotal())
		assert.Equal(t, "30", item.Subtotal().String())
	})

	t.Run("should reject negative quantity", func(t *testing.T) {
		_, err := order.NewLineItem("p1", "Milk", price, -1, nil)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestAddress(t *testing.T) {
	t.Run("without coordinates has no directions", func(t *testing.T) {
		a := order.NewAddress("Gate 2", nil)

		_, ok := a.Coordinates()
		assert.False(t, ok)
		assert.Empty(t, a.DirectionsURL())
	})

	t.Run("with coordinates builds directions link", func(t *testing.T) {
		c, err := kernel.NewCoordinates(19.076, 72.8777)
		require.NoError(t, err)

		a := order.NewAddress("Gate 2", &c)

		assert.Equal(t, "https://www.google.com/maps/dir/?api=1&destination=19.076,72.8777", a.DirectionsURL())
	})

	t.Run("ignores unconstructed coordinates", func(t *testing.T) {
		a := order.NewAddress("Gate 2", &kernel.Coordinates{})

		_, ok := a.Coordinates()
		assert.False(t, ok)
	})
}

func TestCustomer_CallURI(t *testing.T) {
	assert.Equal(t, "tel:+911234567890", order.NewCustomer("Ravi", " +911234567890 ").CallURI())
	assert.Empty(t, order.NewCustomer("Ravi", "").CallURI())
}
