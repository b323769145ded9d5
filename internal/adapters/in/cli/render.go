package cli

import (
	"fmt"
	"strings"

	"deliverypartner/internal/core/domain/model/order"

	"github.com/davecgh/go-spew/spew"
)

const timestampLayout = "02/01/2006 15:04"

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
	SortKeys:                true,
}

// renderSummary prints one list row.
func (a *App) renderSummary(o *order.Order) {
	parts := []string{"#" + o.ID()}
	if name := o.Customer().Name(); name != "" {
		parts = append(parts, name)
	}
	parts = append(parts,
		fmt.Sprintf("%d %s", o.ItemCount(), plural(o.ItemCount(), "item", "items")),
		a.money(o.FinalAmount()),
	)
	if landmark := o.Address().Landmark(); landmark != "" {
		parts = append(parts, landmark)
	}
	fmt.Fprintf(a.out, "  %s\n", strings.Join(parts, "  "))
}

// renderDetail prints the order detail view. The delivery section and the
// status actions are only shown while the order is not delivered.
func (a *App) renderDetail(o *order.Order) {
	fmt.Fprintf(a.out, "Order #%s\n", o.ID())
	fmt.Fprintf(a.out, "Status:   %s\n", o.Status().Label())
	if created, ok := o.CreatedAt(); ok {
		fmt.Fprintf(a.out, "Placed:   %s\n", created.In(a.settings.Location).Format(timestampLayout))
	}
	if delivered, ok := o.DeliveryDate(); ok {
		fmt.Fprintf(a.out, "Delivery: %s\n", delivered.In(a.settings.Location).Format(timestampLayout))
	}

	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "Items:")
	items := o.Items()
	if len(items) == 0 {
		fmt.Fprintln(a.out, "  (none)")
	}
	for _, item := range items {
		fmt.Fprintf(a.out, "  %s x%d  %s\n", item.ProductName(), item.Quantity(), a.money(item.Subtotal()))
	}

	fmt.Fprintln(a.out)
	fmt.Fprintf(a.out, "Delivery charge: %s\n", a.money(o.DeliveryCharge()))
	fmt.Fprintf(a.out, "Total:           %s\n", a.money(o.FinalAmount()))
	if method := o.PaymentMethod(); method != "" {
		fmt.Fprintf(a.out, "Payment:         %s\n", method)
	}

	if o.IsDelivered() {
		return
	}

	c := o.Customer()
	addr := o.Address()
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "Delivery details:")
	if c.Name() != "" {
		fmt.Fprintf(a.out, "  Customer:   %s\n", c.Name())
	}
	if uri := c.CallURI(); uri != "" {
		fmt.Fprintf(a.out, "  Call:       %s\n", uri)
	}
	if addr.Landmark() != "" {
		fmt.Fprintf(a.out, "  Landmark:   %s\n", addr.Landmark())
	}
	if url := addr.DirectionsURL(); url != "" {
		fmt.Fprintf(a.out, "  Directions: %s\n", url)
	}

	targets := order.SelectableTargets()
	labels := make([]string, len(targets))
	for i, t := range targets {
		labels[i] = fmt.Sprintf("%q", t.Label())
	}
	fmt.Fprintln(a.out)
	fmt.Fprintf(a.out, "Update status: partner update %s --status {%s}\n", o.ID(), strings.Join(labels, "|"))
}
