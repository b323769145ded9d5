package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"deliverypartner/internal/core/application/usecases/queries"
	"deliverypartner/internal/core/domain/model/order"
	"deliverypartner/internal/core/ports"
	"deliverypartner/internal/pkg/errs"
)

const (
	noOrders          = "No orders found."
	orderNotFound     = "Order not found."
	noDelivered       = "No delivered orders yet."
	loadOrdersFailed  = "Failed to load orders"
	loadOrderFailed   = "Failed to load order details"
	loadHistoryFailed = "Failed to load delivery history"
)

func (a *App) orders(ctx context.Context, args []string) error {
	fs := a.newFlagSet("orders")
	filter := fs.StringP("status", "s", order.FilterAll, "show one status only (e.g. Packed, \"Out for Delivery\")")
	all := fs.Bool("all", false, "list every order instead of the ones assigned to you")
	today := fs.Bool("today", false, "only orders with a delivery date today")
	if err := a.parse(fs, args); err != nil {
		return err
	}

	scope := queries.ScopeAssigned
	if *all {
		scope = queries.ScopeAll
	}

	var window *ports.TimeWindow
	if *today {
		start, end := order.TodayWindow(a.now().In(a.settings.Location))
		window = &ports.TimeWindow{Start: start, End: end}
	}

	query, err := queries.NewGetAssignedOrdersQuery(*filter, scope, window)
	if err != nil {
		return err
	}

	board, err := a.handlers.AssignedOrders.Handle(ctx, query)
	if err != nil {
		return remoteFailure(err, loadOrdersFailed)
	}

	fmt.Fprintf(a.out, "Total: %d  Pending: %d  Delivered: %d  Earnings: %s\n",
		board.Total, board.Pending, board.Delivered, a.money(board.Earnings))
	if !strings.EqualFold(board.Filter, order.FilterAll) {
		fmt.Fprintf(a.out, "Filter: %s\n", board.Filter)
	}
	fmt.Fprintln(a.out)

	if board.IsEmpty() {
		fmt.Fprintln(a.out, noOrders)
		return nil
	}

	for i, g := range board.Groups {
		if i > 0 {
			fmt.Fprintln(a.out)
		}
		fmt.Fprintf(a.out, "%s (%d)\n", groupLabel(g.Key), len(g.Items))
		for _, o := range g.Items {
			a.renderSummary(o)
		}
	}
	return nil
}

func (a *App) order(ctx context.Context, args []string) error {
	fs := a.newFlagSet("order")
	dump := fs.Bool("dump", false, "print the decoded order structure for debugging")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: order <order-id>", ErrUsage)
	}

	query, err := queries.NewGetOrderQuery(fs.Arg(0))
	if err != nil {
		return err
	}

	o, err := a.handlers.Order.Handle(ctx, query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			fmt.Fprintln(a.out, orderNotFound)
			return nil
		}
		return remoteFailure(err, loadOrderFailed)
	}

	a.renderDetail(o)
	if *dump {
		fmt.Fprintln(a.out)
		dumper.Fdump(a.out, o)
	}
	return nil
}

func (a *App) earnings(ctx context.Context, args []string) error {
	fs := a.newFlagSet("earnings")
	if err := a.parse(fs, args); err != nil {
		return err
	}

	result, err := a.handlers.TodayEarnings.Handle(ctx, queries.NewGetTodayEarningsQuery(a.now().In(a.settings.Location)))
	if err != nil {
		return remoteFailure(err, loadOrdersFailed)
	}

	fmt.Fprintf(a.out, "Today's earnings: %s from %d %s\n",
		a.money(result.Total), len(result.Delivered), plural(len(result.Delivered), "delivery", "deliveries"))
	for _, o := range result.Delivered {
		fmt.Fprintf(a.out, "  #%s  %s\n", o.ID(), a.money(o.DeliveryCharge()))
	}
	return nil
}

func (a *App) history(ctx context.Context, args []string) error {
	fs := a.newFlagSet("history")
	if err := a.parse(fs, args); err != nil {
		return err
	}

	groups, err := a.handlers.History.Handle(ctx, queries.NewGetDeliveryHistoryQuery(a.settings.Location))
	if err != nil {
		return remoteFailure(err, loadHistoryFailed)
	}

	if len(groups) == 0 {
		fmt.Fprintln(a.out, noDelivered)
		return nil
	}

	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(a.out)
		}
		fmt.Fprintln(a.out, g.Key)
		for _, o := range g.Items {
			a.renderSummary(o)
		}
	}
	return nil
}

// remoteFailure turns a backend failure into the partner-facing message while
// keeping the cause for errors.Is.
func remoteFailure(err error, fallback string) error {
	if errors.Is(err, errs.ErrRemoteRequest) || errors.Is(err, errs.ErrTransport) {
		return &displayError{message: errs.UserMessage(err, fallback), cause: err}
	}
	return err
}

// displayError carries the text shown to the partner.
type displayError struct {
	message string
	cause   error
}

func (e *displayError) Error() string {
	return e.message
}

func (e *displayError) Unwrap() error {
	return e.cause
}

func groupLabel(key string) string {
	return order.Status(key).Label()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
