package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"deliverypartner/internal/core/application/usecases/queries"
	"deliverypartner/internal/core/application/workflow"
	"deliverypartner/internal/core/domain/model/order"
	"deliverypartner/internal/pkg/errs"
)

const updateFailed = "Failed to update status"

func (a *App) update(ctx context.Context, args []string) error {
	fs := a.newFlagSet("update")
	status := fs.StringP("status", "s", "", `target status: "Out for Delivery", "Delivered" or "Return"`)
	photo := fs.String("photo", "", "proof-of-delivery photo file (Delivered only); prompted for when omitted")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: update <order-id> --status <status>", ErrUsage)
	}

	target, err := selectTarget(*status)
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderQuery(fs.Arg(0))
	if err != nil {
		return err
	}
	current, err := a.handlers.Order.Handle(ctx, query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			fmt.Fprintln(a.out, orderNotFound)
			return nil
		}
		return remoteFailure(err, loadOrderFailed)
	}

	wf, err := workflow.NewStatusUpdate(current, a.handlers.UpdateStatus, a.logger)
	if err != nil {
		return err
	}

	camera := a.camera
	if *photo != "" {
		camera = NewFileCapturer(*photo)
	}

	out, err := wf.Run(ctx, target, camera)
	if err != nil {
		if errors.Is(err, workflow.ErrOrderIsDelivered) {
			fmt.Fprintln(a.out, "Order is already delivered.")
			return nil
		}
		return remoteFailure(err, updateFailed)
	}

	if out.Cancelled {
		fmt.Fprintln(a.out, "Status update cancelled. Nothing was sent.")
		return nil
	}

	fmt.Fprintf(a.out, "Status updated to %s.\n", out.Order.Status().Label())
	if out.ShowEarnings {
		fmt.Fprintf(a.out, "Delivery Completed! You earned %s for this delivery.\n", a.money(out.Earned))
	}
	return nil
}

// selectTarget accepts only the statuses the picker offers.
func selectTarget(raw string) (order.Status, error) {
	raw = strings.TrimSpace(raw)
	labels := make([]string, 0, len(order.SelectableTargets()))
	for _, t := range order.SelectableTargets() {
		if t.Is(order.Status(raw)) {
			return t, nil
		}
		labels = append(labels, fmt.Sprintf("%q", t.Label()))
	}
	return "", fmt.Errorf("%w: --status must be one of %s", ErrUsage, strings.Join(labels, ", "))
}
