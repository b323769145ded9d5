package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"deliverypartner/internal/core/application/usecases/queries"
	"deliverypartner/internal/pkg/errs"
)

func (a *App) scan(ctx context.Context, args []string) error {
	fs := a.newFlagSet("scan")
	if err := a.parse(fs, args); err != nil {
		return err
	}

	payload := strings.Join(fs.Args(), " ")
	if payload == "" {
		raw, err := io.ReadAll(a.in)
		if err != nil {
			return err
		}
		payload = string(raw)
	}

	query, err := queries.NewResolveScannedOrderQuery(payload)
	if err != nil {
		return err
	}

	o, err := a.handlers.ScannedOrder.Handle(ctx, query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			fmt.Fprintln(a.out, orderNotFound)
			return nil
		}
		return remoteFailure(err, loadOrderFailed)
	}

	a.renderDetail(o)
	return nil
}
