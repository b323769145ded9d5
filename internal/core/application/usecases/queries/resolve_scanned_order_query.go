package queries

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"deliverypartner/internal/core/domain/model/order"
	"deliverypartner/internal/core/ports"
	"deliverypartner/internal/pkg/errs"
	"deliverypartner/internal/pkg/guard"
)

var (
	ErrResolveScannedOrderQueryIsNotConstructed = errors.New(
		"ResolveScannedOrderQuery must be created via NewResolveScannedOrderQuery constructor",
	)
	ErrScanPayloadIsInvalid = errs.NewValueIsInvalidErrorWithCause(
		"scan payload", errors.New("Invalid QR code"))
)

// ResolveScannedOrderQuery turns a scanned QR payload into the order it names.
// The payload is a JSON object carrying the order id under "_id"; anything
// else is rejected before a request is made.
type ResolveScannedOrderQuery struct {
	orderID string

	guard guard.ConstructorGuard
}

func NewResolveScannedOrderQuery(payload string) (ResolveScannedOrderQuery, error) {
	var decoded map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(payload)), &decoded); err != nil {
		return ResolveScannedOrderQuery{}, ErrScanPayloadIsInvalid
	}

	id, ok := decoded["_id"].(string)
	if !ok || strings.TrimSpace(id) == "" {
		return ResolveScannedOrderQuery{}, ErrScanPayloadIsInvalid
	}

	return ResolveScannedOrderQuery{
		orderID: strings.TrimSpace(id),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q ResolveScannedOrderQuery) Validate() error {
	return q.guard.Validate(ErrResolveScannedOrderQueryIsNotConstructed)
}

func (q ResolveScannedOrderQuery) OrderID() string {
	return q.orderID
}

type ResolveScannedOrderQueryHandler struct {
	orders ports.OrderGateway
}

func NewResolveScannedOrderQueryHandler(orders ports.OrderGateway) ResolveScannedOrderQueryHandler {
	return ResolveScannedOrderQueryHandler{orders: orders}
}

func (h ResolveScannedOrderQueryHandler) Handle(
	ctx context.Context,
	query ResolveScannedOrderQuery,
) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.orders.Get(ctx, query.OrderID())
}
