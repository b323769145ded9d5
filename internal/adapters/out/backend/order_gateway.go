package backend

import (
	"context"
	"net/http"
	"net/url"

	"deliverypartner/internal/core/domain/model/order"
	"deliverypartner/internal/core/ports"
	"deliverypartner/internal/pkg/errs"

	"github.com/oapi-codegen/runtime"
)

var _ ports.OrderGateway = &OrderGateway{}

type OrderGateway struct {
	client *Client
}

func NewOrderGateway(client *Client) *OrderGateway {
	return &OrderGateway{client: client}
}

func (g *OrderGateway) ListAll(ctx context.Context) ([]*order.Order, error) {
	resp, err := g.client.do(ctx, call{
		operation: "listOrders",
		method:    http.MethodGet,
		path:      "/orders",
	}, nil)
	if err != nil {
		return nil, err
	}
	return decodeOrderList(resp.body)
}

func (g *OrderGateway) ListAssigned(
	ctx context.Context,
	partnerID string,
	window *ports.TimeWindow,
) ([]*order.Order, error) {
	userID, err := runtime.StyleParamWithLocation("simple", false, "userId", runtime.ParamLocationPath, partnerID)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("userId", err)
	}

	query := url.Values{}
	if window != nil {
		for name, bound := range map[string]string{
			"start": window.Start.UTC().Format(isoMillis),
			"end":   window.End.UTC().Format(isoMillis),
		} {
			if err := addQueryParam(query, name, bound); err != nil {
				return nil, err
			}
		}
	}

	resp, err := g.client.do(ctx, call{
		operation: "listPartnerOrders",
		method:    http.MethodGet,
		path:      "/orders/delivery/" + userID,
		query:     query,
	}, nil)
	if err != nil {
		return nil, err
	}
	return decodeOrderList(resp.body)
}

func (g *OrderGateway) Get(ctx context.Context, orderID string) (*order.Order, error) {
	id, err := orderIDParam(orderID)
	if err != nil {
		return nil, err
	}

	resp, err := g.client.do(ctx, call{
		operation: "getOrder",
		method:    http.MethodGet,
		path:      "/orders/" + id,
	}, errs.NewObjectNotFoundError("orderId", orderID))
	if err != nil {
		return nil, err
	}
	return decodeOrder(resp.body)
}

func (g *OrderGateway) UpdateStatus(ctx context.Context, orderID string, status order.Status) (*order.Order, error) {
	id, err := orderIDParam(orderID)
	if err != nil {
		return nil, err
	}

	resp, err := g.client.do(ctx, call{
		operation: "updateOrderStatus",
		method:    http.MethodPut,
		path:      "/orders/" + id + "/status",
		body:      statusUpdateDTO{Status: string(status)},
	}, errs.NewObjectNotFoundError("orderId", orderID))
	if err != nil {
		return nil, err
	}
	return decodeOrder(resp.body)
}

func orderIDParam(orderID string) (string, error) {
	id, err := runtime.StyleParamWithLocation("simple", false, "orderId", runtime.ParamLocationPath, orderID)
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("orderId", err)
	}
	return id, nil
}

// addQueryParam styles a form query parameter and merges it into query.
func addQueryParam(query url.Values, name string, value any) error {
	fragment, err := runtime.StyleParamWithLocation("form", true, name, runtime.ParamLocationQuery, value)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause(name, err)
	}

	parsed, err := url.ParseQuery(fragment)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	for k, values := range parsed {
		for _, v := range values {
			query.Add(k, v)
		}
	}
	return nil
}
