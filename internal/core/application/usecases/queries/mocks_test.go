package queries_test

import (
	"context"
	"testing"
	"time"

	"deliverypartner/internal/core/domain/model/kernel"
	"deliverypartner/internal/core/domain/model/order"
	"deliverypartner/internal/core/domain/model/partner"
	"deliverypartner/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderGateway struct{ mock.Mock }

func (m *MockOrderGateway) ListAll(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderGateway) ListAssigned(
	ctx context.Context,
	partnerID string,
	window *ports.TimeWindow,
) ([]*order.Order, error) {
	args := m.Called(ctx, partnerID, window)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderGateway) Get(ctx context.Context, orderID string) (*order.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderGateway) UpdateStatus(context.Context, string, order.Status) (*order.Order, error) {
	panic("queries never update")
}

type StubCurrentUser struct {
	user partner.User
	err  error
}

func (s StubCurrentUser) RequireUser() (partner.User, error) {
	return s.user, s.err
}

func signedIn(t *testing.T, id string) StubCurrentUser {
	t.Helper()

	u, err := partner.NewUser(id, "Sam", "", "", kernel.ZeroMoney())
	require.NoError(t, err)
	return StubCurrentUser{user: u}
}

func newOrder(t *testing.T, id string, status order.Status, charge string, deliveredAt *time.Time) *order.Order {
	t.Helper()

	s := order.Snapshot{ID: id, Status: status, DeliveryDate: deliveredAt}
	if charge != "" {
		s.DeliveryCharge = kernel.MustMoney(charge)
	}
	o, err := order.RestoreOrder(s)
	require.NoError(t, err)
	return o
}
