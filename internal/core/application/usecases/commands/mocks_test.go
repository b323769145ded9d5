package commands_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"deliverypartner/internal/core/domain/model/kernel"
	"deliverypartner/internal/core/domain/model/order"
	"deliverypartner/internal/core/domain/model/partner"
	"deliverypartner/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuthGateway struct{ mock.Mock }

func (m *MockAuthGateway) SendOTP(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockAuthGateway) VerifyOTP(ctx context.Context, email, otp string) (partner.Session, error) {
	args := m.Called(ctx, email, otp)
	return args.Get(0).(partner.Session), args.Error(1)
}

func (m *MockAuthGateway) PasswordLogin(ctx context.Context, email, password string) (partner.Session, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(partner.Session), args.Error(1)
}

type MockOrderGateway struct{ mock.Mock }

func (m *MockOrderGateway) ListAll(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderGateway) ListAssigned(
	ctx context.Context,
	partnerID string,
	window *ports.TimeWindow,
) ([]*order.Order, error) {
	args := m.Called(ctx, partnerID, window)
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderGateway) Get(ctx context.Context, orderID string) (*order.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderGateway) UpdateStatus(
	ctx context.Context,
	orderID string,
	status order.Status,
) (*order.Order, error) {
	args := m.Called(ctx, orderID, status)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockSessionKeeper struct{ mock.Mock }

func (m *MockSessionKeeper) Login(ctx context.Context, s partner.Session) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSessionKeeper) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// bufferLogger records Info and above, the level the CLI runs at.
func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})), &buf
}

func newSession(t *testing.T) partner.Session {
	t.Helper()

	u, err := partner.NewUser("u1", "Sam", "user@example.com", "", kernel.ZeroMoney())
	require.NoError(t, err)
	s, err := partner.NewSession(u, "jwt", nil)
	require.NoError(t, err)
	return s
}

func newOrder(t *testing.T, id string, status order.Status) *order.Order {
	t.Helper()

	o, err := order.RestoreOrder(order.Snapshot{ID: id, Status: status})
	require.NoError(t, err)
	return o
}
