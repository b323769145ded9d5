package cli_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"deliverypartner/internal/adapters/in/cli"
	"deliverypartner/internal/core/application/session"
	"deliverypartner/internal/core/application/usecases/commands"
	"deliverypartner/internal/core/application/usecases/queries"
	"deliverypartner/internal/core/domain/model/kernel"
	"deliverypartner/internal/core/domain/model/order"
	"deliverypartner/internal/core/domain/model/partner"
	"deliverypartner/internal/core/domain/services"
	"deliverypartner/internal/core/ports"

	"github.com/stretchr/testify/assert"
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

func (m *MockOrderGateway) UpdateStatus(ctx context.Context, orderID string, status order.Status) (*order.Order, error) {
	args := m.Called(ctx, orderID, status)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockAuthGateway struct{ mock.Mock }

func (m *MockAuthGateway) SendOTP(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockAuthGateway) VerifyOTP(ctx context.Context, email, otp string) (partner.Session, error) {
	args := m.Called(ctx, email, otp)
	s, _ := args.Get(0).(partner.Session)
	return s, args.Error(1)
}

func (m *MockAuthGateway) PasswordLogin(ctx context.Context, email, password string) (partner.Session, error) {
	args := m.Called(ctx, email, password)
	s, _ := args.Get(0).(partner.Session)
	return s, args.Error(1)
}

// memoryStore is an in-process session slot.
type memoryStore struct {
	mu   sync.Mutex
	slot *partner.Session
}

func (m *memoryStore) Load(context.Context) (partner.Session, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.slot == nil {
		return partner.Session{}, false, nil
	}
	return *m.slot, true, nil
}

func (m *memoryStore) Save(_ context.Context, s partner.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slot = &s
	return nil
}

func (m *memoryStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slot = nil
	return nil
}

// fixedNow is 01/06/2025 15:00 UTC.
var fixedNow = time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC)

type harness struct {
	app    *cli.App
	orders *MockOrderGateway
	auth   *MockAuthGateway
	holder *session.Holder
	out    *bytes.Buffer
}

func newHarness(t *testing.T, input string) *harness {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	orders := &MockOrderGateway{}
	auth := &MockAuthGateway{}
	holder := session.NewHolder(&memoryStore{}, logger)
	require.NoError(t, holder.Init(t.Context()))

	handlers := cli.Handlers{
		SendOTP:        commands.NewSendOTPCommandHandler(auth, logger),
		VerifyOTP:      commands.NewVerifyOTPCommandHandler(auth, holder, logger),
		PasswordLogin:  commands.NewPasswordLoginCommandHandler(auth, holder, logger),
		PhoneLogin:     commands.NewPhoneLoginCommandHandler(holder, logger),
		Logout:         commands.NewLogoutCommandHandler(holder),
		UpdateStatus:   commands.NewUpdateOrderStatusCommandHandler(orders, logger),
		AssignedOrders: queries.NewGetAssignedOrdersQueryHandler(orders, holder, services.NewOrderBoard()),
		Order:          queries.NewGetOrderQueryHandler(orders),
		TodayEarnings:  queries.NewGetTodayEarningsQueryHandler(orders, holder),
		History:        queries.NewGetDeliveryHistoryQueryHandler(orders, holder),
		ScannedOrder:   queries.NewResolveScannedOrderQueryHandler(orders),
	}

	out := &bytes.Buffer{}
	app := cli.NewApp(handlers, holder, cli.Settings{
		AuthMode:       cli.AuthModeOTP,
		OTPLength:      6,
		CurrencySymbol: "₹",
		Location:       time.UTC,
	}, strings.NewReader(input), out, logger).WithClock(func() time.Time { return fixedNow })

	return &harness{app: app, orders: orders, auth: auth, holder: holder, out: out}
}

func (h *harness) signIn(t *testing.T, id string) {
	t.Helper()
	u, err := partner.NewUser(id, "Ravi", "rider@example.com", "", kernel.MustMoney("320"))
	require.NoError(t, err)
	s, err := partner.NewSession(u, "token", nil)
	require.NoError(t, err)
	require.NoError(t, h.holder.Login(t.Context(), s))
}

func restore(t *testing.T, s order.Snapshot) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(s)
	require.NoError(t, err)
	return o
}

func coords(t *testing.T, lat, lng float64) *kernel.Coordinates {
	t.Helper()
	c, err := kernel.NewCoordinates(lat, lng)
	require.NoError(t, err)
	return &c
}

func lineItem(t *testing.T, name string, price string, qty int) order.LineItem {
	t.Helper()
	item, err := order.NewLineItem("p-"+name, name, kernel.MustMoney(price), qty, nil)
	require.NoError(t, err)
	return item
}

// assertInOrder checks that every part occurs in s, each after the previous one.
func assertInOrder(t *testing.T, s string, parts ...string) {
	t.Helper()
	rest := s
	for _, p := range parts {
		i := strings.Index(rest, p)
		if !assert.GreaterOrEqual(t, i, 0, "%q missing or out of order", p) {
			return
		}
		rest = rest[i+len(p):]
	}
}

func countOf(s, sub string) int {
	return strings.Count(s, sub)
}
