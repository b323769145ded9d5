package workflow_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"deliverypartner/internal/core/application/usecases/commands"
	"deliverypartner/internal/core/domain/model/kernel"
	"deliverypartner/internal/core/domain/model/order"
	"deliverypartner/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeBackend answers status updates the way the backend does: it echoes the
// requested status back and reports a delivery charge for delivered orders.
type fakeBackend struct {
	mu       sync.Mutex
	requests []order.Status
	charge   string
	status   order.Status
	err      error
	release  chan struct{}
	entered  chan struct{}
}

func (b *fakeBackend) Handle(_ context.Context, cmd commands.UpdateOrderStatusCommand) (*order.Order, error) {
	b.mu.Lock()
	b.requests = append(b.requests, cmd.Status())
	entered, release := b.entered, b.release
	b.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if release != nil {
		<-release
	}

	if b.err != nil {
		return nil, b.err
	}

	status := cmd.Status()
	if b.status != "" {
		status = b.status
	}
	s := order.Snapshot{ID: cmd.OrderID(), Status: status}
	if b.charge != "" {
		s.DeliveryCharge = kernel.MustMoney(b.charge)
	}
	return order.RestoreOrder(s)
}

func (b *fakeBackend) Requests() []order.Status {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]order.Status, len(b.requests))
	copy(out, b.requests)
	return out
}

type MockPhotoCapturer struct{ mock.Mock }

func (m *MockPhotoCapturer) Capture(ctx context.Context, orderID string) (ports.Photo, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(ports.Photo), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func restore(t *testing.T, id string, status order.Status) *order.Order {
	t.Helper()

	o, err := order.RestoreOrder(order.Snapshot{ID: id, Status: status})
	require.NoError(t, err)
	return o
}
