package queries_test

import (
	"testing"
	"time"

	"deliverypartner/internal/core/application/usecases/queries"
	"deliverypartner/internal/core/domain/model/order"
	"deliverypartner/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetTodayEarningsQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	loc := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2025, 6, 10, 18, 45, 0, 0, loc)
	wantStart := time.Date(2025, 6, 10, 0, 0, 0, 0, loc)
	wantEnd := time.Date(2025, 6, 10, 23, 59, 59, 999_000_000, loc)

	gateway := new(MockOrderGateway)
	gateway.On("ListAssigned", ctx, "p1", mock.MatchedBy(func(w *ports.TimeWindow) bool {
		return w != nil && w.Start.Equal(wantStart) && w.End.Equal(wantEnd)
	})).Return([]*order.Order{
		newOrder(t, "1", "delivered", "50", nil),
		newOrder(t, "2", "packed", "30", nil),
		newOrder(t, "3", "Delivered", "20", nil),
	}, nil).Once()

	h := queries.NewGetTodayEarningsQueryHandler(gateway, signedIn(t, "p1"))

	got, err := h.Handle(ctx, queries.NewGetTodayEarningsQuery(now))

	require.NoError(t, err)
	assert.Equal(t, "70", got.Total.String())
	assert.Len(t, got.Delivered, 2)
	assert.True(t, got.Window.Start.Equal(wantStart))
	gateway.AssertExpectations(t)
}

func TestGetTodayEarningsQueryHandler_NothingDelivered(t *testing.T) {
	ctx := t.Context()
	gateway := new(MockOrderGateway)
	gateway.On("ListAssigned", ctx, "p1", mock.Anything).Return([]*order.Order{}, nil).Once()

	got, err := queries.NewGetTodayEarningsQueryHandler(gateway, signedIn(t, "p1")).
		Handle(ctx, queries.NewGetTodayEarningsQuery(time.Now()))

	require.NoError(t, err)
	assert.True(t, got.Total.IsZero())
	assert.Empty(t, got.Delivered)
}
