package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContractLoads(t *testing.T) {
	doc, err := Load(t.Context())
	require.NoError(t, err)

	for _, path := range []string{
		"/orders",
		"/orders/delivery/{userId}",
		"/orders/{orderId}",
		"/orders/{orderId}/status",
		"/auth/delivery/login",
		"/auth/delivery/verify-otp",
	} {
		assert.NotNil(t, doc.Paths.Find(path), path)
	}
}

func TestRouterResolvesOperations(t *testing.T) {
	_, router, err := NewRouter(t.Context())
	require.NoError(t, err)

	tests := []struct {
		method string
		target string
		opID   string
	}{
		{http.MethodGet, "/orders", "listOrders"},
		{http.MethodGet, "/orders/delivery/p-1?start=2025-01-01T00:00:00.000Z", "listPartnerOrders"},
		{http.MethodGet, "/orders/o-1", "getOrder"},
		{http.MethodPut, "/orders/o-1/status", "updateOrderStatus"},
		{http.MethodPost, "/auth/delivery/login", "deliveryLogin"},
		{http.MethodPost, "/auth/delivery/verify-otp", "verifyOtp"},
	}

	for _, tt := range tests {
		t.Run(tt.opID, func(t *testing.T) {
			req, err := http.NewRequestWithContext(t.Context(), tt.method, "http://localhost"+tt.target, nil)
			require.NoError(t, err)

			route, _, err := router.FindRoute(req)
			require.NoError(t, err)
			assert.Equal(t, tt.opID, route.Operation.OperationID)
		})
	}
}

func TestRawIsACopy(t *testing.T) {
	a := Raw()
	a[0] = 'X'
	assert.NotEqual(t, a[0], Raw()[0])
}
