package httpapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"deliverypartner/internal/devbackend/otp"
	"deliverypartner/internal/devbackend/service"
	"deliverypartner/internal/devbackend/store"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type harness struct {
	e       *echo.Echo
	db      *gorm.DB
	codes   *otp.Service
	partner store.PartnerDTO
}

func newHarness(t *testing.T) harness {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := store.Open(store.Config{SQLitePath: filepath.Join(t.TempDir(), "backend.db")})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	seeded, err := store.Seed(t.Context(), db, store.DefaultSeedPartner, time.Now().UTC())
	require.NoError(t, err)
	require.True(t, seeded)
	partner, err := store.NewPartnerRepository(db).GetByEmail(t.Context(), store.DefaultSeedPartner.Email)
	require.NoError(t, err)

	codes := otp.NewService(otp.NewMemoryStore(), otp.Config{HashCost: bcrypt.MinCost}, logger)
	auth, err := service.NewAuthService(store.NewPartnerRepository(db), codes, []byte("test-secret"), time.Hour, logger)
	require.NoError(t, err)
	orders := service.NewOrderService(db, decimal.NewFromInt(40), logger)

	e, err := NewEcho(t.Context(), NewServer(orders, auth, logger))
	require.NoError(t, err)
	return harness{e: e, db: db, codes: codes, partner: partner}
}

func (h harness) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	h.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	h := newHarness(t)
	rec := h.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestListOrders_BareArray(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodGet, "/orders", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "["))

	orders := decode[[]map[string]any](t, rec)
	assert.Len(t, orders, 9)
	first := orders[0]
	assert.Len(t, first["_id"], 24)
	assert.Contains(t, first, "deliveryCharge")
	items, ok := first["items"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, items)
	product := items[0].(map[string]any)["product"].(map[string]any)
	assert.NotEmpty(t, product["name"])
}

func TestListPartnerOrders_EnvelopeAndWindow(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodGet, "/orders/delivery/"+h.partner.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	all := decode[ordersEnvelopeJSON](t, rec)
	assert.Len(t, all.Orders, 8)

	start := time.Now().UTC().Add(-12 * time.Hour).Format(isoMillis)
	end := time.Now().UTC().Add(time.Hour).Format(isoMillis)
	rec = h.do(t, http.MethodGet, "/orders/delivery/"+h.partner.ID+"?start="+start+"&end="+end, "")
	require.Equal(t, http.StatusOK, rec.Code)
	recent := decode[ordersEnvelopeJSON](t, rec)
	assert.Len(t, recent.Orders, 7)

	rec = h.do(t, http.MethodGet, "/orders/delivery/"+h.partner.ID+"?start=yesterday", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid start date", decode[errorJSON](t, rec).Error)
}

func TestGetOrder_NotFound(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodGet, "/orders/"+store.NewOrderID(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Order not found", decode[errorJSON](t, rec).Error)
}

func TestUpdateOrderStatus_Delivered(t *testing.T) {
	h := newHarness(t)
	target := firstWithStatus(t, h, "out for delivery")

	rec := h.do(t, http.MethodPut, "/orders/"+target+"/status", `{"status":"Delivered"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := decode[map[string]any](t, rec)
	assert.Equal(t, "Delivered", got["status"])
	assert.NotNil(t, got["deliveryDate"])

	rec = h.do(t, http.MethodPut, "/orders/"+target+"/status", `{"status":"Return"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Order is already delivered", decode[errorJSON](t, rec).Error)
}

func TestUpdateOrderStatus_RequestValidation(t *testing.T) {
	h := newHarness(t)
	target := firstWithStatus(t, h, "packed")

	rec := h.do(t, http.MethodPut, "/orders/"+target+"/status", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", decode[errorJSON](t, rec).Error)

	rec = h.do(t, http.MethodPut, "/orders/"+target+"/status", `{"status":"teleported"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid status", decode[errorJSON](t, rec).Error)
}

func TestDeliveryLogin_Password(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodPost, "/auth/delivery/login",
		`{"email":"partner@example.com","password":"`+store.DefaultSeedPartner.Password+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[loginResponseJSON](t, rec)
	assert.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, h.partner.ID, resp.User.ID)

	rec = h.do(t, http.MethodPost, "/auth/delivery/login", `{"email":"partner@example.com","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDeliveryLogin_OTP(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodPost, "/auth/delivery/login", `{"email":"partner@example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OTP sent to your email", decode[loginResponseJSON](t, rec).Message)

	rec = h.do(t, http.MethodPost, "/auth/delivery/login", `{"email":"stranger@example.com"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Delivery partner not found", decode[errorJSON](t, rec).Error)

	code, err := h.codes.Issue(t.Context(), "partner@example.com")
	require.NoError(t, err)

	rec = h.do(t, http.MethodPost, "/auth/delivery/verify-otp", `{"email":"partner@example.com","otp":"`+code+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[authResponseJSON](t, rec)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, store.DefaultSeedPartner.Email, resp.User.Email)

	rec = h.do(t, http.MethodPost, "/auth/delivery/verify-otp", `{"email":"partner@example.com","otp":"`+code+`"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = h.do(t, http.MethodPost, "/auth/delivery/verify-otp", `{"email":"partner@example.com","otp":"12ab"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSwaggerServesContract(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodGet, "/swagger/doc.json", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/orders/delivery/{userId}")
}

func firstWithStatus(t *testing.T, h harness, status string) string {
	t.Helper()
	orders, err := store.NewOrderRepository(h.db).List(t.Context())
	require.NoError(t, err)
	for _, o := range orders {
		if o.Status == status {
			return o.ID
		}
	}
	t.Fatalf("no order with status %q", status)
	return ""
}
