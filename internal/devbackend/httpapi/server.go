// Package httpapi is the development backend's REST surface. It serves the
// endpoints the partner client calls and validates requests against the
// shared contract.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"deliverypartner/api"
	"deliverypartner/internal/devbackend/otp"
	"deliverypartner/internal/devbackend/service"
	"deliverypartner/internal/devbackend/store"
	"deliverypartner/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Server maps HTTP requests onto the backend services.
type Server struct {
	orders *service.OrderService
	auth   *service.AuthService
	logger *slog.Logger
}

func NewServer(orders *service.OrderService, auth *service.AuthService, logger *slog.Logger) *Server {
	return &Server{
		orders: orders,
		auth:   auth,
		logger: logger.With("component", "HTTPServer"),
	}
}

// NewEcho builds the router with contract validation, swagger UI and health check.
func NewEcho(ctx context.Context, s *Server) (*echo.Echo, error) {
	doc, router, err := api.NewRouter(ctx)
	if err != nil {
		return nil, err
	}
	if err := registerSwagger(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(logBearer(s.subject, s.logger))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	validate := validateRequests(router)
	e.GET("/orders", s.ListOrders, validate)
	e.GET("/orders/delivery/:userId", s.ListPartnerOrders, validate)
	e.GET("/orders/:orderId", s.GetOrder, validate)
	e.PUT("/orders/:orderId/status", s.UpdateOrderStatus, validate)
	e.POST("/auth/delivery/login", s.DeliveryLogin, validate)
	e.POST("/auth/delivery/verify-otp", s.VerifyOTP, validate)
	return e, nil
}

// ListOrders handles GET /orders. The list is a bare array.
func (s *Server) ListOrders(c echo.Context) error {
	orders, err := s.orders.List(c.Request().Context())
	if err != nil {
		return s.fail(c, err, "Failed to retrieve orders")
	}
	return c.JSON(http.StatusOK, toOrderListJSON(orders))
}

// ListPartnerOrders handles GET /orders/delivery/{userId}. The list is
// wrapped under `orders`.
func (s *Server) ListPartnerOrders(c echo.Context) error {
	start, err := parseBound(c.QueryParam("start"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON{Error: "Invalid start date"})
	}
	end, err := parseBound(c.QueryParam("end"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON{Error: "Invalid end date"})
	}

	orders, err := s.orders.ListForPartner(c.Request().Context(), c.Param("userId"), store.Window{Start: start, End: end})
	if err != nil {
		return s.fail(c, err, "Failed to retrieve orders")
	}
	return c.JSON(http.StatusOK, ordersEnvelopeJSON{Orders: toOrderListJSON(orders)})
}

// GetOrder handles GET /orders/{orderId}.
func (s *Server) GetOrder(c echo.Context) error {
	o, err := s.orders.Get(c.Request().Context(), c.Param("orderId"))
	if err != nil {
		return s.fail(c, err, "Failed to retrieve order")
	}
	return c.JSON(http.StatusOK, toOrderJSON(o))
}

// UpdateOrderStatus handles PUT /orders/{orderId}/status.
func (s *Server) UpdateOrderStatus(c echo.Context) error {
	var body statusUpdateJSON
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON{Error: "Invalid request body"})
	}

	o, err := s.orders.UpdateStatus(c.Request().Context(), c.Param("orderId"), body.Status)
	if err != nil {
		return s.fail(c, err, "Failed to update order status")
	}
	return c.JSON(http.StatusOK, toOrderJSON(o))
}

// DeliveryLogin handles POST /auth/delivery/login. With a password it signs
// in directly, otherwise it issues a one-time code.
func (s *Server) DeliveryLogin(c echo.Context) error {
	var body loginRequestJSON
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON{Error: "Invalid request body"})
	}
	ctx := c.Request().Context()

	if body.Password != "" {
		signed, err := s.auth.PasswordLogin(ctx, body.Email, body.Password)
		if err != nil {
			return s.fail(c, err, "Login failed")
		}
		user := toUserJSON(signed.Partner)
		return c.JSON(http.StatusOK, loginResponseJSON{Message: "Login successful", Token: signed.Token, User: &user})
	}

	if err := s.auth.RequestOTP(ctx, body.Email); err != nil {
		return s.fail(c, err, "Failed to send OTP")
	}
	return c.JSON(http.StatusOK, loginResponseJSON{Message: "OTP sent to your email"})
}

// VerifyOTP handles POST /auth/delivery/verify-otp.
func (s *Server) VerifyOTP(c echo.Context) error {
	var body verifyOTPRequestJSON
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON{Error: "Invalid request body"})
	}

	signed, err := s.auth.VerifyOTP(c.Request().Context(), body.Email, body.OTP)
	if err != nil {
		return s.fail(c, err, "OTP verification failed")
	}
	return c.JSON(http.StatusOK, toAuthResponseJSON(signed))
}

// fail maps service errors onto status codes. Unexpected errors are logged
// and answered with fallback.
func (s *Server) fail(c echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return c.JSON(http.StatusNotFound, errorJSON{Error: notFoundMessage(err)})
	case errors.Is(err, errs.ErrValueIsInvalid), errors.Is(err, errs.ErrValueIsRequired):
		return c.JSON(http.StatusBadRequest, errorJSON{Error: invalidMessage(err)})
	case errors.Is(err, service.ErrOrderAlreadyDelivered):
		return c.JSON(http.StatusBadRequest, errorJSON{Error: "Order is already delivered"})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, errorJSON{Error: "Invalid email or password"})
	case errors.Is(err, otp.ErrCodeIsInvalid):
		return c.JSON(http.StatusUnauthorized, errorJSON{Error: "Invalid or expired OTP"})
	case errors.Is(err, otp.ErrTooManyAttempts):
		return c.JSON(http.StatusUnauthorized, errorJSON{Error: "Too many attempts. Request a new OTP"})
	}

	s.logger.ErrorContext(c.Request().Context(), fallback, "path", c.Request().URL.Path, "error", err)
	return c.JSON(http.StatusInternalServerError, errorJSON{Error: fallback})
}

func (s *Server) subject(token string) (string, error) {
	claims, err := s.auth.Authenticate(token)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func notFoundMessage(err error) string {
	var nf *errs.ObjectNotFoundError
	if errors.As(err, &nf) && nf.ParamName == "delivery partner" {
		return "Delivery partner not found"
	}
	return "Order not found"
}

func invalidMessage(err error) string {
	var invalid *errs.ValueIsInvalidError
	if errors.As(err, &invalid) && invalid.ParamName == "status" {
		return "Invalid status"
	}
	return "Invalid request"
}

// parseBound accepts any RFC 3339 timestamp, with or without fraction.
func parseBound(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
