package backend

import (
	"context"
	"net/http"

	"deliverypartner/internal/core/domain/model/partner"
	"deliverypartner/internal/core/ports"
)

var _ ports.AuthGateway = &AuthGateway{}

type AuthGateway struct {
	client *Client
}

func NewAuthGateway(client *Client) *AuthGateway {
	return &AuthGateway{client: client}
}

func (g *AuthGateway) SendOTP(ctx context.Context, email string) error {
	_, err := g.client.do(ctx, call{
		operation: "deliveryLogin",
		method:    http.MethodPost,
		path:      "/auth/delivery/login",
		body:      loginRequestDTO{Email: email},
	}, nil)
	return err
}

func (g *AuthGateway) VerifyOTP(ctx context.Context, email, otp string) (partner.Session, error) {
	return g.signIn(ctx, call{
		operation: "verifyOtp",
		method:    http.MethodPost,
		path:      "/auth/delivery/verify-otp",
		body:      verifyOTPRequestDTO{Email: email, OTP: otp},
	})
}

func (g *AuthGateway) PasswordLogin(ctx context.Context, email, password string) (partner.Session, error) {
	return g.signIn(ctx, call{
		operation: "deliveryLogin",
		method:    http.MethodPost,
		path:      "/auth/delivery/login",
		body:      loginRequestDTO{Email: email, Password: password},
	})
}

func (g *AuthGateway) signIn(ctx context.Context, in call) (partner.Session, error) {
	resp, err := g.client.do(ctx, in, nil)
	if err != nil {
		return partner.Session{}, err
	}

	var dto authResponseDTO
	if err := decodeJSON(resp.body, &dto); err != nil {
		return partner.Session{}, err
	}
	return dto.toSession()
}
