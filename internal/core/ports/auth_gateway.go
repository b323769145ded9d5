package ports

import (
	"context"

	"deliverypartner/internal/core/domain/model/partner"
)

// AuthGateway is the auth half of the backend REST contract.
type AuthGateway interface {
	// SendOTP asks the backend to send a one-time code (POST /auth/delivery/login {email}).
	SendOTP(ctx context.Context, email string) error

	// VerifyOTP exchanges the code for a session (POST /auth/delivery/verify-otp).
	VerifyOTP(ctx context.Context, email, otp string) (partner.Session, error)

	// PasswordLogin signs in directly (POST /auth/delivery/login {email,password}).
	PasswordLogin(ctx context.Context, email, password string) (partner.Session, error)
}
