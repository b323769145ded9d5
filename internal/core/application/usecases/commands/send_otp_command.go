package commands

import (
	"context"
	"errors"
	"log/slog"

	"deliverypartner/internal/core/ports"
	"deliverypartner/internal/pkg/guard"
)

var ErrSendOTPCommandIsNotConstructed = errors.New(
	"SendOTPCommand must be created via NewSendOTPCommand constructor",
)

// SendOTPCommand asks the backend to email a one-time code.
//
// Example:
//
//	cmd, err := NewSendOTPCommand("partner@example.com")
//	if err != nil {
//	    return err // nothing was sent
//	}
//	err = handler.Handle(ctx, cmd)
type SendOTPCommand struct { //nolint:recvcheck //using for validation
	email string

	guard guard.ConstructorGuard
}

// NewSendOTPCommand validates the address before anything is sent.
func NewSendOTPCommand(email string) (SendOTPCommand, error) {
	valid, err := validateEmail(email)
	if err != nil {
		return SendOTPCommand{}, err
	}

	return SendOTPCommand{email: valid, guard: guard.NewConstructorGuard()}, nil
}

func (c SendOTPCommand) Validate() error {
	return c.guard.Validate(ErrSendOTPCommandIsNotConstructed)
}

func (c SendOTPCommand) Email() string {
	return c.email
}

type SendOTPCommandHandler struct {
	auth   ports.AuthGateway
	logger *slog.Logger
}

func NewSendOTPCommandHandler(auth ports.AuthGateway, logger *slog.Logger) *SendOTPCommandHandler {
	return &SendOTPCommandHandler{auth: auth, logger: logger.With("component", "send_otp")}
}

func (h *SendOTPCommandHandler) Handle(ctx context.Context, cmd SendOTPCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.auth.SendOTP(ctx, cmd.Email()); err != nil {
		h.logger.ErrorContext(ctx, "Failed to send OTP", "error", err)
		return err
	}

	h.logger.InfoContext(ctx, "OTP sent")
	return nil
}
