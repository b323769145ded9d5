package commands

import (
	"context"
	"errors"
	"log/slog"

	"deliverypartner/internal/core/domain/model/partner"
	"deliverypartner/internal/core/ports"
	"deliverypartner/internal/pkg/guard"
)

var ErrVerifyOTPCommandIsNotConstructed = errors.New(
	"VerifyOTPCommand must be created via NewVerifyOTPCommand constructor",
)

// VerifyOTPCommand exchanges an emailed code for a session.
type VerifyOTPCommand struct { //nolint:recvcheck //using for validation
	email string
	otp   string

	guard guard.ConstructorGuard
}

// NewVerifyOTPCommand checks the address and that otp is exactly length digits.
// A length of 0 or less means DefaultOTPLength.
func NewVerifyOTPCommand(email, otp string, length int) (VerifyOTPCommand, error) {
	if length <= 0 {
		length = DefaultOTPLength
	}

	cmd := VerifyOTPCommand{guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		cmd.setEmail(email),
		cmd.setOTP(otp, length),
	); err != nil {
		return VerifyOTPCommand{}, err
	}

	return cmd, nil
}

func (c VerifyOTPCommand) Validate() error {
	return c.guard.Validate(ErrVerifyOTPCommandIsNotConstructed)
}

func (c VerifyOTPCommand) Email() string {
	return c.email
}

func (c VerifyOTPCommand) OTP() string {
	return c.otp
}

func (c *VerifyOTPCommand) setEmail(email string) error {
	valid, err := validateEmail(email)
	if err != nil {
		return err
	}
	c.email = valid
	return nil
}

func (c *VerifyOTPCommand) setOTP(otp string, length int) error {
	if err := validateDigits("OTP", otp, length); err != nil {
		return err
	}
	c.otp = otp
	return nil
}

// VerifyOTPCommandHandler verifies the code and hands the new session to the keeper.
type VerifyOTPCommandHandler struct {
	auth   ports.AuthGateway
	keeper SessionKeeper
	logger *slog.Logger
}

func NewVerifyOTPCommandHandler(
	auth ports.AuthGateway,
	keeper SessionKeeper,
	logger *slog.Logger,
) *VerifyOTPCommandHandler {
	return &VerifyOTPCommandHandler{
		auth:   auth,
		keeper: keeper,
		logger: logger.With("component", "verify_otp"),
	}
}

func (h *VerifyOTPCommandHandler) Handle(ctx context.Context, cmd VerifyOTPCommand) (partner.Session, error) {
	if err := cmd.Validate(); err != nil {
		return partner.Session{}, err
	}

	s, err := h.auth.VerifyOTP(ctx, cmd.Email(), cmd.OTP())
	if err != nil {
		h.logger.ErrorContext(ctx, "OTP verification failed", "error", err)
		return partner.Session{}, err
	}

	if err = h.keeper.Login(ctx, s); err != nil {
		return partner.Session{}, err
	}

	return s, nil
}
