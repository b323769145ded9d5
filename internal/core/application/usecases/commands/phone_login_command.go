package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"deliverypartner/internal/core/domain/model/kernel"
	"deliverypartner/internal/core/domain/model/partner"
	"deliverypartner/internal/pkg/errs"
	"deliverypartner/internal/pkg/guard"

	"github.com/google/uuid"
)

const (
	// PhoneLoginCode is the fixed code accepted by the phone login stand-in.
	PhoneLoginCode = "1234"

	phoneLength = 10
)

var (
	ErrPhoneLoginCommandIsNotConstructed = errors.New(
		"PhoneLoginCommand must be created via NewPhoneLoginCommand constructor",
	)
	ErrOTPIsIncorrect = errs.NewValueIsInvalidErrorWithCause("OTP", errors.New("Invalid OTP"))
)

// PhoneLoginCommand is the phone + fixed code stand-in login. It never
// contacts the backend; the session it produces carries a locally minted token.
type PhoneLoginCommand struct { //nolint:recvcheck //using for validation
	phone string
	otp   string

	guard guard.ConstructorGuard
}

func NewPhoneLoginCommand(phone, otp string) (PhoneLoginCommand, error) {
	cmd := PhoneLoginCommand{guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		cmd.setPhone(phone),
		cmd.setOTP(otp),
	); err != nil {
		return PhoneLoginCommand{}, err
	}
	return cmd, nil
}

func (c PhoneLoginCommand) Validate() error {
	return c.guard.Validate(ErrPhoneLoginCommandIsNotConstructed)
}

func (c PhoneLoginCommand) Phone() string {
	return c.phone
}

func (c PhoneLoginCommand) OTP() string {
	return c.otp
}

func (c *PhoneLoginCommand) setPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if err := validateDigits("phone number", phone, phoneLength); err != nil {
		return err
	}
	c.phone = phone
	return nil
}

func (c *PhoneLoginCommand) setOTP(otp string) error {
	if err := validateDigits("OTP", otp, len(PhoneLoginCode)); err != nil {
		return err
	}
	c.otp = otp
	return nil
}

type PhoneLoginCommandHandler struct {
	keeper SessionKeeper
	logger *slog.Logger
}

func NewPhoneLoginCommandHandler(keeper SessionKeeper, logger *slog.Logger) *PhoneLoginCommandHandler {
	return &PhoneLoginCommandHandler{keeper: keeper, logger: logger.With("component", "phone_login")}
}

func (h *PhoneLoginCommandHandler) Handle(ctx context.Context, cmd PhoneLoginCommand) (partner.Session, error) {
	if err := cmd.Validate(); err != nil {
		return partner.Session{}, err
	}

	if cmd.OTP() != PhoneLoginCode {
		h.logger.InfoContext(ctx, "Phone login rejected")
		return partner.Session{}, ErrOTPIsIncorrect
	}

	user, err := partner.NewUser(cmd.Phone(), "", "", cmd.Phone(), kernel.ZeroMoney())
	if err != nil {
		return partner.Session{}, err
	}

	s, err := partner.NewSession(user, "local:"+uuid.NewString(), nil)
	if err != nil {
		return partner.Session{}, err
	}

	if err = h.keeper.Login(ctx, s); err != nil {
		return partner.Session{}, err
	}
	return s, nil
}
