package commands

import (
	"context"
	"errors"
	"log/slog"

	"deliverypartner/internal/core/domain/model/partner"
	"deliverypartner/internal/core/ports"
	"deliverypartner/internal/pkg/guard"
)

var ErrPasswordLoginCommandIsNotConstructed = errors.New(
	"PasswordLoginCommand must be created via NewPasswordLoginCommand constructor",
)

// PasswordLoginCommand signs in with email and password in one request.
type PasswordLoginCommand struct { //nolint:recvcheck //using for validation
	email    string
	password string

	guard guard.ConstructorGuard
}

func NewPasswordLoginCommand(email, password string) (PasswordLoginCommand, error) {
	cmd := PasswordLoginCommand{guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		cmd.setEmail(email),
		cmd.setPassword(password),
	); err != nil {
		return PasswordLoginCommand{}, err
	}
	return cmd, nil
}

func (c PasswordLoginCommand) Validate() error {
	return c.guard.Validate(ErrPasswordLoginCommandIsNotConstructed)
}

func (c PasswordLoginCommand) Email() string {
	return c.email
}

func (c PasswordLoginCommand) Password() string {
	return c.password
}

func (c *PasswordLoginCommand) setEmail(email string) error {
	valid, err := validateEmail(email)
	if err != nil {
		return err
	}
	c.email = valid
	return nil
}

func (c *PasswordLoginCommand) setPassword(password string) error {
	if password == "" {
		return ErrPasswordIsRequired
	}
	c.password = password
	return nil
}

type PasswordLoginCommandHandler struct {
	auth   ports.AuthGateway
	keeper SessionKeeper
	logger *slog.Logger
}

func NewPasswordLoginCommandHandler(
	auth ports.AuthGateway,
	keeper SessionKeeper,
	logger *slog.Logger,
) *PasswordLoginCommandHandler {
	return &PasswordLoginCommandHandler{
		auth:   auth,
		keeper: keeper,
		logger: logger.With("component", "password_login"),
	}
}

func (h *PasswordLoginCommandHandler) Handle(ctx context.Context, cmd PasswordLoginCommand) (partner.Session, error) {
	if err := cmd.Validate(); err != nil {
		return partner.Session{}, err
	}

	s, err := h.auth.PasswordLogin(ctx, cmd.Email(), cmd.Password())
	if err != nil {
		h.logger.ErrorContext(ctx, "Password login failed", "error", err)
		return partner.Session{}, err
	}

	if err = h.keeper.Login(ctx, s); err != nil {
		return partner.Session{}, err
	}
	return s, nil
}
