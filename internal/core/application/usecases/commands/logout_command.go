package commands

import (
	"context"
	"errors"

	"deliverypartner/internal/pkg/guard"
)

var ErrLogoutCommandIsNotConstructed = errors.New(
	"LogoutCommand must be created via NewLogoutCommand constructor",
)

// LogoutCommand empties the session slot.
type LogoutCommand struct {
	guard guard.ConstructorGuard
}

func NewLogoutCommand() LogoutCommand {
	return LogoutCommand{guard: guard.NewConstructorGuard()}
}

func (c LogoutCommand) Validate() error {
	return c.guard.Validate(ErrLogoutCommandIsNotConstructed)
}

type LogoutCommandHandler struct {
	keeper SessionKeeper
}

func NewLogoutCommandHandler(keeper SessionKeeper) *LogoutCommandHandler {
	return &LogoutCommandHandler{keeper: keeper}
}

func (h *LogoutCommandHandler) Handle(ctx context.Context, cmd LogoutCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.keeper.Logout(ctx)
}
