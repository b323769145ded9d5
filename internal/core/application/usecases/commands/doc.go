// Package commands contains the partner client's operations that change state,
// either on the backend (status updates, OTP requests) or in the local session slot.
//
// Every command is a value built by its NewXxxCommand constructor, which does
// all client-side validation. A command that fails validation never reaches
// its handler, so no request is sent.
package commands

import (
	"context"

	"deliverypartner/internal/core/domain/model/partner"
)

// SessionKeeper receives sessions produced by a successful login and drops them on logout.
type SessionKeeper interface {
	Login(ctx context.Context, s partner.Session) error
	Logout(ctx context.Context) error
}
