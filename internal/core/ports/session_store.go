package ports

import (
	"context"

	"deliverypartner/internal/core/domain/model/partner"
)

// SessionStore persists the single session slot across restarts.
type SessionStore interface {
	// Load returns the stored session and false when the slot is empty.
	Load(ctx context.Context) (partner.Session, bool, error)

	// Save replaces whatever the slot holds.
	Save(ctx context.Context, session partner.Session) error

	// Clear empties the slot. Clearing an empty slot is not an error.
	Clear(ctx context.Context) error
}
