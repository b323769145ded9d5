package partner

import (
	"errors"
	"time"

	"deliverypartner/internal/pkg/errs"
	"deliverypartner/internal/pkg/guard"
)

var (
	ErrTokenIsRequired         = errs.NewValueIsRequiredError("token")
	ErrSessionIsNotConstructed = errors.New("Session must be created via NewSession")
)

// Session is the signed-in partner plus the opaque credential the backend issued.
// At most one session exists per device.
type Session struct {
	user      User
	token     string
	expiresAt *time.Time

	guard guard.ConstructorGuard
}

// NewSession builds a session. expiresAt is nil when the credential carries no expiry.
func NewSession(user User, token string, expiresAt *time.Time) (Session, error) {
	if err := user.Validate(); err != nil {
		return Session{}, err
	}
	if token == "" {
		return Session{}, ErrTokenIsRequired
	}

	s := Session{user: user, token: token, guard: guard.NewConstructorGuard()}
	if expiresAt != nil {
		e := *expiresAt
		s.expiresAt = &e
	}
	return s, nil
}

func (s Session) Validate() error {
	return s.guard.Validate(ErrSessionIsNotConstructed)
}

func (s Session) User() User {
	return s.user
}

// Token is sent as a bearer credential. The client never interprets it beyond reading its expiry.
func (s Session) Token() string {
	return s.token
}

func (s Session) ExpiresAt() (time.Time, bool) {
	if s.expiresAt == nil {
		return time.Time{}, false
	}
	return *s.expiresAt, true
}

// IsExpired is false for sessions without an expiry.
func (s Session) IsExpired(now time.Time) bool {
	return s.expiresAt != nil && !now.Before(*s.expiresAt)
}
