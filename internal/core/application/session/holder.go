// Package session holds the signed-in partner for the lifetime of the process.
//
// A Holder is constructed explicitly and handed to the use cases that need
// the current partner. Its lifecycle is:
//
//	init (read the persisted slot) -> active (after login) -> cleared (after logout)
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"deliverypartner/internal/core/domain/model/partner"
	"deliverypartner/internal/core/ports"
)

var (
	// ErrNotSignedIn is returned by operations that need a partner while none is signed in.
	ErrNotSignedIn = errors.New("not signed in")

	// ErrNotInitialized is returned when the holder is used before Init.
	ErrNotInitialized = errors.New("session holder is not initialized")
)

// Holder owns the single session slot. It is safe for concurrent readers;
// writes happen only on Init, Login and Logout.
type Holder struct {
	store  ports.SessionStore
	logger *slog.Logger
	now    func() time.Time

	mu          sync.RWMutex
	initialized bool
	current     *partner.Session
}

func NewHolder(store ports.SessionStore, logger *slog.Logger) *Holder {
	return &Holder{
		store:  store,
		logger: logger.With("component", "session_holder"),
		now:    time.Now,
	}
}

// WithClock replaces the clock used for expiry checks.
func (h *Holder) WithClock(now func() time.Time) *Holder {
	h.now = now
	return h
}

// Init reads the persisted slot once. An expired session is cleared.
func (h *Holder) Init(ctx context.Context) error {
	s, ok, err := h.store.Load(ctx)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.initialized = true
	h.current = nil

	if !ok {
		h.logger.DebugContext(ctx, "No persisted session")
		return nil
	}

	if s.IsExpired(h.now()) {
		h.logger.InfoContext(ctx, "Persisted session expired", "user_id", s.User().ID())
		return h.store.Clear(ctx)
	}

	h.current = &s
	h.logger.DebugContext(ctx, "Session restored", "user_id", s.User().ID())
	return nil
}

// Current returns the active session and whether there is one.
func (h *Holder) Current() (partner.Session, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.current == nil {
		return partner.Session{}, false
	}
	return *h.current, true
}

// Token is the active credential, empty when signed out.
func (h *Holder) Token() string {
	s, ok := h.Current()
	if !ok {
		return ""
	}
	return s.Token()
}

// RequireUser returns the signed-in partner.
func (h *Holder) RequireUser() (partner.User, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if !h.initialized {
		return partner.User{}, ErrNotInitialized
	}
	if h.current == nil {
		return partner.User{}, ErrNotSignedIn
	}
	return h.current.User(), nil
}

// Login persists the session and makes it current, replacing any previous one.
func (h *Holder) Login(ctx context.Context, s partner.Session) error {
	if err := s.Validate(); err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.store.Save(ctx, s); err != nil {
		return err
	}

	h.initialized = true
	h.current = &s
	h.logger.InfoContext(ctx, "Signed in", "user_id", s.User().ID())
	return nil
}

// Logout clears the persisted slot and the current session.
func (h *Holder) Logout(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.store.Clear(ctx); err != nil {
		return err
	}

	if h.current != nil {
		h.logger.InfoContext(ctx, "Signed out", "user_id", h.current.User().ID())
	}
	h.current = nil
	return nil
}
