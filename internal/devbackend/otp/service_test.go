package otp

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(store Store, cfg Config) (*Service, *time.Time) {
	cfg.HashCost = bcrypt.MinCost
	svc := NewService(store, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	now := time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	return svc, &now
}

func TestIssue_GeneratesDigitsOfConfiguredLength(t *testing.T) {
	svc, _ := newTestService(NewMemoryStore(), Config{Length: 4})

	code, err := svc.Issue(t.Context(), "a@example.com")
	require.NoError(t, err)
	assert.Len(t, code, 4)
	assert.Regexp(t, `^[0-9]{4}$`, code)
	assert.Equal(t, 4, svc.Length())
}

func TestVerify_ConsumesCode(t *testing.T) {
	store := NewMemoryStore()
	svc, _ := newTestService(store, Config{})

	code, err := svc.Issue(t.Context(), " Partner@Example.com")
	require.NoError(t, err)
	assert.Len(t, code, DefaultLength)

	require.NoError(t, svc.Verify(t.Context(), "partner@example.com", code))
	assert.ErrorIs(t, svc.Verify(t.Context(), "partner@example.com", code), ErrCodeIsInvalid)
}

func TestVerify_ReissueReplacesPendingCode(t *testing.T) {
	svc, _ := newTestService(NewMemoryStore(), Config{Length: 8})

	first, err := svc.Issue(t.Context(), "a@example.com")
	require.NoError(t, err)
	second, err := svc.Issue(t.Context(), "a@example.com")
	require.NoError(t, err)

	if first != second {
		assert.ErrorIs(t, svc.Verify(t.Context(), "a@example.com", first), ErrCodeIsInvalid)
	}
	assert.NoError(t, svc.Verify(t.Context(), "a@example.com", second))
}

func TestVerify_ExpiredCode(t *testing.T) {
	svc, now := newTestService(NewMemoryStore(), Config{TTL: time.Minute})

	code, err := svc.Issue(t.Context(), "a@example.com")
	require.NoError(t, err)

	*now = now.Add(time.Minute)
	assert.ErrorIs(t, svc.Verify(t.Context(), "a@example.com", code), ErrCodeIsInvalid)
}

func TestVerify_DropsCodeAfterMaxAttempts(t *testing.T) {
	store := NewMemoryStore()
	svc, _ := newTestService(store, Config{Length: 6, MaxAttempts: 3})

	code, err := svc.Issue(t.Context(), "a@example.com")
	require.NoError(t, err)
	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}

	assert.ErrorIs(t, svc.Verify(t.Context(), "a@example.com", wrong), ErrCodeIsInvalid)
	assert.ErrorIs(t, svc.Verify(t.Context(), "a@example.com", wrong), ErrCodeIsInvalid)
	assert.ErrorIs(t, svc.Verify(t.Context(), "a@example.com", wrong), ErrTooManyAttempts)

	_, ok, err := store.Load(t.Context(), "a@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.ErrorIs(t, svc.Verify(t.Context(), "a@example.com", code), ErrCodeIsInvalid)
}

func TestVerify_UnknownEmail(t *testing.T) {
	svc, _ := newTestService(NewMemoryStore(), Config{})
	assert.ErrorIs(t, svc.Verify(t.Context(), "nobody@example.com", "123456"), ErrCodeIsInvalid)
}

func TestMemoryStore_Sweep(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(t.Context(), "old@example.com", Entry{ExpiresAt: now}))
	require.NoError(t, store.Save(t.Context(), "new@example.com", Entry{ExpiresAt: now.Add(time.Second)}))

	assert.Equal(t, 1, store.Sweep(now))

	_, ok, _ := store.Load(t.Context(), "old@example.com")
	assert.False(t, ok)
	_, ok, _ = store.Load(t.Context(), "new@example.com")
	assert.True(t, ok)
}
