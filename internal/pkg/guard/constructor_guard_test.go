package guard_test

import (
	"errors"
	"testing"

	"deliverypartner/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	g := guard.NewConstructorGuard()

	require.NoError(t, g.Validate(errors.New("not constructed")))
	require.NoError(t, g.Validate(nil))
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("query not constructed")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_EmbeddedInCommand(t *testing.T) {
	errScanNotConstructed := errors.New("ScanCommand must be created via NewScanCommand")

	type scanCommand struct {
		payload string
		guard   guard.ConstructorGuard
	}

	newScanCommand := func(payload string) (scanCommand, error) {
		if payload == "" {
			return scanCommand{}, errors.New("payload is required")
		}
		return scanCommand{payload: payload, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_command_is_valid", func(t *testing.T) {
		cmd, err := newScanCommand(`{"_id":"abc"}`)

		require.NoError(t, err)
		require.NoError(t, cmd.guard.Validate(errScanNotConstructed))
		assert.JSONEq(t, `{"_id":"abc"}`, cmd.payload)
	})

	t.Run("literal_command_is_rejected", func(t *testing.T) {
		cmd := scanCommand{payload: `{"_id":"abc"}`}

		assert.Equal(t, errScanNotConstructed, cmd.guard.Validate(errScanNotConstructed))
	})
}

func TestConstructorGuardConcurrency(t *testing.T) {
	g := guard.NewConstructorGuard()
	validationError := errors.New("not constructed")

	done := make(chan bool)
	for range 20 {
		go func() {
			for range 100 {
				assert.NoError(t, g.Validate(validationError))
			}
			done <- true
		}()
	}
	for range 20 {
		<-done
	}
}
