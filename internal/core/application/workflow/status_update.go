package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"deliverypartner/internal/core/application/usecases/commands"
	"deliverypartner/internal/core/domain/model/kernel"
	"deliverypartner/internal/core/domain/model/order"
	"deliverypartner/internal/core/ports"
)

// State is a StatusUpdate step.
type State int

const (
	Idle State = iota
	SelectingStatus
	AwaitingPhoto
	Submitting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case SelectingStatus:
		return "SelectingStatus"
	case AwaitingPhoto:
		return "AwaitingPhoto"
	case Submitting:
		return "Submitting"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	// ErrUpdateInFlight is returned while an update request for the order is outstanding.
	ErrUpdateInFlight = errors.New("status update already in progress")

	// ErrInvalidTransition is returned when a step is taken out of order.
	ErrInvalidTransition = errors.New("status update step not allowed in current state")

	// ErrOrderIsDelivered is returned when opening the picker on a delivered order.
	ErrOrderIsDelivered = errors.New("order is already delivered")

	ErrOrderIsRequired = errors.New("status update needs an order")
)

// StatusUpdater sends one status update and returns the backend's order.
type StatusUpdater interface {
	Handle(ctx context.Context, cmd commands.UpdateOrderStatusCommand) (*order.Order, error)
}

// Outcome reports what a step did.
type Outcome struct {
	// Order is the current order after the step; replaced wholesale on success.
	Order *order.Order

	Submitted     bool
	AwaitingPhoto bool
	Cancelled     bool

	// ShowEarnings is set when the order came back delivered; Earned is its
	// delivery charge, zero when the backend sent none.
	ShowEarnings bool
	Earned       kernel.Money
}

// StatusUpdate is the status update workflow for one order.
type StatusUpdate struct {
	updater StatusUpdater
	logger  *slog.Logger

	mu      sync.Mutex
	state   State
	current *order.Order
	pending commands.UpdateOrderStatusCommand
}

func NewStatusUpdate(current *order.Order, updater StatusUpdater, logger *slog.Logger) (*StatusUpdate, error) {
	if err := current.Validate(); err != nil {
		return nil, errors.Join(ErrOrderIsRequired, err)
	}

	return &StatusUpdate{
		updater: updater,
		logger:  logger.With("component", "status_update", "order_id", current.ID()),
		current: current,
	}, nil
}

func (w *StatusUpdate) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Order is the order as the backend last reported it.
func (w *StatusUpdate) Order() *order.Order {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Open shows the status picker.
func (w *StatusUpdate) Open() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.expect(Idle); err != nil {
		return err
	}
	if w.current.IsDelivered() {
		return ErrOrderIsDelivered
	}

	w.state = SelectingStatus
	return nil
}

// Cancel closes the status picker without choosing.
func (w *StatusUpdate) Cancel() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.expect(SelectingStatus); err != nil {
		return err
	}

	w.state = Idle
	return nil
}

// Confirm picks the target status. A "delivered" target waits for a photo;
// any other target is submitted right away. An invalid target leaves the
// picker open and sends nothing.
func (w *StatusUpdate) Confirm(ctx context.Context, target order.Status) (Outcome, error) {
	w.mu.Lock()
	current := w.current

	if err := w.expect(SelectingStatus); err != nil {
		w.mu.Unlock()
		return Outcome{Order: current}, err
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(current.ID(), target)
	if err != nil {
		w.mu.Unlock()
		return Outcome{Order: current}, err
	}

	if target.IsDelivered() {
		w.state = AwaitingPhoto
		w.pending = cmd
		w.mu.Unlock()

		w.logger.DebugContext(ctx, "Waiting for delivery photo")
		return Outcome{Order: current, AwaitingPhoto: true}, nil
	}

	w.state = Submitting
	w.mu.Unlock()

	return w.submit(ctx, cmd)
}

// CaptureSucceeded submits the deferred "delivered" update. The photo itself
// is only logged.
func (w *StatusUpdate) CaptureSucceeded(ctx context.Context, photo ports.Photo) (Outcome, error) {
	w.mu.Lock()
	current := w.current

	if err := w.expect(AwaitingPhoto); err != nil {
		w.mu.Unlock()
		return Outcome{Order: current}, err
	}

	cmd := w.pending
	w.state = Submitting
	w.mu.Unlock()

	w.logger.InfoContext(ctx, "Delivery photo captured",
		"source", photo.Source, "size", photo.Size, "taken_at", photo.TakenAt)
	return w.submit(ctx, cmd)
}

// CaptureCancelled abandons a "delivered" update. Nothing is sent.
func (w *StatusUpdate) CaptureCancelled() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.expect(AwaitingPhoto); err != nil {
		return err
	}

	w.state = Idle
	w.pending = commands.UpdateOrderStatusCommand{}
	return nil
}

// Run walks the whole workflow for target, taking the photo with capturer
// when the target is "delivered". A cancelled capture is not an error: the
// outcome is marked Cancelled and nothing was sent.
func (w *StatusUpdate) Run(ctx context.Context, target order.Status, capturer ports.PhotoCapturer) (Outcome, error) {
	if err := w.Open(); err != nil {
		return Outcome{Order: w.Order()}, err
	}

	out, err := w.Confirm(ctx, target)
	if err != nil {
		if w.State() == SelectingStatus {
			_ = w.Cancel()
		}
		return out, err
	}
	if !out.AwaitingPhoto {
		return out, nil
	}

	photo, err := capturer.Capture(ctx, out.Order.ID())
	if err != nil {
		if cancelErr := w.CaptureCancelled(); cancelErr != nil {
			return Outcome{Order: w.Order()}, cancelErr
		}
		if errors.Is(err, ports.ErrCaptureCancelled) {
			w.logger.InfoContext(ctx, "Delivery photo cancelled")
			return Outcome{Order: w.Order(), Cancelled: true}, nil
		}
		return Outcome{Order: w.Order()}, err
	}

	return w.CaptureSucceeded(ctx, photo)
}

func (w *StatusUpdate) submit(ctx context.Context, cmd commands.UpdateOrderStatusCommand) (Outcome, error) {
	updated, err := w.updater.Handle(ctx, cmd)

	w.mu.Lock()
	defer w.mu.Unlock()

	w.state = Idle
	w.pending = commands.UpdateOrderStatusCommand{}

	if err != nil {
		w.logger.ErrorContext(ctx, "Status update failed", "status", cmd.Status(), "error", err)
		return Outcome{Order: w.current}, err
	}

	w.current = updated
	out := Outcome{Order: updated, Submitted: true}
	if updated.IsDelivered() {
		out.ShowEarnings = true
		out.Earned = updated.DeliveryCharge()
	}
	return out, nil
}

// expect must be called with mu held.
func (w *StatusUpdate) expect(state State) error {
	if w.state == Submitting {
		return ErrUpdateInFlight
	}
	if w.state != state {
		return fmt.Errorf("%w: %s, expected %s", ErrInvalidTransition, w.state, state)
	}
	return nil
}
