package ports

import (
	"context"
	"errors"
	"time"
)

// ErrCaptureCancelled is returned when the partner backs out of the camera.
var ErrCaptureCancelled = errors.New("photo capture cancelled")

// Photo is a captured proof of delivery. It is never uploaded.
type Photo struct {
	Source  string
	Size    int64
	TakenAt time.Time
}

// PhotoCapturer is the device camera.
type PhotoCapturer interface {
	// Capture blocks until the partner takes a photo or cancels.
	// Cancellation is reported as ErrCaptureCancelled.
	Capture(ctx context.Context, orderID string) (Photo, error)
}
