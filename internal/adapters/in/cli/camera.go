package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"deliverypartner/internal/core/ports"
)

var _ ports.PhotoCapturer = FileCapturer{}

// FileCapturer stands in for the camera with an image already on disk.
type FileCapturer struct {
	path string
}

func NewFileCapturer(path string) FileCapturer {
	return FileCapturer{path: strings.TrimSpace(path)}
}

// Capture accepts any existing regular file. An empty path cancels.
func (c FileCapturer) Capture(_ context.Context, _ string) (ports.Photo, error) {
	if c.path == "" {
		return ports.Photo{}, ports.ErrCaptureCancelled
	}

	info, err := os.Stat(c.path)
	if err != nil {
		return ports.Photo{}, fmt.Errorf("delivery photo: %w", err)
	}
	if !info.Mode().IsRegular() {
		return ports.Photo{}, fmt.Errorf("delivery photo: %s is not a file", c.path)
	}

	return ports.Photo{Source: c.path, Size: info.Size(), TakenAt: info.ModTime()}, nil
}

// promptCapturer asks for the photo file on the terminal.
type promptCapturer struct {
	in  *bufio.Reader
	out io.Writer
}

func newPromptCapturer(in *bufio.Reader, out io.Writer) promptCapturer {
	return promptCapturer{in: in, out: out}
}

func (c promptCapturer) Capture(ctx context.Context, orderID string) (ports.Photo, error) {
	fmt.Fprintf(c.out, "Photo of delivered order #%s (file path, empty to cancel): ", orderID)

	line, err := c.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return ports.Photo{}, err
	}

	photo, err := NewFileCapturer(line).Capture(ctx, orderID)
	if err == nil && photo.TakenAt.IsZero() {
		photo.TakenAt = time.Now()
	}
	return photo, err
}
