package backend

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

// recorded is one request as the fake backend saw it.
type recorded struct {
	Method        string
	Path          string
	RawPath       string
	Query         map[string][]string
	Authorization string
	RequestID     string
	ContentType   string
	Body          string
}

type fakeBackend struct {
	*echo.Echo

	mu       sync.Mutex
	requests []recorded
}

func newFakeBackend() *fakeBackend {
	f := &fakeBackend{Echo: echo.New()}
	f.HideBanner = true
	f.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			body, _ := io.ReadAll(req.Body)

			f.mu.Lock()
			f.requests = append(f.requests, recorded{
				Method:        req.Method,
				Path:          req.URL.Path,
				RawPath:       req.URL.RawPath,
				Query:         req.URL.Query(),
				Authorization: req.Header.Get("Authorization"),
				RequestID:     req.Header.Get(headerRequestID),
				ContentType:   req.Header.Get("Content-Type"),
				Body:          string(body),
			})
			f.mu.Unlock()
			return next(c)
		}
	})
	return f
}

func (f *fakeBackend) recorded() []recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]recorded, len(f.requests))
	copy(out, f.requests)
	return out
}

// jsonBody registers a handler that always answers with status and body.
func jsonBody(status int, body string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Blob(status, echo.MIMEApplicationJSON, []byte(body))
	}
}

type staticToken string

func (s staticToken) Token() string { return string(s) }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestClient starts an httptest server for f and returns a client bound to it.
func newTestClient(t *testing.T, f *fakeBackend, token string, validate bool) *Client {
	t.Helper()

	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	client, err := NewClient(t.Context(), Config{
		BaseURL:           srv.URL,
		ValidateResponses: validate,
	}, staticToken(token), discardLogger())
	require.NoError(t, err)
	return client
}

var _ http.Handler = (*fakeBackend)(nil)
