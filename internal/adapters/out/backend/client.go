// Package backend implements the order and auth gateways over the partner
// REST API described by the embedded contract in package api.
//
// Every call issues exactly one HTTP request. Responses are decoded as untyped
// JSON and normalized into domain types here, so the rest of the client never
// sees the shape variations the backend is known to produce.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"deliverypartner/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	headerRequestID = "X-Request-ID"
	mimeJSON        = "application/json"
)

var ErrBaseURLIsInvalid = errors.New("backend base URL is invalid")

// TokenSource yields the bearer credential of the signed-in partner.
// An empty token sends the request unauthenticated.
type TokenSource interface {
	Token() string
}

// Config configures a Client.
type Config struct {
	BaseURL string
	// Timeout bounds a whole request. Zero leaves requests unbounded.
	Timeout time.Duration
	// ValidateResponses checks 2xx bodies against the API contract.
	ValidateResponses bool
	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// Client is the shared REST plumbing behind OrderGateway and AuthGateway.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	tokens    TokenSource
	validator *contractValidator
	logger    *slog.Logger
}

func NewClient(ctx context.Context, cfg Config, tokens TokenSource, logger *slog.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrBaseURLIsInvalid, cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	c := &Client{
		baseURL: base,
		http:    httpClient,
		tokens:  tokens,
		logger:  logger.With("component", "backend_client"),
	}

	if cfg.ValidateResponses {
		c.validator, err = newContractValidator(ctx)
		if err != nil {
			return nil, err
		}
	}
	return c, nil
}

// call describes one request against the contract.
type call struct {
	operation string
	method    string
	path      string
	query     url.Values
	body      any
}

// response is a raw answer with a 2xx status.
type response struct {
	status int
	body   []byte
}

// do sends the request and maps failures onto the errs taxonomy:
// no response is a TransportError, 404 is ObjectNotFound when notFound is
// set, any other non-2xx is a RemoteError carrying the backend's message.
func (c *Client) do(ctx context.Context, in call, notFound *errs.ObjectNotFoundError) (response, error) {
	req, err := c.newRequest(ctx, in)
	if err != nil {
		return response{}, err
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "Request failed",
			"operation", in.operation, "request_id", req.Header.Get(headerRequestID), "error", err)
		return response{}, errs.NewTransportError(in.operation, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return response{}, errs.NewTransportError(in.operation, err)
	}

	c.logger.DebugContext(ctx, "Request completed",
		"operation", in.operation,
		"request_id", req.Header.Get(headerRequestID),
		"status", resp.StatusCode,
		"duration", time.Since(started))

	if resp.StatusCode == http.StatusNotFound && notFound != nil {
		return response{}, notFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return response{}, errs.NewRemoteError(in.operation, resp.StatusCode, errorMessage(body))
	}

	if c.validator != nil {
		if err := c.validator.validate(ctx, req, c.baseURL.Path, resp, body); err != nil {
			c.logger.ErrorContext(ctx, "Response violates contract",
				"operation", in.operation, "error", err)
			return response{}, err
		}
	}

	return response{status: resp.StatusCode, body: body}, nil
}

func (c *Client) newRequest(ctx context.Context, in call) (*http.Request, error) {
	// in.path segments are already escaped by the param styler.
	target := c.baseURL.String() + in.path
	if len(in.query) > 0 {
		target += "?" + in.query.Encode()
	}

	var body io.Reader
	if in.body != nil {
		raw, err := json.Marshal(in.body)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, in.method, target, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", mimeJSON)
	req.Header.Set(headerRequestID, uuid.NewString())
	if in.body != nil {
		req.Header.Set("Content-Type", mimeJSON)
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

// errorMessage extracts the optional `error` text of a failure body.
func errorMessage(body []byte) string {
	var payload struct {
		Error any `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if msg, ok := payload.Error.(string); ok {
		return strings.TrimSpace(msg)
	}
	return ""
}
