// Package apiclient is a typed client for the roastery API. Every call is described by a route
// of the api package, so the client and the server cannot disagree on methods or paths.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/roastery/internal/api"
)

// Error is a declared error response of the API.
type Error struct {
	Route   string
	Status  int
	Message string
	Field   string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %d %s (%s)", e.Route, e.Status, e.Message, e.Field)
	}

	return fmt.Sprintf("%s: %d %s", e.Route, e.Status, e.Message)
}

func statusIs(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}

func IsNotFound(err error) bool { return statusIs(err, http.StatusNotFound) }

func IsConflict(err error) bool { return statusIs(err, http.StatusConflict) }

func IsValidation(err error) bool { return statusIs(err, http.StatusBadRequest) }

func IsUnauthorized(err error) bool { return statusIs(err, http.StatusUnauthorized) }

type Client struct {
	baseURL string
	token   string
	timeout time.Duration
	http    *http.Client
}

type Option func(*Client)

// WithTimeout bounds each request, including reading the response body. The default is 10s.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// New returns a client for the API at baseURL. token is sent as a bearer token when non-empty.
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		timeout: 10 * time.Second,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.http = &http.Client{Timeout: c.timeout}

	return c
}

// do sends in as JSON, when non-nil, and decodes a successful body into out, when non-nil.
func (c *Client) do(ctx context.Context, route api.Route, params api.Params, in, out any) error {
	var (
		body        io.Reader
		contentType string
	)

	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encoding request: %w", route.Name, err)
		}

		body = bytes.NewReader(payload)
		contentType = "application/json"
	}

	return c.send(ctx, route, params, body, contentType, out)
}

func (c *Client) send(ctx context.Context, route api.Route, params api.Params, body io.Reader, contentType string, out any) error {
	url := c.baseURL + api.BuildURL(route.Path, params)

	req, err := http.NewRequestWithContext(ctx, route.Method, url, body)
	if err != nil {
		return fmt.Errorf("%s: building request: %w", route.Name, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(middleware.RequestIDHeader, uuid.NewString())

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", route.Name, err)
	}
	defer resp.Body.Close()

	if !route.Declares(resp.StatusCode) {
		return fmt.Errorf("%s: undeclared response status %d", route.Name, resp.StatusCode)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var eb api.ErrorBody
		if err := json.NewDecoder(resp.Body).Decode(&eb); err != nil {
			eb.Message = http.StatusText(resp.StatusCode)
		}

		return &Error{Route: route.Name, Status: resp.StatusCode, Message: eb.Message, Field: eb.Field}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decoding response: %w", route.Name, err)
	}

	return nil
}
