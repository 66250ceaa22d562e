// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the backend client.
type ClientError struct {
	Type       ErrorType
	Message    string
	StatusCode int
	Cause      error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Is matches any ClientError of the same type, so the sentinels below work
// with errors.Is even when the concrete error carries a cause.
func (e *ClientError) Is(target error) bool {
	t, ok := target.(*ClientError)
	if !ok {
		return false
	}
	return t.Type == e.Type
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeInvalidResponse
	ErrTypeStatus
)

// String returns a short label for logs.
func (t ErrorType) String() string {
	switch t {
	case ErrTypeConnection:
		return "connection"
	case ErrTypeInvalidResponse:
		return "invalid_response"
	case ErrTypeStatus:
		return "status"
	default:
		return "unknown"
	}
}

// Sentinel errors for easy checking.
var (
	ErrConnection      = &ClientError{Type: ErrTypeConnection, Message: "backend is not reachable"}
	ErrInvalidResponse = &ClientError{Type: ErrTypeInvalidResponse, Message: "invalid response from backend"}
	ErrStatus          = &ClientError{Type: ErrTypeStatus, Message: "unexpected status from backend"}
)

// IsTransport reports whether err means no usable response was received:
// the server could not be reached or its body was not the expected JSON.
func IsTransport(err error) bool {
	return errors.Is(err, ErrConnection) || errors.Is(err, ErrInvalidResponse)
}

// =============================================================================
// CLIENT
// =============================================================================

// UserAgent is sent with every request.
var UserAgent = "newsbot-console"

// Client talks to the admin server. It is safe for concurrent use.
//
// Example:
//
//	client := backend.NewClient(cfg.Server.BaseURL)
//	redirect, err := client.Submit(ctx, http.MethodPost, backend.PathManualScrape, nil)
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for baseURL with a redirect-refusing HTTP
// client. No request timeout is configured.
func NewClient(baseURL string) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{})
}

// NewClientWithHTTP creates a client using hc. The redirect policy of hc is
// replaced so navigational responses are reported instead of followed.
func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{}
	}
	hc.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: hc,
	}
}

// BaseURL returns the server root the client is bound to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// =============================================================================
// REQUESTS
// =============================================================================

// DecodeJSON issues a request and decodes the JSON body into out whatever the
// status code is, matching how the admin pages read test results. Only
// transport problems are errors: ErrTypeConnection when no response arrived
// and ErrTypeInvalidResponse when the body is not JSON.
func (c *Client) DecodeJSON(ctx context.Context, method, path string, form url.Values, out any) error {
	resp, err := c.do(ctx, method, path, form)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ClientError{
			Type:       ErrTypeInvalidResponse,
			Message:    "failed to decode response",
			StatusCode: resp.StatusCode,
			Cause:      err,
		}
	}
	return nil
}

// GetJSON issues a GET and decodes a 200 response into out. Any other
// status is an ErrTypeStatus error carrying the server's error text if the
// body provides one.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ClientError{
			Type:       ErrTypeInvalidResponse,
			Message:    "failed to decode response",
			StatusCode: resp.StatusCode,
			Cause:      err,
		}
	}
	return nil
}

// Submit issues a navigational request (a form post that answers with a
// redirect). The redirect is not followed; its Location is returned. A 2xx
// answer yields an empty Location. 4xx and 5xx are ErrTypeStatus errors.
func (c *Client) Submit(ctx context.Context, method, path string, form url.Values) (*Redirect, error) {
	resp, err := c.do(ctx, method, path, form)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 300 && resp.StatusCode < 400:
		_, _ = io.Copy(io.Discard, resp.Body)
		return &Redirect{
			StatusCode: resp.StatusCode,
			Location:   c.relativeLocation(resp.Header.Get("Location")),
		}, nil
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		_, _ = io.Copy(io.Discard, resp.Body)
		return &Redirect{StatusCode: resp.StatusCode}, nil
	default:
		return nil, statusError(resp)
	}
}

func (c *Client) do(ctx context.Context, method, path string, form url.Values) (*http.Response, error) {
	return c.doAccept(ctx, method, path, form, "application/json")
}

func (c *Client) doAccept(ctx context.Context, method, path string, form url.Values, accept string) (*http.Response, error) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ClientError{
			Type:    ErrTypeConnection,
			Message: fmt.Sprintf("%s %s failed", method, path),
			Cause:   err,
		}
	}
	return resp, nil
}

// relativeLocation strips the server origin from an absolute Location so
// callers can route on the path alone.
func (c *Client) relativeLocation(loc string) string {
	if loc == "" {
		return ""
	}
	u, err := url.Parse(loc)
	if err != nil || !u.IsAbs() {
		return loc
	}
	base, err := url.Parse(c.baseURL)
	if err != nil || base.Host != u.Host {
		return loc
	}
	rel := u.EscapedPath()
	if rel == "" {
		rel = "/"
	}
	if u.RawQuery != "" {
		rel += "?" + u.RawQuery
	}
	return rel
}

func statusError(resp *http.Response) error {
	var body ErrorBody
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		return &ClientError{Type: ErrTypeStatus, Message: body.Error, StatusCode: resp.StatusCode}
	}
	return &ClientError{
		Type:       ErrTypeStatus,
		Message:    "unexpected status from backend: " + resp.Status,
		StatusCode: resp.StatusCode,
	}
}
