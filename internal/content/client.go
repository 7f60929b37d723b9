// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

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
)

// Client configuration constants
const (
	DefaultTimeout = 10 * time.Second
	MaxResponseLen = 4 << 20 // Maximum response body to decode (4MB)
	apiPrefix      = "/api/"
)

// ErrNotConfigured is returned when no content endpoint is configured.
// Callers treat it as "feature disabled", not as a failure.
var ErrNotConfigured = errors.New("content endpoint not configured")

// HTTPError is returned for non-2xx responses.
type HTTPError struct {
	StatusCode int
	Status     string
}

func (e *HTTPError) Error() string {
	return "failed to fetch data: " + e.Status
}

// RemoteError is returned when the endpoint answers with an {"error": ...} body.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

// Source provides collections and single rows.
type Source interface {
	Collection(ctx context.Context, name string, filter Filter) ([]Row, error)
	Item(ctx context.Context, name, id string) (Row, error)
}

// ClientOptions configures a Client.
type ClientOptions struct {
	// BaseURL is the content endpoint. Empty disables the client.
	BaseURL string

	// Timeout bounds each request (0 = DefaultTimeout).
	Timeout time.Duration

	// HTTPClient overrides the transport (tests).
	HTTPClient *http.Client

	Logger *slog.Logger
}

// Client talks to the remote content endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a content client.
func NewClient(opts ClientOptions) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimSpace(opts.BaseURL),
		httpClient: httpClient,
		logger:     logger,
	}
}

// Configured reports whether the client has an endpoint to talk to.
func (c *Client) Configured() bool {
	return c != nil && c.baseURL != ""
}

// BaseURL returns the configured endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CollectionURL builds {base}?path=/api/{name}[&k=v...].
// Filter parameters are emitted in key order. Path segments are
// query-escaped since they travel inside the path= value.
func (c *Client) CollectionURL(name string, filter Filter) string {
	u := c.apiURL(url.QueryEscape(name))
	if len(filter) == 0 {
		return u
	}

	params := url.Values{}
	for k, v := range filter {
		params.Set(k, v)
	}
	return u + "&" + params.Encode()
}

// ItemURL builds {base}?path=/api/{name}/{id}.
func (c *Client) ItemURL(name, id string) string {
	return c.apiURL(url.QueryEscape(name) + "/" + url.QueryEscape(id))
}

func (c *Client) apiURL(path string) string {
	sep := "?"
	if strings.Contains(c.baseURL, "?") {
		sep = "&"
	}
	return c.baseURL + sep + "path=" + apiPrefix + path
}

// Collection fetches all rows of a collection, optionally filtered.
func (c *Client) Collection(ctx context.Context, name string, filter Filter) ([]Row, error) {
	if !c.Configured() || name == "" {
		return nil, ErrNotConfigured
	}

	body, err := c.get(ctx, c.CollectionURL(name, filter))
	if err != nil {
		return nil, err
	}

	rows, err := decodeRows(body)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("collection loaded", "collection", name, "rows", len(rows))
	return rows, nil
}

// Item fetches one row of a collection by identifier. A response with no
// row yields a nil Row and no error.
func (c *Client) Item(ctx context.Context, name, id string) (Row, error) {
	if !c.Configured() || name == "" || id == "" {
		return nil, ErrNotConfigured
	}

	body, err := c.get(ctx, c.ItemURL(name, id))
	if err != nil {
		return nil, err
	}

	rows, err := decodeRows(body)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// get issues a plain GET. No custom headers are set so that browsers
// proxying through this service and Apps Script backends see a simple request.
func (c *Client) get(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, MaxResponseLen))
		return nil, &HTTPError{StatusCode: resp.StatusCode, Status: statusText(resp)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseLen))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return body, nil
}

// statusText returns the reason phrase of a response ("Not Found").
func statusText(resp *http.Response) string {
	if _, text, ok := strings.Cut(resp.Status, " "); ok && text != "" {
		return text
	}
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", resp.StatusCode)
}

// decodeRows extracts rows from a response body. Accepted shapes are
// {"rows": [...]}, a bare array of objects and a single object.
// An {"error": ...} body is reported as *RemoteError.
func decodeRows(body []byte) ([]Row, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var parsed any
	if err := dec.Decode(&parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON response: %w", err)
	}

	switch v := parsed.(type) {
	case map[string]any:
		if msg, failed := remoteErrorMessage(v["error"]); failed {
			return nil, &RemoteError{Message: msg}
		}
		if list, ok := v["rows"].([]any); ok {
			return rowsFromList(list)
		}
		row, err := rowFromMap(v)
		if err != nil {
			return nil, err
		}
		return []Row{row}, nil
	case []any:
		return rowsFromList(v)
	default:
		return nil, fmt.Errorf("unexpected response shape %T", parsed)
	}
}

// rowsFromList converts a list of decoded values, skipping anything that is
// not an object.
func rowsFromList(list []any) ([]Row, error) {
	rows := make([]Row, 0, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		row, err := rowFromMap(obj)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// remoteErrorMessage reports whether an "error" field signals failure.
// Null, false, 0 and "" do not.
func remoteErrorMessage(v any) (string, bool) {
	switch e := v.(type) {
	case nil:
		return "", false
	case string:
		return e, e != ""
	case bool:
		return "remote error", e
	case json.Number:
		if e.String() == "0" {
			return "", false
		}
		return e.String(), true
	case float64:
		if e == 0 {
			return "", false
		}
		return fmt.Sprint(e), true
	default:
		b, _ := json.Marshal(e)
		return string(b), true
	}
}

// WriteResult is the outcome of a write to the content endpoint.
type WriteResult struct {
	Success bool `json:"success"`
	// Opaque is set when the response could not be read and success was assumed.
	Opaque bool   `json:"-"`
	Error  string `json:"error,omitempty"`
}

// Write posts payload as JSON to {base}?path=/api/{name}.
//
// A 2xx response whose body is not readable JSON is treated as success:
// Apps Script deployments often answer writes with a redirect page.
func (c *Client) Write(ctx context.Context, name string, payload any) (WriteResult, error) {
	if !c.Configured() || name == "" {
		return WriteResult{}, ErrNotConfigured
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return WriteResult{}, fmt.Errorf("encoding payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.CollectionURL(name, nil), bytes.NewReader(data))
	if err != nil {
		return WriteResult{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return WriteResult{}, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, MaxResponseLen))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if readErr == nil {
			var result WriteResult
			if json.Unmarshal(body, &result) == nil && result.Error != "" {
				return WriteResult{}, &RemoteError{Message: result.Error}
			}
		}
		return WriteResult{}, &HTTPError{StatusCode: resp.StatusCode, Status: statusText(resp)}
	}

	if readErr != nil {
		c.logger.Debug("write response unreadable, assuming success", "collection", name, "error", readErr)
		return WriteResult{Success: true, Opaque: true}, nil
	}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		c.logger.Debug("write response is not JSON, assuming success", "collection", name)
		return WriteResult{Success: true, Opaque: true}, nil
	}
	if msg, failed := remoteErrorMessage(raw["error"]); failed {
		return WriteResult{}, &RemoteError{Message: msg}
	}

	return WriteResult{Success: true}, nil
}

// Ensure Client implements Source.
var _ Source = (*Client)(nil)
