// Package api is the client of the remote Revista REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultBaseURL is the production Revista host.
const DefaultBaseURL = "https://www.revista-sa.com"

// ErrMissingToken is returned before any I/O when an authenticated call
// is made without a session token.
var ErrMissingToken = errors.New("api: missing auth token")

// APIError is a non-2xx answer of the remote API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: request failed with status %d", e.Status)
	}
	return fmt.Sprintf("api: request failed with status %d: %s", e.Status, e.Message)
}

// Client issues requests against one Revista deployment. It never
// retries; every failure goes back to the caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client for baseURL. A zero timeout means none.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

type form map[string]string

// request describes one call. body is JSON-encoded unless it is a form,
// which is sent as multipart/form-data like the storefront app does.
type request struct {
	method string
	path   string
	token  string
	auth   bool
	body   any
}

func (c *Client) do(ctx context.Context, r request) (gjson.Result, error) {
	if r.auth && r.token == "" {
		return gjson.Result{}, ErrMissingToken
	}

	body, contentType, err := encodeBody(r.body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("api: encode %s: %w", r.path, err)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("api: build %s %s: %w", r.method, r.path, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("api: %s %s: %w", r.method, r.path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("api: read %s response: %w", r.path, err)
	}

	log.Debug().
		Str("method", r.method).
		Str("path", r.path).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("remote api call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return gjson.Result{}, &APIError{Status: resp.StatusCode, Message: errorMessage(raw)}
	}
	if !gjson.ValidBytes(raw) {
		// Some endpoints answer with a bare, unquoted status line.
		quoted, _ := json.Marshal(strings.TrimSpace(string(raw)))
		return gjson.ParseBytes(quoted), nil
	}
	return gjson.ParseBytes(raw), nil
}

func encodeBody(body any) (io.Reader, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case form:
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		for k, v := range b {
			if err := w.WriteField(k, v); err != nil {
				return nil, "", err
			}
		}
		if err := w.Close(); err != nil {
			return nil, "", err
		}
		return &buf, w.FormDataContentType(), nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

// errorMessage extracts the server-supplied message of an error body.
func errorMessage(raw []byte) string {
	if !gjson.ValidBytes(raw) {
		return strings.TrimSpace(string(raw))
	}
	res := gjson.ParseBytes(raw)
	for _, path := range []string{"message", "errors.0.message", "error"} {
		if v := res.Get(path); v.Exists() && v.Type == gjson.String {
			return v.String()
		}
	}
	return ""
}

// message returns the status text of a mutation response, which is
// either a bare string or an object with a message field.
func message(res gjson.Result) string {
	if res.Type == gjson.String {
		return res.String()
	}
	return res.Get("message").String()
}
