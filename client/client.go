package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mzigoego/mzigo/db"
	"github.com/mzigoego/mzigo/pkg/apierr"
)

// DefaultTimeout bounds every request made by the client.
const DefaultTimeout = 30 * time.Second

// Client performs authenticated JSON requests against the MzigoEgo API.
// It caches the current access token in memory and transparently runs a
// single refresh-and-retry cycle when a request comes back with 401.
type Client struct {
	baseURL string
	http    *http.Client
	store   db.TokenStore

	mu          sync.RWMutex
	accessToken string

	refreshMu sync.Mutex
	inflight  *refreshCall

	subMu       sync.Mutex
	expiredSubs []func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Mainly for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// New creates a Client for the given API base URL, backed by store for token
// persistence. The cached access token is primed from the store so a restarted
// process keeps its session.
func New(baseURL string, store db.TokenStore, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		store:   store,
	}
	for _, opt := range opts {
		opt(c)
	}
	if store != nil {
		if pair, err := store.Load(context.Background()); err == nil && pair != nil {
			c.accessToken = pair.Access
		} else if err != nil {
			log.Error().Err(err).Msg("Failed to load stored tokens")
		}
	}
	return c
}

// SetTokens persists the pair and updates the cached access token. Called as a
// side effect of a successful login or registration.
func (c *Client) SetTokens(ctx context.Context, pair db.TokenPair) error {
	if err := c.store.Save(ctx, pair); err != nil {
		log.Error().Err(err).Msg("Failed to store auth tokens")
		return err
	}
	c.mu.Lock()
	c.accessToken = pair.Access
	c.mu.Unlock()
	return nil
}

// ClearTokens removes the stored pair and drops the cached access token.
func (c *Client) ClearTokens(ctx context.Context) error {
	c.mu.Lock()
	c.accessToken = ""
	c.mu.Unlock()
	if err := c.store.Clear(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to clear auth tokens")
		return err
	}
	return nil
}

// OnSessionExpired registers fn to be called when a 401 could not be recovered
// by a token refresh. The navigation layer subscribes here; the client never
// calls into it directly.
func (c *Client) OnSessionExpired(fn func()) {
	c.subMu.Lock()
	c.expiredSubs = append(c.expiredSubs, fn)
	c.subMu.Unlock()
}

// Multipart is a request body encoded as multipart/form-data. When used, the
// Content-Type header carries the writer's boundary instead of JSON.
type Multipart struct {
	Fields map[string]string
	Files  map[string]MultipartFile
}

// MultipartFile is a single file part of a Multipart body.
type MultipartFile struct {
	Name    string
	Content []byte
}

type requestOptions struct {
	includeAuth bool
}

// RequestOption configures a single request.
type RequestOption func(*requestOptions)

// WithoutAuth disables the Authorization header for this request. A 401 on an
// unauthenticated request is an ordinary failure and never triggers a refresh.
func WithoutAuth() RequestOption {
	return func(o *requestOptions) { o.includeAuth = false }
}

// Request performs one API call and returns the raw response body on success.
// Transport failures, server-reported failures, and unrecoverable 401s all
// come back as *apierr.Error values; nothing panics and nothing is retried
// beyond the single refresh cycle.
func (c *Client) Request(ctx context.Context, method, path string, body any, opts ...RequestOption) ([]byte, error) {
	o := requestOptions{includeAuth: true}
	for _, opt := range opts {
		opt(&o)
	}
	return c.do(ctx, method, path, body, o.includeAuth, true)
}

// do executes one attempt. refreshEligible is threaded explicitly so the
// retried call after a refresh can never re-enter the refresh path, even if
// it also returns 401.
func (c *Client) do(ctx context.Context, method, path string, body any, includeAuth, refreshEligible bool) ([]byte, error) {
	req, err := c.newRequest(ctx, method, path, body, includeAuth)
	if err != nil {
		return nil, apierr.New(apierr.Unknown, fmt.Sprintf("failed to build request: %v", err), err)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	log.Debug().Str("method", method).Str("path", path).Str("request_id", requestID).Msg("Sending API request")
	resp, err := c.http.Do(req)
	if err != nil {
		log.Error().Err(err).Str("method", method).Str("path", path).Str("request_id", requestID).Msg("API request failed")
		return nil, apierr.New(apierr.Transport, err.Error(), err)
	}

	raw, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	if readErr != nil {
		return nil, apierr.New(apierr.Transport, readErr.Error(), readErr)
	}

	if resp.StatusCode == http.StatusUnauthorized && includeAuth && refreshEligible {
		if err := c.refreshAccessToken(ctx); err != nil {
			return nil, err
		}
		// Retry exactly once with the new token.
		return c.do(ctx, method, path, body, includeAuth, false)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		log.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Msg("API request successful")
		return raw, nil
	}

	log.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Str("request_id", requestID).Msg("API request returned failure status")
	return nil, failureFromBody(raw)
}

// newRequest builds the HTTP request. The cached access token is read here,
// immediately before header construction, so a request sent after a refresh
// always carries the current token rather than a stale snapshot.
func (c *Client) newRequest(ctx context.Context, method, path string, body any, includeAuth bool) (*http.Request, error) {
	var reader io.Reader
	contentType := "application/json"

	switch b := body.(type) {
	case nil:
		// GET and DELETE requests carry no body.
	case *Multipart:
		buf := &bytes.Buffer{}
		w := multipart.NewWriter(buf)
		for field, value := range b.Fields {
			if err := w.WriteField(field, value); err != nil {
				return nil, err
			}
		}
		for field, file := range b.Files {
			part, err := w.CreateFormFile(field, file.Name)
			if err != nil {
				return nil, err
			}
			if _, err := part.Write(file.Content); err != nil {
				return nil, err
			}
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		reader = buf
		contentType = w.FormDataContentType()
	default:
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	if includeAuth {
		c.mu.RLock()
		token := c.accessToken
		c.mu.RUnlock()
		if token != "" {
			req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		}
	}
	return req, nil
}

// failureFromBody derives a failure from a non-2xx response body, falling back
// to a generic message when the body carries none.
func failureFromBody(raw []byte) error {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil || payload == nil {
		return apierr.New(apierr.Unknown, "Request failed", nil)
	}

	message := "Request failed"
	if s, ok := stringField(payload["message"]); ok {
		message = s
	} else if s, ok := stringField(payload["detail"]); ok {
		message = s
	}

	fields := fieldErrors(payload["errors"])
	if fields == nil {
		// Some endpoints report field errors at the top level of the body.
		fields = topLevelFieldErrors(payload)
	}
	if len(fields) > 0 {
		return apierr.NewValidation(message, fields)
	}
	if message == "Request failed" {
		return apierr.New(apierr.Unknown, message, nil)
	}
	return apierr.NewValidation(message, nil)
}

func stringField(raw json.RawMessage) (string, bool) {
	if raw == nil {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return "", false
	}
	return s, true
}

func fieldErrors(raw json.RawMessage) map[string][]string {
	if raw == nil {
		return nil
	}
	var direct map[string][]string
	if err := json.Unmarshal(raw, &direct); err == nil && len(direct) > 0 {
		return direct
	}
	var loose map[string]string
	if err := json.Unmarshal(raw, &loose); err == nil && len(loose) > 0 {
		fields := make(map[string][]string, len(loose))
		for k, v := range loose {
			fields[k] = []string{v}
		}
		return fields
	}
	return nil
}

func topLevelFieldErrors(payload map[string]json.RawMessage) map[string][]string {
	fields := make(map[string][]string)
	for key, raw := range payload {
		if key == "message" || key == "detail" {
			continue
		}
		var values []string
		if err := json.Unmarshal(raw, &values); err == nil && len(values) > 0 {
			fields[key] = values
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// DoJSON performs a request and decodes the successful response body into T.
func DoJSON[T any](ctx context.Context, c *Client, method, path string, body any, opts ...RequestOption) (T, error) {
	var out T
	raw, err := c.Request(ctx, method, path, body, opts...)
	if err != nil {
		return out, err
	}
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Error().Err(err).Str("body_preview", string(raw[:min(len(raw), 200)])).Msg("Failed to decode response body")
		return out, apierr.New(apierr.Unknown, "failed to decode response body", err)
	}
	return out, nil
}

// min helper function
func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
