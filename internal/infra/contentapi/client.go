// Package contentapi is an HTTP client for the school site content API.
// It lets tools outside the server drive the same collections the admin
// area edits.
package contentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"school-cms/internal/domain/entity"
)

// APIError is a non-2xx answer from the content API. Message carries the
// server's "error" field when present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("content api: status %d: %s", e.StatusCode, e.Message)
}

// ErrNotAuthenticated is returned by Login when the server answers without a token.
var ErrNotAuthenticated = errors.New("content api: no token issued")

// Client talks to the content API.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// NewClient creates a client for baseURL. A nil httpClient gets a 10s timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// SetToken sets the bearer token sent on every request.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Login exchanges admin credentials for a token and keeps it on the client.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	in := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/token", in, &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", ErrNotAuthenticated
	}
	c.SetToken(out.Token)
	return out.Token, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var e struct {
		Error string `json:"error"`
	}
	msg := http.StatusText(resp.StatusCode)
	if json.Unmarshal(b, &e) == nil && e.Error != "" {
		msg = e.Error
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}

// CollectionClient reads and mutates one collection through the API.
// It satisfies site.Remote.
type CollectionClient[T any] struct {
	client     *Client
	collection entity.Collection
}

// Collection returns a typed client for collection c.
func Collection[T any](client *Client, c entity.Collection) *CollectionClient[T] {
	return &CollectionClient[T]{client: client, collection: c}
}

func (cc *CollectionClient[T]) path() string {
	return "/content/" + string(cc.collection)
}

// List fetches the whole collection.
func (cc *CollectionClient[T]) List(ctx context.Context) ([]T, error) {
	var items []T
	if err := cc.client.do(ctx, http.MethodGet, cc.path(), nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Add creates rec and returns the updated collection.
func (cc *CollectionClient[T]) Add(ctx context.Context, rec T) ([]T, error) {
	var items []T
	if err := cc.client.do(ctx, http.MethodPost, cc.path(), rec, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Delete removes the record with id and returns the updated collection.
func (cc *CollectionClient[T]) Delete(ctx context.Context, id string) ([]T, error) {
	var items []T
	p := cc.path() + "?id=" + url.QueryEscape(id)
	if err := cc.client.do(ctx, http.MethodDelete, p, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}
