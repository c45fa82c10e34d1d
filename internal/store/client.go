package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

var (
	ErrStoreRequest    = errors.New("document store request failed")
	ErrInvalidResponse = errors.New("invalid response from document store")
)

// Client talks to the key-path JSON document store over HTTP.
// Every key path maps to "<baseURL>/<path>.json"; collections support
// range queries over a named field via orderBy/startAt/endAt parameters,
// where the special field "$key" orders by the document key itself.
// MetricsRecorder interface for recording store round-trip metrics
type MetricsRecorder interface {
	RecordStoreRequest(ctx context.Context, method string, durationMs float64)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    MetricsRecorder
}

// NewClient creates a document store client for the given base URL.
func NewClient(baseURL string) (*Client, error) {
	if baseURL == "" {
		baseURL = os.Getenv("STORE_BASE_URL")
	}
	if baseURL == "" {
		return nil, errors.New("missing document store base URL")
	}

	baseURL = strings.TrimSuffix(baseURL, "/")

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// WithMetrics attaches a round-trip duration recorder; nil disables it.
func (c *Client) WithMetrics(m MetricsRecorder) *Client {
	c.metrics = m
	return c
}

// Query describes a range query over a collection. Field "$key" queries the
// document keys themselves. StartAt/EndAt bound the range inclusively; an
// empty bound is omitted from the request.
type Query struct {
	OrderBy string
	StartAt string
	EndAt   string
}

// PrefixQuery builds a query matching every value starting with prefix.
// The upper bound appends U+F8FF, which sorts after any printable suffix.
func PrefixQuery(field, prefix string) Query {
	return Query{
		OrderBy: field,
		StartAt: prefix,
		EndAt:   prefix + "",
	}
}

func (c *Client) pathURL(path string) string {
	return c.baseURL + "/" + strings.Trim(path, "/") + ".json"
}

// Get reads the value at the given key path into out. A missing key is not
// an error: the store answers "null", and Get reports found=false.
func (c *Client) Get(ctx context.Context, path string, out interface{}) (bool, error) {
	return c.get(ctx, c.pathURL(path), out)
}

// GetShallow lists the keys of a collection without fetching the documents.
func (c *Client) GetShallow(ctx context.Context, collection string) (map[string]bool, error) {
	u := c.pathURL(collection) + "?shallow=true"
	keys := map[string]bool{}
	found, err := c.get(ctx, u, &keys)
	if err != nil {
		return nil, err
	}
	if !found {
		return map[string]bool{}, nil
	}
	return keys, nil
}

// GetRange runs a range query against a collection and decodes the keyed
// result object into out.
func (c *Client) GetRange(ctx context.Context, collection string, q Query, out interface{}) error {
	params := url.Values{}
	params.Set("orderBy", quoteValue(q.OrderBy))
	if q.StartAt != "" {
		params.Set("startAt", quoteValue(q.StartAt))
	}
	if q.EndAt != "" {
		params.Set("endAt", quoteValue(q.EndAt))
	}

	u := c.pathURL(collection) + "?" + params.Encode()
	_, err := c.get(ctx, u, out)
	return err
}

// Put replaces the value at the given key path.
func (c *Client) Put(ctx context.Context, path string, value interface{}) error {
	body, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.pathURL(path), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create store request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

// Push appends a value under an auto-generated key and returns that key.
func (c *Client) Push(ctx context.Context, collection string, value interface{}) (string, error) {
	body, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("failed to marshal document: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.pathURL(collection), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create store request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.roundTrip(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %d", ErrStoreRequest, resp.StatusCode)
	}

	var result struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	return result.Name, nil
}

// Delete removes the value at the given key path.
func (c *Client) Delete(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.pathURL(path), nil)
	if err != nil {
		return fmt.Errorf("failed to create store request: %w", err)
	}

	return c.do(req)
}

func (c *Client) get(ctx context.Context, rawURL string, out interface{}) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create store request: %w", err)
	}

	resp, err := c.roundTrip(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrStoreRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, fmt.Errorf("%w: status %d", ErrStoreRequest, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return false, nil
	}

	if err := json.Unmarshal(trimmed, out); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	return true, nil
}

func (c *Client) do(req *http.Request) error {
	resp, err := c.roundTrip(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", ErrStoreRequest, resp.StatusCode)
	}

	return nil
}

func (c *Client) roundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if c.metrics != nil {
		durationMs := float64(time.Since(start).Microseconds()) / 1000
		c.metrics.RecordStoreRequest(req.Context(), req.Method, durationMs)
	}
	return resp, err
}

// quoteValue renders a query value in the store's quoted-string convention.
func quoteValue(v string) string {
	b, _ := json.Marshal(v)
	return string(b)
}
