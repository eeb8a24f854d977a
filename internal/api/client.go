package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	createEntryPath = "/api/entry"
	listEntriesPath = "/api/entries"

	// maxErrorBody 错误响应体最多保留的字节数
	maxErrorBody = 512
)

// Client talks to the diary backend. Requests are never retried.
//
// The base URL and timeout may be swapped while requests are in flight
// (config reload); each request uses the values current when it started.
type Client struct {
	httpClient *http.Client

	mu      sync.RWMutex
	baseURL string
	timeout time.Duration
}

// NewClient creates a client for the API rooted at baseURL.
// A nil httpClient uses http.DefaultClient.
func NewClient(baseURL string, timeout time.Duration, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    timeout,
	}
}

// SetEndpoint replaces the base URL and per-request timeout.
func (c *Client) SetEndpoint(baseURL string, timeout time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = strings.TrimRight(baseURL, "/")
	c.timeout = timeout
}

// BaseURL returns the current base URL.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

func (c *Client) endpoint() (string, time.Duration) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL, c.timeout
}

// CreateEntry submits a new entry. The response body carries nothing the
// client needs; success is the 2xx status alone.
func (c *Client) CreateEntry(ctx context.Context, text string) error {
	body, err := json.Marshal(CreateEntryRequest{Text: text})
	if err != nil {
		return fmt.Errorf("create entry: encode request: %w", err)
	}

	resp, err := c.do(ctx, "create entry", http.MethodPost, createEntryPath, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// 读完响应体以便复用连接
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// ListEntries fetches all entries in the order the server returns them.
func (c *Client) ListEntries(ctx context.Context) ([]Entry, error) {
	resp, err := c.do(ctx, "list entries", http.MethodGet, listEntriesPath, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var entries []Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("list entries: decode response: %w", err)
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

// do sends one request and returns the response only for 2xx statuses.
func (c *Client) do(ctx context.Context, op, method, path string, body []byte) (*http.Response, error) {
	baseURL, timeout := c.endpoint()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		// 响应体读取同样受超时约束，cancel 随响应体关闭
		resp, err := c.send(ctx, op, method, baseURL+path, body)
		if err != nil {
			cancel()
			return nil, err
		}
		resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
		return resp, nil
	}
	return c.send(ctx, op, method, baseURL+path, body)
}

func (c *Client) send(ctx context.Context, op, method, url string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	log.Printf("[API] %s %s -> %d (%s, request %s)", method, url, resp.StatusCode, time.Since(start).Round(time.Millisecond), requestID)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}
	return resp, nil
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}
