// Package upstream talks to the exam platform API. It owns the working sets
// the browse pipeline operates on: fetches are parameterised by server-side
// filters only, responses are normalised once at the boundary, and the last
// good set per parameter key is retained so a platform outage degrades to
// stale-but-present data instead of an empty page.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/junyours/occ-admission-sub001/pkg/config"
	appErrors "github.com/junyours/occ-admission-sub001/pkg/errors"
)

// Client is the gateway's HTTP client for the exam platform.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *zap.Logger

	mu   sync.Mutex
	seq  map[string]uint64
	held map[string]any
}

// NewClient builds a client from configuration.
func NewClient(cfg config.UpstreamConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
		seq:     make(map[string]uint64),
		held:    make(map[string]any),
	}
}

// beginFetch reserves a sequence number for a fetch against key. Only the
// response holding the latest number may commit; a slow response that lost
// the race to a newer fetch is dropped on arrival.
func (c *Client) beginFetch(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq[key]++
	return c.seq[key]
}

// commit stores set as the last good working set for key unless a newer
// fetch has started since seq was issued.
func (c *Client) commit(key string, seq uint64, set any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq[key] != seq {
		c.logger.Debug("superseded fetch dropped", zap.String("key", key), zap.Uint64("seq", seq))
		return false
	}
	c.held[key] = set
	return true
}

// lastGood returns the retained working set for key, if any.
func (c *Client) lastGood(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	set, ok := c.held[key]
	return set, ok
}

// forget drops retained sets whose key starts with prefix. Called after
// mutations so the next browse refetches.
func (c *Client) forget(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.held {
		if strings.HasPrefix(key, prefix) {
			delete(c.held, key)
		}
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, dest interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build upstream request")
	}
	return c.do(req, dest)
}

func (c *Client) send(ctx context.Context, method, path string, payload interface{}, dest interface{}) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode upstream payload")
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build upstream request")
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, dest)
}

func (c *Client) do(req *http.Request, dest interface{}) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "exam platform unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return upstreamError(resp)
	}

	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "decode upstream response")
	}
	return nil
}

// upstreamError carries the platform's own message through to the caller so
// a failed mutation never shows a generic error when a specific one exists.
func upstreamError(resp *http.Response) error {
	var envelope struct {
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
		Message string `json:"message"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	_ = json.Unmarshal(raw, &envelope)

	message := envelope.Message
	if envelope.Error != nil && envelope.Error.Message != "" {
		message = envelope.Error.Message
	}
	if message == "" {
		message = fmt.Sprintf("exam platform responded with status %d", resp.StatusCode)
	}

	status := resp.StatusCode
	if status >= 500 {
		status = appErrors.ErrUpstream.Status
	}
	return appErrors.New("UPSTREAM_ERROR", status, message)
}
