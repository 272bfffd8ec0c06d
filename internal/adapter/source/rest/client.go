package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/todos/internal/domain"
)

const (
	defaultMaxRetries = 3
	baseRetryDelay    = 500 * time.Millisecond
)

// StatusError is returned when the server answers with a non-2xx status.
// The response body is not interpreted.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status code: %d", e.Method, e.Path, e.StatusCode)
}

// Is lets callers match with domain.ErrUnexpectedStatus, and with
// domain.ErrItemNotFound for 404 responses.
func (e *StatusError) Is(target error) bool {
	switch target {
	case domain.ErrUnexpectedStatus:
		return true
	case domain.ErrItemNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// Client implements domain.TodoRepository against the /todos REST endpoint
type Client struct {
	baseURL    string
	maxRetries int
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new todos API client. A zero timeout means requests
// are only bounded by their context.
func NewClient(baseURL string, timeout time.Duration, maxRetries int, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if maxRetries < 0 {
		maxRetries = defaultMaxRetries
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		maxRetries: maxRetries,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// doRequest performs an HTTP request against the todos API and returns the body.
// GET requests are retried with exponential backoff on 5xx responses;
// mutating requests are sent exactly once.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, error) {
	reqURL := c.baseURL + path
	if query != nil {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	var bodyBytes []byte
	if payload != nil {
		var err error
		bodyBytes, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
	}

	retries := 0
	if method == http.MethodGet {
		retries = c.maxRetries
	}

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if attempt > 0 {
			delay := baseRetryDelay * time.Duration(1<<(attempt-1)) // 500ms, 1s, 2s
			c.logger.Debug("retrying request", "attempt", attempt, "delay", delay, "url", reqURL)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		var body io.Reader
		if bodyBytes != nil {
			body = bytes.NewReader(bodyBytes)
		}

		req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		requestID := uuid.NewString()
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Request-Id", requestID)
		if bodyBytes != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		c.logger.Debug("todos request", "method", method, "url", reqURL, "requestID", requestID, "attempt", attempt)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.Error("todos request failed", "method", method, "url", reqURL, "error", err)
			return nil, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}

		statusErr := &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode}

		if resp.StatusCode >= 500 && resp.StatusCode < 600 && attempt < retries {
			lastErr = statusErr
			c.logger.Warn("todos server error, will retry",
				"status", resp.StatusCode,
				"attempt", attempt,
				"maxRetries", retries,
				"path", path,
			)
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			c.logger.Error("todos request error", "method", method, "path", path, "status", resp.StatusCode, "requestID", requestID)
			return nil, statusErr
		}

		return respBody, nil
	}

	c.logger.Error("todos request failed after retries", "error", lastErr, "url", reqURL)
	return nil, lastErr
}

// List returns all todos of a user
func (c *Client) List(ctx context.Context, userID int) ([]domain.Item, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/todos", userQuery(userID), nil)
	if err != nil {
		return nil, err
	}

	var items []domain.Item
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return items, nil
}

// Create posts a new todo and returns it with its server-assigned ID
func (c *Client) Create(ctx context.Context, draft domain.Draft) (domain.Item, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/todos", userQuery(draft.UserID), draft)
	if err != nil {
		return domain.Item{}, err
	}

	var item domain.Item
	if err := json.Unmarshal(body, &item); err != nil {
		return domain.Item{}, fmt.Errorf("failed to parse response: %w", err)
	}
	return item, nil
}

// Update patches the given fields of a todo
func (c *Client) Update(ctx context.Context, id int, patch domain.Patch) (domain.Item, error) {
	body, err := c.doRequest(ctx, http.MethodPatch, itemPath(id), nil, patch)
	if err != nil {
		return domain.Item{}, err
	}

	var item domain.Item
	if err := json.Unmarshal(body, &item); err != nil {
		return domain.Item{}, fmt.Errorf("failed to parse response: %w", err)
	}
	return item, nil
}

// Delete removes a todo. Any 2xx response counts as success.
func (c *Client) Delete(ctx context.Context, id int) error {
	_, err := c.doRequest(ctx, http.MethodDelete, itemPath(id), nil, nil)
	return err
}

func userQuery(userID int) url.Values {
	query := url.Values{}
	query.Set("userId", strconv.Itoa(userID))
	return query
}

func itemPath(id int) string {
	return "/todos/" + strconv.Itoa(id)
}
