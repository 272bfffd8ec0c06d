package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/todos/internal/domain"
)

const probeTimeout = 10 * time.Second

// Probe checks that baseURL serves the todos API for userID.
// Returns the number of todos the user currently has.
func Probe(ctx context.Context, baseURL string, userID int) (int, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return 0, fmt.Errorf("server URL must start with http:// or https://")
	}

	client := &http.Client{
		Timeout: probeTimeout,
	}

	reqURL := fmt.Sprintf("%s/todos?%s", baseURL, userQuery(userID).Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, &StatusError{Method: http.MethodGet, Path: "/todos", StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read response: %w", err)
	}

	// The response must at least look like a todo list
	var items []domain.Item
	if err := json.Unmarshal(body, &items); err != nil {
		return 0, fmt.Errorf("not a todos API: %w", err)
	}

	return len(items), nil
}
