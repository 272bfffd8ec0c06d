package source

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mmcdole/todos/internal/adapter"
	"github.com/mmcdole/todos/internal/adapter/source/rest"
	"github.com/mmcdole/todos/internal/domain"
)

// SourceConfig contains the configuration needed to create a TodoRepository
type SourceConfig struct {
	URL        string
	UserID     int
	Timeout    time.Duration // 0 = no client-side timeout
	MaxRetries int           // retries for idempotent reads
}

// NewClient creates the REST repository for the configured endpoint.
func NewClient(cfg *SourceConfig, logger *slog.Logger) (domain.TodoRepository, error) {
	if cfg == nil {
		return nil, fmt.Errorf("source config is nil")
	}

	if cfg.URL == "" {
		return nil, fmt.Errorf("server URL is required")
	}

	if cfg.UserID <= 0 {
		return nil, fmt.Errorf("user ID must be a positive number")
	}

	return rest.NewClient(cfg.URL, cfg.Timeout, cfg.MaxRetries, logger), nil
}

// NewClientFromConfig creates a TodoRepository from the application config
func NewClientFromConfig(cfg *adapter.Config, logger *slog.Logger) (domain.TodoRepository, error) {
	return NewClient(&SourceConfig{
		URL:        cfg.API.BaseURL,
		UserID:     cfg.API.UserID,
		Timeout:    cfg.API.Timeout,
		MaxRetries: cfg.API.MaxRetries,
	}, logger)
}
