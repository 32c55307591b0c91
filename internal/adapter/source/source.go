package source

import (
	"fmt"
	"log/slog"
	"net/url"

	"github.com/mmcdole/gatos/internal/adapter"
	"github.com/mmcdole/gatos/internal/adapter/source/catapi"
	"github.com/mmcdole/gatos/internal/domain"
)

// SourceConfig contains the configuration needed to create an image source
type SourceConfig struct {
	URL    string
	APIKey string
}

// NewClient creates a new image source client.
// The URL must be an absolute http(s) URL.
func NewClient(cfg *SourceConfig, logger *slog.Logger) (domain.ImageRepository, error) {
	if cfg == nil {
		return nil, fmt.Errorf("source config is nil")
	}

	if cfg.URL == "" {
		return nil, fmt.Errorf("source URL is required")
	}

	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid source URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported source URL scheme: %q", u.Scheme)
	}

	return catapi.NewClient(cfg.URL, cfg.APIKey, logger), nil
}

// NewClientFromConfig creates an image source from the application config
func NewClientFromConfig(cfg *adapter.Config, logger *slog.Logger) (domain.ImageRepository, error) {
	return NewClient(&SourceConfig{
		URL:    cfg.Source.URL,
		APIKey: cfg.Source.APIKey,
	}, logger)
}
