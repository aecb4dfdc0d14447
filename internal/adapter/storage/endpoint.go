package storage

import (
	"context"
	"fmt"
	"net/url"

	appconfig "github.com/semmidev/chbackup/internal/config"
	"github.com/semmidev/chbackup/internal/domain"
)

// parseEndpoint splits an http(s) URL into host[:port] and whether TLS is used.
func parseEndpoint(endpoint string) (string, bool, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", false, fmt.Errorf("invalid storage endpoint: %w", err)
	}
	switch u.Scheme {
	case "http":
		return u.Host, false, nil
	case "https":
		return u.Host, true, nil
	default:
		return "", false, fmt.Errorf("storage endpoint must use http or https, got %q", endpoint)
	}
}

// New picks the storage client named by cfg.Driver.
func New(ctx context.Context, cfg *appconfig.S3Config, endpoint string) (domain.ObjectStore, error) {
	switch cfg.Driver {
	case appconfig.DriverMinio:
		store, err := NewMinio(cfg, endpoint)
		if err != nil {
			return nil, err
		}
		return store, nil
	case appconfig.DriverS3, "":
		store, err := NewS3(ctx, cfg, endpoint)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
