package database

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/semmidev/chbackup/internal/config"
	"github.com/semmidev/chbackup/internal/domain"
)

type ClickHouseDatabase struct {
	config *config.ClickHouseConfig
	conn   driver.Conn
}

func NewClickHouse(cfg *config.ClickHouseConfig) (*ClickHouseDatabase, error) {
	opts, err := clickhouseOptions(cfg)
	if err != nil {
		return nil, err
	}

	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open clickhouse connection: %w", err)
	}

	return &ClickHouseDatabase{config: cfg, conn: conn}, nil
}

func clickhouseOptions(cfg *config.ClickHouseConfig) (*clickhouse.Options, error) {
	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid clickhouse url: %w", err)
	}

	opts := &clickhouse.Options{
		Protocol: clickhouse.HTTP,
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.User,
			Password: cfg.Password,
		},
		DialTimeout: 10 * time.Second,
	}

	port := u.Port()
	switch u.Scheme {
	case "http":
		if port == "" {
			port = "80"
		}
	case "https":
		if port == "" {
			port = "443"
		}
		opts.TLS = &tls.Config{ServerName: u.Hostname()}
	default:
		return nil, fmt.Errorf("clickhouse url must use http or https, got %q", u.Scheme)
	}
	opts.Addr = []string{u.Hostname() + ":" + port}

	return opts, nil
}

func (c *ClickHouseDatabase) Ping(ctx context.Context) error {
	if err := c.conn.Ping(ctx); err != nil {
		return fmt.Errorf("failed to connect to clickhouse at %s: %w", c.config.URL, err)
	}
	return nil
}

func (c *ClickHouseDatabase) Backup(
	ctx context.Context,
	table domain.TableRef,
	plan domain.BackupPlan,
	creds domain.Credentials,
) (domain.BackupResult, error) {
	stmt, err := BuildBackupStatement(table, plan, creds)
	if err != nil {
		return domain.BackupResult{}, err
	}

	ctx = clickhouse.Context(ctx, clickhouse.WithParameters(stmt.Params))
	rows, err := c.conn.Query(ctx, stmt.Query)
	if err != nil {
		return domain.BackupResult{}, fmt.Errorf("backup statement failed: %w", err)
	}
	defer rows.Close()

	var result domain.BackupResult
	for rows.Next() {
		if err := rows.Scan(&result.ID, &result.Status); err != nil {
			return domain.BackupResult{}, fmt.Errorf("failed to read backup result: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return domain.BackupResult{}, fmt.Errorf("failed to read backup result: %w", err)
	}

	return result, nil
}

func (c *ClickHouseDatabase) GetName() string {
	return "clickhouse " + c.config.URL
}

func (c *ClickHouseDatabase) Close() error {
	return c.conn.Close()
}
