package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig        `mapstructure:"app"`
	ClickHouse ClickHouseConfig `mapstructure:"clickhouse"`
	S3         S3Config         `mapstructure:"s3"`
	Backup     BackupConfig     `mapstructure:"backup"`
	Notify     NotifyConfig     `mapstructure:"notify"`
}

type AppConfig struct {
	Name     string `mapstructure:"name"`
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`
}

type ClickHouseConfig struct {
	// URL must use the HTTP or HTTPS protocol.
	URL      string `mapstructure:"url"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
}

type S3Config struct {
	Driver string `mapstructure:"driver"`
	// Endpoint is the storage URL as reachable from ClickHouse, without bucket.
	Endpoint string `mapstructure:"endpoint"`
	// EndpointLocal overrides Endpoint for this process's own API calls, e.g.
	// http://localhost:9000 on the host while ClickHouse uses http://minio:9000.
	EndpointLocal string `mapstructure:"endpoint_local"`
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
}

type BackupConfig struct {
	// Tables is a comma-separated list, optionally qualified as db.table.
	Tables      string `mapstructure:"tables"`
	Incremental string `mapstructure:"incremental"`
	Schedule    string `mapstructure:"schedule"`
}

type NotifyConfig struct {
	Telegram TelegramConfig `mapstructure:"telegram"`
}

type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
}

const (
	DriverS3    = "s3"
	DriverMinio = "minio"
)

var envKeys = map[string]string{
	"app.name":                  "APP_NAME",
	"app.log_level":             "LOG_LEVEL",
	"app.log_file":              "LOG_FILE",
	"clickhouse.url":            "CLICKHOUSE_URL",
	"clickhouse.user":           "CLICKHOUSE_USER",
	"clickhouse.password":       "CLICKHOUSE_PASSWORD",
	"clickhouse.database":       "CLICKHOUSE_DATABASE",
	"s3.driver":                 "S3_DRIVER",
	"s3.endpoint":               "S3_ENDPOINT",
	"s3.endpoint_local":         "S3_ENDPOINT_LOCAL",
	"s3.region":                 "S3_REGION",
	"s3.bucket":                 "S3_BUCKET",
	"s3.access_key":             "S3_ACCESS_KEY",
	"s3.secret_key":             "S3_SECRET_KEY",
	"backup.tables":             "BACKUP_TABLES",
	"backup.incremental":        "BACKUP_INCREMENTAL",
	"backup.schedule":           "BACKUP_SCHEDULE",
	"notify.telegram.bot_token": "TELEGRAM_BOT_TOKEN",
	"notify.telegram.chat_id":   "TELEGRAM_CHAT_ID",
}

// Load reads defaults, then the optional YAML file at path, then the environment.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("app.name", "chbackup")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("clickhouse.url", "http://localhost:8123")
	v.SetDefault("clickhouse.user", "default")
	v.SetDefault("clickhouse.password", "default")
	v.SetDefault("clickhouse.database", "default")
	v.SetDefault("s3.driver", DriverS3)
	v.SetDefault("s3.endpoint", "http://localhost:9000")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "backups")
	v.SetDefault("s3.access_key", "minioadmin")
	v.SetDefault("s3.secret_key", "minioadmin")

	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	// A YAML boolean is decoded weakly into "1"/"0"; re-read it as text.
	cfg.Backup.Incremental = v.GetString("backup.incremental")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := validateHTTPURL("clickhouse.url", c.ClickHouse.URL); err != nil {
		return err
	}
	if c.ClickHouse.Database == "" {
		return fmt.Errorf("clickhouse.database is required")
	}

	if err := validateHTTPURL("s3.endpoint", c.S3.Endpoint); err != nil {
		return err
	}
	if c.S3.EndpointLocal != "" {
		if err := validateHTTPURL("s3.endpoint_local", c.S3.EndpointLocal); err != nil {
			return err
		}
	}
	if c.S3.Bucket == "" {
		return fmt.Errorf("s3.bucket is required")
	}
	switch c.S3.Driver {
	case DriverS3, DriverMinio:
	default:
		return fmt.Errorf("s3.driver: unknown driver %q", c.S3.Driver)
	}

	if c.Notify.Telegram.BotToken != "" {
		if _, err := c.Notify.Telegram.ChatIDInt(); err != nil {
			return fmt.Errorf("notify.telegram.chat_id: %w", err)
		}
	}

	return nil
}

func validateHTTPURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s: must use http or https, got %q", field, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%s: host is required", field)
	}
	return nil
}

// IncrementalEnabled treats any non-empty value as on, except an explicit false.
func (c *Config) IncrementalEnabled() bool {
	switch strings.ToLower(strings.TrimSpace(c.Backup.Incremental)) {
	case "", "false":
		return false
	}
	return true
}

// StorageAPIEndpoint is the endpoint this process uses for bucket and listing calls.
func (c *Config) StorageAPIEndpoint() string {
	if c.S3.EndpointLocal != "" {
		return c.S3.EndpointLocal
	}
	return c.S3.Endpoint
}

// PublicEndpoint is the endpoint embedded in backup target URLs.
func (c *Config) PublicEndpoint() string {
	return strings.TrimSuffix(c.S3.Endpoint, "/")
}

func (t TelegramConfig) ChatIDInt() (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(t.ChatID), 10, 64)
}
