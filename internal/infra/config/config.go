package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Knowledge base source kinds.
const (
	SourceBuiltin     = "builtin"
	SourceFile        = "file"
	SourceValkey      = "valkey"
	SourcePostgres    = "postgres"
	SourceSQLite      = "sqlite"
	SourceObjectStore = "objectstore"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP HTTPConfig `yaml:"http"`
	Log  LogConfig  `yaml:"log"`
	FAQ  FAQConfig  `yaml:"faq"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// LogConfig selects the log level and encoding.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// FAQConfig selects the knowledge base and tunes normalization.
type FAQConfig struct {
	Source      string            `yaml:"source"`
	File        string            `yaml:"file"`
	LoadTimeout time.Duration     `yaml:"loadTimeout"`
	Synonyms    map[string]string `yaml:"synonyms"`
	Valkey      ValkeyConfig      `yaml:"valkey"`
	Postgres    PostgresConfig    `yaml:"postgres"`
	SQLite      SQLiteConfig      `yaml:"sqlite"`
	ObjectStore ObjectStoreConfig `yaml:"objectStore"`
}

// ValkeyConfig locates a knowledge base list in Valkey.
type ValkeyConfig struct {
	Addr string `yaml:"addr"`
	Key  string `yaml:"key"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	Table    string `yaml:"table"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// SQLiteConfig points at a local SQLite database file.
type SQLiteConfig struct {
	Path  string `yaml:"path"`
	Table string `yaml:"table"`
}

// ObjectStoreConfig locates a knowledge base object in an S3-compatible bucket.
type ObjectStoreConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	Key       string `yaml:"key"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)
	if cfg.FAQ.Synonyms == nil {
		cfg.FAQ.Synonyms = DefaultSynonyms()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("FAQ_SOURCE"); v != "" {
		cfg.FAQ.Source = strings.ToLower(v)
	}
	if v := os.Getenv("FAQ_FILE"); v != "" {
		cfg.FAQ.File = v
	}
	if v := os.Getenv("FAQ_LOAD_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.FAQ.LoadTimeout = parsed
		}
	}
	if v := os.Getenv("FAQ_VALKEY_ADDR"); v != "" {
		cfg.FAQ.Valkey.Addr = v
	}
	if v := os.Getenv("FAQ_VALKEY_KEY"); v != "" {
		cfg.FAQ.Valkey.Key = v
	}
	if v := os.Getenv("FAQ_POSTGRES_DSN"); v != "" {
		cfg.FAQ.Postgres.DSN = v
	}
	if v := os.Getenv("FAQ_POSTGRES_TABLE"); v != "" {
		cfg.FAQ.Postgres.Table = v
	}
	if v := os.Getenv("FAQ_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.FAQ.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("FAQ_POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.FAQ.Postgres.MinConns = int32(parsed)
		}
	}
	if v := os.Getenv("FAQ_SQLITE_PATH"); v != "" {
		cfg.FAQ.SQLite.Path = v
	}
	if v := os.Getenv("FAQ_SQLITE_TABLE"); v != "" {
		cfg.FAQ.SQLite.Table = v
	}
	if v := os.Getenv("FAQ_OBJECT_ENDPOINT"); v != "" {
		cfg.FAQ.ObjectStore.Endpoint = v
	}
	if v := os.Getenv("FAQ_OBJECT_ACCESS_KEY"); v != "" {
		cfg.FAQ.ObjectStore.AccessKey = v
	}
	if v := os.Getenv("FAQ_OBJECT_SECRET_KEY"); v != "" {
		cfg.FAQ.ObjectStore.SecretKey = v
	}
	if v := os.Getenv("FAQ_OBJECT_REGION"); v != "" {
		cfg.FAQ.ObjectStore.Region = v
	}
	if v := os.Getenv("FAQ_OBJECT_BUCKET"); v != "" {
		cfg.FAQ.ObjectStore.Bucket = v
	}
	if v := os.Getenv("FAQ_OBJECT_KEY"); v != "" {
		cfg.FAQ.ObjectStore.Key = v
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// DefaultSynonyms folds the sample store's everyday words onto the terms its
// questions use. A config file that sets faq.synonyms, even to an empty map,
// replaces them.
func DefaultSynonyms() map[string]string {
	return map[string]string{
		"package":  "order",
		"parcel":   "order",
		"shipment": "order",
		"delivery": "shipping",
		"refund":   "return",
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 120,
				Burst:             30,
			},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		FAQ: FAQConfig{
			Source:      SourceBuiltin,
			LoadTimeout: 10 * time.Second,
			Valkey: ValkeyConfig{
				Key: "faq:entries",
			},
			Postgres: PostgresConfig{
				Table:    "faq_entries",
				MaxConns: 2,
			},
			SQLite: SQLiteConfig{
				Table: "faq_entries",
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "json", "text":
	default:
		return fmt.Errorf("log.format %q must be json or text", c.Log.Format)
	}
	if c.FAQ.LoadTimeout < 0 {
		return errors.New("faq.loadTimeout cannot be negative")
	}
	switch c.FAQ.Source {
	case SourceBuiltin:
	case SourceFile:
		if strings.TrimSpace(c.FAQ.File) == "" {
			return errors.New("faq.file cannot be empty when faq.source is file")
		}
	case SourceValkey:
		if strings.TrimSpace(c.FAQ.Valkey.Addr) == "" {
			return errors.New("faq.valkey.addr cannot be empty when faq.source is valkey")
		}
	case SourcePostgres:
		if strings.TrimSpace(c.FAQ.Postgres.DSN) == "" {
			return errors.New("faq.postgres.dsn cannot be empty when faq.source is postgres")
		}
	case SourceSQLite:
		if strings.TrimSpace(c.FAQ.SQLite.Path) == "" {
			return errors.New("faq.sqlite.path cannot be empty when faq.source is sqlite")
		}
	case SourceObjectStore:
		if strings.TrimSpace(c.FAQ.ObjectStore.Endpoint) == "" || c.FAQ.ObjectStore.Bucket == "" || c.FAQ.ObjectStore.Key == "" {
			return errors.New("faq.objectStore endpoint, bucket and key are required when faq.source is objectstore")
		}
	default:
		return fmt.Errorf("faq.source %q is not one of builtin, file, valkey, postgres, sqlite, objectstore", c.FAQ.Source)
	}
	return nil
}
