package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Redis   RedisConfig
	Log     LogConfig
	Shopify ShopifyConfig
	Invoice InvoiceConfig
	Storage StorageConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
	CORSOrigins  []string      `mapstructure:"cors_origins"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// RedisConfig holds Redis settings. An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	LockTTL  time.Duration `mapstructure:"lock_ttl"`
}

// Enabled reports whether a Redis address is configured.
func (r *RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ShopifyConfig holds the app credentials used to verify session tokens.
type ShopifyConfig struct {
	APIKey    string `mapstructure:"api_key"`
	APISecret string `mapstructure:"api_secret"`
}

// InvoiceConfig holds defaults applied when a shop is onboarded.
type InvoiceConfig struct {
	DefaultPrefix  string  `mapstructure:"default_prefix"`
	DefaultGSTRate float64 `mapstructure:"default_gst_rate"`
	ExportMaxRows  int     `mapstructure:"export_max_rows"`
}

// StorageConfig selects persistence backends.
//
// Backend is "postgres" or "memory". Counter is "postgres" (allocated inside
// the invoice transaction) or "redis".
type StorageConfig struct {
	Backend string `mapstructure:"backend"`
	Counter string `mapstructure:"counter"`
}

// Load reads configuration from environment variables with the GSTBOOK_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("GSTBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.cors_origins", "")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "gstbook")
	v.SetDefault("db.password", "gstbook_secret")
	v.SetDefault("db.name", "gstbook_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Redis defaults (disabled)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.lock_ttl", "10s")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "text")

	// Shopify defaults
	v.SetDefault("shopify.api_key", "")
	v.SetDefault("shopify.api_secret", "change-me-in-production")

	// Invoice defaults
	v.SetDefault("invoice.default_prefix", "INV")
	v.SetDefault("invoice.default_gst_rate", 18)
	v.SetDefault("invoice.export_max_rows", 10000)

	// Storage defaults
	v.SetDefault("storage.backend", "postgres")
	v.SetDefault("storage.counter", "postgres")

	envBindings := map[string]string{
		"server.port":              "GSTBOOK_SERVER_PORT",
		"server.read_timeout":      "GSTBOOK_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "GSTBOOK_SERVER_WRITE_TIMEOUT",
		"server.environment":       "GSTBOOK_SERVER_ENVIRONMENT",
		"server.cors_origins":      "GSTBOOK_SERVER_CORS_ORIGINS",
		"db.host":                  "GSTBOOK_DB_HOST",
		"db.port":                  "GSTBOOK_DB_PORT",
		"db.user":                  "GSTBOOK_DB_USER",
		"db.password":              "GSTBOOK_DB_PASSWORD",
		"db.name":                  "GSTBOOK_DB_NAME",
		"db.sslmode":               "GSTBOOK_DB_SSLMODE",
		"db.max_open":              "GSTBOOK_DB_MAX_OPEN",
		"db.max_idle":              "GSTBOOK_DB_MAX_IDLE",
		"redis.addr":               "GSTBOOK_REDIS_ADDR",
		"redis.password":           "GSTBOOK_REDIS_PASSWORD",
		"redis.db":                 "GSTBOOK_REDIS_DB",
		"redis.lock_ttl":           "GSTBOOK_REDIS_LOCK_TTL",
		"log.level":                "GSTBOOK_LOG_LEVEL",
		"log.format":               "GSTBOOK_LOG_FORMAT",
		"shopify.api_key":          "GSTBOOK_SHOPIFY_API_KEY",
		"shopify.api_secret":       "GSTBOOK_SHOPIFY_API_SECRET",
		"invoice.default_prefix":   "GSTBOOK_INVOICE_DEFAULT_PREFIX",
		"invoice.default_gst_rate": "GSTBOOK_INVOICE_DEFAULT_GST_RATE",
		"invoice.export_max_rows":  "GSTBOOK_INVOICE_EXPORT_MAX_ROWS",
		"storage.backend":          "GSTBOOK_STORAGE_BACKEND",
		"storage.counter":          "GSTBOOK_STORAGE_COUNTER",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Hosting platforms set PORT. Use it if GSTBOOK_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("GSTBOOK_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
		CORSOrigins:  splitList(v.GetString("server.cors_origins")),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Redis = RedisConfig{
		Addr:     v.GetString("redis.addr"),
		Password: v.GetString("redis.password"),
		DB:       v.GetInt("redis.db"),
		LockTTL:  v.GetDuration("redis.lock_ttl"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Shopify = ShopifyConfig{
		APIKey:    v.GetString("shopify.api_key"),
		APISecret: v.GetString("shopify.api_secret"),
	}
	cfg.Invoice = InvoiceConfig{
		DefaultPrefix:  v.GetString("invoice.default_prefix"),
		DefaultGSTRate: v.GetFloat64("invoice.default_gst_rate"),
		ExportMaxRows:  v.GetInt("invoice.export_max_rows"),
	}
	cfg.Storage = StorageConfig{
		Backend: strings.ToLower(v.GetString("storage.backend")),
		Counter: strings.ToLower(v.GetString("storage.counter")),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case "postgres", "memory":
	default:
		return fmt.Errorf("config: unknown storage.backend %q", c.Storage.Backend)
	}
	switch c.Storage.Counter {
	case "postgres":
	case "redis":
		if !c.Redis.Enabled() {
			return fmt.Errorf("config: storage.counter=redis requires redis.addr")
		}
		if c.Storage.Backend == "memory" {
			return fmt.Errorf("config: storage.counter=redis requires storage.backend=postgres")
		}
	default:
		return fmt.Errorf("config: unknown storage.counter %q", c.Storage.Counter)
	}
	return nil
}

// splitList parses a comma-separated env value, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
