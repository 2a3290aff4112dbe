package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root application configuration.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Log      LogConfig
	Event    EventConfig
	HTTP     HTTPConfig
}

// AppConfig identifies the service and its runtime environment.
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds PostgreSQL connection and pool settings.
// Lifetime values are in minutes.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	ConnMaxIdleTime int
}

// RedisConfig holds Redis connection settings. When Enabled is false
// the service falls back to in-memory stores.
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// LogConfig controls log level (debug..error), format (json or
// console) and output destination (stdout, stderr, or a file path).
type LogConfig struct {
	Level  string
	Format string
	Output string
}

// EventConfig tunes the in-process event bus.
type EventConfig struct {
	BufferSize     int
	IdempotencyTTL time.Duration
}

// HTTPConfig holds server timeouts and request limits.
type HTTPConfig struct {
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int
	MaxBodySize    int64
	TrustedProxies []string
}

// Load reads configuration from config.toml and the environment.
// Environment variables use the SCM_ prefix with underscores for dots
// (SCM_DATABASE_PASSWORD maps to database.password) and take priority
// over the file; built-in defaults fill whatever is left unset.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	// A missing config file is fine, env vars and defaults cover it.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("SCM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App:      loadApp(v),
		Database: loadDatabase(v),
		Redis:    loadRedis(v),
		Log:      loadLog(v),
		Event:    loadEvent(v),
		HTTP:     loadHTTP(v),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadApp(v *viper.Viper) AppConfig {
	return AppConfig{
		Name: stringOr(v, "app.name", "scm-backend"),
		Env:  stringOr(v, "app.env", "development"),
		Port: stringOr(v, "app.port", "8080"),
	}
}

func loadDatabase(v *viper.Viper) DatabaseConfig {
	return DatabaseConfig{
		Host:            stringOr(v, "database.host", "localhost"),
		Port:            intOr(v, "database.port", 5432),
		User:            stringOr(v, "database.user", "postgres"),
		Password:        v.GetString("database.password"),
		DBName:          stringOr(v, "database.dbname", "scm"),
		SSLMode:         stringOr(v, "database.sslmode", "disable"),
		MaxOpenConns:    intOr(v, "database.max_open_conns", 25),
		MaxIdleConns:    intOr(v, "database.max_idle_conns", 5),
		ConnMaxLifetime: intOr(v, "database.conn_max_lifetime", 60),
		ConnMaxIdleTime: intOr(v, "database.conn_max_idle_time", 30),
	}
}

func loadRedis(v *viper.Viper) RedisConfig {
	return RedisConfig{
		Enabled:  v.GetBool("redis.enabled"),
		Host:     stringOr(v, "redis.host", "localhost"),
		Port:     intOr(v, "redis.port", 6379),
		Password: v.GetString("redis.password"),
		DB:       v.GetInt("redis.db"),
	}
}

func loadLog(v *viper.Viper) LogConfig {
	return LogConfig{
		Level:  stringOr(v, "log.level", "info"),
		Format: stringOr(v, "log.format", "console"),
		Output: stringOr(v, "log.output", "stdout"),
	}
}

func loadEvent(v *viper.Viper) EventConfig {
	return EventConfig{
		BufferSize:     intOr(v, "event.buffer_size", 256),
		IdempotencyTTL: durationOr(v, "event.idempotency_ttl", 24*time.Hour),
	}
}

func loadHTTP(v *viper.Viper) HTTPConfig {
	cfg := HTTPConfig{
		ReadTimeout:    durationOr(v, "http.read_timeout", 15*time.Second),
		WriteTimeout:   durationOr(v, "http.write_timeout", 15*time.Second),
		IdleTimeout:    durationOr(v, "http.idle_timeout", 60*time.Second),
		MaxHeaderBytes: intOr(v, "http.max_header_bytes", 1<<20),
		TrustedProxies: v.GetStringSlice("http.trusted_proxies"),
	}
	cfg.MaxBodySize = v.GetInt64("http.max_body_size")
	if cfg.MaxBodySize == 0 {
		cfg.MaxBodySize = 10 << 20
	}
	return cfg
}

// stringOr returns the configured string, or def when unset/empty.
func stringOr(v *viper.Viper, key, def string) string {
	if s := v.GetString(key); s != "" {
		return s
	}
	return def
}

// intOr returns the configured int, or def when unset. Zero is treated
// as unset so explicit negative values still reach validation.
func intOr(v *viper.Viper, key string, def int) int {
	if n := v.GetInt(key); n != 0 {
		return n
	}
	return def
}

func durationOr(v *viper.Viper, key string, def time.Duration) time.Duration {
	if d := v.GetDuration(key); d != 0 {
		return d
	}
	return def
}

// validate rejects configurations that would fail at runtime or are
// unsafe for the target environment.
func (c *Config) validate() error {
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}

	if c.App.Env == "production" {
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		if c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
	}

	return nil
}

// DSN builds a postgres:// connection URL. Credentials are URL-escaped
// so passwords with special characters survive the round trip.
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// Addr returns the Redis address in host:port form.
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}
