package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const appName = "taskmanager"

// Defaults
const (
	DefaultAddr       = ":8000"
	DefaultSQLitePath = "taskmanager.db"
	DefaultSessionTTL = 14 * 24 * time.Hour
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Session  SessionConfig  `yaml:"session"`
	Log      LogConfig      `yaml:"log"`
	Theme    Theme          `yaml:"theme"`

	// Debug allows running without a configured secret and logs at debug level
	Debug bool `yaml:"debug"`

	// BcryptCost is the cost for new password hashes (0 = library default)
	BcryptCost int `yaml:"bcrypt_cost"`

	// EphemeralSecret is set when the secret was generated because none was configured
	EphemeralSecret bool `yaml:"-"`
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// TrustedOrigins may post forms from another host (scheme://host[:port])
	TrustedOrigins []string `yaml:"trusted_origins"`
}

// DatabaseConfig selects the database. URL is either a postgres:// URL or a
// SQLite file path (optionally prefixed with sqlite://).
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// SessionConfig configures the signed session cookie
type SessionConfig struct {
	Secret string        `yaml:"secret"`
	TTL    time.Duration `yaml:"ttl"`
	// Secure marks the cookie HTTPS-only
	Secure bool `yaml:"secure"`
}

// LogConfig configures the slog handler
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// Driver returns the database driver name and data source for the URL
func (d DatabaseConfig) Driver() (driver, dsn string) {
	url := strings.TrimSpace(d.URL)
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return "postgres", url
	case strings.HasPrefix(url, "sqlite://"):
		return "sqlite", strings.TrimPrefix(url, "sqlite://")
	case url == "":
		return "sqlite", DefaultSQLitePath
	default:
		return "sqlite", url
	}
}

// Load reads configuration. A .env file in the working directory is loaded
// into the environment first (existing variables win). The YAML file is read
// from path, or from the user's config directory when path is empty; a
// missing file yields defaults. Environment variables override the file.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	explicit := path != ""
	if !explicit {
		p, err := getConfigPath()
		if err == nil {
			path = p
		}
	}

	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist) && !explicit:
			// Defaults only
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides file values with environment variables
func (c *Config) applyEnv() {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("SECRET_KEY"); v != "" {
		c.Session.Secret = v
	}
	if v := os.Getenv("TASKMANAGER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv("DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Debug = b
		}
	}
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Database.URL == "" {
		c.Database.URL = DefaultSQLitePath
	}
	if c.Session.TTL <= 0 {
		c.Session.TTL = DefaultSessionTTL
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
		if c.Debug {
			c.Log.Level = "debug"
		}
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
	if c.Session.Secret == "" && c.Debug {
		c.Session.Secret = uuid.NewString() + uuid.NewString()
		c.EphemeralSecret = true
	}
	c.Theme.ApplyDefaults()
}

// ErrMissingSecret is returned by RequireSecret when no session secret is configured
var ErrMissingSecret = errors.New("SECRET_KEY is required unless DEBUG is enabled")

// Validate rejects malformed configurations. The session secret is checked
// separately by RequireSecret since only the web server signs sessions.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("server address cannot be empty")
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (expected text|json)", c.Log.Format)
	}
	return nil
}

// RequireSecret fails when there is no secret to sign sessions with
func (c *Config) RequireSecret() error {
	if c.Session.Secret == "" {
		return ErrMissingSecret
	}
	return nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", appName, "config.yaml"), nil
}
