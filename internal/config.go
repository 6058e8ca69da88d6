package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/notepad/internal/storage"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Storage StorageConfig     `yaml:"storage"`
	Auth    AuthConfig        `yaml:"auth"`
	Events  EventsConfig      `yaml:"events"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	return c.Events.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
	// MetricsPath is where Prometheus metrics are served; empty disables them.
	MetricsPath string `yaml:"metrics_path"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	if err := c.HTTP.Validate(); err != nil {
		return err
	}
	if c.MetricsPath != "" && c.MetricsPath[0] != '/' {
		return fmt.Errorf("app: metrics_path must start with '/': %q", c.MetricsPath)
	}
	return nil
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// StorageConfig selects the persistence backend.
//
// Driver is one of:
//   - "file" (default): a single JSON file at Path.
//   - "sqlite": a SQLite database at Path.
//   - "redis": a Redis server at RedisURL, keys prefixed with KeyPrefix.
//   - "memory": nothing is persisted; useful for demos and tests.
type StorageConfig struct {
	Driver    string `yaml:"driver"`
	Path      string `yaml:"path"`
	RedisURL  string `yaml:"redis_url"`
	KeyPrefix string `yaml:"key_prefix"`
}

// Validate validates the storage configuration.
func (c *StorageConfig) Validate() error {
	needsPath := c.Driver == storage.DriverFile || c.Driver == storage.DriverSQLite
	return validation.ValidateStruct(c,
		validation.Field(&c.Driver, validation.Required, validation.In(
			storage.DriverFile, storage.DriverSQLite, storage.DriverRedis, storage.DriverMemory,
		)),
		validation.Field(&c.Path, validation.When(needsPath, validation.Required)),
		validation.Field(&c.RedisURL, validation.When(c.Driver == storage.DriverRedis, validation.Required)),
	)
}

// Options converts the configuration into storage.Options.
func (c *StorageConfig) Options() storage.Options {
	return storage.Options{
		Driver:    c.Driver,
		Path:      c.Path,
		RedisURL:  c.RedisURL,
		KeyPrefix: c.KeyPrefix,
	}
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local use.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// EventsConfig tunes server-sent events.
type EventsConfig struct {
	// RefreshThrottle is the minimum gap between two notes.refresh events.
	RefreshThrottle time.Duration `yaml:"refresh_throttle"`
}

// Validate validates the events configuration.
func (c *EventsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.RefreshThrottle, validation.Min(time.Duration(0))),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
			MetricsPath: "/metrics",
		},
		Storage: StorageConfig{
			Driver:    storage.DriverFile,
			Path:      "./notepad.json",
			KeyPrefix: "notepad:",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
		Events: EventsConfig{
			RefreshThrottle: 500 * time.Millisecond,
		},
	}
}
