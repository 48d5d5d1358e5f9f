package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"ride-hail-client/internal/domain/user"
)

// EnvPrefix is the prefix for environment overrides. Nested keys use a
// double underscore: RIDECLIENT_API__BASE_URL overrides api.base_url.
const EnvPrefix = "RIDECLIENT_"

// Config is the full agent configuration. The role is an explicit value —
// deployments pin it per instance instead of the client guessing it from the
// serving context.
type Config struct {
	Role string `koanf:"role" validate:"required"`

	API      APIConfig      `koanf:"api"`
	Realtime RealtimeConfig `koanf:"realtime"`
	Poll     PollConfig     `koanf:"poll"`
	Location LocationConfig `koanf:"location"`
	Storage  StorageConfig  `koanf:"storage"`
	Diag     DiagConfig     `koanf:"diag"`
}

// APIConfig configures the REST client.
type APIConfig struct {
	BaseURL string        `koanf:"base_url" validate:"required,url"`
	Timeout time.Duration `koanf:"timeout"`
}

// RealtimeConfig configures the WebSocket channel client.
type RealtimeConfig struct {
	// URL is the channel base; the auth token is appended as the last path
	// segment, e.g. ws://localhost:8000/ws -> ws://localhost:8000/ws/<token>.
	URL                  string        `koanf:"url" validate:"required"`
	MaxReconnectAttempts int           `koanf:"max_reconnect_attempts" validate:"gte=0"`
	ReconnectInterval    time.Duration `koanf:"reconnect_interval"`
	HandshakeTimeout     time.Duration `koanf:"handshake_timeout"`
}

// PollConfig holds the fixed polling cadences. Polling is the correctness
// backstop: if the realtime channel is down, every view still converges
// within one interval.
type PollConfig struct {
	RideInterval       time.Duration `koanf:"ride_interval"`
	FallbackInterval   time.Duration `koanf:"fallback_interval"`
	AdminStatsInterval time.Duration `koanf:"admin_stats_interval"`
}

// LocationConfig drives the driver agent's location reporting.
type LocationConfig struct {
	ReportInterval time.Duration `koanf:"report_interval"`
	AcquireTimeout time.Duration `koanf:"acquire_timeout"`
	MaxFixAge      time.Duration `koanf:"max_fix_age"`

	// Starting point for the simulated source when no real provider is wired.
	SimOriginLat float64 `koanf:"sim_origin_lat" validate:"gte=-90,lte=90"`
	SimOriginLng float64 `koanf:"sim_origin_lng" validate:"gte=-180,lte=180"`
}

// StorageConfig locates the local credential store.
type StorageConfig struct {
	Dir string `koanf:"dir" validate:"required"`
}

// DiagConfig configures the local diagnostics HTTP endpoint.
type DiagConfig struct {
	Enabled bool `koanf:"enabled"`
	Port    int  `koanf:"port"`
}

// defaultConfig returns a Config with all defaults applied. File and env
// values override these.
func defaultConfig() *Config {
	return &Config{
		Role: "",
		API: APIConfig{
			BaseURL: "http://localhost:8000",
			Timeout: 15 * time.Second,
		},
		Realtime: RealtimeConfig{
			URL:                  "ws://localhost:8000/ws",
			MaxReconnectAttempts: 5,
			ReconnectInterval:    3 * time.Second,
			HandshakeTimeout:     10 * time.Second,
		},
		Poll: PollConfig{
			RideInterval:       5 * time.Second,
			FallbackInterval:   10 * time.Second,
			AdminStatsInterval: 30 * time.Second,
		},
		Location: LocationConfig{
			ReportInterval: 10 * time.Second,
			AcquireTimeout: 10 * time.Second,
			MaxFixAge:      60 * time.Second,
			SimOriginLat:   12.9716,
			SimOriginLng:   77.5946,
		},
		Storage: StorageConfig{
			Dir: "./data",
		},
		Diag: DiagConfig{
			Enabled: true,
			Port:    9090,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file, and
// environment overrides, then validates it. A missing file is not an error
// when path is empty; an explicitly named file must exist. defaultRole seeds
// the role (normally from the agent mode); file and env still override it.
func Load(path, defaultRole string) (*Config, error) {
	k := koanf.New(".")

	defaults := defaultConfig()
	defaults.Role = defaultRole
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %q: %w", path, err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		s = strings.ToLower(s)
		return strings.ReplaceAll(s, "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load env overrides: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

var validate = validator.New()

// Validate checks required fields and basic ranges.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}

	if _, err := user.ParseRole(c.Role); err != nil {
		return fmt.Errorf("role %q: %w", c.Role, err)
	}

	var problems []string
	if c.API.Timeout <= 0 {
		problems = append(problems, "api.timeout must be positive")
	}
	if c.Realtime.ReconnectInterval <= 0 {
		problems = append(problems, "realtime.reconnect_interval must be positive")
	}
	if c.Poll.RideInterval <= 0 || c.Poll.FallbackInterval <= 0 || c.Poll.AdminStatsInterval <= 0 {
		problems = append(problems, "poll intervals must be positive")
	}
	if c.Location.ReportInterval <= 0 || c.Location.AcquireTimeout <= 0 || c.Location.MaxFixAge < 0 {
		problems = append(problems, "location timings must be positive")
	}
	if c.Diag.Enabled && (c.Diag.Port <= 0 || c.Diag.Port > 65535) {
		problems = append(problems, "diag.port must be in 1..65535")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%s", strings.Join(problems, "; "))
	}
	return nil
}

// UserRole returns the configured role as a domain value. Only valid after
// Validate has passed.
func (c *Config) UserRole() user.Role {
	role, _ := user.ParseRole(c.Role)
	return role
}
