/*
This pkg is the system-wide configuration. Defaults live in Default(), and a
TOML file (see Load) only needs to mention what it changes. Example:

	[api]
	addr = "0.0.0.0:3000"
	write_timeout = "10s"

	[kmeans]
	max_iterations = 200

	[log]
	level = "debug"
	file = "/var/log/kstep/service.log"

*/
package cfg

import (
	"errors"
	"fmt"
	"kstep/pkg/kmeans"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap/zapcore"
)

// Duration is a time.Duration that decodes from strings such as "5s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler (used by the toml decoder).
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config is the root configuration.
type Config struct {
	API     APIConfig     `toml:"api"`
	KMeans  KMeansConfig  `toml:"kmeans"`
	Log     LogConfig     `toml:"log"`
	Dataset DatasetConfig `toml:"dataset"`
}

// APIConfig is for the user-facing web server (core/api).
type APIConfig struct {
	// Listen address of the server.
	Addr         string   `toml:"addr"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
	// Time given to in-flight requests on shutdown.
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
	// Token bucket shared by all clients. RequestsPerSecond <= 0 disables it.
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
	// Requests with larger bodies are rejected.
	MaxBodyBytes int64 `toml:"max_body_bytes"`
}

// KMeansConfig holds the engine limits (see kmeans.RunArgs).
type KMeansConfig struct {
	MaxIterations int     `toml:"max_iterations"`
	Tolerance     float64 `toml:"tolerance"`
	MaxK          int     `toml:"max_k"`
	// Fixed seed for every run; 0 seeds each run from the clock. A seed in
	// the request always wins.
	Seed int64 `toml:"seed"`
}

// LogConfig is for core/logging.
type LogConfig struct {
	// debug, info, warn or error.
	Level string `toml:"level"`
	// JSON output instead of the console encoder.
	JSON bool `toml:"json"`
	// When set, logs go to this file (rotated) instead of stderr.
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// DatasetConfig is for generated datasets (GET /api/dataset and GET /).
type DatasetConfig struct {
	DefaultPoints int `toml:"default_points"`
	MaxPoints     int `toml:"max_points"`
}

// Default gives the configuration used when no file is given.
func Default() Config {
	return Config{
		API: APIConfig{
			Addr:              "localhost:3000",
			ReadTimeout:       Duration{5 * time.Second},
			WriteTimeout:      Duration{5 * time.Second},
			ShutdownTimeout:   Duration{5 * time.Second},
			RequestsPerSecond: 20,
			Burst:             40,
			MaxBodyBytes:      1 << 20,
		},
		KMeans: KMeansConfig{
			MaxIterations: kmeans.DefaultMaxIterations,
			Tolerance:     kmeans.DefaultTolerance,
			MaxK:          kmeans.DefaultMaxK,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Dataset: DatasetConfig{
			DefaultPoints: 100,
			MaxPoints:     10000,
		},
	}
}

// Load decodes the TOML file at 'path' on top of Default() and validates
// the result.
func Load(path string) (Config, error) {
	c := Default()
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return Config{}, fmt.Errorf("failed to decode config %q: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("unknown config keys in %q: %v", path, undecoded)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return c, nil
}

// Validate checks that the configuration values are usable.
func (c *Config) Validate() error {
	if c.API.Addr == "" {
		return errors.New("api.addr must be set")
	}
	if c.API.ReadTimeout.Duration < 0 || c.API.WriteTimeout.Duration < 0 || c.API.ShutdownTimeout.Duration < 0 {
		return errors.New("api timeouts must be non-negative")
	}
	if c.API.RequestsPerSecond > 0 && c.API.Burst < 1 {
		return fmt.Errorf("api.burst must be at least 1 when rate limiting, got %d", c.API.Burst)
	}
	if c.API.MaxBodyBytes <= 0 {
		return fmt.Errorf("api.max_body_bytes must be positive, got %d", c.API.MaxBodyBytes)
	}
	if c.KMeans.MaxIterations < 1 {
		return fmt.Errorf("kmeans.max_iterations must be at least 1, got %d", c.KMeans.MaxIterations)
	}
	if c.KMeans.Tolerance <= 0 {
		return fmt.Errorf("kmeans.tolerance must be positive, got %g", c.KMeans.Tolerance)
	}
	if c.KMeans.MaxK < 1 {
		return fmt.Errorf("kmeans.max_k must be at least 1, got %d", c.KMeans.MaxK)
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Dataset.DefaultPoints < 1 || c.Dataset.MaxPoints < c.Dataset.DefaultPoints {
		return fmt.Errorf("dataset: need 1 <= default_points (%d) <= max_points (%d)",
			c.Dataset.DefaultPoints, c.Dataset.MaxPoints)
	}
	return nil
}
