// SPDX-License-Identifier: MIT
// Package config loads netroute settings from a TOML file.
//
// Example file:
//
//	[routing]
//	max_tolerance = 100
//	grow_value = 5.0
//	condensed = false
//	precision = 9
//	max_iterations = 0
//
//	[log]
//	file = "/var/log/netroute.log"
//	max_size = 100   # megabytes
//	max_age = 28     # days
//	level = "info"
//
//	[server]
//	address = "localhost:8080"
//	allowed_origins = ["*"]
//	cache_size = 32  # megabytes, 0 disables
//	cache_ttl = 600  # seconds
//
// Missing keys keep the values of Default.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/katalvlaran/netroute/network"
	"github.com/katalvlaran/netroute/routing"
)

// ErrInvalid indicates a configuration value out of range.
var ErrInvalid = errors.New("config: invalid value")

// DefaultAddress is the default listen address of the HTTP server.
const DefaultAddress = "localhost:8080"

// Config is the parsed configuration file.
type Config struct {
	Routing RoutingConfig `toml:"routing"`
	Log     LogConfig     `toml:"log"`
	Server  ServerConfig  `toml:"server"`
}

// RoutingConfig holds the routing knobs.
type RoutingConfig struct {
	MaxTolerance  int     `toml:"max_tolerance"`
	GrowValue     float64 `toml:"grow_value"`
	Condensed     bool    `toml:"condensed"`
	Precision     int     `toml:"precision"`
	MaxIterations int     `toml:"max_iterations"`
}

// LogConfig selects the log destination and level.
// An empty File logs to stderr.
type LogConfig struct {
	File    string `toml:"file"`
	MaxSize int    `toml:"max_size"` // megabytes
	MaxAge  int    `toml:"max_age"`  // days
	Level   string `toml:"level"`
}

// ServerConfig configures the HTTP API.
// A zero CacheSize disables the route cache.
type ServerConfig struct {
	Address        string   `toml:"address"`
	AllowedOrigins []string `toml:"allowed_origins"`
	CacheSize      int      `toml:"cache_size"` // megabytes
	CacheTTL       int      `toml:"cache_ttl"`  // seconds, 0 never expires
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Routing: RoutingConfig{
			MaxTolerance: routing.DefaultMaxTolerance,
			GrowValue:    routing.DefaultGrowValue,
			Precision:    network.DefaultPrecision,
		},
		Log: LogConfig{
			MaxSize: 100,
			MaxAge:  28,
			Level:   "info",
		},
		Server: ServerConfig{
			Address:        DefaultAddress,
			AllowedOrigins: []string{"*"},
		},
	}
}

// Load decodes the TOML file at path over Default and validates the result.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, fmt.Errorf("config: no TOML configuration file provided")
	}
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return c, fmt.Errorf("config: could not decode TOML config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return c, fmt.Errorf("%w: unknown keys %s", ErrInvalid, strings.Join(keys, ", "))
	}

	return c, c.Validate()
}

// Validate checks value ranges.
func (c Config) Validate() error {
	r := c.Routing
	switch {
	case r.MaxTolerance <= 0:
		return fmt.Errorf("%w: routing.max_tolerance must be > 0, got %d", ErrInvalid, r.MaxTolerance)
	case !(r.GrowValue > 0):
		return fmt.Errorf("%w: routing.grow_value must be > 0, got %g", ErrInvalid, r.GrowValue)
	case r.Precision < 0 || r.Precision > network.MaxPrecision:
		return fmt.Errorf("%w: routing.precision must be in [0, %d], got %d", ErrInvalid, network.MaxPrecision, r.Precision)
	case r.MaxIterations < 0:
		return fmt.Errorf("%w: routing.max_iterations must be >= 0, got %d", ErrInvalid, r.MaxIterations)
	case c.Log.MaxSize < 0 || c.Log.MaxAge < 0:
		return fmt.Errorf("%w: log.max_size and log.max_age must be >= 0", ErrInvalid)
	case c.Server.CacheSize < 0 || c.Server.CacheTTL < 0:
		return fmt.Errorf("%w: server.cache_size and server.cache_ttl must be >= 0", ErrInvalid)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}

	return nil
}

// RoutingOptions converts the routing section into routing.Options.
func (c Config) RoutingOptions(logger *slog.Logger) []routing.Option {
	return []routing.Option{
		routing.WithMaxTolerance(c.Routing.MaxTolerance),
		routing.WithGrowValue(c.Routing.GrowValue),
		routing.WithCondensed(c.Routing.Condensed),
		routing.WithPrecision(c.Routing.Precision),
		routing.WithMaxIterations(c.Routing.MaxIterations),
		routing.WithLogger(logger),
	}
}

// SlogLevel parses Level; an empty level means info.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if l.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("%w: log.level %q", ErrInvalid, l.Level)
	}

	return lvl, nil
}
