// SPDX-License-Identifier: MIT
package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/netroute/config"
	"github.com/katalvlaran/netroute/routing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "netroute.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestDefault(t *testing.T) {
	c := config.Default()
	require.NoError(t, c.Validate())
	require.Equal(t, 100, c.Routing.MaxTolerance)
	require.Equal(t, 5.0, c.Routing.GrowValue)
	require.False(t, c.Routing.Condensed)
	require.Equal(t, 9, c.Routing.Precision)
	require.Equal(t, config.DefaultAddress, c.Server.Address)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[routing]
max_tolerance = 50
grow_value = 2.5
condensed = true

[log]
level = "debug"

[server]
address = ":9090"
allowed_origins = ["https://maps.example.org"]
cache_size = 16
cache_ttl = 60
`)
	c, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, 50, c.Routing.MaxTolerance)
	require.Equal(t, 2.5, c.Routing.GrowValue)
	require.True(t, c.Routing.Condensed)
	require.Equal(t, 9, c.Routing.Precision, "missing keys keep defaults")
	require.Equal(t, ":9090", c.Server.Address)
	require.Equal(t, []string{"https://maps.example.org"}, c.Server.AllowedOrigins)
	require.Equal(t, 16, c.Server.CacheSize)
	require.Equal(t, 60, c.Server.CacheTTL)

	lvl, err := c.Log.SlogLevel()
	require.NoError(t, err)
	require.Equal(t, slog.LevelDebug, lvl)

	sys, err := routing.NewSystem(c.RoutingOptions(nil)...)
	require.NoError(t, err)
	require.Equal(t, 50, sys.MaxTolerance())
	require.True(t, sys.UseCondensedGraph())
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load("")
	require.Error(t, err)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)

	_, err = config.Load(writeConfig(t, "[routing\nmax_tolerance ="))
	require.Error(t, err)

	_, err = config.Load(writeConfig(t, "[routing]\nmax_tolerance = -1\n"))
	require.ErrorIs(t, err, config.ErrInvalid)

	_, err = config.Load(writeConfig(t, "[routing]\ngrow_valu = 3.0\n"))
	require.ErrorIs(t, err, config.ErrInvalid)

	_, err = config.Load(writeConfig(t, "[log]\nlevel = \"loud\"\n"))
	require.ErrorIs(t, err, config.ErrInvalid)
}

func TestValidate(t *testing.T) {
	for name, mutate := range map[string]func(*config.Config){
		"grow":       func(c *config.Config) { c.Routing.GrowValue = 0 },
		"precision":  func(c *config.Config) { c.Routing.Precision = 16 },
		"iterations": func(c *config.Config) { c.Routing.MaxIterations = -1 },
		"log size":   func(c *config.Config) { c.Log.MaxSize = -1 },
		"cache":      func(c *config.Config) { c.Server.CacheTTL = -1 },
	} {
		c := config.Default()
		mutate(&c)
		require.ErrorIs(t, c.Validate(), config.ErrInvalid, name)
	}
}

func TestNewLogger(t *testing.T) {
	logger, closer, err := config.LogConfig{Level: "warn"}.NewLogger()
	require.NoError(t, err)
	require.NotNil(t, logger)
	require.NoError(t, closer.Close())

	path := filepath.Join(t.TempDir(), "netroute.log")
	logger, closer, err = config.LogConfig{File: path, MaxSize: 1, MaxAge: 1, Level: "info"}.NewLogger()
	require.NoError(t, err)
	logger.Info("route found", "cost", 18.0)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "route found")

	_, _, err = config.LogConfig{Level: "nope"}.NewLogger()
	require.ErrorIs(t, err, config.ErrInvalid)
}
