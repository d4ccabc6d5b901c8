package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 5683, cfg.Port)
	assert.Equal(t, "JiangPan", cfg.Secret)
	assert.Equal(t, 30*time.Second, cfg.AliveTimeout)
	assert.Equal(t, 30*time.Second, cfg.ReconnectInterval)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.ErrorIs(t, cfg.Validate(), ErrHostRequired)
}

func TestParse(t *testing.T) {
	cfg, err := Parse(strings.NewReader(`
host: 192.168.1.20
alive_timeout: 10s
reconnect_interval: 1m
log_level: debug
`))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "192.168.1.20", cfg.Host)
	assert.Equal(t, 5683, cfg.Port, "port keeps its default")
	assert.Equal(t, 10*time.Second, cfg.AliveTimeout)
	assert.Equal(t, time.Minute, cfg.ReconnectInterval)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "192.168.1.20:5683", cfg.Address())
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse(strings.NewReader("hostname: x\n"))
	require.Error(t, err)
}

func TestParse_BadDuration(t *testing.T) {
	_, err := Parse(strings.NewReader("alive_timeout: soon\n"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := Default()
	base.Host = "purifier.local"
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"blank host", func(c *Config) { c.Host = "  " }, ErrHostRequired},
		{"host with port", func(c *Config) { c.Host = "192.168.1.20:5683" }, ErrHostHasPort},
		{"bracketed host with port", func(c *Config) { c.Host = "[fe80::1]:5683" }, ErrHostHasPort},
		{"port zero", func(c *Config) { c.Port = 0 }, ErrInvalidPort},
		{"port too large", func(c *Config) { c.Port = 70000 }, ErrInvalidPort},
		{"zero alive timeout", func(c *Config) { c.AliveTimeout = 0 }, ErrInvalidTimeout},
		{"negative reconnect", func(c *Config) { c.ReconnectInterval = -time.Second }, ErrInvalidTimeout},
		{"log level", func(c *Config) { c.LogLevel = "verbose" }, ErrInvalidLogLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.modify(&cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.want)
		})
	}
}

func TestAddress_IPv6(t *testing.T) {
	cfg := Default()
	cfg.Host = "fe80::1"
	assert.Equal(t, "[fe80::1]:5683", cfg.Address())
	require.NoError(t, cfg.Validate())

	cfg.Host = "[fe80::1]"
	assert.Equal(t, "[fe80::1]:5683", cfg.Address())
	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	table := filepath.Join(dir, "attributes.yaml")
	require.NoError(t, os.WriteFile(table, []byte(`
attributes:
  - code: pwr
    name: power
    role: control
    options:
      - code: "1"
        value: true
      - code: "0"
        value: false
`), 0o600))

	path := filepath.Join(dir, "purifier.yaml")
	require.NoError(t, os.WriteFile(path, []byte("host: 10.0.0.5\nport: 5684\nattributes_file: "+table+"\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.5:5684", cfg.Address())

	attrs, err := cfg.Attributes()
	require.NoError(t, err)
	assert.Equal(t, 1, attrs.Len())
	d, ok := attrs.Lookup("pwr")
	require.True(t, ok)
	assert.Equal(t, "power", d.Name)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestAttributes_Default(t *testing.T) {
	attrs, err := Default().Attributes()
	require.NoError(t, err)
	_, ok := attrs.ByName("mode")
	assert.True(t, ok)
}
