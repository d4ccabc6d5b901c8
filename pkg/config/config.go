// Package config loads the purifierctl configuration file.
//
// The file is YAML:
//
//	host: 192.168.1.20
//	port: 5683
//	alive_timeout: 30s
//	reconnect_interval: 30s
//	log_level: info
//	attributes_file: attributes.yaml
package config

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/backkem/airpurifier/pkg/attribute"
	"github.com/backkem/airpurifier/pkg/purifier"
	"github.com/backkem/airpurifier/pkg/session"
	"github.com/backkem/airpurifier/pkg/transport"
)

// Configuration errors.
var (
	ErrHostRequired    = errors.New("config: host is required")
	ErrHostHasPort     = errors.New("config: host must not carry a port, use port")
	ErrInvalidPort     = errors.New("config: port must be 1-65535")
	ErrInvalidTimeout  = errors.New("config: timeouts must be positive")
	ErrInvalidLogLevel = errors.New("config: invalid log level")
)

// LogLevels lists the accepted log_level values.
var LogLevels = []string{"disabled", "error", "warn", "info", "debug", "trace"}

// Config is the CLI configuration.
type Config struct {
	Host              string        `yaml:"host"`
	Port              int           `yaml:"port"`
	Secret            string        `yaml:"secret"`
	AliveTimeout      time.Duration `yaml:"alive_timeout"`
	ReconnectInterval time.Duration `yaml:"reconnect_interval"`
	LogLevel          string        `yaml:"log_level"`
	AttributesFile    string        `yaml:"attributes_file"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Port:              transport.DefaultCoAPPort,
		Secret:            purifier.DefaultSecret,
		AliveTimeout:      session.DefaultAliveTimeout,
		ReconnectInterval: session.DefaultReconnectInterval,
		LogLevel:          "info",
	}
}

// Load reads a configuration file. Fields missing from the file keep their
// defaults.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a configuration document over the defaults.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Host) == "" {
		return ErrHostRequired
	}
	if _, _, err := net.SplitHostPort(c.Host); err == nil {
		return fmt.Errorf("%w: %q", ErrHostHasPort, c.Host)
	}
	if c.Port < 1 || c.Port > 65535 {
		return ErrInvalidPort
	}
	if c.AliveTimeout <= 0 || c.ReconnectInterval <= 0 {
		return ErrInvalidTimeout
	}
	for _, l := range LogLevels {
		if c.LogLevel == l {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
}

// Address returns host:port for the transport.
func (c Config) Address() string {
	host := strings.TrimSuffix(strings.TrimPrefix(c.Host, "["), "]")
	return net.JoinHostPort(host, strconv.Itoa(c.Port))
}

// Attributes loads the attribute table named by AttributesFile, or the
// default table when none is set.
func (c Config) Attributes() (*attribute.Table, error) {
	if c.AttributesFile == "" {
		return attribute.DefaultTable(), nil
	}
	f, err := os.Open(c.AttributesFile)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	return attribute.LoadTable(f)
}
