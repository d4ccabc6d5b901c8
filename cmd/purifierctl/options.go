package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/backkem/airpurifier/pkg/config"
	"github.com/backkem/airpurifier/pkg/logging"
)

// options holds the global flags. Flags that are set override the
// configuration file.
type options struct {
	configPath        string
	host              string
	port              int
	aliveTimeout      time.Duration
	reconnectInterval time.Duration
	logLevel          string

	cmd *cobra.Command
	log *logging.ZerologFactory
}

func (o *options) register(cmd *cobra.Command) {
	defaults := config.Default()
	o.cmd = cmd

	f := cmd.PersistentFlags()
	f.StringVar(&o.configPath, "config", "", "YAML configuration file")
	f.StringVar(&o.host, "host", "", "device host or IP address")
	f.IntVar(&o.port, "port", defaults.Port, "CoAP port")
	f.DurationVar(&o.aliveTimeout, "alive-timeout", defaults.AliveTimeout, "silence before reconnecting")
	f.DurationVar(&o.reconnectInterval, "reconnect-interval", defaults.ReconnectInterval, "handshake retry interval")
	f.StringVar(&o.logLevel, "log-level", defaults.LogLevel, "disabled, error, warn, info, debug or trace")
}

// load resolves the configuration: defaults, then the file, then flags.
func (o *options) load() (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return config.Config{}, err
		}
	}

	f := o.cmd.PersistentFlags()
	if f.Changed("host") {
		cfg.Host = o.host
	}
	if f.Changed("port") {
		cfg.Port = o.port
	}
	if f.Changed("alive-timeout") {
		cfg.AliveTimeout = o.aliveTimeout
	}
	if f.Changed("reconnect-interval") {
		cfg.ReconnectInterval = o.reconnectInterval
	}
	if f.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return config.Config{}, err
	}
	o.log = logging.NewZerologFactory(os.Stderr, level)
	return cfg, nil
}

func (o *options) fatal(err error) {
	if o.log != nil {
		o.log.Logger().Error().Err(err).Msg("purifierctl failed")
		return
	}
	fmt.Fprintln(os.Stderr, "purifierctl:", err)
}

// logger returns the CLI's own logger.
func (o *options) logger() *zerolog.Logger {
	return o.log.Logger()
}
