// purifierctl talks to an air purifier over its encrypted CoAP protocol.
//
// Usage:
//
//	purifierctl [flags] watch
//	purifierctl [flags] status
//	purifierctl [flags] set NAME=VALUE...
//
// Flags:
//
//	--config              YAML configuration file
//	--host                device host or IP address
//	--port                CoAP port (default: 5683)
//	--alive-timeout       silence before reconnecting (default: 30s)
//	--reconnect-interval  handshake retry interval (default: 30s)
//	--log-level           disabled, error, warn, info, debug or trace
//
// Example:
//
//	purifierctl --host 192.168.1.20 set power=true mode=sleep
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "purifierctl",
		Short:         "Control an air purifier over CoAP",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	opts.register(cmd)

	cmd.AddCommand(watchCommand(opts))
	cmd.AddCommand(statusCommand(opts))
	cmd.AddCommand(setCommand(opts))

	if err := cmd.Execute(); err != nil {
		opts.fatal(err)
		os.Exit(1)
	}
}
