package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/backkem/airpurifier/pkg/command"
	"github.com/backkem/airpurifier/pkg/purifier"
)

func setCommand(opts *options) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "set NAME=VALUE...",
		Short: "Change device settings",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			settings, err := parseSettings(args)
			if err != nil {
				return err
			}
			cfg, err := opts.load()
			if err != nil {
				return err
			}

			s, err := createClient(opts, cfg, purifier.Config{})
			if err != nil {
				return err
			}

			return s.run(func(ctx context.Context) error {
				ctx, cancel := context.WithTimeout(ctx, timeout)
				defer cancel()

				ack, err := s.client.Control(ctx, settings)
				if err != nil {
					return err
				}
				fmt.Fprintln(os.Stdout, string(ack.Raw))
				return nil
			})
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "how long to wait for the device")
	return cmd
}

// parseSettings turns NAME=VALUE arguments into settings. Values that read
// as booleans or integers are passed typed.
func parseSettings(args []string) (command.Settings, error) {
	settings := make(command.Settings, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid setting %q, want NAME=VALUE", arg)
		}
		settings[name] = parseValue(value)
	}
	return settings, nil
}

func parseValue(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return s
}
