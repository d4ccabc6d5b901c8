package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/backkem/airpurifier/pkg/purifier"
)

func statusCommand(opts *options) *cobra.Command {
	var timeout time.Duration
	var raw bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print the first status report and exit",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}

			first := make(chan purifier.Status, 1)
			s, err := createClient(opts, cfg, purifier.Config{
				OnStatus: func(st purifier.Status) {
					select {
					case first <- st:
					default:
					}
				},
			})
			if err != nil {
				return err
			}

			return s.run(func(ctx context.Context) error {
				ctx, cancel := context.WithTimeout(ctx, timeout)
				defer cancel()

				select {
				case st := <-first:
					v := st.Values
					if raw {
						v = st.Reported
					}
					out, err := json.MarshalIndent(v, "", "  ")
					if err != nil {
						return err
					}
					fmt.Fprintln(os.Stdout, string(out))
					return nil
				case <-ctx.Done():
					return fmt.Errorf("no status received: %w", ctx.Err())
				}
			})
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "how long to wait for a status report")
	cmd.Flags().BoolVar(&raw, "raw", false, "print attribute codes instead of decoded names")
	return cmd
}
