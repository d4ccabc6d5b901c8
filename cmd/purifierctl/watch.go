package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/backkem/airpurifier/pkg/purifier"
)

func watchCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Stream device status until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}

			statuses := make(chan purifier.Status, 16)
			links := make(chan bool, 16)
			s, err := createClient(opts, cfg, purifier.Config{
				OnStatus: func(st purifier.Status) {
					select {
					case statuses <- st:
					default:
						opts.logger().Warn().Msg("status dropped, printer is behind")
					}
				},
				OnConnected: func(up bool) {
					select {
					case links <- up:
					default:
					}
				},
			})
			if err != nil {
				return err
			}

			return s.run(func(ctx context.Context) error {
				g, ctx := errgroup.WithContext(ctx)
				g.Go(func() error { return printStatuses(ctx, statuses) })
				g.Go(func() error { return logLinks(ctx, opts, links) })
				return g.Wait()
			})
		},
	}
}

func printStatuses(ctx context.Context, statuses <-chan purifier.Status) error {
	enc := json.NewEncoder(os.Stdout)
	for {
		select {
		case <-ctx.Done():
			return nil
		case st := <-statuses:
			if err := enc.Encode(st.Values); err != nil {
				return fmt.Errorf("write status: %w", err)
			}
		}
	}
}

func logLinks(ctx context.Context, opts *options, links <-chan bool) error {
	log := opts.logger()
	for {
		select {
		case <-ctx.Done():
			return nil
		case up := <-links:
			if up {
				log.Info().Msg("device connected")
			} else {
				log.Warn().Msg("device connection lost, reconnecting")
			}
		}
	}
}
