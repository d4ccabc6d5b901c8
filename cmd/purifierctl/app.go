package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/backkem/airpurifier/pkg/config"
	"github.com/backkem/airpurifier/pkg/purifier"
	"github.com/backkem/airpurifier/pkg/transport"
)

// session bundles a client with the transport it owns.
type session struct {
	client    *purifier.Client
	transport *transport.CoAP
}

// createClient builds the transport and client from the configuration.
// Callbacks in hooks are installed on the client; OnDebug and OnError are
// logged when not set.
func createClient(opts *options, cfg config.Config, hooks purifier.Config) (*session, error) {
	attrs, err := cfg.Attributes()
	if err != nil {
		return nil, err
	}

	tr, err := transport.NewCoAP(transport.CoAPConfig{
		Address:       cfg.Address(),
		LoggerFactory: opts.log,
	})
	if err != nil {
		return nil, fmt.Errorf("create transport: %w", err)
	}

	log := opts.logger()
	pc := hooks
	pc.Transport = tr
	pc.Secret = []byte(cfg.Secret)
	pc.AliveTimeout = cfg.AliveTimeout
	pc.ReconnectInterval = cfg.ReconnectInterval
	pc.Attributes = attrs
	pc.LoggerFactory = opts.log
	if pc.OnError == nil {
		pc.OnError = func(err error) { log.Warn().Err(err).Msg("device error") }
	}
	if pc.OnConnected == nil {
		pc.OnConnected = func(up bool) { log.Info().Bool("connected", up).Msg("link changed") }
	}

	client, err := purifier.NewClient(pc)
	if err != nil {
		_ = tr.Close()
		return nil, fmt.Errorf("create client: %w", err)
	}
	return &session{client: client, transport: tr}, nil
}

// run starts the client, calls fn with a context canceled on SIGINT or
// SIGTERM, then shuts everything down.
func (s *session) run(fn func(ctx context.Context) error) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := s.client.Start(); err != nil {
		return fmt.Errorf("start client: %w", err)
	}
	defer s.close()

	return fn(ctx)
}

func (s *session) close() {
	s.client.Destroy()
	_ = s.transport.Close()
}
