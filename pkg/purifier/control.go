package purifier

import (
	"context"

	"github.com/backkem/airpurifier/pkg/command"
	"github.com/backkem/airpurifier/pkg/transport"
)

type controlRequest struct {
	ctx   context.Context
	doc   *command.Document
	reply chan controlResult
}

type controlResult struct {
	ack *Ack
	err error
}

// Control validates settings, encrypts them under the session counter and
// sends them to the device.
//
// An out-of-domain option fails immediately with *command.InvalidOptionError.
// While a handshake is in flight the command waits for it to complete. The
// acknowledgement is returned as received; if it cannot be parsed the error
// is reported through OnError and Ack.Body is nil.
func (c *Client) Control(ctx context.Context, settings command.Settings) (*Ack, error) {
	doc, err := c.encoder.Document(settings)
	if err != nil {
		return nil, err
	}
	if err := c.checkRunning(); err != nil {
		return nil, err
	}

	req := &controlRequest{
		ctx:   ctx,
		doc:   doc,
		reply: make(chan controlResult, 1),
	}
	if !c.send(ctx, req) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, ErrClosed
	}

	select {
	case res := <-req.reply:
		return res.ack, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-c.done:
		select {
		case res := <-req.reply:
			return res.ack, res.err
		default:
			return nil, ErrClosed
		}
	}
}

func (c *Client) handleControl(req *controlRequest) {
	if !c.session.Ready() {
		c.debugf("handshake in progress, queueing command")
		c.pending = append(c.pending, req)
		return
	}
	c.dispatch(req)
}

// flushPending sends the commands queued behind a handshake.
func (c *Client) flushPending() {
	pending := c.pending
	c.pending = nil
	for _, req := range pending {
		c.dispatch(req)
	}
}

func (c *Client) dispatch(req *controlRequest) {
	if err := req.ctx.Err(); err != nil {
		req.reply <- controlResult{err: err}
		return
	}

	env, err := c.codec.EncryptJSON(req.doc)
	if err != nil {
		req.reply <- controlResult{err: err}
		return
	}
	c.debugf("control with counter %s", env.Counter)

	tr, secret := c.config.Transport, c.config.Secret
	go func() {
		body, err := tr.Post(req.ctx, transport.PathControl, env.Bytes())
		if err != nil {
			req.reply <- controlResult{err: err}
			return
		}
		ack, err := parseAck(secret, body)
		if err != nil {
			c.send(req.ctx, errorEvent{err: err})
		}
		req.reply <- controlResult{ack: ack}
	}()
}
