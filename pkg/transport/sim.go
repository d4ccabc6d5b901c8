package transport

import (
	"context"
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"github.com/pion/logging"

	"github.com/backkem/airpurifier/pkg/message"
)

// NetworkCondition configures lossy delivery of notifications.
type NetworkCondition struct {
	// DropRate is the probability of dropping a notification (0.0 - 1.0).
	DropRate float64

	// DelayMin is the minimum delay added to each notification.
	DelayMin time.Duration

	// DelayMax is the maximum delay added to each notification.
	// Actual delay is uniformly distributed between DelayMin and DelayMax.
	DelayMax time.Duration
}

// SimDeviceConfig configures a SimDevice.
type SimDeviceConfig struct {
	// Secret is the protocol secret shared with the client.
	Secret []byte

	// FirstSeed is the counter value issued by the first handshake.
	// Each later handshake issues FirstSeed + n*0x100.
	FirstSeed uint32

	// ControlReply is the body returned for control requests.
	// Default: {"status":"success"}
	ControlReply []byte

	// Condition applies to notifications.
	Condition NetworkCondition

	// LoggerFactory is the factory for creating loggers.
	// If nil, logging is disabled.
	LoggerFactory logging.LoggerFactory
}

// SimDevice is an in-memory device implementing Transport. It issues
// handshake counters, encrypts notifications with its own counter, and
// decrypts control requests, so the full protocol runs without a network.
type SimDevice struct {
	secret []byte
	log    logging.LeveledLogger

	mu            sync.Mutex
	seed          uint32
	deviceCounter uint32
	syncs         []string
	syncErr       error
	observeErr    error
	controlErr    error
	controlReply  []byte
	controls      []map[string]any
	controlCtrs   []string
	observers     map[int]*simObservation
	nextID        int
	condition     NetworkCondition
	rng           *rand.Rand
	closed        bool
	changed       chan struct{}
}

// NewSimDevice creates a simulated device.
func NewSimDevice(config SimDeviceConfig) *SimDevice {
	d := &SimDevice{
		secret:        append([]byte(nil), config.Secret...),
		seed:          config.FirstSeed,
		deviceCounter: 0x00A00000,
		controlReply:  config.ControlReply,
		observers:     make(map[int]*simObservation),
		condition:     config.Condition,
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
		changed:       make(chan struct{}),
	}
	if d.controlReply == nil {
		d.controlReply = []byte(`{"status":"success"}`)
	}
	if config.LoggerFactory != nil {
		d.log = config.LoggerFactory.NewLogger("sim-device")
	}
	return d
}

// Post implements Transport.
func (d *SimDevice) Post(ctx context.Context, path string, body []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrap("post", path, err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	defer d.notifyChangedLocked()

	if d.closed {
		return nil, wrap("post", path, ErrClosed)
	}

	switch path {
	case PathSync:
		d.syncs = append(d.syncs, string(body))
		if d.syncErr != nil {
			return nil, wrap("post", path, d.syncErr)
		}
		seed := d.seed + uint32(len(d.syncs)-1)*0x100
		return []byte(message.FormatCounter(seed)), nil

	case PathControl:
		if d.controlErr != nil {
			return nil, wrap("post", path, d.controlErr)
		}
		plaintext, err := message.Open(d.secret, body)
		if err != nil {
			return []byte(`{"status":"failed"}`), nil
		}
		var doc map[string]any
		if err := json.Unmarshal(plaintext, &doc); err != nil {
			return []byte(`{"status":"failed"}`), nil
		}
		d.controls = append(d.controls, doc)
		d.controlCtrs = append(d.controlCtrs, string(body[:message.CounterLen]))
		return append([]byte(nil), d.controlReply...), nil

	default:
		return nil, wrap("post", path, ErrNotFound)
	}
}

// Observe implements Transport. The empty acknowledgement is delivered
// before Observe returns.
func (d *SimDevice) Observe(ctx context.Context, path string, handler NotificationHandler) (Observation, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrap("observe", path, err)
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil, wrap("observe", path, ErrClosed)
	}
	if path != PathStatus {
		d.mu.Unlock()
		return nil, wrap("observe", path, ErrNotFound)
	}
	if d.observeErr != nil {
		err := d.observeErr
		d.mu.Unlock()
		return nil, wrap("observe", path, err)
	}

	obs := &simObservation{device: d, id: d.nextID, handler: handler}
	d.nextID++
	d.observers[obs.id] = obs
	d.notifyChangedLocked()
	d.mu.Unlock()

	handler(nil)
	return obs, nil
}

// Close implements Transport.
func (d *SimDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	d.closed = true
	d.observers = make(map[int]*simObservation)
	d.notifyChangedLocked()
	return nil
}

// Notify encrypts a status document carrying reported and delivers it to
// every active subscription.
func (d *SimDevice) Notify(reported map[string]any) error {
	doc, err := json.Marshal(map[string]any{
		"state": map[string]any{"reported": reported},
	})
	if err != nil {
		return err
	}
	return d.NotifyPlaintext(doc)
}

// NotifyPlaintext encrypts an arbitrary document and delivers it.
func (d *SimDevice) NotifyPlaintext(plaintext []byte) error {
	d.mu.Lock()
	d.deviceCounter++
	counter := message.FormatCounter(d.deviceCounter)
	d.mu.Unlock()

	env, err := message.Seal(d.secret, counter, plaintext)
	if err != nil {
		return err
	}
	d.NotifyRaw(env.Bytes())
	return nil
}

// NotifyRaw delivers payload unchanged to every active subscription,
// subject to the network condition.
func (d *SimDevice) NotifyRaw(payload []byte) {
	d.mu.Lock()
	cond := d.condition
	targets := make([]*simObservation, 0, len(d.observers))
	for _, obs := range d.observers {
		targets = append(targets, obs)
	}
	var drops []bool
	var delays []time.Duration
	for range targets {
		drops = append(drops, cond.DropRate > 0 && d.rng.Float64() < cond.DropRate)
		delay := cond.DelayMin
		if cond.DelayMax > cond.DelayMin {
			delay += time.Duration(d.rng.Int63n(int64(cond.DelayMax - cond.DelayMin)))
		}
		delays = append(delays, delay)
	}
	d.mu.Unlock()

	for i, obs := range targets {
		if drops[i] {
			if d.log != nil {
				d.log.Debugf("dropping notification to observer %d", obs.id)
			}
			continue
		}
		data := append([]byte(nil), payload...)
		if delays[i] > 0 {
			o := obs
			time.AfterFunc(delays[i], func() { o.deliver(data) })
			continue
		}
		obs.deliver(data)
	}
}

// SetCondition replaces the network condition.
func (d *SimDevice) SetCondition(cond NetworkCondition) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.condition = cond
}

// SetSyncError makes handshakes fail with err until cleared with nil.
func (d *SimDevice) SetSyncError(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.syncErr = err
}

// SetObserveError makes subscriptions fail with err until cleared with nil.
func (d *SimDevice) SetObserveError(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observeErr = err
}

// SetControlError makes control requests fail with err until cleared.
func (d *SimDevice) SetControlError(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.controlErr = err
}

// SetControlReply replaces the control response body.
func (d *SimDevice) SetControlReply(body []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.controlReply = append([]byte(nil), body...)
}

// SyncCount returns the number of handshake requests received.
func (d *SimDevice) SyncCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.syncs)
}

// SyncRequests returns the handshake request bodies in arrival order.
func (d *SimDevice) SyncRequests() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.syncs...)
}

// ActiveObservations returns the number of open subscriptions.
func (d *SimDevice) ActiveObservations() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.observers)
}

// Controls returns the decrypted control documents received.
func (d *SimDevice) Controls() []map[string]any {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]map[string]any(nil), d.controls...)
}

// ControlCounters returns the envelope counters of the control requests.
func (d *SimDevice) ControlCounters() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.controlCtrs...)
}

// Changed returns a channel closed at the next request, subscription change
// or Close. Tests use it to wait without polling.
func (d *SimDevice) Changed() <-chan struct{} {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.changed
}

func (d *SimDevice) notifyChangedLocked() {
	close(d.changed)
	d.changed = make(chan struct{})
}

func (d *SimDevice) remove(id int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.observers[id]; ok {
		delete(d.observers, id)
		d.notifyChangedLocked()
	}
}

type simObservation struct {
	device  *SimDevice
	id      int
	handler NotificationHandler

	mu       sync.Mutex
	canceled bool
}

func (o *simObservation) deliver(payload []byte) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.canceled {
		return
	}
	o.handler(payload)
}

// Cancel implements Observation.
func (o *simObservation) Cancel(ctx context.Context) error {
	o.mu.Lock()
	o.canceled = true
	o.mu.Unlock()
	o.device.remove(o.id)
	return nil
}

var _ Transport = (*SimDevice)(nil)
