package session

import (
	"sync"
	"time"
)

// Watchdog holds at most one armed timer together with the kind of recovery
// it stands for. Arming always replaces the previous timer, so the reconnect
// and keepalive watchdogs can never both be live.
//
// Each arm gets a generation number that is passed to the fire callback.
// The owner checks IsCurrent before acting, which discards a fire that raced
// with a Stop or a re-arm.
type Watchdog struct {
	mu    sync.Mutex
	kind  WatchdogKind
	gen   uint64
	timer *time.Timer
	fire  func(kind WatchdogKind, gen uint64)
}

// NewWatchdog creates a disarmed watchdog. fire runs on the timer goroutine
// and should only hand the event over to the owner.
func NewWatchdog(fire func(kind WatchdogKind, gen uint64)) *Watchdog {
	return &Watchdog{fire: fire}
}

// Arm cancels any armed timer and arms a new one of the given kind.
// It returns the generation of the new timer.
func (w *Watchdog) Arm(kind WatchdogKind, d time.Duration) uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.stopLocked()
	w.gen++
	w.kind = kind

	gen := w.gen
	fire := w.fire
	w.timer = time.AfterFunc(d, func() {
		if fire != nil {
			fire(kind, gen)
		}
	})
	return gen
}

// Stop cancels the armed timer, if any.
func (w *Watchdog) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopLocked()
}

func (w *Watchdog) stopLocked() {
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.kind = WatchdogNone
}

// Kind returns the kind of the armed timer, or WatchdogNone.
func (w *Watchdog) Kind() WatchdogKind {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.kind
}

// Armed reports whether a timer is armed.
func (w *Watchdog) Armed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.timer != nil
}

// IsCurrent reports whether gen identifies the timer that is still armed.
func (w *Watchdog) IsCurrent(gen uint64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.timer != nil && w.gen == gen
}
