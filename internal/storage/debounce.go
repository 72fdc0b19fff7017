package storage

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/HendryAvila/swarmboard/internal/registry"
)

// stateWriter is the slice of Store the saver needs.
type stateWriter interface {
	SaveState(*registry.Snapshot) error
}

// DebouncedSaver coalesces snapshot writes: each Schedule re-arms a
// timer, and only the newest snapshot is written when it fires. Canvas
// drags produce dozens of state changes per second; the disk sees one.
type DebouncedSaver struct {
	store stateWriter
	delay time.Duration
	log   zerolog.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending *registry.Snapshot
}

// NewDebouncedSaver wires a saver over the store. A non-positive delay
// falls back to the default 250ms.
func NewDebouncedSaver(store *Store, delay time.Duration, log zerolog.Logger) *DebouncedSaver {
	if delay <= 0 {
		delay = 250 * time.Millisecond
	}
	return &DebouncedSaver{store: store, delay: delay, log: log}
}

// Schedule queues the snapshot for writing, replacing any snapshot
// still waiting.
func (d *DebouncedSaver) Schedule(s *registry.Snapshot) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = s
	if d.timer == nil {
		d.timer = time.AfterFunc(d.delay, d.flush)
		return
	}
	d.timer.Reset(d.delay)
}

// Flush writes any pending snapshot immediately. Callers invoke it on
// shutdown so the last edits are not lost to the debounce window.
func (d *DebouncedSaver) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()
	d.flush()
}

func (d *DebouncedSaver) flush() {
	d.mu.Lock()
	s := d.pending
	d.pending = nil
	d.mu.Unlock()

	if s == nil {
		return
	}
	if err := d.store.SaveState(s); err != nil {
		d.log.Error().Err(err).Msg("state save failed")
	}
}
