package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const DefaultDebounce = 250 * time.Millisecond

// DebouncedSaver coalesces bursts of Notify calls into one write of the latest value.
// Writes happen on a timer goroutine; failures are logged, never returned to the notifier.
type DebouncedSaver struct {
	backend  Backend
	key      string
	debounce time.Duration
	log      *slog.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending any
	dirty   bool
	seq     uint64

	// inflight counts values taken but not yet written; idle is signalled when it drops to zero.
	inflight int
	idle     *sync.Cond

	// afterTake runs between taking a value and writing it on the timer path. Tests only.
	afterTake func()

	// writeMu serializes writes; written is the seq of the newest value already handed to the backend.
	writeMu sync.Mutex
	written uint64
}

type SaverOptions struct {
	Backend  Backend
	Key      string
	Debounce time.Duration
	Logger   *slog.Logger
}

func NewDebouncedSaver(opts SaverOptions) *DebouncedSaver {
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	d := &DebouncedSaver{
		backend:  opts.Backend,
		key:      opts.Key,
		debounce: debounce,
		log:      log,
	}
	d.idle = sync.NewCond(&d.mu)
	return d
}

// Notify records v as the latest value and (re)arms the timer. v must not be mutated afterwards.
func (d *DebouncedSaver) Notify(v any) {
	if d == nil {
		return
	}

	d.mu.Lock()
	d.pending = v
	d.dirty = true
	d.seq++
	if d.timer == nil {
		d.timer = time.AfterFunc(d.debounce, d.onTimer)
		d.mu.Unlock()
		return
	}
	d.timer.Reset(d.debounce)
	d.mu.Unlock()
}

func (d *DebouncedSaver) onTimer() {
	v, seq, ok := d.take()
	if !ok {
		return
	}
	defer d.done()
	if d.afterTake != nil {
		d.afterTake()
	}
	if err := d.write(context.Background(), v, seq); err != nil {
		d.log.Warn("persistence warning", "key", d.key, "err", err)
	}
}

func (d *DebouncedSaver) take() (any, uint64, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.dirty {
		return nil, 0, false
	}
	v, seq := d.pending, d.seq
	d.pending = nil
	d.dirty = false
	d.inflight++
	return v, seq, true
}

// done marks a taken value as written (or dropped).
func (d *DebouncedSaver) done() {
	d.mu.Lock()
	d.inflight--
	if d.inflight == 0 {
		d.idle.Broadcast()
	}
	d.mu.Unlock()
}

// write drops values older than one already written, so a slow timer write cannot
// overwrite a newer Flush.
func (d *DebouncedSaver) write(ctx context.Context, v any, seq uint64) error {
	d.writeMu.Lock()
	defer d.writeMu.Unlock()
	if seq <= d.written {
		return nil
	}
	d.written = seq

	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", d.key, err)
	}
	if err := d.backend.Put(ctx, d.key, b); err != nil {
		return fmt.Errorf("save %s: %w", d.key, err)
	}
	return nil
}

// Flush writes the pending value now and waits for any in-flight timer write.
func (d *DebouncedSaver) Flush(ctx context.Context) error {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()

	var err error
	if v, seq, ok := d.take(); ok {
		err = d.write(ctx, v, seq)
		d.done()
		if err != nil {
			d.log.Warn("persistence warning", "key", d.key, "err", err)
		}
	}

	d.mu.Lock()
	for d.inflight > 0 {
		d.idle.Wait()
	}
	d.mu.Unlock()
	return err
}
