package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sandeepkv93/medtui/internal/model"
)

const (
	DefaultTickInterval = time.Minute
	DefaultBufferSize   = 16
)

// MedicationSource supplies the medication list for one evaluation pass.
// Implemented by the reconcile cache in production and by stubs in tests.
type MedicationSource interface {
	Medications(ctx context.Context) ([]model.Medication, error)
}

// DueAlert is an admitted dose occurrence, ready for the presentation layer.
type DueAlert struct {
	Medication model.Medication
	Occurrence model.Occurrence
	Message    string
}

type DriverConfig struct {
	Interval         time.Duration
	ToleranceMinutes int
	BufferSize       int
	Now              func() time.Time
}

// Driver runs the recurring evaluation loop: one immediate pass on Start,
// then one pass per tick. Evaluation is synchronous inside the loop
// goroutine, so at most one pass is ever in flight; a tick that becomes due
// while a pass is still running is dropped, not queued.
type Driver struct {
	source    MedicationSource
	dedup     *Deduplicator
	now       func() time.Time
	interval  time.Duration
	tolerance int

	out    chan DueAlert
	stopCh chan struct{}
	doneCh chan struct{}

	mu      sync.Mutex
	started bool
	stopped bool

	dropped    uint64
	skipped    uint64
	evalErrors uint64
}

func NewDriver(source MedicationSource, dedup *Deduplicator, cfg DriverConfig) *Driver {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultTickInterval
	}
	if cfg.ToleranceMinutes <= 0 {
		cfg.ToleranceMinutes = model.DefaultToleranceMinutes
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultBufferSize
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if dedup == nil {
		dedup = NewDeduplicator()
	}
	return &Driver{
		source:    source,
		dedup:     dedup,
		now:       cfg.Now,
		interval:  cfg.Interval,
		tolerance: cfg.ToleranceMinutes,
		out:       make(chan DueAlert, cfg.BufferSize),
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

func (d *Driver) C() <-chan DueAlert {
	return d.out
}

func (d *Driver) Deduplicator() *Deduplicator {
	return d.dedup
}

func (d *Driver) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started {
		return
	}
	d.started = true
	go d.loop()
}

// Stop is idempotent. It cancels the periodic ticks and waits for the loop
// to exit; an evaluation pass already in flight completes, but its alerts
// are discarded rather than emitted.
func (d *Driver) Stop() {
	d.mu.Lock()
	if !d.started || d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	close(d.stopCh)
	d.mu.Unlock()
	<-d.doneCh
}

// Dropped counts alerts discarded because the consumer lagged behind the
// out channel buffer.
func (d *Driver) Dropped() uint64 {
	return atomic.LoadUint64(&d.dropped)
}

// Skipped counts ticks dropped because the previous pass was still running.
func (d *Driver) Skipped() uint64 {
	return atomic.LoadUint64(&d.skipped)
}

// EvalErrors counts medications skipped for malformed schedules.
func (d *Driver) EvalErrors() uint64 {
	return atomic.LoadUint64(&d.evalErrors)
}

func (d *Driver) loop() {
	defer close(d.doneCh)
	defer close(d.out)

	d.evaluateOnce()

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			d.evaluateOnce()
			// A tick that fired while the pass ran is dropped, not queued.
			select {
			case <-ticker.C:
				atomic.AddUint64(&d.skipped, 1)
			default:
			}
		case <-d.stopCh:
			return
		}
	}
}

func (d *Driver) evaluateOnce() {
	now := d.now()
	d.dedup.PruneBefore(model.DateOf(now))

	ctx, cancel := context.WithTimeout(context.Background(), d.interval)
	defer cancel()

	meds, err := d.source.Medications(ctx)
	if err != nil {
		// The source already degrades to its local mirror on transport
		// failure; a hard error here means no usable state this tick.
		return
	}

	entries, errs := EvaluateDueSet(meds, now, d.tolerance)
	if len(errs) > 0 {
		atomic.AddUint64(&d.evalErrors, uint64(len(errs)))
	}

	for _, entry := range entries {
		select {
		case <-d.stopCh:
			// Stopped mid-pass: bail before admitting, so the occurrence
			// keeps its once-per-day slot for the next run.
			return
		default:
		}
		occ := entry.Occurrence(now)
		if !d.dedup.Admit(occ) {
			continue
		}
		alert := DueAlert{
			Medication: entry.Medication,
			Occurrence: occ,
			Message:    model.ReminderMessage(entry.Medication),
		}
		select {
		case d.out <- alert:
		default:
			atomic.AddUint64(&d.dropped, 1)
		}
	}
}
