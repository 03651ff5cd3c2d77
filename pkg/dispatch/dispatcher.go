// Package dispatch hands out worker slots, launches workers and waits for
// them to finish.
package dispatch

import (
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/bastiangx/wordcheck/internal/logger"
	"github.com/bastiangx/wordcheck/internal/metrics"
	"github.com/bastiangx/wordcheck/pkg/check"
)

// ErrClosed is returned by Submit once Wait has been called.
var ErrClosed = errors.New("dispatcher is draining")

// DefaultInitialSlots is the slot table size when none is configured.
const DefaultInitialSlots = 16

// Options configures a Dispatcher.
type Options struct {
	InitialSlots int
	// MaxSlots bounds slot table growth; 0 means unbounded.
	MaxSlots int
	Check    check.Options
}

// Dispatcher owns the slot table and the cancellation flag shared by every
// worker it launches.
type Dispatcher struct {
	opts     Options
	slots    *SlotTable
	flag     Flag
	reporter check.Reporter
	metrics  *metrics.Metrics
	log      *log.Logger

	mu     sync.Mutex
	closed bool
	group  errgroup.Group
}

// New creates a dispatcher. m may be nil.
func New(opts Options, reporter check.Reporter, m *metrics.Metrics) *Dispatcher {
	if opts.InitialSlots < 1 {
		opts.InitialSlots = DefaultInitialSlots
	}
	d := &Dispatcher{
		opts:     opts,
		slots:    NewSlotTable(opts.InitialSlots, opts.MaxSlots),
		reporter: reporter,
		metrics:  m,
		log:      logger.New("dispatch"),
	}
	m.Capacity(d.slots.Capacity())
	return d
}

// Submit allocates a slot for req and starts its worker. A request without
// an ID gets a random one.
func (d *Dispatcher) Submit(req check.Request) (*check.Task, error) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, ErrClosed
	}

	task, err := d.slots.Acquire(req)
	if err != nil {
		return nil, fmt.Errorf("submit %s: %w", req.Document, err)
	}
	d.metrics.Capacity(d.slots.Capacity())
	d.metrics.Started()
	d.log.Debugf("Task %s started in slot %d (%d active)", task.ID, task.Slot, d.slots.Active())

	worker := check.NewWorker(task, d.opts.Check, &d.flag, d.reporter)
	d.group.Go(func() error {
		var err error
		defer func() { d.finish(task, err) }()

		err = worker.Run()
		if errors.Is(err, check.ErrCanceled) {
			return nil
		}
		return err
	})
	return task, nil
}

// finish runs exactly once per worker, whatever its exit path.
func (d *Dispatcher) finish(task *check.Task, err error) {
	if !d.slots.Release(task.Slot) {
		d.log.Errorf("Task %s: slot %d was not active", task.ID, task.Slot)
	}

	outcome := metrics.OutcomeDone
	switch {
	case errors.Is(err, check.ErrCanceled):
		outcome = metrics.OutcomeAborted
	case err != nil:
		outcome = metrics.OutcomeFailed
	}
	d.metrics.Finished(outcome, task.Tokens, task.TotalMismatches)
	d.log.Debugf("Task %s finished (%s), slot %d free", task.ID, outcome, task.Slot)
}

// Active returns the number of running workers.
func (d *Dispatcher) Active() int {
	return d.slots.Active()
}

// Capacity returns the slot table size.
func (d *Dispatcher) Capacity() int {
	return d.slots.Capacity()
}

// Cancel asks every worker to stop at its next token or line.
func (d *Dispatcher) Cancel() {
	d.flag.Cancel()
}

// Canceled reports whether Cancel was called.
func (d *Dispatcher) Canceled() bool {
	return d.flag.Canceled()
}

// Wait stops accepting tasks and blocks until every worker has finished.
// It returns the first worker failure other than cancellation.
func (d *Dispatcher) Wait() error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	return d.group.Wait()
}
