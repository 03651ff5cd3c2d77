package dispatch

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bastiangx/wordcheck/pkg/check"
)

// ErrAllocationFailure is returned when the slot table cannot grow any further.
var ErrAllocationFailure = errors.New("allocation failure")

type slot struct {
	task *check.Task
}

func (s slot) active() bool {
	return s.task != nil
}

// SlotTable is an arena of task records addressed by their index.
// Handles stay valid across growth; the table only ever gets larger.
// One lock covers acquisition, release and growth.
type SlotTable struct {
	mu     sync.Mutex
	slots  []slot
	active int
	max    int
}

// NewSlotTable returns a table with initial free slots that may double up to
// max slots. A max of 0 means no bound.
func NewSlotTable(initial, max int) *SlotTable {
	if initial < 1 {
		initial = 1
	}
	if max > 0 && max < initial {
		max = initial
	}
	return &SlotTable{slots: make([]slot, initial), max: max}
}

// Acquire binds a new task for req to the lowest free slot, doubling the
// table when every slot is active.
func (t *SlotTable) Acquire(req check.Request) (*check.Task, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	handle := t.lowestFree()
	if handle < 0 {
		if err := t.grow(); err != nil {
			return nil, err
		}
		handle = t.lowestFree()
	}

	task := check.NewTask(req, handle)
	t.slots[handle].task = task
	t.active++
	return task, nil
}

func (t *SlotTable) lowestFree() int {
	for i, s := range t.slots {
		if !s.active() {
			return i
		}
	}
	return -1
}

func (t *SlotTable) grow() error {
	size := len(t.slots) * 2
	if t.max > 0 && size > t.max {
		size = t.max
	}
	if size <= len(t.slots) {
		return fmt.Errorf("%w: slot table is at its limit of %d", ErrAllocationFailure, t.max)
	}
	grown := make([]slot, size)
	copy(grown, t.slots)
	t.slots = grown
	return nil
}

// Release frees the slot at handle. It reports false if the slot was not active.
func (t *SlotTable) Release(handle int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if handle < 0 || handle >= len(t.slots) || !t.slots[handle].active() {
		return false
	}
	t.slots[handle] = slot{}
	t.active--
	return true
}

// Task returns the task bound to handle, or nil for a free slot.
func (t *SlotTable) Task(handle int) *check.Task {
	t.mu.Lock()
	defer t.mu.Unlock()

	if handle < 0 || handle >= len(t.slots) {
		return nil
	}
	return t.slots[handle].task
}

// Active returns the number of active slots.
func (t *SlotTable) Active() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// Capacity returns the current number of slots.
func (t *SlotTable) Capacity() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.slots)
}
