// Package check runs one document against one reference list and keeps the
// most frequent mismatches it finds.
package check

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/bastiangx/wordcheck/pkg/dictionary"
	"github.com/bastiangx/wordcheck/pkg/rank"
)

var (
	// ErrDocumentUnavailable is returned when the document cannot be read.
	ErrDocumentUnavailable = fmt.Errorf("document %w", dictionary.ErrSourceUnavailable)
	// ErrCanceled is returned when a worker stops because cancellation was requested.
	ErrCanceled = errors.New("task canceled")
)

// State is the lifecycle position of a task.
type State int32

const (
	Pending State = iota
	Loading
	Scanning
	Reporting
	Done
	Aborted
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Loading:
		return "loading"
	case Scanning:
		return "scanning"
	case Reporting:
		return "reporting"
	case Done:
		return "done"
	case Aborted:
		return "aborted"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Terminal reports whether no further transitions can happen.
func (s State) Terminal() bool {
	return s == Done || s == Aborted
}

// Request names the inputs of one task.
type Request struct {
	ID        string
	Document  string
	Reference string
}

// Task is the descriptor a worker fills in. Apart from State, its fields are
// owned by the worker until it reaches a terminal state.
type Task struct {
	ID        string
	Document  string
	Reference string
	Slot      int

	Mismatches      rank.List
	TotalMismatches int
	Tokens          int

	state atomic.Int32
}

// NewTask creates a pending task bound to slot with an empty ranked list.
func NewTask(req Request, slot int) *Task {
	return &Task{
		ID:         req.ID,
		Document:   req.Document,
		Reference:  req.Reference,
		Slot:       slot,
		Mismatches: rank.NewList(),
	}
}

// State may be read from any goroutine.
func (t *Task) State() State {
	return State(t.state.Load())
}

func (t *Task) setState(s State) {
	t.state.Store(int32(s))
}
