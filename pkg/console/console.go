// Package console hands exclusive ownership of the shared output stream
// between the interactive control loop and background tasks.
//
// Ownership is a single token held in a one-slot channel. The control loop
// owns the console while it renders prompts and gives it up while it waits
// for the operator; a task that wants to print borrows the token, writes its
// whole message and returns it. Every borrow is followed by a handoff
// notification so the control loop knows its prompt was interrupted and can
// draw it again.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
)

// ErrNotOwner is returned by Write when nobody holds the console.
var ErrNotOwner = errors.New("console: write without ownership")

// Console is the shared output stream plus its ownership token.
type Console struct {
	out     io.Writer
	token   chan struct{}
	handoff chan struct{}
	held    atomic.Bool

	mu       sync.Mutex
	lineOpen bool
}

// New returns a console writing to out. The console starts unowned.
func New(out io.Writer) *Console {
	c := &Console{
		out:     out,
		token:   make(chan struct{}, 1),
		handoff: make(chan struct{}, 1),
	}
	c.token <- struct{}{}
	return c
}

// Acquire blocks until the caller owns the console.
func (c *Console) Acquire() {
	<-c.token
	c.held.Store(true)
}

// AcquireContext is Acquire that gives up when ctx is done.
func (c *Console) AcquireContext(ctx context.Context) error {
	select {
	case <-c.token:
		c.held.Store(true)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release returns ownership. Releasing an unowned console panics.
func (c *Console) Release() {
	if !c.held.Swap(false) {
		panic("console: release of unowned console")
	}
	c.token <- struct{}{}
}

// Reclaim acquires the console for the control loop and drops handoff
// notifications for borrows that already finished, since whatever the loop
// draws next comes after them anyway.
func (c *Console) Reclaim() {
	c.Acquire()
	for {
		select {
		case <-c.handoff:
		default:
			return
		}
	}
}

// Borrow runs fn while owning the console, starting on a fresh line if the
// previous owner left a Printf prompt open. The handoff is signaled before the
// console is released so a waiting control loop reclaims it right after.
func (c *Console) Borrow(fn func(w io.Writer) error) error {
	c.Acquire()
	defer c.Release()

	c.mu.Lock()
	if c.lineOpen {
		_, _ = io.WriteString(c.out, "\n")
		c.lineOpen = false
	}
	c.mu.Unlock()

	err := fn(c)
	select {
	case c.handoff <- struct{}{}:
	default:
	}
	return err
}

// Handoffs delivers a value after one or more borrows completed.
func (c *Console) Handoffs() <-chan struct{} {
	return c.handoff
}

// Write sends p to the output stream. The caller must own the console.
func (c *Console) Write(p []byte) (int, error) {
	if !c.held.Load() {
		return 0, ErrNotOwner
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lineOpen = false
	return c.out.Write(p)
}

// Printf formats to the console, ignoring write errors like fmt.Printf.
// Output that does not end in a newline is treated as an open prompt.
func (c *Console) Printf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if _, err := io.WriteString(c, msg); err != nil {
		return
	}
	c.mu.Lock()
	c.lineOpen = msg != "" && msg[len(msg)-1] != '\n'
	c.mu.Unlock()
}

// Println writes args followed by a newline.
func (c *Console) Println(args ...any) {
	_, _ = fmt.Fprintln(c, args...)
}
