// Package cli runs the interactive menu that starts checking tasks and hands
// the console to them when they finish.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/wordcheck/internal/utils"
	"github.com/bastiangx/wordcheck/pkg/check"
	"github.com/bastiangx/wordcheck/pkg/console"
	"github.com/bastiangx/wordcheck/pkg/dispatch"
)

var (
	// ErrInvalidMenuSelection is reported for anything but 1 or 2 at the menu.
	ErrInvalidMenuSelection = errors.New("invalid selection, please enter 1 or 2")
	// ErrInvalidConfirmation is reported for anything but y or n at a confirmation.
	ErrInvalidConfirmation = errors.New("invalid answer, please enter y or n")
)

const (
	menuText = "1. Start a new spellchecking task\n2. Exit\n"
	farewell = "Have a good day!"

	msgInputClosed = "Input closed, waiting for active tasks to finish..."
	msgInterrupted = "Interrupted, cancelling active tasks..."
	msgExiting     = "Cancelling active tasks and exiting..."
)

// Dispatcher is what the menu needs from the task dispatcher.
type Dispatcher interface {
	Submit(req check.Request) (*check.Task, error)
	Active() int
	Cancel()
	Wait() error
}

// outcome says how a wait for operator input ended.
type outcome int

const (
	gotLine outcome = iota
	gotEOF
	gotInterrupt
)

// Menu is the control loop. It owns the console except while it waits for
// operator input or for tasks to drain.
type Menu struct {
	in         io.Reader
	console    *console.Console
	dispatcher Dispatcher
	lines      <-chan string
}

// NewMenu creates a menu reading operator lines from in.
func NewMenu(in io.Reader, c *console.Console, d Dispatcher) *Menu {
	return &Menu{in: in, console: c, dispatcher: d}
}

// Run drives the menu until the operator exits, input ends or ctx is done.
// Every path waits for all started tasks before returning. A non-nil error
// means the process should exit with failure.
func (m *Menu) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	m.lines = readLines(m.in, done)

	m.console.Reclaim()
	defer m.console.Release()

	for {
		m.console.Printf("%sActive tasks: %d\n", menuText, m.dispatcher.Active())
		line, got := m.ask(ctx, "> ")
		if got != gotLine {
			return m.stop(got)
		}

		switch utils.FirstNonSpace(line) {
		case 0:
			continue
		case '1':
			if got, err := m.startTask(ctx); got != gotLine || err != nil {
				if err != nil {
					return err
				}
				return m.stop(got)
			}
		case '2':
			yes, got := m.confirm(ctx, "Are you sure you want to exit? (y/n): ")
			if got != gotLine {
				return m.stop(got)
			}
			if yes {
				return m.drain(true, msgExiting)
			}
			m.console.Println("Returning to menu.")
		default:
			m.console.Println("Error:", ErrInvalidMenuSelection)
		}
	}
}

// startTask collects a task from the operator and submits it on confirmation.
func (m *Menu) startTask(ctx context.Context) (outcome, error) {
	document, got := m.askPath(ctx, "Enter the document path: ")
	if got != gotLine {
		return got, nil
	}
	reference, got := m.askPath(ctx, "Enter the reference list path: ")
	if got != gotLine {
		return got, nil
	}
	yes, got := m.confirm(ctx, fmt.Sprintf("Check %s against %s? (y/n): ", document, reference))
	if got != gotLine {
		return got, nil
	}
	if !yes {
		m.console.Println("Task discarded. Returning to menu.")
		return gotLine, nil
	}

	task, err := m.dispatcher.Submit(check.Request{Document: document, Reference: reference})
	switch {
	case errors.Is(err, dispatch.ErrAllocationFailure):
		m.console.Println("Error:", err)
		if derr := m.drain(true, msgExiting); derr != nil {
			log.Debugf("Drain after allocation failure: %v", derr)
		}
		return gotLine, err
	case err != nil:
		m.console.Println("Error:", err)
		return gotLine, nil
	}
	log.Debugf("Submitted task %s in slot %d", task.ID, task.Slot)
	m.console.Printf("Task started in slot %d.\n", task.Slot)
	return gotLine, nil
}

// ask writes prompt, gives up the console and waits for a line. The prompt
// is drawn again whenever a task used the console in between.
func (m *Menu) ask(ctx context.Context, prompt string) (string, outcome) {
	for {
		m.console.Printf("%s", prompt)
		m.console.Release()

		select {
		case line, ok := <-m.lines:
			m.console.Reclaim()
			if !ok {
				m.console.Println()
				return "", gotEOF
			}
			return line, gotLine
		case <-m.console.Handoffs():
			m.console.Reclaim()
		case <-ctx.Done():
			m.console.Reclaim()
			m.console.Println()
			return "", gotInterrupt
		}
	}
}

// askPath asks until the answer is not blank.
func (m *Menu) askPath(ctx context.Context, prompt string) (string, outcome) {
	for {
		line, got := m.ask(ctx, prompt)
		if got != gotLine {
			return "", got
		}
		if path := strings.TrimSpace(line); path != "" {
			return path, gotLine
		}
	}
}

// confirm asks a yes/no question until it gets y or n in either case.
func (m *Menu) confirm(ctx context.Context, prompt string) (bool, outcome) {
	for {
		line, got := m.ask(ctx, prompt)
		if got != gotLine {
			return false, got
		}
		switch unicode.ToLower(utils.FirstNonSpace(line)) {
		case 'y':
			return true, gotLine
		case 'n':
			return false, gotLine
		}
		m.console.Println("Error:", ErrInvalidConfirmation)
	}
}

// stop ends the loop for closed input or an interrupt.
func (m *Menu) stop(got outcome) error {
	if got == gotInterrupt {
		return m.drain(true, msgInterrupted)
	}
	return m.drain(false, msgInputClosed)
}

// drain optionally raises cancellation, then waits with the console released
// so finishing tasks can still report.
func (m *Menu) drain(cancel bool, msg string) error {
	if cancel {
		m.dispatcher.Cancel()
	}
	m.console.Println(msg)
	m.console.Release()

	if err := m.dispatcher.Wait(); err != nil {
		log.Debugf("Tasks finished with errors: %v", err)
	}

	m.console.Reclaim()
	m.console.Println(farewell)
	return nil
}
