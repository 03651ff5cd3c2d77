package check

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/bastiangx/wordcheck/internal/logger"
	"github.com/bastiangx/wordcheck/internal/utils"
	"github.com/bastiangx/wordcheck/pkg/dictionary"
)

// Reporter writes the outcome of a task. Both methods are expected to take
// exclusive ownership of the output for the duration of the call.
type Reporter interface {
	Report(task *Task) error
	Fail(task *Task, err error) error
}

// Canceler is polled at every token and reference line.
type Canceler interface {
	Canceled() bool
}

// Options tunes a worker.
type Options struct {
	// StrictOrder rejects unsorted reference lists.
	StrictOrder bool
	// Memoize caches the nearest reference entry per distinct mismatch.
	Memoize bool
}

// Worker drives a single task from loading to its report.
type Worker struct {
	task     *Task
	opts     Options
	cancel   Canceler
	reporter Reporter
	log      *log.Logger
	memo     *patricia.Trie
}

// NewWorker prepares a worker. Nothing runs until Run is called.
func NewWorker(task *Task, opts Options, cancel Canceler, reporter Reporter) *Worker {
	w := &Worker{
		task:     task,
		opts:     opts,
		cancel:   cancel,
		reporter: reporter,
		log:      logger.New("check"),
	}
	if opts.Memoize {
		w.memo = patricia.NewTrie()
	}
	return w
}

// Run executes the task and returns its terminal error, if any.
// Failures other than cancellation are written through the reporter first;
// a canceled task prints nothing.
func (w *Worker) Run() error {
	err := w.check()
	if err != nil {
		w.transition(Aborted)
		if errors.Is(err, ErrCanceled) {
			return err
		}
		if ferr := w.reporter.Fail(w.task, err); ferr != nil {
			w.log.Errorf("Task %s: could not report failure: %v", w.task.ID, ferr)
		}
		return err
	}

	w.transition(Reporting)
	err = w.reporter.Report(w.task)
	if err != nil {
		w.log.Errorf("Task %s: could not write report: %v", w.task.ID, err)
	}
	w.transition(Done)
	return err
}

func (w *Worker) check() error {
	w.transition(Loading)
	ix, err := dictionary.Load(w.task.Reference, dictionary.LoadOptions{
		Strict:    w.opts.StrictOrder,
		Interrupt: w.cancel.Canceled,
	})
	if err != nil {
		if errors.Is(err, dictionary.ErrCanceled) {
			return ErrCanceled
		}
		return err
	}

	content, err := os.ReadFile(w.task.Document)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDocumentUnavailable, err)
	}
	if w.cancel.Canceled() {
		return ErrCanceled
	}

	w.transition(Scanning)
	return w.scan(ix, content)
}

func (w *Worker) scan(ix *dictionary.Index, content []byte) error {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 4096), len(content)+1)
	scanner.Split(utils.ScanTokens)

	for scanner.Scan() {
		if w.cancel.Canceled() {
			return ErrCanceled
		}
		w.task.Tokens++

		word := utils.LowerFirst(scanner.Text())
		if ix.Contains(word) {
			continue
		}

		entry, err := w.resolve(ix, word)
		if err != nil {
			return fmt.Errorf("could not find a correction for %q: %w", word, err)
		}
		w.task.TotalMismatches++
		freq := ix.Increment(entry)
		w.task.Mismatches.Record(word, ix.Entry(entry).Term, freq)
	}
	return scanner.Err()
}

// resolve returns the reference entry closest to word.
func (w *Worker) resolve(ix *dictionary.Index, word string) (int, error) {
	if w.memo != nil {
		if item := w.memo.Get(patricia.Prefix(word)); item != nil {
			return item.(int), nil
		}
	}
	entry, dist, err := ix.Nearest(word)
	if err != nil {
		return -1, err
	}
	if w.memo != nil {
		w.memo.Insert(patricia.Prefix(word), entry)
	}
	w.log.Debugf("Task %s: %q -> %q (distance %d)", w.task.ID, word, ix.Entry(entry).Term, dist)
	return entry, nil
}

func (w *Worker) transition(s State) {
	w.task.setState(s)
	w.log.Debugf("Task %s [slot %d] %s: document=%s reference=%s",
		w.task.ID, w.task.Slot, s, w.task.Document, w.task.Reference)
}
