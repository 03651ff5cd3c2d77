package server

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/bastiangx/wordcheck/internal/logger"
	"github.com/bastiangx/wordcheck/pkg/check"
	"github.com/bastiangx/wordcheck/pkg/console"
	"github.com/bastiangx/wordcheck/pkg/dispatch"
)

// ErrMissingField is reported for requests without a document or reference.
var ErrMissingField = errors.New("request needs both a document (d) and a reference list (r)")

// Dispatcher is what the server needs from the task dispatcher.
type Dispatcher interface {
	Submit(req check.Request) (*check.Task, error)
	Cancel()
	Wait() error
}

// Server decodes requests from in and writes responses to the console.
// It is also the check.Reporter of the dispatcher it drives.
type Server struct {
	in      io.Reader
	console *console.Console
	log     *log.Logger
}

// NewServer creates a batch server. Pass it as the reporter when building
// the dispatcher, then call Serve with that dispatcher.
func NewServer(in io.Reader, c *console.Console) *Server {
	return &Server{in: in, console: c, log: logger.New("server")}
}

type decoded struct {
	req CheckRequest
	err error
}

// Serve dispatches requests until in is exhausted or ctx is done, then waits
// for every task. Returns an error for a corrupt request stream or when the
// slot table cannot grow.
func (s *Server) Serve(ctx context.Context, d Dispatcher) error {
	s.log.Debug("Starting Server.")
	if err := s.send(CheckResponse{Status: StatusReady}); err != nil {
		return err
	}

	done := make(chan struct{})
	defer close(done)
	requests := s.decode(done)

	var serveErr error
loop:
	for {
		select {
		case msg, ok := <-requests:
			if !ok {
				break loop
			}
			if msg.err != nil {
				s.log.Errorf("Decoding request: %v", msg.err)
				serveErr = fmt.Errorf("decode request: %w", msg.err)
				break loop
			}
			if err := s.submit(d, msg.req); err != nil {
				d.Cancel()
				serveErr = err
				break loop
			}
		case <-ctx.Done():
			s.log.Debug("Interrupted, cancelling tasks")
			d.Cancel()
			break loop
		}
	}

	if err := d.Wait(); err != nil {
		s.log.Debugf("Tasks finished with errors: %v", err)
	}
	return serveErr
}

// submit starts one task. Only an allocation failure is returned; other
// problems are answered to the client.
func (s *Server) submit(d Dispatcher, req CheckRequest) error {
	if req.Document == "" || req.Reference == "" {
		return s.sendError(req, ErrMissingField)
	}

	task, err := d.Submit(check.Request{ID: req.ID, Document: req.Document, Reference: req.Reference})
	if err != nil {
		if serr := s.sendError(req, err); serr != nil {
			s.log.Errorf("Writing response: %v", serr)
		}
		if errors.Is(err, dispatch.ErrAllocationFailure) {
			return err
		}
		return nil
	}
	s.log.Debugf("Request %s -> task in slot %d", task.ID, task.Slot)
	return nil
}

func (s *Server) decode(done <-chan struct{}) <-chan decoded {
	out := make(chan decoded)
	go func() {
		defer close(out)
		dec := msgpack.NewDecoder(s.in)
		for {
			var req CheckRequest
			err := dec.Decode(&req)
			if errors.Is(err, io.EOF) {
				return
			}
			select {
			case out <- decoded{req: req, err: err}:
			case <-done:
				return
			}
			if err != nil {
				return
			}
		}
	}()
	return out
}

// Report writes the response for a finished task.
func (s *Server) Report(task *check.Task) error {
	entries := task.Mismatches.Entries()
	mismatches := make([]Mismatch, len(entries))
	for i, e := range entries {
		mismatches[i] = Mismatch{Word: e.Term, Correction: e.Correction, Frequency: e.Frequency}
	}
	return s.send(CheckResponse{
		ID:         task.ID,
		Document:   task.Document,
		Reference:  task.Reference,
		Mismatches: mismatches,
		Total:      task.TotalMismatches,
		Status:     StatusDone,
	})
}

// Fail writes the error response for a task that could not finish.
func (s *Server) Fail(task *check.Task, err error) error {
	return s.sendError(CheckRequest{ID: task.ID, Document: task.Document, Reference: task.Reference}, err)
}

func (s *Server) sendError(req CheckRequest, err error) error {
	return s.send(CheckResponse{
		ID:        req.ID,
		Document:  req.Document,
		Reference: req.Reference,
		Error:     err.Error(),
		Status:    StatusError,
	})
}

// send marshals the frame first so it reaches the console in one write.
func (s *Server) send(resp CheckResponse) error {
	data, err := msgpack.Marshal(resp)
	if err != nil {
		return fmt.Errorf("marshal response: %w", err)
	}
	return s.console.Borrow(func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}
