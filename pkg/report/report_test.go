package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bastiangx/wordcheck/pkg/check"
	"github.com/bastiangx/wordcheck/pkg/console"
)

func sampleTask() *check.Task {
	task := check.NewTask(check.Request{ID: "x", Document: "doc.txt", Reference: "ref.txt"}, 0)
	task.Mismatches.Record("helo", "hello", 3)
	task.Mismatches.Record("wrld", "world", 1)
	task.TotalMismatches = 4
	return task
}

func TestPlainReport(t *testing.T) {
	var buf bytes.Buffer
	r := NewText(console.New(&buf), Options{Style: "unknown"})

	require.NoError(t, r.Report(sampleTask()))

	expected := "Task completed for document: doc.txt, reference list: ref.txt\n" +
		"Top 5 mismatches:\n" +
		"helo: hello, 3\n" +
		"wrld: world, 1\n" +
		"Total mismatches: 4\n"
	assert.Equal(t, expected, buf.String())
}

func TestEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	r := NewText(console.New(&buf), Options{})

	task := check.NewTask(check.Request{Document: "a", Reference: "b"}, 0)
	require.NoError(t, r.Report(task))

	assert.Contains(t, buf.String(), "No mismatches found.\n")
	assert.NotContains(t, buf.String(), "N/A")
}

func TestTableReport(t *testing.T) {
	var buf bytes.Buffer
	r := NewText(console.New(&buf), Options{Style: StyleTable})

	require.NoError(t, r.Report(sampleTask()))

	out := buf.String()
	assert.Contains(t, out, "Mismatch")
	assert.Contains(t, out, "helo")
	assert.Contains(t, out, "hello")
	assert.True(t, strings.HasSuffix(out, "Total mismatches: 4\n"))
}

func TestFailReport(t *testing.T) {
	var buf bytes.Buffer
	r := NewText(console.New(&buf), Options{})

	task := check.NewTask(check.Request{Document: "doc.txt"}, 0)
	require.NoError(t, r.Fail(task, errors.New("source unavailable: open ref.txt")))

	assert.Equal(t, "Error: source unavailable: open ref.txt\nTask for doc.txt terminated.\n", buf.String())
}

func TestReportSignalsHandoff(t *testing.T) {
	c := console.New(&bytes.Buffer{})
	r := NewText(c, Options{})
	require.NoError(t, r.Report(sampleTask()))

	select {
	case <-c.Handoffs():
	default:
		t.Fatal("report did not hand the console back")
	}
}
