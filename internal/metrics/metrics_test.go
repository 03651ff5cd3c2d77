package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskLifecycle(t *testing.T) {
	m := New()

	m.Started()
	m.Started()
	m.Finished(OutcomeDone, 10, 3)
	m.Capacity(32)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.TasksStarted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TasksFinished.WithLabelValues(OutcomeDone)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.TasksFinished.WithLabelValues(OutcomeFailed)))
	assert.Equal(t, 10.0, testutil.ToFloat64(m.TokensScanned))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.MismatchesTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ActiveWorkers))
	assert.Equal(t, 32.0, testutil.ToFloat64(m.SlotCapacity))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Started()
		m.Finished(OutcomeAborted, 1, 1)
		m.Capacity(4)
	})
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.Started()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "wordcheck_tasks_started_total 1"))
	assert.True(t, strings.Contains(body, "wordcheck_active_workers 1"))
}
