package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.ObserveRequest("POST", "/api/v1/link", "204", 20*time.Millisecond)
	m.ObserveRequest("POST", "/api/v1/link", "204", 10*time.Millisecond)
	m.RecordAuth("login", "failure")
	m.RecordLink("link", "already_linked")
	m.SetDatabaseUp(true)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/link", "204")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuthAttempts.WithLabelValues("login", "failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LinkOperations.WithLabelValues("link", "already_linked")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DatabaseUp))

	m.SetDatabaseUp(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.DatabaseUp))
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.RecordAuth("register", "success")

	assert.Equal(t, 1.0, testutil.ToFloat64(a.AuthAttempts.WithLabelValues("register", "success")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.AuthAttempts.WithLabelValues("register", "success")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.RecordLink("unlink", "success")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `plantkeeper_link_operations_total{operation="unlink",outcome="success"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
