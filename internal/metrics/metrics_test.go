package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveAPICountsByOutcome(t *testing.T) {
	m := New()

	m.ObserveAPI("send_message", OutcomeOK, 10*time.Millisecond)
	m.ObserveAPI("send_message", OutcomeOK, 20*time.Millisecond)
	m.ObserveAPI("send_message", OutcomeTransport, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.APIRequestsTotal.WithLabelValues("send_message", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.APIRequestsTotal.WithLabelValues("send_message", OutcomeTransport)))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveAPI("health", OutcomeOK, time.Millisecond)
		m.ObservePage("pricing", "catalog")
	})
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New()
	m.ObservePage("payment_success", "success")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `coach_pages_served_total{page="payment_success",view="success"} 1`))
}
