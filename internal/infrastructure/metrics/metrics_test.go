package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.SessionsStarted.Inc()
	m.SessionsStarted.Inc()
	m.Deliveries.WithLabelValues("original").Inc()
	m.Deliveries.WithLabelValues("compressed").Inc()
	m.TranscodeFailures.Inc()

	if got := testutil.ToFloat64(m.SessionsStarted); got != 2 {
		t.Errorf("Expected sessions_started=2, got %v", got)
	}

	if got := testutil.ToFloat64(m.Deliveries.WithLabelValues("original")); got != 1 {
		t.Errorf("Expected original deliveries=1, got %v", got)
	}

	if got := testutil.ToFloat64(m.TranscodeFailures); got != 1 {
		t.Errorf("Expected transcode_failures=1, got %v", got)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	m.SessionsStarted.Inc()

	srv := httptest.NewServer(promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET metrics failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}
}
