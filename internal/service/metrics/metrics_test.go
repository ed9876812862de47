package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.ObserveResponse("quick_response", false, 2*time.Millisecond)
	m.ObserveResponse("quick_response", true, time.Millisecond)
	m.UpstreamFailure("completion")
	m.LearningWrite(nil)
	m.LearningWrite(errors.New("boom"))

	if got := testutil.ToFloat64(m.Responses.WithLabelValues("quick_response", "hit")); got != 1 {
		t.Errorf("cache hits = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.UpstreamFailures.WithLabelValues("completion")); got != 1 {
		t.Errorf("upstream failures = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.LearningWrites.WithLabelValues("error")); got != 1 {
		t.Errorf("learning errors = %v, want 1", got)
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	m.ObserveResponse("ai_response", false, time.Second)
	m.UpstreamFailure("store")
	m.LearningWrite(nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 404 {
		t.Errorf("nil handler status = %d, want 404", rec.Code)
	}
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveResponse("fallback_response", false, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `saori_responses_total{cache="miss",method="fallback_response"} 1`) {
		t.Errorf("metrics output missing counter:\n%s", body)
	}
}
