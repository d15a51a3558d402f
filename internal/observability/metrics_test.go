package observability

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestMetricsExposition(t *testing.T) {
	m := newMetrics()
	m.ObserveAPI("GET", "/api/decks", "200", 20*time.Millisecond)
	m.ObserveAPI("POST", "/api/cards/:id/review", "500", time.Second)
	m.ObserveReview(4, "passed", 6)
	m.ObserveReview(1, "failed", 0)
	m.ObserveReview(5, "passed", 15)
	m.IncCreated("card")
	m.IncDeleted("card", 3)
	m.SSEClientConnected()

	var buf bytes.Buffer
	if err := m.WritePrometheus(&buf); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`repeat_api_requests_total{method="GET",route="/api/decks",status="200"} 1`,
		`repeat_api_requests_error_total 1`,
		`repeat_reviews_total{outcome="passed"} 2`,
		`repeat_reviews_total{outcome="failed"} 1`,
		`repeat_review_quality_total{quality="4"} 1`,
		`repeat_review_interval_days_bucket{outcome="passed",le="6"} 1`,
		`repeat_review_interval_days_bucket{outcome="passed",le="+Inf"} 2`,
		`repeat_review_interval_days_sum{outcome="passed"} 21`,
		`repeat_entities_deleted_total{kind="card"} 3`,
		`repeat_sse_clients 1`,
		`# TYPE repeat_review_interval_days histogram`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("exposition missing %q", want)
		}
	}
	if m.reviews.Value("passed") != 2 {
		t.Fatalf("passed = %v", m.reviews.Value("passed"))
	}
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/", "200", time.Millisecond)
	m.ObserveReview(3, "passed", 1)
	m.ApiInflightInc()
	m.ApiInflightDec()
	m.IncCreated("deck")
	m.SSEClientDisconnected()

	rec := httptest.NewRecorder()
	m.WriteHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestSeriesSorted(t *testing.T) {
	c := NewCounterVec("x_total", "x", []string{"k"})
	c.Inc("b")
	c.Inc("a")
	var buf bytes.Buffer
	_ = c.WritePrometheus(&buf)
	out := buf.String()
	if strings.Index(out, `k="a"`) > strings.Index(out, `k="b"`) {
		t.Fatalf("series not sorted:\n%s", out)
	}
}

func TestLabelHelpers(t *testing.T) {
	if got := labelString([]string{"a", "b"}, []string{"x\"y"}); got != `{a="x\"y",b="unknown"}` {
		t.Fatalf("labelString = %s", got)
	}
	if got := withLe("", "1"); got != `{le="1"}` {
		t.Fatalf("withLe empty = %s", got)
	}
	if !isServerErrorStatus("503") || isServerErrorStatus("404") {
		t.Fatal("isServerErrorStatus mismatch")
	}
}

func TestParseHeaders(t *testing.T) {
	h := ParseHeaders(" a=1 , bad, b = 2,c=")
	if len(h) != 2 || h["a"] != "1" || h["b"] != "2" {
		t.Fatalf("ParseHeaders = %v", h)
	}
	if ParseHeaders("") != nil {
		t.Fatal("empty headers should be nil")
	}
	if clampRatio(2) != 1 || clampRatio(-1) != 0 || clampRatio(0.25) != 0.25 {
		t.Fatal("clampRatio mismatch")
	}
}
