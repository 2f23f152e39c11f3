package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCheckoutCounters(t *testing.T) {
	m := New()
	m.ObserveCheckout(true, 2)
	m.ObserveCheckout(true, 0)
	m.ObserveCheckout(false, 5)

	if got := testutil.ToFloat64(m.checkouts.WithLabelValues("success")); got != 2 {
		t.Fatalf("success checkouts want 2 got %v", got)
	}
	if got := testutil.ToFloat64(m.checkouts.WithLabelValues("failure")); got != 1 {
		t.Fatalf("failed checkouts want 1 got %v", got)
	}
	if got := testutil.ToFloat64(m.checkoutRows); got != 2 {
		t.Fatalf("converted lines want 2 got %v", got)
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveHTTP("/", "GET", 200, time.Millisecond)
	m.ObserveLogin("web", true)
	m.ObserveCartAdd(false)
	m.ObserveTask("product:viewed", true)
	if m.Registry() != nil {
		t.Fatalf("nil metrics should have no registry")
	}
}

func TestHandlerExposesRegisteredSeries(t *testing.T) {
	m := New()
	m.ObserveHTTP("/detail/:id/", http.MethodGet, http.StatusOK, 20*time.Millisecond)
	m.ObserveLogin("web", false)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	for _, want := range []string{
		`campus_mall_http_requests_total{method="GET",route="/detail/:id/",status="200"} 1`,
		`campus_mall_login_attempts_total{result="failure",source="web"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("metrics output missing %q", want)
		}
	}
}
