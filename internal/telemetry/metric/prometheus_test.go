package metric

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
)

func TestRegistry_Samples(t *testing.T) {
	r := NewRegistry()

	ops := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "operations_total",
		Help:      "test",
	}, []string{"kind", "op"})
	keys := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "shadow_keys",
		Help:      "test",
	})
	latency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "op_seconds",
		Help:      "test",
	})
	other := prometheus.NewGauge(prometheus.GaugeOpts{Name: "unrelated", Help: "test"})
	r.Registerer().MustRegister(ops, keys, latency, other)

	ops.WithLabelValues("localStorage", "setItem").Add(2)
	ops.WithLabelValues("cookieStorage", "getItem").Inc()
	keys.Set(3)
	latency.Observe(0.5)
	other.Set(1)

	got, err := r.Samples(Namespace + "_")
	if err != nil {
		t.Fatalf("Samples() error = %v", err)
	}

	want := []Sample{
		{Name: "proxystore_op_seconds_count", Value: 1},
		{Name: "proxystore_op_seconds_sum", Value: 0.5},
		{Name: "proxystore_operations_total", Labels: "kind=cookieStorage,op=getItem", Value: 1},
		{Name: "proxystore_operations_total", Labels: "kind=localStorage,op=setItem", Value: 2},
		{Name: "proxystore_shadow_keys", Value: 3},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Samples() mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_RuntimeCollectors(t *testing.T) {
	r := NewRegistry(WithRuntimeCollectors())

	got, err := r.Samples("go_goroutines")
	if err != nil {
		t.Fatalf("Samples() error = %v", err)
	}
	if len(got) != 1 || got[0].Value < 1 {
		t.Fatalf("go_goroutines = %+v, want one sample >= 1", got)
	}
}

func TestRegistry_Handler(t *testing.T) {
	r := NewRegistry()
	g := prometheus.NewGauge(prometheus.GaugeOpts{Namespace: Namespace, Name: "up", Help: "test"})
	r.Registerer().MustRegister(g)
	g.Set(1)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "proxystore_up 1") {
		t.Fatalf("body missing proxystore_up:\n%s", body)
	}
}
