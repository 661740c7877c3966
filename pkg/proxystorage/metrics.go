package proxystorage

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yndnr/proxystore/pkg/storage"
)

// Metrics records facade activity. A nil *Metrics records nothing.
type Metrics struct {
	ops        *prometheus.CounterVec
	errors     *prometheus.CounterVec
	fallbacks  *prometheus.CounterVec
	available  *prometheus.GaugeVec
	shadowKeys *prometheus.GaugeVec
}

// NewMetrics creates the facade metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "proxystore",
			Name:      "operations_total",
			Help:      "Facade operations by storage kind and operation",
		}, []string{"kind", "op"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "proxystore",
			Name:      "operation_errors_total",
			Help:      "Failed facade operations by storage kind, operation and error code",
		}, []string{"kind", "op", "code"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "proxystore",
			Name:      "fallbacks_total",
			Help:      "Requests for an unavailable storage kind by requested and resolved kind",
		}, []string{"requested", "resolved"}),
		available: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "proxystore",
			Name:      "mechanism_available",
			Help:      "1 when the storage mechanism passed the availability probe",
		}, []string{"kind"}),
		shadowKeys: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "proxystore",
			Name:      "shadow_keys",
			Help:      "Number of keys in the facade shadow copy",
		}, []string{"kind"}),
	}

	reg.MustRegister(m.ops, m.errors, m.fallbacks, m.available, m.shadowKeys)
	return m
}

func (m *Metrics) observe(kind storage.Kind, op Command, err error) {
	if m == nil {
		return
	}
	m.ops.WithLabelValues(string(kind), string(op)).Inc()
	if err != nil {
		code := storage.ErrorCode(err)
		if code == "" {
			code = "native"
		}
		m.errors.WithLabelValues(string(kind), string(op), code).Inc()
	}
}

func (m *Metrics) fallback(requested, resolved storage.Kind) {
	if m == nil {
		return
	}
	m.fallbacks.WithLabelValues(string(requested), string(resolved)).Inc()
}

func (m *Metrics) setAvailability(a storage.Availability) {
	if m == nil {
		return
	}
	for kind, ok := range a {
		v := 0.0
		if ok {
			v = 1
		}
		m.available.WithLabelValues(string(kind)).Set(v)
	}
}

func (m *Metrics) setShadowKeys(kind storage.Kind, n int) {
	if m == nil {
		return
	}
	m.shadowKeys.WithLabelValues(string(kind)).Set(float64(n))
}
