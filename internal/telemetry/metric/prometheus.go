package metric

import (
	"net/http"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
)

// Namespace prefixes every proxystore metric name.
const Namespace = "proxystore"

// Registry holds all application metrics.
type Registry struct {
	registry *prometheus.Registry
}

// Option configures a Registry.
type Option func(*Registry)

// WithRuntimeCollectors registers the Go runtime and process collectors.
func WithRuntimeCollectors() Option {
	return func(r *Registry) {
		r.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
}

// NewRegistry creates a new metrics registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Registerer returns the registerer handed to storage components.
func (r *Registry) Registerer() prometheus.Registerer {
	return r.registry
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Sample is one flattened metric value.
type Sample struct {
	Name   string  `json:"name" yaml:"name"`
	Labels string  `json:"labels,omitempty" yaml:"labels,omitempty"`
	Value  float64 `json:"value" yaml:"value"`
}

// Samples gathers the registry and returns every sample whose name starts
// with prefix, sorted by name and labels. Histograms and summaries are
// reported as their _sum and _count series.
func (r *Registry) Samples(prefix string) ([]Sample, error) {
	families, err := r.registry.Gather()
	if err != nil {
		return nil, err
	}

	var out []Sample
	for _, mf := range families {
		name := mf.GetName()
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := formatLabels(m.GetLabel())
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				out = append(out, Sample{Name: name, Labels: labels, Value: m.GetCounter().GetValue()})
			case dto.MetricType_GAUGE:
				out = append(out, Sample{Name: name, Labels: labels, Value: m.GetGauge().GetValue()})
			case dto.MetricType_UNTYPED:
				out = append(out, Sample{Name: name, Labels: labels, Value: m.GetUntyped().GetValue()})
			case dto.MetricType_HISTOGRAM:
				h := m.GetHistogram()
				out = append(out,
					Sample{Name: name + "_sum", Labels: labels, Value: h.GetSampleSum()},
					Sample{Name: name + "_count", Labels: labels, Value: float64(h.GetSampleCount())},
				)
			case dto.MetricType_SUMMARY:
				s := m.GetSummary()
				out = append(out,
					Sample{Name: name + "_sum", Labels: labels, Value: s.GetSampleSum()},
					Sample{Name: name + "_count", Labels: labels, Value: float64(s.GetSampleCount())},
				)
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Labels < out[j].Labels
	})
	return out, nil
}

func formatLabels(pairs []*dto.LabelPair) string {
	if len(pairs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, p.GetName()+"="+p.GetValue())
	}
	return strings.Join(parts, ",")
}
