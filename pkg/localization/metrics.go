package localization

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dmitrymomot/storefront/pkg/preference"
)

// Fallback reasons reported by Metrics.
const (
	ReasonUnknownCandidate   = "unknown_candidate"
	ReasonLookupError        = "lookup_error"
	ReasonNoDefault          = "no_default"
	ReasonEmptyCatalog       = "empty_catalog"
	ReasonUnverifiedFallback = "unverified_fallback"
)

// Metrics counts resolution outcomes. A nil *Metrics records nothing.
type Metrics struct {
	resolutions     *prometheus.CounterVec
	fallbacks       *prometheus.CounterVec
	persistFailures *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		resolutions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "localization",
			Name:      "resolutions_total",
			Help:      "Resolved locales and currencies by winning source.",
		}, []string{"kind", "source"}),
		fallbacks: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "localization",
			Name:      "fallbacks_total",
			Help:      "Resolution steps that fell through, by reason.",
		}, []string{"kind", "reason"}),
		persistFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "localization",
			Name:      "persist_failures_total",
			Help:      "Failed writes of resolved preferences.",
		}, []string{"kind", "target"}),
	}
}

func (m *Metrics) resolved(kind preference.Kind, source preference.Source) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(string(kind), source.String()).Inc()
}

func (m *Metrics) fellBack(kind preference.Kind, reason string) {
	if m == nil {
		return
	}
	m.fallbacks.WithLabelValues(string(kind), reason).Inc()
}

func (m *Metrics) persistFailed(kind preference.Kind, target string) {
	if m == nil {
		return
	}
	m.persistFailures.WithLabelValues(string(kind), target).Inc()
}
