package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/strengthscope/backend/internal/domain/pairing"
)

// Metrics records assessment activity. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	attemptsStarted   *prometheus.CounterVec
	responsesRecorded *prometheus.CounterVec
	resultsScored     *prometheus.CounterVec
	pairSlotFailures  prometheus.Counter
	pairSetSize       prometheus.Histogram
	persistErrors     *prometheus.CounterVec
}

// New registers the collectors with reg, or the default registerer when reg
// is nil. Registering twice with the same registry panics.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		attemptsStarted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "strengths",
			Subsystem: "assessment",
			Name:      "attempts_started_total",
			Help:      "Attempts started, including retakes.",
		}, []string{"scheme"}),
		responsesRecorded: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "strengths",
			Subsystem: "assessment",
			Name:      "responses_recorded_total",
			Help:      "Answers accepted into a response log.",
		}, []string{"scheme", "replaced"}),
		resultsScored: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "strengths",
			Subsystem: "assessment",
			Name:      "results_scored_total",
			Help:      "Completed attempts that produced a result.",
		}, []string{"scheme"}),
		pairSlotFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "strengths",
			Subsystem: "pairing",
			Name:      "slot_failures_total",
			Help:      "Pair slots abandoned after exhausting their draw budget, summed over kept pair sets.",
		}),
		pairSetSize: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "strengths",
			Subsystem: "pairing",
			Name:      "pair_set_size",
			Help:      "Number of pairs in each pair set handed to an attempt.",
			Buckets:   []float64{40, 45, 48, 49, 50},
		}),
		persistErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "strengths",
			Subsystem: "store",
			Name:      "persist_errors_total",
			Help:      "Background writes that failed.",
		}, []string{"operation"}),
	}
}

func (m *Metrics) AttemptStarted(scheme string) {
	if m == nil {
		return
	}
	m.attemptsStarted.WithLabelValues(scheme).Inc()
}

func (m *Metrics) ResponseRecorded(scheme string, replaced bool) {
	if m == nil {
		return
	}
	label := "false"
	if replaced {
		label = "true"
	}
	m.responsesRecorded.WithLabelValues(scheme, label).Inc()
}

func (m *Metrics) ResultScored(scheme string) {
	if m == nil {
		return
	}
	m.resultsScored.WithLabelValues(scheme).Inc()
}

// PairSetBuilt records the size and slot failures of a pair set.
func (m *Metrics) PairSetBuilt(set pairing.PairSet) {
	if m == nil {
		return
	}
	m.pairSetSize.Observe(float64(len(set.Pairs)))
	m.pairSlotFailures.Add(float64(len(set.Failures)))
}

func (m *Metrics) PersistError(operation string) {
	if m == nil {
		return
	}
	m.persistErrors.WithLabelValues(operation).Inc()
}
