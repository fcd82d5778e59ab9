// Package metrics provides centralized Prometheus metrics registry for the decision engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "matchedge"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	EvaluationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "evaluations_total",
		Help:      "Total number of evaluations by outcome",
	}, []string{"outcome"})
	TagsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tags_total",
		Help:      "Total number of model tags assigned",
	}, []string{"tag"})
	RejectionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stake_rejections_total",
		Help:      "Total number of zero-stake outcomes by reason",
	}, []string{"reason"})
	BreakoutsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "breakouts_total",
		Help:      "Total number of effective-rank overrides applied",
	})
	ProfileReloadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profile_reloads_total",
		Help:      "Total number of profile reload attempts by result",
	}, []string{"result"})
	BatchDocumentsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "batch_documents_total",
		Help:      "Total number of batch documents processed by result",
	}, []string{"result"})
)

// Gauge metrics
var (
	ProfileInfo = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "profile_info",
		Help:      "Currently active profile (value is always 1)",
	}, []string{"name", "version"})
	MemoHitRatio = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "memo_hit_ratio",
		Help:      "Evaluation memo hit ratio",
	})
)

// Histogram metrics
var (
	EvaluationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "evaluation_duration_seconds",
		Help:      "Duration of a single evaluation in seconds",
		Buckets:   []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.05},
	})
	StakeUnits = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "stake_units",
		Help:      "Distribution of non-zero stake recommendations in units",
		Buckets:   []float64{0.5, 0.75, 1, 1.5, 2, 2.5, 3},
	})
	ConfidenceScore = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "confidence_score",
		Help:      "Confidence of evaluated probabilities",
		Buckets:   []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
	})
	BatchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "batch_duration_seconds",
		Help:      "Duration of batch runs in seconds",
		Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(EvaluationsTotal)
		registry.MustRegister(TagsTotal)
		registry.MustRegister(RejectionsTotal)
		registry.MustRegister(BreakoutsTotal)
		registry.MustRegister(ProfileReloadsTotal)
		registry.MustRegister(BatchDocumentsTotal)

		// Register gauge metrics
		registry.MustRegister(ProfileInfo)
		registry.MustRegister(MemoHitRatio)

		// Register histogram metrics
		registry.MustRegister(EvaluationDuration)
		registry.MustRegister(StakeUnits)
		registry.MustRegister(ConfidenceScore)
		registry.MustRegister(BatchDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return InitRegistry()
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordEvaluation records a completed evaluation.
func RecordEvaluation(outcome string, durationSeconds, confidence float64) {
	EvaluationsTotal.WithLabelValues(outcome).Inc()
	EvaluationDuration.Observe(durationSeconds)
	ConfidenceScore.Observe(confidence)
}

// RecordEvaluationError records an evaluation that returned an error.
func RecordEvaluationError(kind string) {
	EvaluationsTotal.WithLabelValues(kind).Inc()
}

// RecordTags records the tags assigned to an evaluation.
func RecordTags(tags []string) {
	for _, tag := range tags {
		TagsTotal.WithLabelValues(tag).Inc()
	}
}

// RecordStake records a non-zero stake.
func RecordStake(units float64) {
	StakeUnits.Observe(units)
}

// RecordRejection records a zero-stake outcome.
func RecordRejection(reason string) {
	RejectionsTotal.WithLabelValues(reason).Inc()
}

// RecordBreakout records an effective-rank override.
func RecordBreakout() {
	BreakoutsTotal.Inc()
}

// RecordProfileReload records a profile reload attempt.
func RecordProfileReload(result string) {
	ProfileReloadsTotal.WithLabelValues(result).Inc()
}

// SetActiveProfile marks a profile as active, clearing the previous one.
func SetActiveProfile(name, version string) {
	ProfileInfo.Reset()
	ProfileInfo.WithLabelValues(name, version).Set(1)
}

// UpdateMemoHitRatio updates the memo hit ratio gauge.
func UpdateMemoHitRatio(ratio float64) {
	MemoHitRatio.Set(ratio)
}

// RecordBatchDocument records one processed batch document.
func RecordBatchDocument(result string) {
	BatchDocumentsTotal.WithLabelValues(result).Inc()
}

// RecordBatchDuration records the duration of a batch run.
func RecordBatchDuration(durationSeconds float64) {
	BatchDuration.Observe(durationSeconds)
}
