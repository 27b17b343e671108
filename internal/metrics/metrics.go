// Package metrics provides centralized Prometheus metrics registry for the quant engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "quant_engine"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	PredictionsGeneratedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "predictions_generated_total",
		Help:      "Total number of match predictions generated",
	})
	PredictionErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "prediction_errors_total",
		Help:      "Total number of fixtures that could not be priced",
	})
	ValueBetsDetectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "value_bets_detected_total",
		Help:      "Total number of value bets detected by selection",
	}, []string{"selection"})
	ArbitrageDetectedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "arbitrage_detected_total",
		Help:      "Total number of arbitrage opportunities detected",
	})
	ScanRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scan_runs_total",
		Help:      "Total number of batch runs by job and outcome",
	}, []string{"job", "outcome"})
)

// Gauge metrics
var (
	CacheHitRatio = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "cache_hit_ratio",
		Help:      "Hit ratio of the score matrix prediction cache",
	})
	CacheItems = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "cache_items",
		Help:      "Number of predictions held in the cache",
	})
)

// Histogram metrics
var (
	PredictionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "prediction_duration_seconds",
		Help:      "Duration of a single match prediction in seconds",
		Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
	})
	ValueEdgePercent = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "value_edge_percent",
		Help:      "Edge of detected value bets in percent",
		Buckets:   []float64{5, 7.5, 10, 15, 20, 30, 50, 100},
	})
	RunDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "run_duration_seconds",
		Help:      "Duration of batch runs in seconds",
		Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
	}, []string{"job"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(PredictionsGeneratedTotal)
		registry.MustRegister(PredictionErrorsTotal)
		registry.MustRegister(ValueBetsDetectedTotal)
		registry.MustRegister(ArbitrageDetectedTotal)
		registry.MustRegister(ScanRunsTotal)

		registry.MustRegister(CacheHitRatio)
		registry.MustRegister(CacheItems)

		registry.MustRegister(PredictionDuration)
		registry.MustRegister(ValueEdgePercent)
		registry.MustRegister(RunDuration)

		registry.MustRegister(APIRequestsTotal)
		registry.MustRegister(APIRequestDuration)
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

// RecordPrediction records a generated prediction and its duration.
func RecordPrediction(durationSeconds float64) {
	PredictionsGeneratedTotal.Inc()
	PredictionDuration.Observe(durationSeconds)
}

// RecordPredictionError records a fixture that failed to price.
func RecordPredictionError() {
	PredictionErrorsTotal.Inc()
}

// RecordValueBet records a detected value bet.
func RecordValueBet(selection string, edgePercent float64) {
	ValueBetsDetectedTotal.WithLabelValues(selection).Inc()
	ValueEdgePercent.Observe(edgePercent)
}

// RecordArbitrage records a detected arbitrage.
func RecordArbitrage() {
	ArbitrageDetectedTotal.Inc()
}

// RecordRun records the outcome of a batch job run.
func RecordRun(job string, success bool, durationSeconds float64) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	ScanRunsTotal.WithLabelValues(job, outcome).Inc()
	RunDuration.WithLabelValues(job).Observe(durationSeconds)
}

// UpdateCacheStats updates the cache gauges.
func UpdateCacheStats(hitRatio float64, items int) {
	CacheHitRatio.Set(hitRatio)
	CacheItems.Set(float64(items))
}
