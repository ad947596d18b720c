package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	analysesStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "resume_analyses_started_total",
		Help: "Total resume analyses started.",
	})
	analysesCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "resume_analyses_completed_total",
		Help: "Total resume analyses completed.",
	})
	analysesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "resume_analyses_failed_total",
		Help: "Total resume analyses failed.",
	})
	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resume_analysis_cache_lookups_total",
		Help: "Analysis cache lookups by outcome.",
	}, []string{"outcome"})
	analysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "resume_analysis_duration_seconds",
		Help:    "Wall time of a full resume analysis, excluding the UX delay.",
		Buckets: prometheus.DefBuckets,
	})
)

// IncAnalysisStarted increments the started counter.
func IncAnalysisStarted() { analysesStarted.Inc() }

// IncAnalysisCompleted increments the completed counter.
func IncAnalysisCompleted() { analysesCompleted.Inc() }

// IncAnalysisFailed increments the failed counter.
func IncAnalysisFailed() { analysesFailed.Inc() }

// IncCacheLookup records a cache lookup outcome ("hit" or "miss").
func IncCacheLookup(outcome string) { cacheLookups.WithLabelValues(outcome).Inc() }

// ObserveAnalysisDuration records an analysis duration in seconds.
func ObserveAnalysisDuration(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	analysisDuration.Observe(seconds)
}

// Handler exposes the Prometheus metrics endpoint.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
