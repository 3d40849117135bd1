// Package observability exposes the service's Prometheus instruments.
package observability

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~20s
		},
		[]string{"method", "route", "status"},
	)

	storeOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "record_store_ops_total",
			Help: "Record store mutations by operation and outcome.",
		},
		[]string{"op", "outcome"},
	)

	recordsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "waste_records",
			Help: "Number of waste records currently held by the store.",
		},
	)

	redisOpDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_operation_duration_seconds",
			Help:    "Latency of session store Redis operations in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
		[]string{"op", "outcome"},
	)

	viewCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "view_cache_results_total",
			Help: "Derived-view cache lookups by outcome.",
		},
		[]string{"outcome"},
	)
)

var initOnce sync.Once

// Init registers the instruments with the given registerer. Metrics are
// functional but unexported until Init is called; calling twice is a no-op.
func Init(reg prometheus.Registerer) {
	if reg == nil {
		return
	}
	initOnce.Do(func() {
		reg.MustRegister(
			httpRequestsTotal,
			httpRequestDurationSeconds,
			storeOpsTotal,
			recordsGauge,
			redisOpDurationSeconds,
			viewCacheTotal,
		)
	})
}

func ObserveHTTP(method, route string, status int, durationSeconds float64) {
	st := strconv.Itoa(status)
	httpRequestsTotal.WithLabelValues(method, route, st).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route, st).Observe(durationSeconds)
}

func ObserveStoreOp(op string, err error) {
	storeOpsTotal.WithLabelValues(op, outcome(err)).Inc()
}

func SetRecordCount(n int) {
	recordsGauge.Set(float64(n))
}

func ObserveRedisOp(op string, err error, durationSeconds float64) {
	redisOpDurationSeconds.WithLabelValues(op, outcome(err)).Observe(durationSeconds)
}

func IncViewCacheHit()  { viewCacheTotal.WithLabelValues("hit").Inc() }
func IncViewCacheMiss() { viewCacheTotal.WithLabelValues("miss").Inc() }

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
