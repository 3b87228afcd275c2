package hinfo

import (
	"math"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	promInitialized                      uint32
	promHTTPServerReadBytes              *prometheus.CounterVec
	promHTTPServerWriteBytes             *prometheus.CounterVec
	promHTTPServerRequestsTotal          *prometheus.CounterVec
	promHTTPServerRequestDurationSeconds *prometheus.HistogramVec
)

func roundP(x float64, p int) float64 {
	k := math.Pow10(p)
	return math.Floor(x*k+0.5) / k
}

func PromInitialize(namespace string) {
	if !atomic.CompareAndSwapUint32(&promInitialized, 0, 1) {
		panic("prometheus already set")
	}

	histogramBuckets := prometheus.LinearBuckets(0.05, 0.05, 20)
	for i := range histogramBuckets {
		x := &histogramBuckets[i]
		*x = roundP(*x, 2)
	}
	histogramBuckets = append([]float64{.005, .01, .025}, append(histogramBuckets, []float64{2.5, 5, 10}...)...)

	promHTTPServerReadBytes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http_server",
		Name:      "read_bytes",
	}, []string{"name", "code", "path"})

	promHTTPServerWriteBytes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http_server",
		Name:      "write_bytes",
	}, []string{"name", "code", "path"})

	promHTTPServerRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http_server",
		Name:      "requests_total",
	}, []string{"name", "code", "path"})

	promHTTPServerRequestDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http_server",
		Name:      "request_duration_seconds",
		Buckets:   histogramBuckets,
	}, []string{"name", "code", "path"})
}

func PromReset() {
	promHTTPServerReadBytes.Reset()
	promHTTPServerWriteBytes.Reset()
	promHTTPServerRequestsTotal.Reset()
	promHTTPServerRequestDurationSeconds.Reset()
}
