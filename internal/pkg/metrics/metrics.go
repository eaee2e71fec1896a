package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "chain_stats"

// Upstream labels.
const (
	UpstreamRPC   = "rpc"
	UpstreamPrice = "price"
)

var (
	// HTTPRequestsTotal counts served API requests by route template and status code.
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Number of HTTP requests served, by route and status code.",
	}, []string{"route", "status"})

	// UpstreamRequestDuration observes the latency of calls to RPC nodes and the price API.
	UpstreamRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Latency of upstream calls, by upstream, network and outcome.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"upstream", "network", "outcome"})

	// TokenProbeFailuresTotal counts tokens skipped because a contract read failed.
	TokenProbeFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_probe_failures_total",
		Help:      "Number of token probes that failed and were left out of balance results.",
	}, []string{"network"})

	registerOnce sync.Once
)

// MustRegisterMetrics registers all collectors with the default registry. Safe to call more than once.
func MustRegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(HTTPRequestsTotal, UpstreamRequestDuration, TokenProbeFailuresTotal)
	})
}

// ObserveUpstream records the duration of an upstream call started at start.
func ObserveUpstream(upstream, network string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	UpstreamRequestDuration.WithLabelValues(upstream, network, outcome).Observe(time.Since(start).Seconds())
}
