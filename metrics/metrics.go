package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	Requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fcmrelay_requests_total",
		Help: "Total relay requests by route and outcome.",
	}, []string{"route", "outcome"})

	UpstreamDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fcmrelay_upstream_duration_seconds",
		Help:    "Latency of FCM send calls by response status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"status"})

	TokenDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fcmrelay_token_duration_seconds",
		Help:    "Latency of service-account token exchanges.",
		Buckets: prometheus.DefBuckets,
	}, []string{"result"})
)

// Register adds the collectors to the default registry. Call once from main.
func Register() {
	prometheus.MustRegister(Requests, UpstreamDuration, TokenDuration)
}

// ObserveRequest counts one finished relay request.
func ObserveRequest(route, outcome string) {
	Requests.WithLabelValues(route, outcome).Inc()
}

// ObserveUpstream records an FCM call; status 0 means no response arrived.
func ObserveUpstream(status int, d time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	UpstreamDuration.WithLabelValues(label).Observe(d.Seconds())
}

// ObserveToken records one token exchange.
func ObserveToken(result string, d time.Duration) {
	TokenDuration.WithLabelValues(result).Observe(d.Seconds())
}
