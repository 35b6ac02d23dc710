package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// friendOperations counts friend request operations by operation and result
	friendOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "social_friend_operations_total",
		Help: "Friend request operations by operation and result",
	}, []string{"operation", "result"})

	// httpRequestDuration tracks request latency by route
	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "social_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~2s
	}, []string{"method", "route", "status"})

	// rateLimitRejections counts requests rejected by the API rate limiter
	rateLimitRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "social_rate_limit_rejections_total",
		Help: "Requests rejected by the API rate limiter",
	}, []string{"scope"})
)

// Friend request operations.
const (
	OpSend   = "send"
	OpAccept = "accept"
	OpReject = "reject"
)

// RecordFriendOperation counts one friend operation. result is an outcome such as
// "created" or an error class such as "rate_limited".
func RecordFriendOperation(operation, result string) {
	friendOperations.WithLabelValues(operation, result).Inc()
}

func ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

func RecordRateLimitRejection(scope string) {
	rateLimitRejections.WithLabelValues(scope).Inc()
}
