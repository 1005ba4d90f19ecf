// Package httpclient builds the HTTP clients used to call the ecobee and weatherapi.com APIs. Requests are
// measured with Prometheus metrics and, optionally, paced by a rate limiter.
package httpclient

import (
	"net/http"
	"strconv"
	"time"

	"github.com/clambin/go-common/http/metrics"
	"github.com/clambin/go-common/http/roundtripper"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

// NewRequestMetrics returns request metrics labeled by method, path and status code. The query string is never
// part of the labels, as it can carry API keys.
func NewRequestMetrics(namespace, subsystem string, labels prometheus.Labels) metrics.RequestMetrics {
	return metrics.NewRequestMetrics(metrics.Options{
		Namespace:   namespace,
		Subsystem:   subsystem,
		ConstLabels: labels,
		LabelValues: func(request *http.Request, code int) (string, string, string) {
			path := request.URL.Path
			if path == "" {
				path = "/"
			}
			return request.Method, path, strconv.Itoa(code)
		},
	})
}

// NewLimiter returns a limiter that allows one request per interval. If interval is zero, NewLimiter returns nil.
func NewLimiter(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}

// New returns an HTTP client that records requestMetrics and waits for limiter before each request. Both are optional.
func New(requestMetrics metrics.RequestMetrics, limiter *rate.Limiter, timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: newRoundTripper(http.DefaultTransport, requestMetrics, limiter),
		Timeout:   timeout,
	}
}

func newRoundTripper(next http.RoundTripper, requestMetrics metrics.RequestMetrics, limiter *rate.Limiter) http.RoundTripper {
	if limiter != nil {
		next = limit(next, limiter)
	}
	if requestMetrics == nil {
		return next
	}
	return roundtripper.New(
		roundtripper.WithRequestMetrics(requestMetrics),
		roundtripper.WithRoundTripper(next),
	)
}

func limit(next http.RoundTripper, limiter *rate.Limiter) http.RoundTripper {
	return roundtripper.RoundTripperFunc(func(request *http.Request) (*http.Response, error) {
		if err := limiter.Wait(request.Context()); err != nil {
			return nil, err
		}
		return next.RoundTrip(request)
	})
}
