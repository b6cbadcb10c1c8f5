package rest

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notesvc_http_requests_total",
		Help: "HTTP requests processed, by method, route, and status code.",
	}, []string{"method", "path", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "notesvc_http_request_duration_seconds",
		Help:    "HTTP request latency, by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	otpIssuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notesvc_otp_issued_total",
		Help: "One-time passcodes issued and emailed.",
	})

	otpVerificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notesvc_otp_verifications_total",
		Help: "OTP verification attempts, by result.",
	}, []string{"result"})
)

// metricsMiddleware records a counter and latency observation per request,
// labeled with the matched route pattern rather than the raw URL so
// /api/notes/:id stays a single series.
func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		requestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		requestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
