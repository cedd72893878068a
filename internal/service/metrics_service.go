package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/medtrain/progress-tracker-api/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation for the tracker.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	rowsNormalized  prometheus.Counter
	rowsDiscarded   prometheus.Counter
	notifications   *prometheus.CounterVec
	dispatchSeconds *prometheus.HistogramVec
}

// NewMetricsService registers the tracker's Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	rowsNormalized := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "roster_rows_normalized_total",
		Help: "Spreadsheet rows turned into roster records",
	})

	rowsDiscarded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "roster_rows_discarded_total",
		Help: "Spreadsheet rows dropped for missing both name and email",
	})

	notifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_total",
		Help: "Per-recipient notification sends by channel and outcome",
	}, []string{"channel", "outcome"})

	dispatchSeconds := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "notification_dispatch_duration_seconds",
		Help:    "Wall time of whole dispatch calls",
		Buckets: prometheus.DefBuckets,
	}, []string{"channel"})

	registry.MustRegister(requestDuration, requestTotal, rowsNormalized, rowsDiscarded, notifications, dispatchSeconds)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		rowsNormalized:  rowsNormalized,
		rowsDiscarded:   rowsDiscarded,
		notifications:   notifications,
		dispatchSeconds: dispatchSeconds,
	}
}

// Handler serves the Prometheus exposition endpoint.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}

// ObserveHTTPRequest records one request observation.
func (s *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labels := []string{method, path, strconv.Itoa(status)}
	s.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	s.requestTotal.WithLabelValues(labels...).Inc()
}

// ObserveIngest records the outcome of one workbook upload.
func (s *MetricsService) ObserveIngest(normalized, discarded int) {
	s.rowsNormalized.Add(float64(normalized))
	s.rowsDiscarded.Add(float64(discarded))
}

// ObserveSend records a settled per-recipient send.
func (s *MetricsService) ObserveSend(channel models.Channel, sent bool) {
	outcome := "sent"
	if !sent {
		outcome = "failed"
	}
	s.notifications.WithLabelValues(string(channel), outcome).Inc()
}

// ObserveDispatch records the wall time of a whole dispatch call.
func (s *MetricsService) ObserveDispatch(channel models.Channel, duration time.Duration) {
	s.dispatchSeconds.WithLabelValues(string(channel)).Observe(duration.Seconds())
}
