package prometheus

import (
	"time"

	"crm-service/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Lead metrics
	LeadOperationsCounter prometheus.CounterVec

	// Interaction metrics
	InteractionOperationsCounter prometheus.CounterVec

	// Report metrics
	ReportRequestsCounter prometheus.CounterVec
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	// Use metric prefix from configuration
	prefix := config.Metrics.Prefix

	// HTTP request metrics
	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTP request duration
	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Database operation metrics
	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	// Lead metrics
	LeadOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_lead_operations_total",
			Help: "Total number of lead operations",
		},
		[]string{"operation"},
	)

	// Interaction metrics
	InteractionOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_interaction_operations_total",
			Help: "Total number of interaction operations",
		},
		[]string{"operation"},
	)

	// Report metrics
	ReportRequestsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_report_requests_total",
			Help: "Total number of report requests",
		},
		[]string{"report"},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordLeadOperation increments the counter for lead operations
func RecordLeadOperation(operation string) {
	LeadOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordInteractionOperation increments the counter for interaction operations
func RecordInteractionOperation(operation string) {
	InteractionOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordReportRequest increments the counter for report requests
func RecordReportRequest(report string) {
	ReportRequestsCounter.WithLabelValues(report).Inc()
}
