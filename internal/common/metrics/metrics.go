// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BridgeRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridge_requests_total",
			Help: "Total number of bridge requests by endpoint and status",
		},
		[]string{"endpoint", "status"},
	)

	VendorRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vendor_requests_total",
			Help: "Total number of DVI vendor API calls by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	VendorRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "vendor_request_duration_seconds",
			Help: "Duration of DVI vendor API calls in seconds",
		},
		[]string{"operation"},
	)

	ImageUploadFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "image_upload_failures_total",
			Help: "Total number of per-image upload/attach failures",
		},
	)
)
