package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ShareViews counts public room views recorded through the share surface.
	ShareViews = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dealdock_share_views_total",
			Help: "Total number of tracked deal room views",
		},
	)

	// AssetClicks counts asset opens recorded through the share surface.
	AssetClicks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dealdock_asset_clicks_total",
			Help: "Total number of tracked asset clicks",
		},
	)

	// Uploads counts direct uploads by result (ok|rejected|error).
	Uploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dealdock_uploads_total",
			Help: "Total number of direct file uploads",
		},
		[]string{"result"},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dealdock_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
