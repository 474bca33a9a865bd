package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RealtimeVehiclePositions = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "realtime_vehicle_positions_count_gtfs_rt",
		Help: "Number of markers produced from the GTFS-RT vehicle positions feed",
	}, []string{"gtfs_rt_url", "feed_id"})

	InvalidVehicleCoordinates = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "invalid_vehicle_coordinates",
		Help: "Number of feed vehicles dropped for missing IDs or out-of-range coordinates",
	}, []string{"feed_id"})

	VehicleCountAPI = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "vehicle_count_api",
		Help: "Number of vehicles in the vehicles-for-agency API response",
	}, []string{"agency_id", "feed_id"})

	VehicleCountMatch = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "vehicle_count_match",
		Help: "Whether the GTFS-RT marker count matches the vehicles-for-agency API count (1 = match, 0 = no match)",
	}, []string{"agency_id", "feed_id"})
)

var (
	CatalogRecords = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_records",
		Help: "Number of records (clusters plus singletons) in the latest catalog",
	})

	CatalogClusters = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_clusters",
		Help: "Number of aggregate cluster records in the latest catalog",
	})

	CatalogSingletons = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_singletons",
		Help: "Number of singleton records in the latest catalog",
	})

	CatalogMarkersClustered = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_markers_clustered",
		Help: "Total marker count across all records in the latest catalog",
	})

	CatalogMarkersSkipped = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_markers_skipped",
		Help: "Markers dropped from the latest clustering pass for non-finite coordinates",
	})

	CatalogBuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_build_duration_seconds",
		Help:    "Time spent on one clustering pass",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
	})
)

var (
	TapIntents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tap_intents_total",
		Help: "Tap routings by resulting intent kind",
	}, []string{"kind"})

	TapMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tap_misses_total",
		Help: "Taps referencing a record ID absent from the latest catalog",
	})
)

var (
	OutgoingLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "outgoing_request_latency_seconds",
		Help:    "Latency of outgoing HTTP requests to vehicle feeds and config endpoints",
		Buckets: prometheus.DefBuckets,
	}, []string{"url", "method", "status"})

	FeedStatus = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "feed_status",
		Help: "Status of a vehicle position feed (0 = last poll failed, 1 = last poll succeeded)",
	}, []string{"feed_id", "gtfs_rt_url"})
)
