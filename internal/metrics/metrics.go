package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of the API and the geocoding backfill.
type Metrics struct {
	HTTPRequests      *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec
	StoreQuerySeconds *prometheus.HistogramVec
	StoreErrors       *prometheus.CounterVec

	GeocodeProcessed      *prometheus.CounterVec
	GeocodeAPIErrors      prometheus.Counter
	GeocodeRequestSeconds *prometheus.HistogramVec
	ActiveWorkers         prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		HTTPRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "restaurants_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "restaurants_http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		StoreQuerySeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "restaurants_store_query_duration_seconds",
			Help:    "Duration of restaurant queries against the database.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		StoreErrors: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "restaurants_store_errors_total",
			Help: "Total number of failed restaurant queries.",
		}, []string{"operation"}),
		GeocodeProcessed: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "geocoding_restaurants_processed_total",
			Help: "Total number of restaurants processed by the geocoding backfill.",
		}, []string{"status"}),
		GeocodeAPIErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "geocoding_provider_api_errors_total",
			Help: "Total number of errors received from the geocoding provider API.",
		}),
		GeocodeRequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "geocoding_provider_request_duration_seconds",
			Help:    "Duration of requests to the geocoding provider API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		ActiveWorkers: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "geocoding_active_workers",
			Help: "Current number of active workers geocoding restaurants.",
		}),
	}
}
