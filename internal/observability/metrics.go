package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the forecast service.
type Metrics struct {
	// Aggregation metrics.
	ForecastRequests  *prometheus.CounterVec // labels: outcome={success,error}
	ForecastDuration  prometheus.Histogram
	BeachesProcessed  prometheus.Counter
	PublisherEnabled  prometheus.Gauge
	ForecastPublishes *prometheus.CounterVec // labels: outcome={success,error}

	// StormGlass metrics.
	StormGlassRequests    *prometheus.CounterVec // labels: outcome={success,transport_error,response_error,decode_error}
	StormGlassCache       *prometheus.CounterVec // labels: result={hit,miss}
	StormGlassAPIDuration prometheus.Histogram
	PointsDropped         prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ForecastRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "surf_forecast",
			Name:      "forecast_requests_total",
			Help:      "Forecast aggregations by outcome.",
		}, []string{"outcome"}),
		ForecastDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "surf_forecast",
			Name:      "forecast_duration_seconds",
			Help:      "Duration of a forecast aggregation across all beaches, successful or failed.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		BeachesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "surf_forecast",
			Name:      "beaches_processed_total",
			Help:      "Total beaches enriched with forecast points.",
		}),
		PublisherEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "surf_forecast",
			Name:      "publisher_enabled",
			Help:      "1 when served forecasts are published to Kafka, 0 otherwise.",
		}),
		ForecastPublishes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "surf_forecast",
			Name:      "forecast_publishes_total",
			Help:      "Kafka publishes of served forecasts by outcome.",
		}, []string{"outcome"}),
		StormGlassRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "surf_forecast",
			Name:      "stormglass_requests_total",
			Help:      "StormGlass API requests by outcome.",
		}, []string{"outcome"}),
		StormGlassCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "surf_forecast",
			Name:      "stormglass_cache_total",
			Help:      "Forecast point cache lookups by result.",
		}, []string{"result"}),
		StormGlassAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "surf_forecast",
			Name:      "stormglass_api_duration_seconds",
			Help:      "StormGlass API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		PointsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "surf_forecast",
			Name:      "points_dropped_total",
			Help:      "Forecast hours dropped because a noaa value was missing.",
		}),
	}

	prometheus.MustRegister(
		m.ForecastRequests,
		m.ForecastDuration,
		m.BeachesProcessed,
		m.PublisherEnabled,
		m.ForecastPublishes,
		m.StormGlassRequests,
		m.StormGlassCache,
		m.StormGlassAPIDuration,
		m.PointsDropped,
	)

	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ForecastRequests:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "surf_forecast", Name: "forecast_requests_total"}, []string{"outcome"}),
		ForecastDuration:      prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "surf_forecast", Name: "forecast_duration_seconds"}),
		BeachesProcessed:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "surf_forecast", Name: "beaches_processed_total"}),
		PublisherEnabled:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "surf_forecast", Name: "publisher_enabled"}),
		ForecastPublishes:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "surf_forecast", Name: "forecast_publishes_total"}, []string{"outcome"}),
		StormGlassRequests:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "surf_forecast", Name: "stormglass_requests_total"}, []string{"outcome"}),
		StormGlassCache:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "surf_forecast", Name: "stormglass_cache_total"}, []string{"result"}),
		StormGlassAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "surf_forecast", Name: "stormglass_api_duration_seconds"}),
		PointsDropped:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "surf_forecast", Name: "points_dropped_total"}),
	}
}
