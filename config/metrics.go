package config

// MetricsConfig toggles the Prometheus metrics sink.
type MetricsConfig struct {
	// PrometheusEnabled registers the garage collectors on startup. Scraping
	// is left to the embedding process.
	PrometheusEnabled bool `json:"prometheus_enabled"`
}
