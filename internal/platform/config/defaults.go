package config

// defaults is the bottom layer of Load. Every key Validate checks has a
// value here so a bare base.yaml still produces a working config.
func defaults() map[string]any {
	return map[string]any{
		"server": map[string]any{
			"host":          "0.0.0.0",
			"port":          8080,
			"read_timeout":  "5s",
			"write_timeout": "10s",
			"idle_timeout":  "120s",
		},
		"log": map[string]any{
			"level":  "info",
			"format": "json",
		},
		"client": map[string]any{
			// Express API from the marketplace dev setup.
			"base_url": "http://localhost:5000",
			"timeout":  "30s",
			"retry": map[string]any{
				"max_attempts":     3,
				"initial_interval": "100ms",
				"max_interval":     "10s",
				"multiplier":       2.0,
			},
			"circuit_breaker": map[string]any{
				"max_failures":    5,
				"timeout":         "30s",
				"half_open_limit": 1,
			},
			"rate_limit": map[string]any{
				"requests_per_second": 0,
				"burst_size":          10,
			},
		},
		"browse": map[string]any{
			"listing_path":     "/jobs",
			"fetch_timeout":    "10s",
			"link_base":        "http://localhost:5173/all-jobs",
			"category_workers": 4,
		},
		"telemetry": map[string]any{
			"enabled":      false,
			"exporter":     "stdout",
			"endpoint":     "",
			"service_name": "marketplace-browse",
		},
	}
}
