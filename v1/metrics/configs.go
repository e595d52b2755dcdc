package metrics

// Config holds the settings for the metrics registry and HTTP server.
type Config struct {
	// Address the /metrics HTTP server listens on, e.g. ":9090".
	Address string `yaml:"address" env:"METRICS_ADDRESS"`

	// ServiceName is applied to every metric as a constant "service" label.
	ServiceName string `yaml:"service_name" env:"SERVICE_NAME"`

	// EnableDefaultCollectors registers the Go, process and build info
	// collectors on the registry.
	EnableDefaultCollectors bool `yaml:"enable_default_collectors" env:"METRICS_ENABLE_DEFAULT_COLLECTORS"`
}

// DefaultConfig provides sensible defaults for most use cases.
func DefaultConfig() Config {
	return Config{
		Address:                 ":9090",
		ServiceName:             "vectorbind",
		EnableDefaultCollectors: true,
	}
}
