package tracer

// Config holds the tracer settings.
type Config struct {
	// ServiceName identifies this service in exported traces.
	ServiceName string `yaml:"service_name" env:"SERVICE_NAME"`

	// AppEnv is the deployment environment, e.g. "production".
	AppEnv string `yaml:"app_env" env:"APP_ENV"`

	// EnableExport turns on the OTLP HTTP exporter. The exporter
	// endpoint is taken from the standard OTEL_EXPORTER_OTLP_*
	// environment variables.
	EnableExport bool `yaml:"enable_export" env:"TRACER_ENABLE_EXPORT"`
}

// DefaultConfig provides sensible defaults for most use cases.
func DefaultConfig() Config {
	return Config{
		ServiceName:  "vectorbind",
		AppEnv:       "development",
		EnableExport: false,
	}
}
