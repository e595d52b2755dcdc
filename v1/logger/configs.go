package logger

// Level controls the minimum severity the logger emits.
type Level string

const (
	Debug   Level = "debug"
	Info    Level = "info"
	Warning Level = "warning"
	Error   Level = "error"
)

// Config holds the logger settings.
type Config struct {
	// Minimum level to emit. Defaults to Info when unset or unknown.
	Level Level `yaml:"level" env:"LOG_LEVEL"`

	// ServiceName is attached to every log entry as the "service" field.
	ServiceName string `yaml:"service_name" env:"SERVICE_NAME"`
}

// DefaultConfig provides sensible defaults for most use cases.
func DefaultConfig() Config {
	return Config{
		Level:       Info,
		ServiceName: "vectorbind",
	}
}
