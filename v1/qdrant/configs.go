package qdrant

import (
	"time"
)

// Config holds connection and behavior settings for the Qdrant client.
//
// It is intentionally minimal, readable, and easy to override from environment
// variables, YAML, or programmatically via helper methods.
//
// Example (programmatic):
//
//	cfg := qdrant.DefaultConfig()
//	cfg.Endpoint = "localhost"
//	cfg.ApiKey = os.Getenv("QDRANT_API_KEY")
//	cfg.Collection = "bindings"
//
// Example (builder style):
//
//	cfg := qdrant.FromEndpoint("localhost").
//	    WithApiKey(os.Getenv("QDRANT_API_KEY")).
//	    WithCollection("bindings").
//	    WithTimeout(10 * time.Second)
type Config struct {
	// Hostname of the Qdrant server, e.g. "localhost".
	Endpoint string `yaml:"endpoint" env:"QDRANT_ENDPOINT"`

	// gRPC port of the Qdrant server. Defaults to 6334.
	Port int `yaml:"port" env:"QDRANT_PORT"`

	// Optional authentication token for secured deployments.
	ApiKey string `yaml:"api_key" env:"QDRANT_API_KEY"`

	// Collection the binding store operates on.
	Collection string `yaml:"collection" env:"QDRANT_COLLECTION"`

	// Dimension of stored vectors, used when creating the collection.
	VectorSize uint64 `yaml:"vector_size" env:"QDRANT_VECTOR_SIZE"`

	// Maximum request duration before timing out.
	Timeout time.Duration `yaml:"timeout" env:"QDRANT_TIMEOUT"`

	// Connection establishment timeout.
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"QDRANT_CONNECT_TIMEOUT"`

	// Whether to keep idle connections open for reuse.
	KeepAlive bool `yaml:"keep_alive" env:"QDRANT_KEEP_ALIVE"`

	// Enable gzip compression for requests.
	Compression bool `yaml:"compression" env:"QDRANT_COMPRESSION"`

	// Whether to perform version compatibility checks between client and server.
	CheckCompatibility bool `yaml:"check_compatibility" env:"QDRANT_CHECK_COMPATIBILITY"`
}

// DefaultConfig provides sensible defaults for most use cases.
func DefaultConfig() *Config {
	return &Config{
		Endpoint:           "localhost",
		Port:               6334,
		Collection:         "bindings",
		VectorSize:         1536,
		Timeout:            5 * time.Second,
		ConnectTimeout:     5 * time.Second,
		KeepAlive:          true,
		Compression:        false,
		CheckCompatibility: true,
	}
}

// FromEndpoint returns a default config pre-filled with a specific endpoint.
func FromEndpoint(url string) *Config {
	cfg := DefaultConfig()
	cfg.Endpoint = url
	return cfg
}

// Builder-style helpers (optional, ergonomic)
func (c *Config) WithApiKey(key string) *Config {
	c.ApiKey = key
	return c
}

func (c *Config) WithCollection(name string) *Config {
	c.Collection = name
	return c
}

func (c *Config) WithVectorSize(size uint64) *Config {
	c.VectorSize = size
	return c
}

func (c *Config) WithTimeout(d time.Duration) *Config {
	c.Timeout = d
	return c
}

func (c *Config) WithConnectTimeout(d time.Duration) *Config {
	c.ConnectTimeout = d
	return c
}

func (c *Config) WithCompression(enabled bool) *Config {
	c.Compression = enabled
	return c
}

func (c *Config) WithKeepAlive(enabled bool) *Config {
	c.KeepAlive = enabled
	return c
}

func (c *Config) WithCompatibilityCheck(enabled bool) *Config {
	c.CheckCompatibility = enabled
	return c
}
