package metrics

// DefaultMetricsAddress is the listen address of the metrics server when none is configured.
const DefaultMetricsAddress = ":9090"

// Config controls the Prometheus registry and its HTTP server.
type Config struct {
	// Enabled starts the metrics server. Collectors are always registered.
	Enabled bool `koanf:"enabled"`

	// Address is the listen address of the metrics server, for example ":9090".
	Address string `koanf:"address"`

	// EnableDefaultCollectors registers the Go runtime, process and build info collectors.
	EnableDefaultCollectors bool `koanf:"enable_default_collectors"`

	// Namespace prefixes every metric name.
	Namespace string `koanf:"namespace"`

	// ServiceName is added as a constant "service" label.
	ServiceName string `koanf:"service_name"`
}

func (c Config) address() string {
	if c.Address == "" {
		return DefaultMetricsAddress
	}
	return c.Address
}
