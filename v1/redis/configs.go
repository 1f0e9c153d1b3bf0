package redis

import "time"

// Config configures the Redis connection and the query cache built on it.
type Config struct {
	// Enabled turns the query cache on. A disabled cache is never connected.
	Enabled bool `koanf:"enabled"`

	// Host is the Redis server hostname or IP address
	// Default: "localhost"
	Host string `koanf:"host"`

	// Port is the Redis server port
	// Default: 6379
	Port int `koanf:"port" validate:"omitempty,min=1,max=65535"`

	// Username is the Redis username for ACL authentication (Redis 6.0+)
	Username string `koanf:"username"`

	// Password is the Redis password for authentication
	Password string `koanf:"password"`

	// DB is the Redis database number to use
	DB int `koanf:"db" validate:"min=0"`

	// PoolSize is the maximum number of socket connections
	// Default: 10 per CPU
	PoolSize int `koanf:"pool_size" validate:"min=0"`

	// MaxRetries is the maximum number of retries before giving up
	// Default: 3. Set to -1 to disable retries
	MaxRetries int `koanf:"max_retries"`

	// DialTimeout is the timeout for establishing new connections
	// Default: 5 seconds
	DialTimeout time.Duration `koanf:"dial_timeout"`

	// ReadTimeout is the timeout for socket reads
	// Default: 3 seconds
	ReadTimeout time.Duration `koanf:"read_timeout"`

	// WriteTimeout is the timeout for socket writes
	// Default: ReadTimeout
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// TTL is how long a cached query result is served
	// Default: 1 hour
	TTL time.Duration `koanf:"ttl"`

	// KeyPrefix namespaces every cache key
	// Default: "techreport:"
	KeyPrefix string `koanf:"key_prefix"`

	// TLS contains TLS/SSL configuration
	TLS TLSConfig `koanf:"tls"`
}

// TLSConfig contains TLS/SSL configuration parameters.
type TLSConfig struct {
	// Enabled determines whether to use TLS/SSL for the connection
	Enabled bool `koanf:"enabled"`

	// CACertPath is the file path to the CA certificate for verifying the server
	CACertPath string `koanf:"ca_cert_path"`

	// InsecureSkipVerify controls whether to skip verification of the server's certificate
	// WARNING: Setting this to true is insecure and should only be used in testing
	InsecureSkipVerify bool `koanf:"insecure_skip_verify"`

	// ServerName is used to verify the hostname on the returned certificates
	// If empty, the Host from the main config is used
	ServerName string `koanf:"server_name"`
}

// Logger is an interface that matches the v1/logger.Logger
type Logger interface {
	Error(msg string, err error, fields ...map[string]interface{})
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
}

// Default values for configuration
const (
	DefaultHost        = "localhost"
	DefaultPort        = 6379
	DefaultMaxRetries  = 3
	DefaultDialTimeout = 5 * time.Second
	DefaultReadTimeout = 3 * time.Second
	DefaultTTL         = time.Hour
	DefaultKeyPrefix   = "techreport:"
)

func (c Config) withDefaults() Config {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.DialTimeout == 0 {
		c.DialTimeout = DefaultDialTimeout
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
	if c.TTL <= 0 {
		c.TTL = DefaultTTL
	}
	if c.KeyPrefix == "" {
		c.KeyPrefix = DefaultKeyPrefix
	}
	return c
}
