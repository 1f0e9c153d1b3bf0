package redis

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"sync"

	"github.com/redis/go-redis/v9"
)

// RedisClient wraps the go-redis client with connection management.
type RedisClient struct {
	client redis.UniversalClient
	cfg    Config
	logger Logger

	// mu protects concurrent access to client
	mu sync.RWMutex
}

// NewClient creates a client for a standalone Redis instance. No connection
// is made until the first command.
func NewClient(cfg Config, logger Logger) (*RedisClient, error) {
	cfg = cfg.withDefaults()

	var tlsConfig *tls.Config
	if cfg.TLS.Enabled {
		var err error
		tlsConfig, err = createTLSConfig(cfg.TLS, cfg.Host)
		if err != nil {
			return nil, fmt.Errorf("failed to create TLS config: %w", err)
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Username:     cfg.Username,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		TLSConfig:    tlsConfig,
	})

	logger.Info("Redis client initialized", nil, map[string]interface{}{
		"addr": fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		"db":   cfg.DB,
	})

	return &RedisClient{client: client, cfg: cfg, logger: logger}, nil
}

// createTLSConfig creates a TLS configuration from the provided config
func createTLSConfig(cfg TLSConfig, defaultServerName string) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		InsecureSkipVerify: cfg.InsecureSkipVerify,
		ServerName:         defaultServerName,
	}
	if cfg.ServerName != "" {
		tlsConfig.ServerName = cfg.ServerName
	}

	if cfg.CACertPath != "" {
		caCert, err := os.ReadFile(cfg.CACertPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA cert: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("failed to parse CA cert")
		}
		tlsConfig.RootCAs = pool
	}

	return tlsConfig, nil
}

// Client returns the underlying go-redis client for advanced operations.
func (r *RedisClient) Client() redis.UniversalClient {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.client
}

// Ping checks if the Redis server is reachable and responsive.
func (r *RedisClient) Ping(ctx context.Context) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis client and releases all resources.
func (r *RedisClient) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logger.Info("Closing Redis client", nil, nil)
	if err := r.client.Close(); err != nil {
		r.logger.Warn("Failed to close Redis client", err, nil)
		return err
	}
	return nil
}
