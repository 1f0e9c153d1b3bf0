package postgres

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Logger is the logging surface used by the postgres package.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Postgres is a thread-safe wrapper around a GORM connection.
// The connection is monitored and replaced transparently when it is lost.
type Postgres struct {
	cfg             Config
	logger          Logger
	client          atomic.Pointer[gorm.DB]
	shutdownSignal  chan struct{}
	retryChanSignal chan error

	closeRetryChanOnce sync.Once
	closeShutdownOnce  sync.Once
}

// NewPostgres connects to PostgreSQL and returns the wrapper.
func NewPostgres(cfg Config, logger Logger) (*Postgres, error) {
	conn, err := connectToPostgres(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("error in connecting to postgres: %w", err)
	}

	pg := &Postgres{
		cfg:             cfg,
		logger:          logger,
		shutdownSignal:  make(chan struct{}),
		retryChanSignal: make(chan error, 1),
	}
	pg.client.Store(conn)
	return pg, nil
}

// DB returns the current GORM connection.
func (p *Postgres) DB() *gorm.DB {
	return p.client.Load()
}

// dsn renders the key/value connection string. Empty values are omitted so
// libpq defaults apply.
func dsn(c Connection) string {
	pairs := []struct{ key, value string }{
		{"host", c.Host},
		{"port", c.Port},
		{"user", c.User},
		{"password", c.Password},
		{"dbname", c.DbName},
		{"sslmode", c.SSLMode},
		{"application_name", c.ApplicationName},
	}

	parts := make([]string, 0, len(pairs))
	for _, kv := range pairs {
		if kv.value == "" {
			continue
		}
		parts = append(parts, kv.key+"="+quoteDSNValue(kv.value))
	}
	return strings.Join(parts, " ")
}

func quoteDSNValue(v string) string {
	if !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

func connectToPostgres(cfg Config, logger Logger) (*gorm.DB, error) {
	database, err := gorm.Open(
		postgres.Open(dsn(cfg.Connection)),
		&gorm.Config{
			TranslateError: true,
			Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgresSQL database: %w", err)
	}

	databaseInstance, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get PostgresSQL database instance: %w", err)
	}

	maxOpen := cfg.ConnectionDetails.MaxOpenConns
	if maxOpen == 0 {
		maxOpen = 50
	}
	maxIdle := cfg.ConnectionDetails.MaxIdleConns
	if maxIdle == 0 {
		maxIdle = 25
	}
	maxLifetime := cfg.ConnectionDetails.ConnMaxLifetime
	if maxLifetime == 0 {
		maxLifetime = time.Minute
	}

	databaseInstance.SetMaxOpenConns(maxOpen)
	databaseInstance.SetMaxIdleConns(maxIdle)
	databaseInstance.SetConnMaxLifetime(maxLifetime)

	logger.Info("Successfully connected to PostgresSQL database", nil, map[string]interface{}{
		"host":     cfg.Connection.Host,
		"database": cfg.Connection.DbName,
	})

	return database, nil
}

// RetryConnection reconnects whenever MonitorConnection reports a failed
// health check. It returns on shutdown or when ctx is done.
func (p *Postgres) RetryConnection(ctx context.Context) {
outerLoop:
	for {
		select {
		case <-p.shutdownSignal:
			p.logger.Info("Stopping RetryConnection loop due to shutdown signal", nil, nil)
			return
		case <-ctx.Done():
			return
		case _, ok := <-p.retryChanSignal:
			if !ok {
				return
			}
		innerLoop:
			for {
				select {
				case <-p.shutdownSignal:
					return
				case <-ctx.Done():
					return
				default:
					newConn, err := connectToPostgres(p.cfg, p.logger)
					if err != nil {
						p.logger.Error("PostgresSQL reconnection failed", err, nil)
						time.Sleep(time.Second)
						continue innerLoop
					}
					old := p.client.Swap(newConn)
					if old != nil {
						if sqlDB, err := old.DB(); err == nil {
							_ = sqlDB.Close()
						}
					}
					p.logger.Info("Successfully reconnected to PostgresSQL database", nil, nil)
					continue outerLoop
				}
			}
		}
	}
}

// MonitorConnection pings the database every ten seconds and signals
// RetryConnection on failure.
func (p *Postgres) MonitorConnection(ctx context.Context) {
	defer p.closeRetryChanOnce.Do(func() {
		close(p.retryChanSignal)
	})

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-p.shutdownSignal:
			p.logger.Info("Stopping MonitorConnection loop due to shutdown signal", nil, nil)
			return
		case <-ticker.C:
			if err := p.healthCheck(ctx); err != nil {
				p.logger.Warn("PostgresSQL health check failed", err, nil)
				select {
				case p.retryChanSignal <- err:
				default:
				}
			}
		case <-ctx.Done():
			return
		}
	}
}

func (p *Postgres) healthCheck(ctx context.Context) error {
	dbConn := p.DB()
	if dbConn == nil {
		return fmt.Errorf("database client is not initialized")
	}

	db, err := dbConn.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance during health check: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed during health check: %w", err)
	}

	return nil
}

// GracefulShutdown stops the monitoring loops and closes the connection pool.
func (p *Postgres) GracefulShutdown() error {
	p.closeShutdownOnce.Do(func() {
		close(p.shutdownSignal)
	})

	sqlDB, err := p.DB().DB()
	if err != nil {
		return nil
	}
	return sqlDB.Close()
}
