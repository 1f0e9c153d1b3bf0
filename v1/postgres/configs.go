package postgres

import "time"

const (
	// DefaultTable is the table holding documents of every collection.
	DefaultTable = "documents"
)

// Config defines the top-level configuration structure for the PostgreSQL connection.
type Config struct {
	// Connection contains the essential parameters needed to establish a database connection
	Connection Connection `koanf:"connection"`

	// ConnectionDetails contains configuration for connection pool behavior
	ConnectionDetails ConnectionDetails `koanf:"pool"`

	// Table is the document table name. Defaults to DefaultTable.
	Table string `koanf:"table"`

	// AutoMigrate creates the document table and its indexes on start.
	AutoMigrate bool `koanf:"auto_migrate"`
}

// Connection holds the basic parameters required to connect to a PostgreSQL database.
type Connection struct {
	Host     string `koanf:"host"`
	Port     string `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	DbName   string `koanf:"dbname"`

	// SSLMode determines whether/how SSL is used: disable, require, verify-ca, verify-full
	SSLMode string `koanf:"sslmode"`

	// ApplicationName is reported to the server and shows up in pg_stat_activity.
	ApplicationName string `koanf:"application_name"`
}

// ConnectionDetails holds configuration settings for the database connection pool.
type ConnectionDetails struct {
	// MaxOpenConns controls the maximum number of open connections to the database.
	// Zero means the default of 50.
	MaxOpenConns int `koanf:"max_open_conns"`

	// MaxIdleConns controls the maximum number of idle connections in the pool.
	// Zero means the default of 25.
	MaxIdleConns int `koanf:"max_idle_conns"`

	// ConnMaxLifetime is the maximum amount of time a connection may be reused.
	// Zero means the default of one minute.
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
}

func (c Config) table() string {
	if c.Table == "" {
		return DefaultTable
	}
	return c.Table
}
