package postgres

//nolint:revive
import (
	"chappbooking/config"
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
)

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// endpoint is one side of the read/write split.
type endpoint struct {
	name     string
	host     string
	port     string
	username string
	password string
	dbName   string
	sslMode  string
}

func (e endpoint) url() *url.URL {
	return &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(e.username, e.password),
		Host:     net.JoinHostPort(e.host, e.port),
		Path:     "/" + e.dbName,
		RawQuery: url.Values{"sslmode": {e.sslMode}}.Encode(),
	}
}

func dbName(config *config.Config, baseName string) string {
	return config.DB.Postgres.Prefix + baseName
}

func readEndpoint(config *config.Config) endpoint {
	read := config.DB.Postgres.Read

	return endpoint{"read", read.Host, read.Port, read.Username, read.Password, dbName(config, read.Name), read.SSLMode}
}

func writeEndpoint(config *config.Config) endpoint {
	write := config.DB.Postgres.Write

	return endpoint{"write", write.Host, write.Port, write.Username, write.Password, dbName(config, write.Name), write.SSLMode}
}

// WriteURL is the connection URL of the primary, used by migrations.
func WriteURL(config *config.Config) *url.URL {
	return writeEndpoint(config).url()
}

func New(config *config.Config) *Connection {
	maxRetry := config.DB.Postgres.MaxRetry
	wait := time.Duration(config.DB.Postgres.RetryWaitTime) * time.Second

	conn := &Connection{
		Read:  connect(readEndpoint(config), maxRetry, wait),
		Write: connect(writeEndpoint(config), maxRetry, wait),
	}

	if conn.Read == nil || conn.Write == nil {
		log.Fatal().Int("maxRetry", maxRetry).Msg("Could not connect to database")
	}

	return conn
}

// Ping checks both pools.
func (c *Connection) Ping(ctx context.Context) error {
	if err := c.Write.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping write database: %w", err)
	}

	if err := c.Read.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping read database: %w", err)
	}

	return nil
}

// Close releases both pools.
func (c *Connection) Close() error {
	return errors.Join(c.Write.Close(), c.Read.Close())
}

func connect(target endpoint, maxRetry int, wait time.Duration) *sqlx.DB {
	logger := log.With().
		Str("name", target.name).
		Str("host", target.host).
		Str("port", target.port).
		Str("dbName", target.dbName).
		Logger()

	for attempt := 1; attempt <= max(maxRetry, 1); attempt++ {
		sqlDB, err := sqlx.Connect("postgres", target.url().String())
		if err == nil {
			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)

			logger.Info().Msg("Connected to database")

			return sqlDB
		}

		logger.Error().Err(err).Int("attempt", attempt).Msg("Failed connecting to database, retrying")

		time.Sleep(wait)
	}

	return nil
}
