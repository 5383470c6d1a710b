package postgres

//nolint:revive
import (
	"net"
	"net/url"
	"time"
	"villa/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	maxIdleConnections = 10
	maxOpenConnections = 10
	connMaxLifetime    = 30 * time.Minute
)

// Connection splits reads (listings, availability) from writes (bookings,
// stock movements, votes). Both may point at the same server.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

type endpoint struct {
	role     string
	host     string
	port     string
	username string
	password string
	name     string
	sslMode  string
	timezone string
}

func New(cfg *config.Config) *Connection {
	pg := cfg.DB.Postgres

	read := endpoint{
		role: "read", host: pg.Read.Host, port: pg.Read.Port,
		username: pg.Read.Username, password: pg.Read.Password,
		name: pg.Prefix + pg.Read.Name, sslMode: pg.Read.SSLMode, timezone: pg.Read.Timezone,
	}
	write := endpoint{
		role: "write", host: pg.Write.Host, port: pg.Write.Port,
		username: pg.Write.Username, password: pg.Write.Password,
		name: pg.Prefix + pg.Write.Name, sslMode: pg.Write.SSLMode, timezone: pg.Write.Timezone,
	}

	return &Connection{
		Read:  connect(read, pg.MaxRetry, time.Duration(pg.RetryWaitTime)*time.Second),
		Write: connect(write, pg.MaxRetry, time.Duration(pg.RetryWaitTime)*time.Second),
	}
}

func (e endpoint) dsn() string {
	query := url.Values{}
	if e.sslMode != "" {
		query.Set("sslmode", e.sslMode)
	}

	if e.timezone != "" {
		query.Set("timezone", e.timezone)
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(e.username, e.password),
		Host:     net.JoinHostPort(e.host, e.port),
		Path:     "/" + e.name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

// connect retries until the database answers. The process cannot serve a
// single villa route without it, so giving up is fatal.
func connect(e endpoint, maxRetry int, wait time.Duration) *sqlx.DB {
	logger := log.With().Str("role", e.role).Str("host", e.host).Str("port", e.port).Str("dbName", e.name).Logger()

	for attempt := 1; attempt <= max(1, maxRetry); attempt++ {
		db, err := sqlx.Connect("postgres", e.dsn())
		if err == nil {
			db.SetMaxIdleConns(maxIdleConnections)
			db.SetMaxOpenConns(maxOpenConnections)
			db.SetConnMaxLifetime(connMaxLifetime)

			logger.Info().Msg("Connected to database")

			return db
		}

		logger.Error().Err(err).Int("attempt", attempt).Msg("Failed connecting to database, retrying")

		time.Sleep(wait)
	}

	logger.Fatal().Msg("Giving up connecting to database")

	return nil
}
