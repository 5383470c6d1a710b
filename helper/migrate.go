package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"villa/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

type Action string

const (
	ActionUp      Action = "up"
	ActionDown    Action = "down"
	ActionStepUp  Action = "step-up"
	ActionDrop    Action = "drop"
	ActionVersion Action = "version"
)

const migrationsSource = "file://migrations/postgres"

var ErrUnknownAction = errors.New("unknown migration action, use up, down, step-up, drop or version")

func (a Action) valid() bool {
	switch a {
	case ActionUp, ActionDown, ActionStepUp, ActionDrop, ActionVersion:
		return true
	default:
		return false
	}
}

// DSN points golang-migrate at the write database, honouring the
// environment prefix on the database name.
func DSN(cfg *config.Config) string {
	pg := cfg.DB.Postgres

	query := url.Values{}
	query.Set("sslmode", pg.Write.SSLMode)

	if pg.MigrationTable != "" {
		query.Set("x-migrations-table", pg.MigrationTable)
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(pg.Write.Username, pg.Write.Password),
		Host:     net.JoinHostPort(pg.Write.Host, pg.Write.Port),
		Path:     "/" + pg.Prefix + pg.Write.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

// Migrate runs one action against the villa schema. Having nothing to do is
// not an error.
func Migrate(cfg *config.Config, action Action) error {
	if !action.valid() {
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	mig, err := migrate.New(migrationsSource, DSN(cfg))
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	defer mig.Close()

	switch action {
	case ActionUp:
		err = mig.Up()
	case ActionDown:
		err = mig.Steps(-1)
	case ActionStepUp:
		err = mig.Steps(1)
	case ActionDrop:
		err = mig.Down()
	case ActionVersion:
		return logVersion(mig)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migration: %w", action, err)
	}

	return logVersion(mig)
}

func logVersion(mig *migrate.Migrate) error {
	version, dirty, err := mig.Version()

	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		log.Info().Msg("database has no migrations applied")

		return nil
	case err != nil:
		return fmt.Errorf("error reading migration version: %w", err)
	}

	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("database schema version")

	return nil
}

func Up(cfg *config.Config) error {
	return Migrate(cfg, ActionUp)
}
