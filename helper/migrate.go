package helper

//nolint:revive
import (
	"chappbooking/config"
	"chappbooking/infras/postgres"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const migrationSource = "file://migrations/postgres"

type Direction string

const (
	DirectionUp     Direction = "up"
	DirectionDown   Direction = "down"
	DirectionStepUp Direction = "step-up"
	DirectionDrop   Direction = "drop"
)

var ErrUnknownDirection = errors.New("invalid direction, use 'up', 'down', 'drop' or 'step-up'")

// DSN builds the migrate connection string against the write pool.
func DSN(config *config.Config) string {
	dsn := postgres.WriteURL(config)

	if table := config.DB.Postgres.MigrationTable; table != "" {
		query := dsn.Query()
		query.Set("x-migrations-table", table)
		dsn.RawQuery = query.Encode()
	}

	return dsn.String()
}

func getConnection(config *config.Config) (*migrate.Migrate, error) {
	mig, err := migrate.New(migrationSource, DSN(config))
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

func apply(mig *migrate.Migrate, direction Direction) error {
	switch direction {
	case DirectionUp:
		return mig.Up() //nolint:wrapcheck
	case DirectionStepUp:
		return mig.Steps(1) //nolint:wrapcheck
	case DirectionDown:
		return mig.Steps(-1) //nolint:wrapcheck
	case DirectionDrop:
		return mig.Down() //nolint:wrapcheck
	}

	return ErrUnknownDirection
}

func Run(config *config.Config, direction Direction) error {
	mig, err := getConnection(config)
	if err != nil {
		return err
	}

	defer mig.Close()

	if err := apply(mig, direction); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migrations: %w", direction, err)
	}

	version, dirty, err := mig.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("error reading migration version: %w", err)
	}

	log.Info().Str("direction", string(direction)).Uint("version", version).Bool("dirty", dirty).Msg("Database migrations completed successfully")

	return nil
}

func Up(config *config.Config) error {
	return Run(config, DirectionUp)
}
