package db

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	log "github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// migrateLogger forwards golang-migrate output to logrus at debug level.
type migrateLogger struct{}

func (migrateLogger) Printf(format string, v ...any) {
	log.Debugf("migrate: "+strings.TrimSuffix(format, "\n"), v...)
}

func (migrateLogger) Verbose() bool {
	return log.IsLevelEnabled(log.TraceLevel)
}

func newMigrate(params NewDBPoolParams) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}

	// the pgx/v5 driver registers itself under the pgx5 scheme
	dsn := "pgx5" + strings.TrimPrefix(params.ConnString(), "postgres")
	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return nil, fmt.Errorf("new migrate: %w", err)
	}
	m.Log = migrateLogger{}
	return m, nil
}

// Migrate applies every pending migration. A database already at the latest version is not an error.
func Migrate(params NewDBPoolParams) (err error) {
	m, err := newMigrate(params)
	if err != nil {
		return err
	}
	defer func() { err = closeMigrate(m, err) }()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("read migration version: %w", err)
	}
	log.Infof("database schema at version %d (dirty: %t)", version, dirty)
	return nil
}

// MigrateDown reverts the last steps migrations.
func MigrateDown(params NewDBPoolParams, steps int) (err error) {
	if steps < 1 {
		return fmt.Errorf("steps must be positive, got %d", steps)
	}
	m, err := newMigrate(params)
	if err != nil {
		return err
	}
	defer func() { err = closeMigrate(m, err) }()

	if err := m.Steps(-steps); err != nil {
		return fmt.Errorf("migrate down %d: %w", steps, err)
	}
	return nil
}

func closeMigrate(m *migrate.Migrate, err error) error {
	srcErr, dbErr := m.Close()
	return errors.Join(err, srcErr, dbErr)
}
