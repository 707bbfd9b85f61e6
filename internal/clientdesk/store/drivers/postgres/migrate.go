package postgres

import (
	"errors"

	"github.com/aussiebroadwan/clientdesk/internal/clientdesk/store/drivers/postgres/migrations"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/stdlib"
)

// ApplyMigrations applies any pending migrations from the embedded
// migrations directory over a database/sql view of the pool.
func (s *Store) ApplyMigrations() error {
	db := stdlib.OpenDBFromPool(s.pool)
	defer db.Close()

	driver, err := migratepgx.WithInstance(db, &migratepgx.Config{})
	if err != nil {
		return err
	}

	src, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		_ = driver.Close()
		return err
	}

	instance, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		_ = src.Close()
		_ = driver.Close()
		return err
	}
	// The driver pins one pooled connection until closed.
	defer func() { _, _ = instance.Close() }()

	if err := instance.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
