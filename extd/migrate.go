package extd

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mustyfdn/app-portal/assets/migrations/pgsqlportal"
	"github.com/mustyfdn/app-portal/container"
	"github.com/mustyfdn/app-portal/pkg/migration"
	"github.com/yusufsyaifudin/ylog"

	_ "github.com/lib/pq"
)

const (
	DirectionUp   = "up"
	DirectionDown = "down"

	migrationTable = "portal_schema_migrations"
)

// RunMigration applies (or rolls back) the catalog schema. Running it twice
// in the same direction is a no-op, sql-migrate tracks applied ids in
// migrationTable.
func RunMigration(ctx context.Context, cfg container.Config, direction string) error {
	db, err := sql.Open("postgres", cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("cannot open db connection for migration: %w", err)
	}

	defer func() {
		if _err := db.Close(); _err != nil {
			ylog.Error(ctx, "cannot close migration db connection", ylog.KV("error", _err))
		}
	}()

	err = db.PingContext(ctx)
	if err != nil {
		return fmt.Errorf("cannot ping db for migration: %w", err)
	}

	immigration, err := migration.NewSQLImmigration(ctx, migration.SQLImmigrationConfig{
		Dialect:        "postgres",
		DB:             db,
		MigrationTable: migrationTable,
		Migrations: []migration.Migrate{
			pgsqlportal.CreateAppsTable1756512000{},
		},
	})
	if err != nil {
		return fmt.Errorf("cannot prepare migration: %w", err)
	}

	switch direction {
	case DirectionUp:
		err = immigration.Up()
	case DirectionDown:
		err = immigration.Down()
	default:
		err = fmt.Errorf("unknown migration direction '%s'", direction)
	}

	if err != nil {
		return fmt.Errorf("migration %s error: %w", direction, err)
	}

	return nil
}
