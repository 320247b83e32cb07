package pgsqlportal

import (
	"context"
	"fmt"
)

// CreateAppsTable1756512000 defines the migration with ID 1756512000_create_apps_table.
type CreateAppsTable1756512000 struct{}

// ID returns a unique identifier for the migration. The prefix is the unix time
// when this migration was created.
func (m CreateAppsTable1756512000) ID(ctx context.Context) string {
	return fmt.Sprintf("%d_%s.sql", 1756512000, "create_apps_table")
}

// SequenceNumber returns the creation time of the migration,
// useful to see the current status of the migration.
func (m CreateAppsTable1756512000) SequenceNumber(ctx context.Context) int {
	return 1756512000
}

// Up returns the sql migration to sync the database.
func (m CreateAppsTable1756512000) Up(ctx context.Context) (sql string, err error) {
	sql = `
CREATE TABLE IF NOT EXISTS apps (
	id SERIAL PRIMARY KEY,
	title TEXT NOT NULL,
	url TEXT NOT NULL,
	image TEXT,
	healthpath TEXT,
	created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_apps_created_at ON apps (created_at DESC);
`

	return
}

// Down returns the sql migration to rollback the database.
func (m CreateAppsTable1756512000) Down(ctx context.Context) (sql string, err error) {
	sql = `DROP TABLE IF EXISTS apps;`
	return
}
