package migration

import "context"

// Immigration runs a migration set Up (sync to latest) or Down (rollback).
type Immigration interface {
	Up() error
	Down() error
}

// Migrate is one migration to run.
type Migrate interface {
	// ID returns a unique identifier for the migration. The prefix must be a number.
	ID(ctx context.Context) string

	// SequenceNumber must be unique; useful to see the current status of the migration.
	SequenceNumber(ctx context.Context) int

	// Up returns the sql to sync the database forward.
	Up(ctx context.Context) (sql string, err error)

	// Down returns the sql to roll the database back.
	Down(ctx context.Context) (sql string, err error)
}
