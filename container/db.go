package container

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	sqldblogger "github.com/simukti/sqldb-logger"
	"github.com/yusufsyaifudin/ylog"
)

// queryLogger forwards every statement the driver runs to the context logger.
// Only active when DB_DEBUG is on.
type queryLogger struct{}

var _ sqldblogger.Logger = (*queryLogger)(nil)

func (q *queryLogger) Log(ctx context.Context, level sqldblogger.Level, msg string, data map[string]interface{}) {
	ylog.Debug(ctx, msg, ylog.KV("level", level), ylog.KV("sql", data))
}

// openPostgres opens the one Postgres connection this service uses and pings
// it so a bad DSN fails at boot, not on the first request.
func openPostgres(ctx context.Context, dsn string, debug bool) (*sqlx.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open db connection: %w", err)
	}

	if debug {
		db = sqldblogger.OpenDriver(dsn, db.Driver(), &queryLogger{})
	}

	sqlxConn := sqlx.NewDb(db, "postgres")
	err = sqlxConn.PingContext(ctx)
	if err != nil {
		_ = sqlxConn.Close()
		return nil, fmt.Errorf("cannot ping db: %w", err)
	}

	return sqlxConn, nil
}
