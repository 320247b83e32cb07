package apprepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/mustyfdn/app-portal/pkg/tracer"
	"github.com/mustyfdn/app-portal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

const (
	sqlListApps  = `SELECT * FROM apps ORDER BY created_at DESC, id DESC;`
	sqlCreateApp = `INSERT INTO apps (title, url, image, healthpath) VALUES ($1, $2, $3, $4) RETURNING *;`
	sqlUpdateApp = `UPDATE apps SET title = $1, url = $2, image = $3, healthpath = $4 WHERE id = $5 RETURNING *;`
	sqlDeleteApp = `DELETE FROM apps WHERE id = $1 RETURNING *;`
)

type RepoPostgresConfig struct {
	Connection sqlx.QueryerContext `validate:"required"`
}

type RepoPostgres struct {
	Config RepoPostgresConfig
}

var _ Repo = (*RepoPostgres)(nil)

// Postgres returns the Repo implementation backed by PgSQL.
func Postgres(conf RepoPostgresConfig) (service *RepoPostgres, err error) {
	err = validator.Validate(conf)
	if err != nil {
		return nil, err
	}

	service = &RepoPostgres{
		Config: conf,
	}
	return
}

func (p *RepoPostgres) List(ctx context.Context, in InputList) (out OutList, err error) {
	var span trace.Span
	ctx, span = tracer.StartSpan(ctx, "apprepo.List")
	defer span.End()

	apps := make([]App, 0)
	err = sqlx.SelectContext(ctx, p.Config.Connection, &apps, sqlListApps)
	if err != nil {
		err = fmt.Errorf("cannot get list of apps: %w", err)
		return
	}

	out = OutList{
		Apps: apps,
	}
	return
}

func (p *RepoPostgres) Create(ctx context.Context, in InputCreate) (out OutCreate, err error) {
	err = validator.Validate(in)
	if err != nil {
		err = fmt.Errorf("%w: %s", ErrValidation, err)
		return
	}

	insertedApp := App{}
	err = sqlx.GetContext(ctx, p.Config.Connection, &insertedApp, sqlCreateApp,
		in.Title, in.URL, in.Image, in.HealthPath,
	)
	if err != nil {
		err = fmt.Errorf("cannot insert app: %w", err)
		return
	}

	out = OutCreate{
		App: insertedApp,
	}
	return
}

func (p *RepoPostgres) Update(ctx context.Context, in InputUpdate) (out OutUpdate, err error) {
	err = validator.Validate(in)
	if err != nil {
		err = fmt.Errorf("%w: %s", ErrValidation, err)
		return
	}

	updatedApp := App{}
	err = sqlx.GetContext(ctx, p.Config.Connection, &updatedApp, sqlUpdateApp,
		in.Title, in.URL, in.Image, in.HealthPath, in.ID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		out = OutUpdate{
			Found: false,
		}

		err = nil // discard error, unknown id is not a store failure
		return
	}

	if err != nil {
		err = fmt.Errorf("cannot update app id %d: %w", in.ID, err)
		return
	}

	out = OutUpdate{
		Found: true,
		App:   updatedApp,
	}
	return
}

func (p *RepoPostgres) Delete(ctx context.Context, in InputDelete) (out OutDelete, err error) {
	err = validator.Validate(in)
	if err != nil {
		err = fmt.Errorf("%w: %s", ErrValidation, err)
		return
	}

	deletedApp := App{}
	err = sqlx.GetContext(ctx, p.Config.Connection, &deletedApp, sqlDeleteApp, in.ID)
	if errors.Is(err, sql.ErrNoRows) {
		out = OutDelete{
			Found: false,
		}

		err = nil
		return
	}

	if err != nil {
		err = fmt.Errorf("cannot delete app id %d: %w", in.ID, err)
		return
	}

	out = OutDelete{
		Found: true,
		App:   deletedApp,
	}
	return
}
