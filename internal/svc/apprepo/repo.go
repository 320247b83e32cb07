package apprepo

import (
	"context"
	"errors"
)

var ErrValidation = errors.New("validation error")

// Repo is the App repository service.
type Repo interface {
	List(ctx context.Context, in InputList) (out OutList, err error)
	Create(ctx context.Context, in InputCreate) (out OutCreate, err error)
	Update(ctx context.Context, in InputUpdate) (out OutUpdate, err error)
	Delete(ctx context.Context, in InputDelete) (out OutDelete, err error)
}

type InputList struct{}

type OutList struct {
	Apps []App
}

type InputCreate struct {
	Title      string `validate:"required"`
	URL        string `validate:"required"`
	Image      string `validate:"-"`
	HealthPath string `validate:"-"`
}

type OutCreate struct {
	App App
}

type InputUpdate struct {
	ID         int64  `validate:"required"`
	Title      string `validate:"required"`
	URL        string `validate:"required"`
	Image      string `validate:"-"`
	HealthPath string `validate:"-"`
}

// OutUpdate reports Found=false when no row carries the id, it is not an error.
type OutUpdate struct {
	Found bool
	App   App
}

type InputDelete struct {
	ID int64 `validate:"required"`
}

// OutDelete carries the removed row when Found is true.
type OutDelete struct {
	Found bool
	App   App
}
