package appsvc

import (
	"context"
	"errors"
	"time"
)

// ErrAppNotFound reports an unknown app id on update or delete.
var ErrAppNotFound = errors.New("app not found")

// Service is an interface of final business logic.
// Any input and output from/to this function should be SAFE for external party to consume,
// i.e: request or response from HTTP handler.
type Service interface {
	ListApps(ctx context.Context, input InputListApps) (out OutListApps, err error)
	CreateApp(ctx context.Context, input InputCreateApp) (out OutCreateApp, err error)
	UpdateApp(ctx context.Context, input InputUpdateApp) (out OutUpdateApp, err error)
	DeleteApp(ctx context.Context, input InputDeleteApp) (out OutDeleteApp, err error)
}

// App is like apprepo.App but only used for returning output via external service.
// This must not have any json or yaml tag, any output method (HTTP, gRPC, etc)
// must define its own entity standard.
type App struct {
	ID         int64  `validate:"required"`
	Title      string `validate:"required"`
	URL        string `validate:"required"`
	Image      string
	HealthPath string
	CreatedAt  time.Time
}

type InputListApps struct{}

type OutListApps struct {
	Apps []App
}

type InputCreateApp struct {
	Title      string `validate:"required"`
	URL        string `validate:"required,url"`
	Image      string `validate:"-"`
	HealthPath string `validate:"omitempty,url"`
}

type OutCreateApp struct {
	App App
}

type InputUpdateApp struct {
	ID         int64  `validate:"required,min=1"`
	Title      string `validate:"required"`
	URL        string `validate:"required,url"`
	Image      string `validate:"-"`
	HealthPath string `validate:"omitempty,url"`
}

type OutUpdateApp struct {
	App App
}

type InputDeleteApp struct {
	ID int64 `validate:"required,min=1"`
}

type OutDeleteApp struct {
	App App
}
