package appsvc

import (
	"context"
	"fmt"

	"github.com/mustyfdn/app-portal/internal/svc/apprepo"
	"github.com/mustyfdn/app-portal/pkg/tracer"
	"github.com/mustyfdn/app-portal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type DefaultServiceConfig struct {
	AppRepo apprepo.Repo `validate:"required"`
}

type DefaultService struct {
	Config DefaultServiceConfig
}

var _ Service = (*DefaultService)(nil)

func New(dep DefaultServiceConfig) (*DefaultService, error) {
	if err := validator.Validate(dep); err != nil {
		return nil, err
	}

	return &DefaultService{
		Config: dep,
	}, nil
}

func (d *DefaultService) ListApps(ctx context.Context, input InputListApps) (out OutListApps, err error) {
	var span trace.Span
	ctx, span = tracer.StartSpan(ctx, "appsvc.ListApps")
	defer span.End()

	outList, err := d.Config.AppRepo.List(ctx, apprepo.InputList{})
	if err != nil {
		err = fmt.Errorf("list apps error: %w", err)
		return
	}

	apps := make([]App, 0)
	for _, app := range outList.Apps {
		apps = append(apps, AppFromRepo(app))
	}

	out = OutListApps{
		Apps: apps,
	}
	return
}

// CreateApp is a function that knows business logic.
// It doesn't know whether the input come from HTTP or GRPC or any input.
func (d *DefaultService) CreateApp(ctx context.Context, input InputCreateApp) (out OutCreateApp, err error) {
	err = validator.Validate(input)
	if err != nil {
		err = fmt.Errorf("%w: %s", apprepo.ErrValidation, err)
		return
	}

	appOut, err := d.Config.AppRepo.Create(ctx, apprepo.InputCreate{
		Title:      input.Title,
		URL:        input.URL,
		Image:      input.Image,
		HealthPath: input.HealthPath,
	})
	if err != nil {
		return
	}

	out = OutCreateApp{
		App: AppFromRepo(appOut.App),
	}
	return
}

func (d *DefaultService) UpdateApp(ctx context.Context, input InputUpdateApp) (out OutUpdateApp, err error) {
	err = validator.Validate(input)
	if err != nil {
		err = fmt.Errorf("%w: %s", apprepo.ErrValidation, err)
		return
	}

	appOut, err := d.Config.AppRepo.Update(ctx, apprepo.InputUpdate{
		ID:         input.ID,
		Title:      input.Title,
		URL:        input.URL,
		Image:      input.Image,
		HealthPath: input.HealthPath,
	})
	if err != nil {
		err = fmt.Errorf("db update error id %d: %w", input.ID, err)
		return
	}

	if !appOut.Found {
		err = fmt.Errorf("%w: id %d", ErrAppNotFound, input.ID)
		return
	}

	out = OutUpdateApp{
		App: AppFromRepo(appOut.App),
	}
	return
}

func (d *DefaultService) DeleteApp(ctx context.Context, input InputDeleteApp) (out OutDeleteApp, err error) {
	err = validator.Validate(input)
	if err != nil {
		err = fmt.Errorf("%w: %s", apprepo.ErrValidation, err)
		return
	}

	appOut, err := d.Config.AppRepo.Delete(ctx, apprepo.InputDelete{
		ID: input.ID,
	})
	if err != nil {
		err = fmt.Errorf("db delete error id %d: %w", input.ID, err)
		return
	}

	if !appOut.Found {
		err = fmt.Errorf("%w: id %d", ErrAppNotFound, input.ID)
		return
	}

	out = OutDeleteApp{
		App: AppFromRepo(appOut.App),
	}
	return
}
