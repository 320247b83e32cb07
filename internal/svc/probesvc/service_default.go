package probesvc

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/mustyfdn/app-portal/pkg/validator"
	"github.com/yusufsyaifudin/ylog"
)

type DefaultServiceConfig struct {
	Client *http.Client `validate:"required"`
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

// Probe issues a GET against the target and relays its status code. There is
// no allow-list of hosts; any transport failure surfaces to the caller.
func (d *DefaultService) Probe(ctx context.Context, input InputProbe) (out OutProbe, err error) {
	err = validator.Validate(input)
	if err != nil {
		err = fmt.Errorf("%w: %s", ErrValidation, err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, input.TargetURL, nil)
	if err != nil {
		err = fmt.Errorf("%w: cannot build request: %s", ErrValidation, err)
		return
	}

	resp, err := d.Config.Client.Do(req)
	if err != nil {
		err = fmt.Errorf("health check request failed: %w", err)
		return
	}

	defer func() {
		// drain so the transport can reuse the connection
		if _, _err := io.Copy(io.Discard, resp.Body); _err != nil {
			ylog.Debug(ctx, "cannot drain probe response body", ylog.KV("error", _err))
		}

		if _err := resp.Body.Close(); _err != nil {
			ylog.Error(ctx, "cannot close probe response body", ylog.KV("error", _err))
		}
	}()

	out = OutProbe{
		StatusCode: resp.StatusCode,
	}
	return
}
