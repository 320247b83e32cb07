package probesvc

import (
	"context"
	"errors"
)

var ErrValidation = errors.New("validation error")

// Service performs the outbound health probe on behalf of the browser so the
// browser never hits the third-party origin itself. Only the status code of
// the target comes back, never its body.
type Service interface {
	Probe(ctx context.Context, input InputProbe) (out OutProbe, err error)
}

type InputProbe struct {
	TargetURL string `validate:"required,url"`
}

type OutProbe struct {
	StatusCode int
}
