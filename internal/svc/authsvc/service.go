package authsvc

import (
	"context"
	"errors"
)

// ErrBadCredentials reports a username/password pair that does not match the
// configured admin credential.
var ErrBadCredentials = errors.New("bad credentials")

// Service owns the session state machine: Unauthenticated -> Authenticated on
// Login, Authenticated -> Unauthenticated on Logout. There are no other
// transitions, no refresh and no multi-user accounts.
type Service interface {
	Login(ctx context.Context, input InputLogin) (out OutLogin, err error)
	Logout(ctx context.Context, input InputLogout) (out OutLogout, err error)
	Inspect(ctx context.Context, input InputInspect) (out OutInspect, err error)
}

type InputLogin struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type OutLogin struct {
	// CookieValue is the signed token to deliver to the browser.
	CookieValue string
	Username    string
	ExpiresAt   int64 // unix seconds, also the cookie expiry
}

type InputLogout struct {
	CookieValue string `validate:"-"`
}

type OutLogout struct {
	Success bool
}

type InputInspect struct {
	CookieValue string `validate:"-"`
}

type OutInspect struct {
	Authenticated bool
	Username      string
	Token         string
}
