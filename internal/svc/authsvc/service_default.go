package authsvc

import (
	"context"
	"fmt"
	"time"

	"github.com/mustyfdn/app-portal/internal/svc/sessionrepo"
	"github.com/mustyfdn/app-portal/pkg/validator"
	"github.com/satori/uuid"
	"github.com/yusufsyaifudin/ylog"
)

type DefaultServiceConfig struct {
	AdminUsername string           `validate:"required"`
	AdminPassword string           `validate:"required"`
	SessionSecret string           `validate:"required"`
	SessionTTL    time.Duration    `validate:"required"`
	Sessions      sessionrepo.Repo `validate:"required"`
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

// Login compares the submitted pair against the configured admin credential
// by exact equality. There is no lockout, rate limit or audit trail.
func (d *DefaultService) Login(ctx context.Context, input InputLogin) (out OutLogin, err error) {
	err = validator.Validate(input)
	if err != nil {
		err = fmt.Errorf("%w: %s", ErrBadCredentials, err)
		return
	}

	if input.Username != d.Config.AdminUsername || input.Password != d.Config.AdminPassword {
		err = fmt.Errorf("%w: username or password mismatch", ErrBadCredentials)
		return
	}

	now := time.Now().UTC()
	session := sessionrepo.Session{
		Token:         uuid.NewV4().String(),
		Username:      input.Username,
		Authenticated: true,
		CreatedAt:     now,
		ExpiresAt:     now.Add(d.Config.SessionTTL),
	}

	_, err = d.Config.Sessions.Save(ctx, sessionrepo.InputSave{
		Session: session,
		TTL:     d.Config.SessionTTL,
	})
	if err != nil {
		err = fmt.Errorf("cannot save session: %w", err)
		return
	}

	out = OutLogin{
		CookieValue: signToken(session.Token, d.Config.SessionSecret),
		Username:    session.Username,
		ExpiresAt:   session.ExpiresAt.Unix(),
	}
	return
}

// Logout destroys the session behind the cookie. A missing or tampered
// cookie means there is nothing to destroy, which still counts as success.
func (d *DefaultService) Logout(ctx context.Context, input InputLogout) (out OutLogout, err error) {
	token, parseErr := parseSignedToken(input.CookieValue, d.Config.SessionSecret)
	if parseErr != nil {
		ylog.Debug(ctx, "logout without a valid session cookie", ylog.KV("error", parseErr))
		out = OutLogout{Success: true}
		return
	}

	delOut, err := d.Config.Sessions.Delete(ctx, sessionrepo.InputDelete{Token: token})
	if err != nil {
		err = fmt.Errorf("session destroy error: %w", err)
		return
	}

	out = OutLogout{
		Success: delOut.Success,
	}
	return
}

// Inspect resolves a cookie value to its session state. Any verification or
// lookup miss degrades to unauthenticated, never to an error.
func (d *DefaultService) Inspect(ctx context.Context, input InputInspect) (out OutInspect, err error) {
	if input.CookieValue == "" {
		return
	}

	token, parseErr := parseSignedToken(input.CookieValue, d.Config.SessionSecret)
	if parseErr != nil {
		ylog.Debug(ctx, "rejecting session cookie", ylog.KV("error", parseErr))
		return
	}

	getOut, err := d.Config.Sessions.Get(ctx, sessionrepo.InputGet{Token: token})
	if err != nil {
		err = fmt.Errorf("session lookup error: %w", err)
		return
	}

	if !getOut.Found || !getOut.Session.Authenticated {
		return
	}

	out = OutInspect{
		Authenticated: true,
		Username:      getOut.Session.Username,
		Token:         getOut.Session.Token,
	}
	return
}
