package sessionrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/mustyfdn/app-portal/pkg/cache"
	"github.com/mustyfdn/app-portal/pkg/validator"
)

const keyPrefix = "session:"

type RepoCacheConfig struct {
	Cache cache.Cache `validate:"required"`
}

type RepoCache struct {
	Config RepoCacheConfig
}

var _ Repo = (*RepoCache)(nil)

// NewCache returns a Repo over any cache.Cache backend.
func NewCache(conf RepoCacheConfig) (*RepoCache, error) {
	err := validator.Validate(conf)
	if err != nil {
		return nil, err
	}

	return &RepoCache{
		Config: conf,
	}, nil
}

func (r *RepoCache) Save(ctx context.Context, in InputSave) (out OutSave, err error) {
	err = validator.Validate(in)
	if err != nil {
		err = fmt.Errorf("session save validation: %w", err)
		return
	}

	err = r.Config.Cache.SetExp(ctx, keyPrefix+in.Session.Token, in.Session, in.TTL)
	if err != nil {
		err = fmt.Errorf("cannot persist session: %w", err)
		return
	}

	out = OutSave{
		Session: in.Session,
	}
	return
}

func (r *RepoCache) Get(ctx context.Context, in InputGet) (out OutGet, err error) {
	err = validator.Validate(in)
	if err != nil {
		err = fmt.Errorf("session get validation: %w", err)
		return
	}

	var session Session
	err = r.Config.Cache.GetAs(ctx, keyPrefix+in.Token, &session)
	if errors.Is(err, cache.ErrKeyNotExist) {
		out = OutGet{
			Found: false,
		}

		err = nil // absent token is a normal outcome
		return
	}

	if err != nil {
		err = fmt.Errorf("cannot read session: %w", err)
		return
	}

	out = OutGet{
		Found:   true,
		Session: session,
	}
	return
}

func (r *RepoCache) Delete(ctx context.Context, in InputDelete) (out OutDelete, err error) {
	err = validator.Validate(in)
	if err != nil {
		err = fmt.Errorf("session delete validation: %w", err)
		return
	}

	err = r.Config.Cache.Delete(ctx, keyPrefix+in.Token)
	if err != nil {
		err = fmt.Errorf("cannot destroy session: %w", err)
		return
	}

	out = OutDelete{
		Success: true,
	}
	return
}
