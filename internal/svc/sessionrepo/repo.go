package sessionrepo

import (
	"context"
	"time"
)

// Session is the server-held record behind one cookie token.
// Json tag is used because the backing store serializes the record.
type Session struct {
	Token         string    `json:"token" validate:"required"`
	Username      string    `json:"username" validate:"required"`
	Authenticated bool      `json:"authenticated"`
	CreatedAt     time.Time `json:"created_at" validate:"required"`
	ExpiresAt     time.Time `json:"expires_at" validate:"required"`
}

// Repo is the session store. Implementations differ only in the backing
// cache (in-memory or redis); callers never notice which one is configured.
type Repo interface {
	Save(ctx context.Context, in InputSave) (out OutSave, err error)
	Get(ctx context.Context, in InputGet) (out OutGet, err error)
	Delete(ctx context.Context, in InputDelete) (out OutDelete, err error)
}

type InputSave struct {
	Session Session       `validate:"required"`
	TTL     time.Duration `validate:"required"`
}

type OutSave struct {
	Session Session
}

type InputGet struct {
	Token string `validate:"required"`
}

// OutGet reports Found=false for an absent or expired token, not an error.
type OutGet struct {
	Found   bool
	Session Session
}

type InputDelete struct {
	Token string `validate:"required"`
}

type OutDelete struct {
	Success bool
}
