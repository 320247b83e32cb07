package container

import (
	"context"
	"fmt"
	"io"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/mustyfdn/app-portal/internal/svc/apprepo"
	"github.com/mustyfdn/app-portal/internal/svc/sessionrepo"
	"github.com/mustyfdn/app-portal/pkg/cache"
	"github.com/yusufsyaifudin/ylog"
	"go.uber.org/multierr"

	_ "github.com/lib/pq"
)

// Repositories stitches every stateful dependency together: the Postgres
// catalog and the session store (in-process or Redis, per SESSION_STORE).
type Repositories interface {
	io.Closer

	AppRepo() apprepo.Repo
	SessionRepo() sessionrepo.Repo
}

// RepositoryImpl the real implementation of Repositories.
type RepositoryImpl struct {
	appRepo     apprepo.Repo
	sessionRepo sessionrepo.Repo
	closer      []namedCloser
}

var _ Repositories = (*RepositoryImpl)(nil)

// SetupRepositories opens every backing connection. It returns the concrete
// type so the caller can Close in deferred mode; an interface value would
// hide the closer during run-time.
func SetupRepositories(ctx context.Context, conf Config) (repos *RepositoryImpl, err error) {
	repos = &RepositoryImpl{
		closer: make([]namedCloser, 0),
	}

	defer func() {
		// close previous opened connection if error happen
		if err != nil {
			if _err := repos.Close(); _err != nil {
				err = fmt.Errorf("%w: close error: %s", err, _err)
			}

			repos = nil
		}
	}()

	var sqlConn *sqlx.DB
	sqlConn, err = openPostgres(ctx, conf.DatabaseDSN, conf.DBDebug)
	if err != nil {
		return
	}

	repos.closer = append(repos.closer, closerFor("postgres", sqlConn))

	repos.appRepo, err = apprepo.Postgres(apprepo.RepoPostgresConfig{
		Connection: sqlConn,
	})
	if err != nil {
		err = fmt.Errorf("cannot prepare app repo: %w", err)
		return
	}

	var sessionCache cache.Cache
	switch conf.SessionStore {
	case SessionStoreInMemory:
		sessionCache, err = cache.NewInMemory()
		if err != nil {
			err = fmt.Errorf("cannot prepare in-memory session cache: %w", err)
			return
		}

	case SessionStoreRedis:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     conf.RedisAddress,
			Password: conf.RedisPassword,
			DB:       conf.RedisDB,
		})

		err = redisClient.Ping(ctx).Err()
		if err != nil {
			err = fmt.Errorf("error ping redis: %w", err)
			return
		}

		repos.closer = append(repos.closer, closerFor("redis", redisClient))

		sessionCache, err = cache.NewRedis(cache.RedisConfig{DB: redisClient})
		if err != nil {
			err = fmt.Errorf("cannot prepare redis session cache: %w", err)
			return
		}

	default:
		err = fmt.Errorf("unknown session store '%s'", conf.SessionStore)
		return
	}

	repos.sessionRepo, err = sessionrepo.NewCache(sessionrepo.RepoCacheConfig{
		Cache: sessionCache,
	})
	if err != nil {
		err = fmt.Errorf("cannot prepare session repo: %w", err)
		return
	}

	return repos, nil
}

func (r *RepositoryImpl) AppRepo() apprepo.Repo {
	return r.appRepo
}

func (r *RepositoryImpl) SessionRepo() sessionrepo.Repo {
	return r.sessionRepo
}

// Close will close all dependencies.
func (r *RepositoryImpl) Close() error {
	if r == nil {
		return nil
	}

	var err error
	for _, closer := range r.closer {
		if _err := closer.Close(); _err != nil {
			err = multierr.Append(err, fmt.Errorf("close %s error: %w", closer.name, _err))
			continue
		}

		ylog.Debug(context.Background(), fmt.Sprintf("%s success to close", closer.name))
	}

	return err
}
