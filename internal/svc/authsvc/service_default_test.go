package authsvc_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mustyfdn/app-portal/internal/svc/authsvc"
	"github.com/mustyfdn/app-portal/internal/svc/sessionrepo"
	"github.com/mustyfdn/app-portal/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prepareAuth(t *testing.T) *authsvc.DefaultService {
	backend, err := cache.NewInMemory()
	require.NoError(t, err)

	sessions, err := sessionrepo.NewCache(sessionrepo.RepoCacheConfig{Cache: backend})
	require.NoError(t, err)

	svc, err := authsvc.New(authsvc.DefaultServiceConfig{
		AdminUsername: "admin",
		AdminPassword: "s3cret",
		SessionSecret: "signing-secret",
		SessionTTL:    time.Hour,
		Sessions:      sessions,
	})
	require.NoError(t, err)

	return svc
}

func TestNewBadDep(t *testing.T) {
	svc, err := authsvc.New(authsvc.DefaultServiceConfig{})
	assert.Nil(t, svc)
	assert.Error(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := prepareAuth(t)

	_, err := svc.Login(context.Background(), authsvc.InputLogin{
		Username: "admin",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, authsvc.ErrBadCredentials)
}

func TestLoginMissingFields(t *testing.T) {
	svc := prepareAuth(t)

	_, err := svc.Login(context.Background(), authsvc.InputLogin{Username: "admin"})
	assert.ErrorIs(t, err, authsvc.ErrBadCredentials)
}

func TestLoginInspectLogoutCycle(t *testing.T) {
	svc := prepareAuth(t)
	ctx := context.Background()

	loginOut, err := svc.Login(ctx, authsvc.InputLogin{
		Username: "admin",
		Password: "s3cret",
	})
	require.NoError(t, err)
	require.NotEmpty(t, loginOut.CookieValue)

	inspectOut, err := svc.Inspect(ctx, authsvc.InputInspect{CookieValue: loginOut.CookieValue})
	require.NoError(t, err)
	assert.True(t, inspectOut.Authenticated)
	assert.Equal(t, "admin", inspectOut.Username)

	logoutOut, err := svc.Logout(ctx, authsvc.InputLogout{CookieValue: loginOut.CookieValue})
	require.NoError(t, err)
	assert.True(t, logoutOut.Success)

	afterOut, err := svc.Inspect(ctx, authsvc.InputInspect{CookieValue: loginOut.CookieValue})
	require.NoError(t, err)
	assert.False(t, afterOut.Authenticated)
}

func TestInspectTamperedCookie(t *testing.T) {
	svc := prepareAuth(t)
	ctx := context.Background()

	loginOut, err := svc.Login(ctx, authsvc.InputLogin{
		Username: "admin",
		Password: "s3cret",
	})
	require.NoError(t, err)

	token, _, found := strings.Cut(loginOut.CookieValue, ".")
	require.True(t, found)

	// valid-looking hex signature forged without the secret
	forged := token + "." + strings.Repeat("ab", 32)

	out, err := svc.Inspect(ctx, authsvc.InputInspect{CookieValue: forged})
	require.NoError(t, err)
	assert.False(t, out.Authenticated)
}

func TestInspectEmptyCookie(t *testing.T) {
	svc := prepareAuth(t)

	out, err := svc.Inspect(context.Background(), authsvc.InputInspect{})
	require.NoError(t, err)
	assert.False(t, out.Authenticated)
}
