package restapi_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mustyfdn/app-portal/internal/svc/appsvc"
	"github.com/mustyfdn/app-portal/internal/svc/authsvc"
	"github.com/mustyfdn/app-portal/internal/svc/probesvc"
	"github.com/mustyfdn/app-portal/internal/svc/sessionrepo"
	"github.com/mustyfdn/app-portal/pkg/cache"
	"github.com/mustyfdn/app-portal/pkg/httpclient"
	"github.com/mustyfdn/app-portal/transport/restapi"
	"github.com/segmentio/encoding/json"
	"github.com/sony/sonyflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAdminUser = "admin"
	testAdminPass = "s3cret"
)

// memAppSvc keeps the catalog in a map so the transport tests need no database.
type memAppSvc struct {
	mu     sync.Mutex
	nextID int64
	apps   map[int64]appsvc.App
}

var _ appsvc.Service = (*memAppSvc)(nil)

func newMemAppSvc() *memAppSvc {
	return &memAppSvc{apps: map[int64]appsvc.App{}}
}

func (m *memAppSvc) ListApps(ctx context.Context, input appsvc.InputListApps) (out appsvc.OutListApps, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	apps := make([]appsvc.App, 0, len(m.apps))
	for _, app := range m.apps {
		apps = append(apps, app)
	}

	sort.Slice(apps, func(i, j int) bool {
		return apps[i].ID > apps[j].ID
	})

	out = appsvc.OutListApps{Apps: apps}
	return
}

func (m *memAppSvc) CreateApp(ctx context.Context, input appsvc.InputCreateApp) (out appsvc.OutCreateApp, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	app := appsvc.App{
		ID:         m.nextID,
		Title:      input.Title,
		URL:        input.URL,
		Image:      input.Image,
		HealthPath: input.HealthPath,
		CreatedAt:  time.Now().UTC(),
	}
	m.apps[app.ID] = app

	out = appsvc.OutCreateApp{App: app}
	return
}

func (m *memAppSvc) UpdateApp(ctx context.Context, input appsvc.InputUpdateApp) (out appsvc.OutUpdateApp, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	app, exist := m.apps[input.ID]
	if !exist {
		err = fmt.Errorf("%w: id %d", appsvc.ErrAppNotFound, input.ID)
		return
	}

	app.Title = input.Title
	app.URL = input.URL
	app.Image = input.Image
	app.HealthPath = input.HealthPath
	m.apps[input.ID] = app

	out = appsvc.OutUpdateApp{App: app}
	return
}

func (m *memAppSvc) DeleteApp(ctx context.Context, input appsvc.InputDeleteApp) (out appsvc.OutDeleteApp, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	app, exist := m.apps[input.ID]
	if !exist {
		err = fmt.Errorf("%w: id %d", appsvc.ErrAppNotFound, input.ID)
		return
	}

	delete(m.apps, input.ID)

	out = appsvc.OutDeleteApp{App: app}
	return
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	inmem, err := cache.NewInMemory()
	require.NoError(t, err)

	sessions, err := sessionrepo.NewCache(sessionrepo.RepoCacheConfig{Cache: inmem})
	require.NoError(t, err)

	authSvc, err := authsvc.New(authsvc.DefaultServiceConfig{
		AdminUsername: testAdminUser,
		AdminPassword: testAdminPass,
		SessionSecret: "transport-test-secret",
		SessionTTL:    time.Hour,
		Sessions:      sessions,
	})
	require.NoError(t, err)

	probeClient, err := httpclient.New(httpclient.Config{Timeout: 5 * time.Second})
	require.NoError(t, err)

	probeSvc, err := probesvc.New(probesvc.DefaultServiceConfig{Client: probeClient})
	require.NoError(t, err)

	transport, err := restapi.NewHTTPTransport(restapi.Config{
		AppServiceName: "app-portal-test",
		AppVersion:     "test",
		UID:            sonyflake.NewSonyflake(sonyflake.Settings{}),
		AppService:     newMemAppSvc(),
		AuthService:    authSvc,
		ProbeService:   probeSvc,
		CompanyName:    "Acme Corp",
		CompanyIcon:    "/assets/acme.png",
	})
	require.NoError(t, err)

	srv := httptest.NewServer(transport.Server())
	t.Cleanup(srv.Close)
	return srv
}

// doJSON fires one request with optional JSON body and session cookie.
func doJSON(t *testing.T, method, url string, body interface{}, cookie *http.Cookie) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if cookie != nil {
		req.AddCookie(cookie)
	}

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()

	defer func() {
		_ = resp.Body.Close()
	}()

	dec := json.NewDecoder(resp.Body)
	require.NoError(t, dec.Decode(dst))
}

func loginCookie(t *testing.T, srv *httptest.Server) *http.Cookie {
	t.Helper()

	resp := doJSON(t, http.MethodPost, srv.URL+"/login", map[string]string{
		"username": testAdminUser,
		"password": testAdminPass,
	}, nil)
	defer func() {
		_ = resp.Body.Close()
	}()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	for _, c := range resp.Cookies() {
		if c.Name == restapi.SessionCookieName {
			return c
		}
	}

	t.Fatalf("login response carries no %s cookie", restapi.SessionCookieName)
	return nil
}

type errEnvelope struct {
	Err struct {
		Code    string `json:"error_code"`
		Message string `json:"error_description"`
	} `json:"error"`
}

func TestGateRejectsJSONClients(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/apps", map[string]string{
		"title": "grafana", "url": "https://grafana.example.com",
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var envelope errEnvelope
	decodeBody(t, resp, &envelope)
	assert.NotEmpty(t, envelope.Err.Code)
	assert.NotEmpty(t, envelope.Err.Message)
}

func TestGateRedirectsBrowsers(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/admin", nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "text/html")

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/login", map[string]string{
		"username": testAdminUser,
		"password": "not-the-password",
	}, nil)
	defer func() {
		_ = resp.Body.Close()
	}()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, resp.Cookies())
}

func TestCatalogCRUDCycle(t *testing.T) {
	srv := newTestServer(t)
	cookie := loginCookie(t, srv)

	// the empty catalog is a bare array, not an envelope
	resp := doJSON(t, http.MethodGet, srv.URL+"/api/apps", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var listed []map[string]interface{}
	decodeBody(t, resp, &listed)
	assert.Len(t, listed, 0)

	// create
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/apps", map[string]string{
		"title":      "grafana",
		"url":        "https://grafana.example.com",
		"image":      "https://grafana.example.com/logo.png",
		"healthpath": "https://grafana.example.com/api/health",
	}, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var created map[string]interface{}
	decodeBody(t, resp, &created)
	assert.EqualValues(t, 1, created["id"])
	assert.Equal(t, "grafana", created["title"])

	// list is public and newest first
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/apps", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, "grafana", listed[0]["title"])

	// update
	resp = doJSON(t, http.MethodPut, srv.URL+"/api/apps/1", map[string]string{
		"title": "grafana prod",
		"url":   "https://grafana.example.com",
	}, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated map[string]interface{}
	decodeBody(t, resp, &updated)
	assert.Equal(t, "grafana prod", updated["title"])

	// update on an unknown id
	resp = doJSON(t, http.MethodPut, srv.URL+"/api/apps/42", map[string]string{
		"title": "ghost",
		"url":   "https://ghost.example.com",
	}, cookie)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()

	// delete reports the removed row
	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/apps/1", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var deleted struct {
		Message    string                 `json:"message"`
		RemovedApp map[string]interface{} `json:"removedApp"`
	}
	decodeBody(t, resp, &deleted)
	assert.NotEmpty(t, deleted.Message)
	assert.Equal(t, "grafana prod", deleted.RemovedApp["title"])

	// deleting the same id again is a miss, not a no-op
	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/apps/1", nil, cookie)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestCreateRejectsBadPayload(t *testing.T) {
	srv := newTestServer(t)
	cookie := loginCookie(t, srv)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/apps", map[string]string{
		"title": "no url here",
	}, cookie)
	defer func() {
		_ = resp.Body.Close()
	}()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateRejectsBadID(t *testing.T) {
	srv := newTestServer(t)
	cookie := loginCookie(t, srv)

	resp := doJSON(t, http.MethodPut, srv.URL+"/api/apps/banana", map[string]string{
		"title": "x",
		"url":   "https://x.example.com",
	}, cookie)
	defer func() {
		_ = resp.Body.Close()
	}()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLogoutEndsSession(t *testing.T) {
	srv := newTestServer(t)
	cookie := loginCookie(t, srv)

	resp := doJSON(t, http.MethodGet, srv.URL+"/logout", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	// the old cookie no longer opens the gate
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/apps", map[string]string{
		"title": "grafana", "url": "https://grafana.example.com",
	}, cookie)
	defer func() {
		_ = resp.Body.Close()
	}()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSiteConfig(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/config", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var conf map[string]string
	decodeBody(t, resp, &conf)
	assert.Equal(t, "Acme Corp", conf["companyName"])
	assert.Equal(t, "/assets/acme.png", conf["companyIcon"])
}

func TestProxyHealthRelaysStatus(t *testing.T) {
	srv := newTestServer(t)

	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"db":"down"}`))
	}))
	defer target.Close()

	resp := doJSON(t, http.MethodGet, srv.URL+"/proxy-health?url="+target.URL, nil, nil)
	defer func() {
		_ = resp.Body.Close()
	}()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	buf := new(bytes.Buffer)
	_, err := buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Empty(t, buf.String(), "upstream body must not leak through the relay")
}

func TestProxyHealthRequiresURL(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/proxy-health", nil, nil)
	defer func() {
		_ = resp.Body.Close()
	}()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLoginPageIsHTML(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/login")
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html"))
}
