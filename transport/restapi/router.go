package restapi

import (
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mustyfdn/app-portal/assets"
	"github.com/mustyfdn/app-portal/internal/svc/appsvc"
	"github.com/mustyfdn/app-portal/internal/svc/authsvc"
	"github.com/mustyfdn/app-portal/internal/svc/probesvc"
	"github.com/mustyfdn/app-portal/pkg/tracer"
	"github.com/mustyfdn/app-portal/pkg/validator"
	"github.com/mustyfdn/app-portal/transport/restapi/handlerapp"
	"github.com/mustyfdn/app-portal/transport/restapi/handlerauth"
	"github.com/mustyfdn/app-portal/transport/restapi/handlerprobe"
	"github.com/mustyfdn/app-portal/transport/restapi/handlersite"
	"github.com/mustyfdn/app-portal/transport/restapi/mwauth"
	"go.opentelemetry.io/otel"
)

// SessionCookieName is the cookie the auth handlers set and the gate reads.
const SessionCookieName = "portal_session"

const loginPath = "/login"

type Config struct {
	AppServiceName string           `validate:"required"`
	AppVersion     string           `validate:"required"`
	UID            UIDGen           `validate:"required"`
	AppService     appsvc.Service   `validate:"required"`
	AuthService    authsvc.Service  `validate:"required"`
	ProbeService   probesvc.Service `validate:"required"`
	CompanyName    string           `validate:"required"`
	CompanyIcon    string           `validate:"required"`
}

type DefaultHTTP struct {
	router *chi.Mux
}

func NewHTTPTransport(cfg Config) (*DefaultHTTP, error) {
	if err := validator.Validate(cfg); err != nil {
		return nil, fmt.Errorf("http transport cfg error: %w", err)
	}

	// ** Catalog handler
	handlerApp, err := handlerapp.NewHandler(handlerapp.HandlerConfig{
		AppService: cfg.AppService,
	})
	if err != nil {
		return nil, err
	}

	// ** Session handler
	handlerAuth, err := handlerauth.NewHandler(handlerauth.HandlerConfig{
		AuthService: cfg.AuthService,
		CookieName:  SessionCookieName,
	})
	if err != nil {
		return nil, err
	}

	// ** Health relay handler
	handlerProbe, err := handlerprobe.NewHandler(handlerprobe.HandlerConfig{
		ProbeService: cfg.ProbeService,
	})
	if err != nil {
		return nil, err
	}

	// ** Static pages and branding
	handlerSite, err := handlersite.NewHandler(handlersite.HandlerConfig{
		CompanyName: cfg.CompanyName,
		CompanyIcon: cfg.CompanyIcon,
	})
	if err != nil {
		return nil, err
	}

	gate, err := mwauth.New(mwauth.Config{
		AuthService: cfg.AuthService,
		CookieName:  SessionCookieName,
		LoginPath:   loginPath,
	})
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()

	skip := func(r *http.Request) bool {
		switch strings.TrimSpace(path.Clean(r.URL.Path)) {
		case "/health",
			"/ping":
			return true
		}

		return false
	}

	router.Use(middleware.StripSlashes)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Tracer-Id"},
		AllowCredentials: true, // the session rides on a cookie
		MaxAge:           300,  // Maximum value not ignored by any of major browsers
	}))

	router.Use(func(next http.Handler) http.Handler {
		return tracer.Middleware(tracer.MiddlewareConfig{
			TracerName:     "github.com/mustyfdn/app-portal",
			ServiceName:    assets.ServiceName,
			SkipFunc:       skip,
			TracerProvider: otel.GetTracerProvider(),    // global tracer provider
			TextPropagator: otel.GetTextMapPropagator(), // use global text map propagator
		}, next)
	})

	// add trace id and also log request response
	router.Use(func(next http.Handler) http.Handler {
		return requestLogger(cfg.UID, skip, next)
	})

	// Pages and session lifecycle
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/admin", http.StatusFound)
	})
	router.Get(loginPath, handlerSite.LoginPage())
	router.Post(loginPath, handlerAuth.Login())
	router.Get("/logout", handlerAuth.Logout())
	router.With(gate.Gate).Get("/admin", handlerSite.AdminPage())

	// Resource: apps
	router.Route("/api/apps", func(r chi.Router) {
		r.Get("/", handlerApp.ListApps()) // the catalog itself is public
		r.With(gate.Gate).Post("/", handlerApp.CreateApp())
		r.With(gate.Gate).Put("/{id}", handlerApp.UpdateApp())
		r.With(gate.Gate).Delete("/{id}", handlerApp.DeleteApp())
	})

	// Branding and health relay
	router.Get("/api/config", handlerSite.SiteConfig())
	router.Get("/proxy-health", handlerProbe.ProbeHealth())

	instance := &DefaultHTTP{
		router: router,
	}

	return instance, nil
}

// Server .
func (a *DefaultHTTP) Server() http.Handler {
	return a.router
}
