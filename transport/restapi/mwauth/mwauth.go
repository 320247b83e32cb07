package mwauth

import (
	"net/http"
	"strings"

	"github.com/mustyfdn/app-portal/internal/svc/authsvc"
	"github.com/mustyfdn/app-portal/pkg/respbuilder"
	"github.com/mustyfdn/app-portal/pkg/validator"
)

type Config struct {
	AuthService authsvc.Service `validate:"required"`
	CookieName  string          `validate:"required"`
	LoginPath   string          `validate:"required"`
}

// Middleware is the auth gate: it lets authenticated sessions pass and turns
// everything else into a 401 (JSON clients) or a redirect to the login page.
type Middleware struct {
	Config Config
}

func New(conf Config) (*Middleware, error) {
	err := validator.Validate(conf)
	if err != nil {
		return nil, err
	}

	return &Middleware{Config: conf}, nil
}

func (m *Middleware) Gate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		cookieValue := ""
		if cookie, err := r.Cookie(m.Config.CookieName); err == nil {
			cookieValue = cookie.Value
		}

		inspectOut, err := m.Config.AuthService.Inspect(ctx, authsvc.InputInspect{
			CookieValue: cookieValue,
		})
		if err != nil {
			resp := respbuilder.Error(ctx, respbuilder.ErrUnhandled, err)
			respbuilder.WriteJSON(http.StatusInternalServerError, w, r, resp)
			return
		}

		if inspectOut.Authenticated {
			next.ServeHTTP(w, r)
			return
		}

		if acceptsJSON(r) {
			resp := respbuilder.Error(ctx, respbuilder.ErrUnauthorized, nil)
			respbuilder.WriteJSON(http.StatusUnauthorized, w, r, resp)
			return
		}

		http.Redirect(w, r, m.Config.LoginPath, http.StatusFound)
	})
}

func acceptsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
