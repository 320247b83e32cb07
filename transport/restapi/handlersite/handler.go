package handlersite

import (
	"net/http"

	"github.com/mustyfdn/app-portal/assets"
	"github.com/mustyfdn/app-portal/pkg/respbuilder"
	"github.com/mustyfdn/app-portal/pkg/validator"
	"github.com/mustyfdn/app-portal/transport/restapi/httptyped"
	"github.com/yusufsyaifudin/ylog"
)

type HandlerConfig struct {
	CompanyName string `validate:"required"`
	CompanyIcon string `validate:"required"`
}

type Handler struct {
	Config HandlerConfig
}

func NewHandler(conf HandlerConfig) (*Handler, error) {
	err := validator.Validate(conf)
	if err != nil {
		return nil, err
	}

	return &Handler{Config: conf}, nil
}

// LoginPage serves the admin login form.
// Path : GET /login
func (h *Handler) LoginPage() func(http.ResponseWriter, *http.Request) {
	return h.page("webadmin/login.html")
}

// AdminPage serves the catalog management page. The router puts this behind
// the session gate.
// Path : GET /admin
func (h *Handler) AdminPage() func(http.ResponseWriter, *http.Request) {
	return h.page("webadmin/admin.html")
}

// SiteConfig expose the branding values for the frontend.
// Path     : GET /api/config
// Response : httptyped.ConfigEntity
func (h *Handler) SiteConfig() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		respbuilder.WriteJSON(http.StatusOK, w, r, httptyped.ConfigEntity{
			CompanyName: h.Config.CompanyName,
			CompanyIcon: h.Config.CompanyIcon,
		})
	}

	return handler
}

func (h *Handler) page(name string) func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		body, err := assets.WebAdmin.ReadFile(name)
		if err != nil {
			ylog.Error(ctx, "cannot read embedded page", ylog.KV("page", name), ylog.KV("error", err))
			resp := respbuilder.Error(ctx, respbuilder.ErrUnhandled, err)
			respbuilder.WriteJSON(http.StatusInternalServerError, w, r, resp)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, _err := w.Write(body); _err != nil {
			ylog.Error(ctx, "cannot write page body", ylog.KV("error", _err))
		}
	}

	return handler
}
