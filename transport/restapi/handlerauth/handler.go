package handlerauth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mustyfdn/app-portal/internal/svc/authsvc"
	"github.com/mustyfdn/app-portal/pkg/respbuilder"
	"github.com/mustyfdn/app-portal/pkg/validator"
	"github.com/segmentio/encoding/json"
	"github.com/yusufsyaifudin/ylog"
)

type HandlerConfig struct {
	AuthService authsvc.Service `validate:"required"`
	CookieName  string          `validate:"required"`
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

// LoginReq is the credential pair submitted by the login form.
type LoginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchange the shared admin credential for a session cookie.
// Path         : POST /login
// Request Body : LoginReq
// Response     : respbuilder.HTTPMessage plus a Set-Cookie header
func (h *Handler) Login() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if r.Body == nil {
			err := fmt.Errorf("request body is nil")
			resp := respbuilder.Error(ctx, respbuilder.ErrValidation, err)
			respbuilder.WriteJSON(http.StatusBadRequest, w, r, resp)
			return
		}

		defer func() {
			if _err := r.Body.Close(); _err != nil {
				ylog.Error(ctx, "cannot close request body", ylog.KV("error", _err))
			}
		}()

		var reqBody LoginReq
		dec := json.NewDecoder(r.Body)
		if err := dec.Decode(&reqBody); err != nil {
			resp := respbuilder.Error(ctx, respbuilder.ErrValidation, err)
			respbuilder.WriteJSON(http.StatusBadRequest, w, r, resp)
			return
		}

		loginOut, err := h.Config.AuthService.Login(ctx, authsvc.InputLogin{
			Username: reqBody.Username,
			Password: reqBody.Password,
		})
		if errors.Is(err, authsvc.ErrBadCredentials) {
			resp := respbuilder.Error(ctx, respbuilder.ErrUnauthorized, err)
			respbuilder.WriteJSON(http.StatusUnauthorized, w, r, resp)
			return
		}

		if err != nil {
			resp := respbuilder.Error(ctx, respbuilder.ErrUnhandled, err)
			respbuilder.WriteJSON(http.StatusInternalServerError, w, r, resp)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     h.Config.CookieName,
			Value:    loginOut.CookieValue,
			Path:     "/",
			Expires:  time.Unix(loginOut.ExpiresAt, 0),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		respbuilder.WriteJSON(http.StatusOK, w, r, respbuilder.Message(
			fmt.Sprintf("user '%s' logged in", loginOut.Username),
		))
	}

	return handler
}

// Logout destroy the session behind the cookie and expire the cookie itself.
// Calling it without a valid cookie still succeeds.
// Path     : GET /logout
// Response : respbuilder.HTTPMessage
func (h *Handler) Logout() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var cookieValue string
		if cookie, _err := r.Cookie(h.Config.CookieName); _err == nil {
			cookieValue = cookie.Value
		}

		_, err := h.Config.AuthService.Logout(ctx, authsvc.InputLogout{
			CookieValue: cookieValue,
		})
		if err != nil {
			resp := respbuilder.Error(ctx, respbuilder.ErrUnhandled, err)
			respbuilder.WriteJSON(http.StatusInternalServerError, w, r, resp)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     h.Config.CookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		respbuilder.WriteJSON(http.StatusOK, w, r, respbuilder.Message("logged out"))
	}

	return handler
}
