package handlerapp

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/mustyfdn/app-portal/internal/svc/apprepo"
	"github.com/mustyfdn/app-portal/internal/svc/appsvc"
	"github.com/mustyfdn/app-portal/pkg/respbuilder"
	"github.com/mustyfdn/app-portal/pkg/validator"
	"github.com/mustyfdn/app-portal/transport/restapi/httptyped"
	"github.com/segmentio/encoding/json"
	"github.com/yusufsyaifudin/ylog"
)

type HandlerConfig struct {
	AppService appsvc.Service `validate:"required"`
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

// AppPayload carries the four mutable fields of one catalog row.
type AppPayload struct {
	Title      string `json:"title"`
	URL        string `json:"url"`
	Image      string `json:"image"`
	HealthPath string `json:"healthpath"`
}

// DeleteAppResp reports a removed row.
type DeleteAppResp struct {
	Message    string              `json:"message"`
	RemovedApp httptyped.AppEntity `json:"removedApp"`
}

// ListApps List all apps, newest first, as a bare JSON array.
// Path     : GET /api/apps
// Response : []httptyped.AppEntity
func (h *Handler) ListApps() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		listOut, err := h.Config.AppService.ListApps(ctx, appsvc.InputListApps{})
		if err != nil {
			resp := respbuilder.Error(ctx, respbuilder.ErrUnhandled, err)
			respbuilder.WriteJSON(http.StatusInternalServerError, w, r, resp)
			return
		}

		apps := make([]httptyped.AppEntity, 0)
		for _, app := range listOut.Apps {
			apps = append(apps, httptyped.AppEntityFromSvc(app))
		}

		respbuilder.WriteJSON(http.StatusOK, w, r, apps)
	}

	return handler
}

// CreateApp register a new catalog entry.
// Path         : POST /api/apps
// Request Body : AppPayload
// Response     : httptyped.AppEntity
func (h *Handler) CreateApp() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		reqBody, ok := h.decodeBody(w, r)
		if !ok {
			return
		}

		createOut, err := h.Config.AppService.CreateApp(ctx, appsvc.InputCreateApp{
			Title:      reqBody.Title,
			URL:        reqBody.URL,
			Image:      reqBody.Image,
			HealthPath: reqBody.HealthPath,
		})
		if errors.Is(err, apprepo.ErrValidation) {
			resp := respbuilder.Error(ctx, respbuilder.ErrValidation, err)
			respbuilder.WriteJSON(http.StatusBadRequest, w, r, resp)
			return
		}

		if err != nil {
			resp := respbuilder.Error(ctx, respbuilder.ErrUnhandled, err)
			respbuilder.WriteJSON(http.StatusInternalServerError, w, r, resp)
			return
		}

		respbuilder.WriteJSON(http.StatusOK, w, r, httptyped.AppEntityFromSvc(createOut.App))
	}

	return handler
}

// UpdateApp replace the four mutable fields of an existing entry.
// Path         : PUT /api/apps/{id}
// Request Body : AppPayload
// Response     : httptyped.AppEntity
func (h *Handler) UpdateApp() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, ok := h.pathID(w, r)
		if !ok {
			return
		}

		reqBody, ok := h.decodeBody(w, r)
		if !ok {
			return
		}

		updateOut, err := h.Config.AppService.UpdateApp(ctx, appsvc.InputUpdateApp{
			ID:         id,
			Title:      reqBody.Title,
			URL:        reqBody.URL,
			Image:      reqBody.Image,
			HealthPath: reqBody.HealthPath,
		})
		if errors.Is(err, appsvc.ErrAppNotFound) {
			resp := respbuilder.Error(ctx, respbuilder.ErrResourceNotFound, err)
			respbuilder.WriteJSON(http.StatusNotFound, w, r, resp)
			return
		}

		if errors.Is(err, apprepo.ErrValidation) {
			resp := respbuilder.Error(ctx, respbuilder.ErrValidation, err)
			respbuilder.WriteJSON(http.StatusBadRequest, w, r, resp)
			return
		}

		if err != nil {
			resp := respbuilder.Error(ctx, respbuilder.ErrUnhandled, err)
			respbuilder.WriteJSON(http.StatusInternalServerError, w, r, resp)
			return
		}

		respbuilder.WriteJSON(http.StatusOK, w, r, httptyped.AppEntityFromSvc(updateOut.App))
	}

	return handler
}

// DeleteApp remove one entry. Deleting the same id twice is 404 the second
// time, the operation is deliberately not idempotent.
// Path     : DELETE /api/apps/{id}
// Response : DeleteAppResp
func (h *Handler) DeleteApp() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, ok := h.pathID(w, r)
		if !ok {
			return
		}

		deleteOut, err := h.Config.AppService.DeleteApp(ctx, appsvc.InputDeleteApp{
			ID: id,
		})
		if errors.Is(err, appsvc.ErrAppNotFound) {
			resp := respbuilder.Error(ctx, respbuilder.ErrResourceNotFound, err)
			respbuilder.WriteJSON(http.StatusNotFound, w, r, resp)
			return
		}

		if err != nil {
			resp := respbuilder.Error(ctx, respbuilder.ErrUnhandled, err)
			respbuilder.WriteJSON(http.StatusInternalServerError, w, r, resp)
			return
		}

		respBody := DeleteAppResp{
			Message:    fmt.Sprintf("app id %d removed", id),
			RemovedApp: httptyped.AppEntityFromSvc(deleteOut.App),
		}

		respbuilder.WriteJSON(http.StatusOK, w, r, respBody)
	}

	return handler
}

func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request) (reqBody AppPayload, ok bool) {
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

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&reqBody); err != nil {
		resp := respbuilder.Error(ctx, respbuilder.ErrValidation, err)
		respbuilder.WriteJSON(http.StatusBadRequest, w, r, resp)
		return
	}

	ok = true
	return
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (id int64, ok bool) {
	ctx := r.Context()

	raw := strings.TrimSpace(chi.URLParam(r, "id"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		err = fmt.Errorf("app id '%s' is not a positive integer", raw)
		resp := respbuilder.Error(ctx, respbuilder.ErrValidation, err)
		respbuilder.WriteJSON(http.StatusBadRequest, w, r, resp)
		return 0, false
	}

	return id, true
}
