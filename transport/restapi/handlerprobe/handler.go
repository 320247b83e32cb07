package handlerprobe

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/schema"
	"github.com/mustyfdn/app-portal/internal/svc/probesvc"
	"github.com/mustyfdn/app-portal/pkg/respbuilder"
	"github.com/mustyfdn/app-portal/pkg/validator"
)

type HandlerConfig struct {
	ProbeService probesvc.Service `validate:"required"`
}

type Handler struct {
	Config  HandlerConfig
	decoder *schema.Decoder
}

func NewHandler(conf HandlerConfig) (*Handler, error) {
	err := validator.Validate(conf)
	if err != nil {
		return nil, err
	}

	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	return &Handler{
		Config:  conf,
		decoder: decoder,
	}, nil
}

// ProbeQuery is the query string of the health relay.
type ProbeQuery struct {
	URL string `schema:"url"`
}

// ProbeHealth fetch the target URL and relay only its HTTP status code. The
// response body stays empty so the caller never sees upstream content.
// Path  : GET /proxy-health?url=<target>
func (h *Handler) ProbeHealth() func(http.ResponseWriter, *http.Request) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		err := r.ParseForm()
		if err != nil {
			resp := respbuilder.Error(ctx, respbuilder.ErrValidation, err)
			respbuilder.WriteJSON(http.StatusBadRequest, w, r, resp)
			return
		}

		var query ProbeQuery
		err = h.decoder.Decode(&query, r.Form)
		if err != nil {
			resp := respbuilder.Error(ctx, respbuilder.ErrValidation, err)
			respbuilder.WriteJSON(http.StatusBadRequest, w, r, resp)
			return
		}

		if strings.TrimSpace(query.URL) == "" {
			err = fmt.Errorf("query parameter 'url' is required")
			resp := respbuilder.Error(ctx, respbuilder.ErrValidation, err)
			respbuilder.WriteJSON(http.StatusBadRequest, w, r, resp)
			return
		}

		probeOut, err := h.Config.ProbeService.Probe(ctx, probesvc.InputProbe{
			TargetURL: query.URL,
		})
		if errors.Is(err, probesvc.ErrValidation) {
			resp := respbuilder.Error(ctx, respbuilder.ErrValidation, err)
			respbuilder.WriteJSON(http.StatusBadRequest, w, r, resp)
			return
		}

		if err != nil {
			resp := respbuilder.Error(ctx, respbuilder.ErrUpstream, err)
			respbuilder.WriteJSON(http.StatusInternalServerError, w, r, resp)
			return
		}

		if tracer, ok := respbuilder.Extract(ctx); ok {
			w.Header().Set("Tracer-Id", tracer.AppTraceID)
		}

		w.WriteHeader(probeOut.StatusCode)
	}

	return handler
}
