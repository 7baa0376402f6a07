package command

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hookedbylulu/storefront-api/internal/common"
	"github.com/hookedbylulu/storefront-api/internal/obs"
)

// Handler exposes the intent dispatch table over HTTP.
type Handler struct {
	Registry *Registry
}

// Dispatch decodes one intent invocation and runs its handler.
func (h *Handler) Dispatch(w http.ResponseWriter, r *http.Request) {
	if h.Registry == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "command registry not configured", nil)
		return
	}
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	out, err := h.Registry.Dispatch(r.Context(), req)
	if err != nil {
		if obs.IntentDispatchTotal != nil {
			obs.IntentDispatchTotal.WithLabelValues(req.Intent, "error").Inc()
		}
		h.writeError(w, err)
		return
	}
	if obs.IntentDispatchTotal != nil {
		obs.IntentDispatchTotal.WithLabelValues(req.Intent, "ok").Inc()
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data": out,
	})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var appErr *common.AppError
	switch {
	case errors.Is(err, ErrUnknownIntent):
		common.JSONError(w, http.StatusNotFound, "UNKNOWN_INTENT", err.Error(), nil)
	case errors.As(err, &appErr):
		status := appErr.HTTPStatus
		if status == 0 {
			status = http.StatusBadRequest
		}
		common.JSONError(w, status, appErr.Code, appErr.Message, appErr.Details)
	default:
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
	}
}
