package events

import (
	"net/http"

	"github.com/hookedbylulu/storefront-api/internal/common"
)

// Handler exposes the recent event log for operational inspection.
type Handler struct {
	Store *RedisStore
}

// Recent lists the newest events, up to ?limit= entries.
func (h *Handler) Recent(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "event store not configured", nil)
		return
	}
	limit := int64(common.AtoiDefault(r.URL.Query().Get("limit"), 50))
	recent, err := h.Store.Recent(r.Context(), limit)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to load events", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data": recent,
	})
}
