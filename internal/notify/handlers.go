package notify

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hookedbylulu/storefront-api/internal/common"
	"github.com/hookedbylulu/storefront-api/internal/obs"
)

// Handler exposes the current toast per surface key. The page polls this
// after a mutation instead of deriving messages itself.
type Handler struct {
	Center *Center
}

// Current returns the toast visible for the key, or 204 when none is showing.
func (h *Handler) Current(w http.ResponseWriter, r *http.Request) {
	if h.Center == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "notification center not configured", nil)
		return
	}
	key := chi.URLParam(r, "key")
	toast, ok := h.Center.Current(key)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if obs.NotificationsShownTotal != nil {
		obs.NotificationsShownTotal.WithLabelValues(string(toast.Severity)).Inc()
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data": toast,
	})
}

// Dismiss clears the toast for the key ahead of its scheduled dismissal.
func (h *Handler) Dismiss(w http.ResponseWriter, r *http.Request) {
	if h.Center == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "notification center not configured", nil)
		return
	}
	h.Center.Dismiss(chi.URLParam(r, "key"))
	w.WriteHeader(http.StatusNoContent)
}
