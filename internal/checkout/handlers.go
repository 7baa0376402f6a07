package checkout

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hookedbylulu/storefront-api/internal/cart"
	"github.com/hookedbylulu/storefront-api/internal/common"
	"github.com/hookedbylulu/storefront-api/internal/notify"
)

// Handler wires form validation and delivery quoting to HTTP.
type Handler struct {
	Carts  *cart.Service
	Forms  *Validator
	Fees   Fees
	Toasts *notify.Center
}

// Validate checks a checkout form without placing an order. The page calls
// this on blur so field errors surface before submission.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	if h.Forms == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "form validator not configured", nil)
		return
	}
	var form Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if fieldErrs := h.Forms.Validate(&form); len(fieldErrs) > 0 {
		common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", fieldErrs[0].Message, fieldErrs)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{
			"valid": true,
			"phone": FormatPhone(form.Phone),
		},
	})
}

// Quote recomputes checkout totals for a cart under a delivery selection.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	if h.Carts == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	cartID := chi.URLParam(r, "id")
	var payload struct {
		Delivery string `json:"delivery"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	sel, err := h.Fees.Select(payload.Delivery)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}
	c, err := h.Carts.Get(r.Context(), cartID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if h.Toasts != nil {
		h.Toasts.Success(cartID, sel.Method.Name()+" selected")
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{
			"selection": sel,
			"pricing":   Quote(c, sel),
		},
	})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cart.ErrInvalidInput):
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
	case errors.Is(err, cart.ErrNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong", nil)
	}
}
