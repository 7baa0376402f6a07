package order

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hookedbylulu/storefront-api/internal/cart"
	"github.com/hookedbylulu/storefront-api/internal/checkout"
	"github.com/hookedbylulu/storefront-api/internal/common"
	"github.com/hookedbylulu/storefront-api/internal/obs"
)

// Handler wires order placement to HTTP.
type Handler struct {
	Svc *Service
}

// Place dispatches an order from the cart and checkout form in the body.
func (h *Handler) Place(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "order service not configured", nil)
		return
	}
	var in PlaceInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	placed, err := h.Svc.Place(r.Context(), in)
	if err != nil {
		if obs.OrdersPlacedTotal != nil {
			obs.OrdersPlacedTotal.WithLabelValues("error").Inc()
		}
		h.writeError(w, err)
		return
	}
	if obs.OrdersPlacedTotal != nil {
		obs.OrdersPlacedTotal.WithLabelValues("ok").Inc()
	}
	common.JSON(w, http.StatusCreated, map[string]any{
		"data": placed,
	})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", verr.Error(), verr.Fields)
	case errors.Is(err, ErrEmptyCart):
		common.JSONError(w, http.StatusConflict, "EMPTY_CART", "Your cart is empty!", nil)
	case errors.Is(err, checkout.ErrUnknownDelivery):
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
	case errors.Is(err, cart.ErrInvalidInput):
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
	case errors.Is(err, cart.ErrNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong", nil)
	}
}
