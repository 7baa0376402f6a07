package view

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hookedbylulu/storefront-api/internal/cart"
	"github.com/hookedbylulu/storefront-api/internal/common"
	"github.com/hookedbylulu/storefront-api/internal/events"
	"github.com/hookedbylulu/storefront-api/internal/notify"
	"github.com/hookedbylulu/storefront-api/internal/obs"
)

// Handler wires the cart routes to HTTP. Every mutation responds with the
// re-rendered projection so the page never derives totals itself.
type Handler struct {
	Svc    *cart.Service
	Toasts *notify.Center
	Events *events.Bus
}

// Create mints a cart session, reusing the supplied identifier when present.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	var payload struct {
		CartID string `json:"cartId"`
	}
	_ = json.NewDecoder(r.Body).Decode(&payload)
	c, err := h.Svc.Ensure(r.Context(), payload.CartID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{
		"data": cartResponse(c),
	})
}

// Get returns the cart contents together with the rendered projection.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	c, err := h.Svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data": cartResponse(c),
	})
}

// AddItem inserts or increments a line item from the product card fields.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	cartID := chi.URLParam(r, "id")
	var payload struct {
		Title     string `json:"title"`
		Price     string `json:"price"`
		UnitPrice *int64 `json:"unitPrice"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	var (
		c   cart.Cart
		err error
	)
	if payload.UnitPrice != nil {
		c, err = h.Svc.AddItem(r.Context(), cartID, payload.Title, *payload.UnitPrice)
	} else {
		c, err = h.Svc.AddItemFromDisplay(r.Context(), cartID, payload.Title, payload.Price)
	}
	if err != nil {
		if obs.CartMutationsTotal != nil {
			obs.CartMutationsTotal.WithLabelValues("add", "error").Inc()
		}
		h.writeError(w, err)
		return
	}
	if obs.CartMutationsTotal != nil {
		obs.CartMutationsTotal.WithLabelValues("add", "ok").Inc()
	}
	if h.Toasts != nil {
		h.Toasts.Success(cartID, "Item added to cart!")
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data": cartResponse(c),
	})
}

// RemoveItem drops a line item. Removing an unknown item is a no-op.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	cartID := chi.URLParam(r, "id")
	itemID, err := strconv.ParseInt(chi.URLParam(r, "itemId"), 10, 64)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid item id", nil)
		return
	}
	c, err := h.Svc.RemoveItem(r.Context(), cartID, itemID)
	if err != nil {
		if obs.CartMutationsTotal != nil {
			obs.CartMutationsTotal.WithLabelValues("remove", "error").Inc()
		}
		h.writeError(w, err)
		return
	}
	if obs.CartMutationsTotal != nil {
		obs.CartMutationsTotal.WithLabelValues("remove", "ok").Inc()
	}
	if h.Toasts != nil {
		h.Toasts.Info(cartID, "Item removed from cart")
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data": cartResponse(c),
	})
}

// Clear empties the cart and deletes its snapshot.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	cartID := chi.URLParam(r, "id")
	c, err := h.Svc.Clear(r.Context(), cartID)
	if err != nil {
		if obs.CartMutationsTotal != nil {
			obs.CartMutationsTotal.WithLabelValues("clear", "error").Inc()
		}
		h.writeError(w, err)
		return
	}
	if obs.CartMutationsTotal != nil {
		obs.CartMutationsTotal.WithLabelValues("clear", "ok").Inc()
	}
	if h.Events != nil {
		// the cart is already cleared; the event log is best effort here
		_, _ = h.Events.Emit(r.Context(), events.TopicCartCleared, cartID, nil)
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data": cartResponse(c),
	})
}

func cartResponse(c cart.Cart) map[string]any {
	return map[string]any{
		"cartId": c.ID,
		"items":  c.Items,
		"view":   Render(c),
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if err == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unknown error", nil)
		return
	}
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		status := appErr.HTTPStatus
		if status == 0 {
			status = http.StatusBadRequest
		}
		code := appErr.Code
		if code == "" {
			code = "BAD_REQUEST"
		}
		common.JSONError(w, status, code, appErr.Message, appErr.Details)
		return
	}
	switch {
	case errors.Is(err, cart.ErrInvalidInput):
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
	case errors.Is(err, cart.ErrNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong", nil)
	}
}
