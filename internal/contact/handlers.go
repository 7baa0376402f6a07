package contact

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/hookedbylulu/storefront-api/internal/common"
	"github.com/hookedbylulu/storefront-api/internal/obs"
)

// Handler wires the contact handoff to HTTP.
type Handler struct {
	Svc *Service
}

// Send validates the contact form and returns the WhatsApp deep link.
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "contact service not configured", nil)
		return
	}
	var payload struct {
		Key string `json:"key"`
		Message
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	key := strings.TrimSpace(payload.Key)
	if key == "" {
		key = uuid.NewString()
	}
	sent, err := h.Svc.Send(r.Context(), key, payload.Message)
	if err != nil {
		if obs.ContactMessagesTotal != nil {
			obs.ContactMessagesTotal.WithLabelValues("error").Inc()
		}
		if errors.Is(err, ErrInvalidMessage) {
			common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", strings.TrimSuffix(err.Error(), ": "+ErrInvalidMessage.Error()), nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong", nil)
		return
	}
	if obs.ContactMessagesTotal != nil {
		obs.ContactMessagesTotal.WithLabelValues("ok").Inc()
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{
			"key":         key,
			"whatsappUrl": sent.WhatsAppURL,
		},
	})
}
