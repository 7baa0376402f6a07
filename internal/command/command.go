// Package command maps interaction intents to handlers so the HTTP surface
// stays a thin dispatch table instead of per-action wiring.
package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/hookedbylulu/storefront-api/internal/common"
)

// Intents offered by the storefront surface.
const (
	IntentAddItem        = "add-item"
	IntentRemoveItem     = "remove-item"
	IntentClearCart      = "clear-cart"
	IntentSelectDelivery = "select-delivery"
	IntentSubmitCheckout = "submit-checkout"
	IntentSendContact    = "send-contact"
)

// ErrUnknownIntent is returned when no handler is registered for an intent.
var ErrUnknownIntent = errors.New("unknown intent")

// Request is one decoded intent invocation. Key identifies the session the
// intent acts on; Payload carries the intent-specific body.
type Request struct {
	Intent  string          `json:"intent"`
	Key     string          `json:"key"`
	Payload json.RawMessage `json:"payload"`
}

// HandlerFunc executes one intent.
type HandlerFunc func(ctx context.Context, req Request) (any, error)

// Registry holds the intent dispatch table.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]HandlerFunc
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]HandlerFunc)}
}

// Register binds a handler to an intent, replacing any previous binding.
func (r *Registry) Register(intent string, h HandlerFunc) {
	intent = strings.TrimSpace(intent)
	if intent == "" || h == nil {
		return
	}
	r.mu.Lock()
	r.handlers[intent] = h
	r.mu.Unlock()
}

// Intents lists every registered intent.
func (r *Registry) Intents() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.handlers))
	for intent := range r.handlers {
		out = append(out, intent)
	}
	return out
}

// Dispatch runs the handler registered for the request's intent.
func (r *Registry) Dispatch(ctx context.Context, req Request) (any, error) {
	if r == nil {
		return nil, errors.New("command registry not configured")
	}
	intent := strings.TrimSpace(req.Intent)
	if intent == "" {
		return nil, fmt.Errorf("intent is required: %w", ErrUnknownIntent)
	}
	r.mu.RLock()
	h, ok := r.handlers[intent]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%q: %w", intent, ErrUnknownIntent)
	}
	return h(ctx, req)
}

// Bind decodes the request payload into v, tolerating an absent payload.
func Bind(req Request, v any) error {
	if len(req.Payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(req.Payload, v); err != nil {
		return common.NewAppError("BAD_PAYLOAD", fmt.Sprintf("malformed %s payload", req.Intent), http.StatusBadRequest, err)
	}
	return nil
}
